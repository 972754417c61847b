// Package validate holds the field, file-type and file-size checks shared by
// every intake path, so the rules applied before a store or storage call are
// the same wherever a lead enters the system.
package validate

import (
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"path/filepath"
	"strings"
)

// Error is a user-facing validation failure.  Handlers translate it to 400.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Fail builds an *Error.
func Fail(field, msg string) error { return &Error{Field: field, Message: msg} }

// IsValidation reports whether err (or anything it wraps) is a *Error.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Required fails when value is blank after trimming.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Fail(field, field+" is required")
	}
	return nil
}

// Email requires a single well-formed address.
func Email(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil || !strings.Contains(addr.Address, ".") {
		return Fail(field, field+" must be a valid email address")
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// FileSize fails when size is above maxSizeInMB megabytes.  A non-positive
// limit disables the check.
func FileSize(size int64, maxSizeInMB int) error {
	if maxSizeInMB <= 0 {
		return nil
	}
	if size > int64(maxSizeInMB)*1024*1024 {
		return Fail("file", fmt.Sprintf("File size exceeds %dMB limit", maxSizeInMB))
	}
	return nil
}

// Accepted is a parsed acceptedTypes string such as
// "image/*,.pdf,.doc,.docx,.txt".
type Accepted struct {
	exts   map[string]bool // ".pdf"
	majors map[string]bool // "image" from "image/*"
	exact  map[string]bool // "application/pdf"
}

// ParseAccepted splits a comma separated allow-list.  Tokens are
// case-insensitive; blanks are ignored.
func ParseAccepted(s string) Accepted {
	a := Accepted{exts: map[string]bool{}, majors: map[string]bool{}, exact: map[string]bool{}}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		switch {
		case tok == "":
		case strings.HasPrefix(tok, "."):
			a.exts[tok] = true
		case strings.HasSuffix(tok, "/*"):
			a.majors[strings.TrimSuffix(tok, "/*")] = true
		default:
			a.exact[tok] = true
		}
	}
	return a
}

// Empty reports whether no rule was configured, which accepts everything.
func (a Accepted) Empty() bool {
	return len(a.exts) == 0 && len(a.majors) == 0 && len(a.exact) == 0
}

// Allows reports whether the file matches any rule: extension tokens against
// the filename, wildcard tokens against the MIME major type, and the rest
// against the full MIME type.
func (a Accepted) Allows(filename, mimeType string) bool {
	if a.Empty() {
		return true
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && a.exts[ext] {
		return true
	}
	mt := normalizeMIME(mimeType)
	if mt == "" {
		return false
	}
	if a.exact[mt] {
		return true
	}
	major, _, _ := strings.Cut(mt, "/")
	return a.majors[major]
}

// Type is Allows returning the user-facing error.
func (a Accepted) Type(filename, mimeType string) error {
	if !a.Allows(filename, mimeType) {
		return Fail("file", "File type not allowed")
	}
	return nil
}

// File runs the type check followed by the size check.
func File(a Accepted, maxSizeInMB int, filename, mimeType string, size int64) error {
	if err := a.Type(filename, mimeType); err != nil {
		return err
	}
	return FileSize(size, maxSizeInMB)
}

func normalizeMIME(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(v); err == nil {
		return strings.ToLower(mt)
	}
	return strings.ToLower(v)
}
