package validate

import (
	"errors"
	"fmt"
	"testing"
)

const defaultAccepted = "image/*,.pdf,.doc,.docx,.txt"

func TestAcceptedAllows(t *testing.T) {
	a := ParseAccepted(defaultAccepted)
	cases := []struct {
		name     string
		filename string
		mimeType string
		want     bool
	}{
		{"pdf by extension", "report.pdf", "application/pdf", true},
		{"pdf extension with odd mime", "report.PDF", "application/octet-stream", true},
		{"docx", "dd214.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"image wildcard", "scan.heic", "image/heic", true},
		{"image wildcard with params", "photo", "image/jpeg; charset=binary", true},
		{"exe", "virus.exe", "application/x-msdownload", false},
		{"no extension no mime", "README", "", false},
		{"text mime without extension is not enough", "notes", "text/plain", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Allows(tc.filename, tc.mimeType); got != tc.want {
				t.Fatalf("Allows(%q, %q) = %v, want %v", tc.filename, tc.mimeType, got, tc.want)
			}
		})
	}
}

func TestAcceptedTypeMessage(t *testing.T) {
	err := ParseAccepted(defaultAccepted).Type("virus.exe", "application/x-msdownload")
	if err == nil {
		t.Fatal("expected error for .exe")
	}
	if err.Error() != "File type not allowed" {
		t.Fatalf("message = %q", err.Error())
	}
	if !IsValidation(err) {
		t.Fatal("expected validation error")
	}
}

func TestAcceptedExactMIME(t *testing.T) {
	a := ParseAccepted("application/pdf")
	if !a.Allows("x", "application/pdf") {
		t.Fatal("exact mime should match")
	}
	if a.Allows("x.pdf", "application/msword") {
		t.Fatal("extension should not match when only a mime rule exists")
	}
}

func TestEmptyAcceptedAllowsAll(t *testing.T) {
	if !ParseAccepted(" , ").Allows("anything.bin", "") {
		t.Fatal("empty accept list should allow everything")
	}
}

func TestFileSize(t *testing.T) {
	const mb = 1024 * 1024
	if err := FileSize(40*mb, 50); err != nil {
		t.Fatalf("40MB under 50MB limit: %v", err)
	}
	if err := FileSize(50*mb, 50); err != nil {
		t.Fatalf("exactly at limit should pass: %v", err)
	}
	err := FileSize(60*mb, 50)
	if err == nil {
		t.Fatal("60MB over 50MB limit should fail")
	}
	if err.Error() != "File size exceeds 50MB limit" {
		t.Fatalf("message = %q", err.Error())
	}
	if err := FileSize(60*mb, 0); err != nil {
		t.Fatalf("zero limit disables check: %v", err)
	}
}

func TestFileChecksTypeBeforeSize(t *testing.T) {
	a := ParseAccepted(defaultAccepted)
	err := File(a, 50, "virus.exe", "", 60*1024*1024)
	if err == nil || err.Error() != "File type not allowed" {
		t.Fatalf("got %v", err)
	}
}

func TestRequiredAndEmail(t *testing.T) {
	if err := Required("name", "  "); err == nil {
		t.Fatal("blank name should fail")
	}
	if err := Email("email", "vet@example.com"); err != nil {
		t.Fatalf("valid email: %v", err)
	}
	for _, bad := range []string{"", "not-an-email", "a@b"} {
		if err := Email("email", bad); err == nil {
			t.Errorf("Email(%q) should fail", bad)
		}
	}
}

func TestIsValidationWrapped(t *testing.T) {
	err := fmt.Errorf("decode: %w", Fail("formType", "bad"))
	if !IsValidation(err) {
		t.Fatal("wrapped validation error not detected")
	}
	if IsValidation(errors.New("db down")) {
		t.Fatal("plain error reported as validation")
	}
	if First(nil, nil) != nil {
		t.Fatal("First of nils should be nil")
	}
}
