package model

import (
	"strings"
	"time"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// FileCategory classifies an uploaded document.
type FileCategory string

const (
	CategoryMedicalRecord FileCategory = "medical_record"
	CategoryServiceRecord FileCategory = "service_record"
	CategoryPhoto         FileCategory = "photo"
	CategoryDocument      FileCategory = "document"
	CategoryOther         FileCategory = "other"
)

// ParseFileCategory defaults blank input to "document".
func ParseFileCategory(s string) (FileCategory, error) {
	c := FileCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "":
		return CategoryDocument, nil
	case CategoryMedicalRecord, CategoryServiceRecord, CategoryPhoto, CategoryDocument, CategoryOther:
		return c, nil
	}
	return "", validate.Fail("category", "unsupported file category: "+s)
}

// UploadStatus is the per-file lifecycle: pending → uploading → completed|error.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploading UploadStatus = "uploading"
	UploadCompleted UploadStatus = "completed"
	UploadError     UploadStatus = "error"
)

// ParentKind says which lead a file hangs off.
type ParentKind string

const (
	ParentContact    ParentKind = "contact"
	ParentSubmission ParentKind = "submission"
)

// ParseParentKind accepts "contact" or "submission" (and "form_submission").
func ParseParentKind(s string) (ParentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contact":
		return ParentContact, nil
	case "submission", "form_submission":
		return ParentSubmission, nil
	}
	return "", validate.Fail("parentType", "parentType must be contact or submission")
}

// Parent identifies the Contact or FormSubmission a file belongs to.
type Parent struct {
	Kind ParentKind
	ID   string
}

// FileUpload records one stored document.  Exactly one of ContactID and
// FormSubmissionID is set.
//
// Fields:
//
//	ID               – primary key (UUID).
//	ContactID        – owning contact, if any.
//	FormSubmissionID – owning submission, if any.
//	OriginalFilename – name as uploaded by the visitor.
//	FileSize         – bytes.
//	MimeType         – content type reported by the client.
//	StoragePath      – object key inside the bucket.
//	FileCategory     – classification.
//	IsPHI            – flags protected health information.
//	UploadStatus     – lifecycle status.
//	CreatedAt        – creation timestamp.
type FileUpload struct {
	ID               string       `json:"id"`                           // file_uploads.id
	ContactID        *string      `json:"contact_id,omitempty"`         // file_uploads.contact_id (nullable)
	FormSubmissionID *string      `json:"form_submission_id,omitempty"` // file_uploads.form_submission_id (nullable)
	OriginalFilename string       `json:"original_filename"`            // file_uploads.original_filename
	FileSize         int64        `json:"file_size"`                    // file_uploads.file_size
	MimeType         string       `json:"mime_type"`                    // file_uploads.mime_type
	StoragePath      string       `json:"storage_path"`                 // file_uploads.storage_path
	FileCategory     FileCategory `json:"file_category"`                // file_uploads.file_category
	IsPHI            bool         `json:"is_phi"`                       // file_uploads.is_phi
	UploadStatus     UploadStatus `json:"upload_status"`                // file_uploads.upload_status
	CreatedAt        time.Time    `json:"created_at"`                   // file_uploads.created_at
}

// SetParent fills the matching foreign key.
func (f *FileUpload) SetParent(p Parent) {
	id := p.ID
	switch p.Kind {
	case ParentContact:
		f.ContactID, f.FormSubmissionID = &id, nil
	case ParentSubmission:
		f.ContactID, f.FormSubmissionID = nil, &id
	}
}
