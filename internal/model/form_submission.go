package model

import (
	"strings"
	"time"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// FormType tags which intake workflow a submission belongs to.  The store
// enforces the same set with a check constraint.
type FormType string

const (
	FormQuickIntake          FormType = "quick_intake"
	FormAidAttendance        FormType = "aid_attendance"
	FormUnsure               FormType = "unsure"
	FormGeneral              FormType = "general"
	FormClaimReadinessReview FormType = "claim_readiness_review"
)

// FormTypes lists every accepted form type in a stable order.
var FormTypes = []FormType{
	FormQuickIntake,
	FormAidAttendance,
	FormUnsure,
	FormGeneral,
	FormClaimReadinessReview,
}

// Valid reports whether t is one of FormTypes.
func (t FormType) Valid() bool {
	for _, v := range FormTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseFormType normalizes s and rejects values outside the enum.
func ParseFormType(s string) (FormType, error) {
	t := FormType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return "", validate.Fail("formType", "formType is required")
	}
	if !t.Valid() {
		return "", validate.Fail("formType", "unsupported formType: "+s)
	}
	return t, nil
}

// FormSubmission is a structured intake.  FormData holds the variant that
// matches FormType.
//
// Fields:
//
//	ID             – primary key (UUID).
//	FormType       – workflow tag.
//	FullName       – submitter's full name.
//	Email          – submitter's email.
//	Phone          – optional phone.
//	FormData       – per-type payload (see form_data.go).
//	RequiresUpload – whether the workflow expects documents to follow.
//	CreatedAt      – creation timestamp.
type FormSubmission struct {
	ID             string    `json:"id"`              // form_submissions.id
	FormType       FormType  `json:"form_type"`       // form_submissions.form_type
	FullName       string    `json:"full_name"`       // form_submissions.full_name
	Email          string    `json:"email"`           // form_submissions.email
	Phone          string    `json:"phone"`           // form_submissions.phone
	FormData       FormData  `json:"form_data"`       // form_submissions.form_data (JSON)
	RequiresUpload bool      `json:"requires_upload"` // form_submissions.requires_upload
	CreatedAt      time.Time `json:"created_at"`      // form_submissions.created_at
}

// Validate checks the shared contact fields, then the variant's own rules.
func (s *FormSubmission) Validate() error {
	if !s.FormType.Valid() {
		return validate.Fail("formType", "unsupported formType: "+string(s.FormType))
	}
	if err := validate.First(
		validate.Required("fullName", s.FullName),
		validate.Email("email", s.Email),
	); err != nil {
		return err
	}
	if s.FormData == nil {
		return validate.Fail("formData", "formData is required")
	}
	if s.FormData.FormType() != s.FormType {
		return validate.Fail("formData", "formData does not match formType")
	}
	return s.FormData.Validate()
}
