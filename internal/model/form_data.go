package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// FormData is the form_data column as a tagged union: one variant per
// FormType.  Each variant knows its tag and its own required fields.
type FormData interface {
	FormType() FormType
	Validate() error
}

// QuickIntakeData backs the short "get started" intake.
type QuickIntakeData struct {
	ServiceNeeded  string   `json:"serviceNeeded"`
	Conditions     []string `json:"conditions,omitempty"`
	Branch         string   `json:"branch,omitempty"`
	Timeline       string   `json:"timeline,omitempty"`
	AdditionalInfo string   `json:"additionalInfo,omitempty"`
}

func (QuickIntakeData) FormType() FormType { return FormQuickIntake }

func (d QuickIntakeData) Validate() error {
	return validate.Required("serviceNeeded", d.ServiceNeeded)
}

// AidAttendanceData backs the Aid & Attendance intake.
type AidAttendanceData struct {
	VeteranName     string   `json:"veteranName"`
	Relationship    string   `json:"relationship"` // self, spouse, child, caregiver, other
	CareNeeds       []string `json:"careNeeds,omitempty"`
	LivingSituation string   `json:"livingSituation,omitempty"`
	CurrentRating   string   `json:"currentRating,omitempty"`
	AdditionalInfo  string   `json:"additionalInfo,omitempty"`
}

func (AidAttendanceData) FormType() FormType { return FormAidAttendance }

var relationships = map[string]bool{"self": true, "spouse": true, "child": true, "caregiver": true, "other": true}

func (d AidAttendanceData) Validate() error {
	if err := validate.First(
		validate.Required("veteranName", d.VeteranName),
		validate.Required("relationship", d.Relationship),
	); err != nil {
		return err
	}
	if !relationships[strings.ToLower(d.Relationship)] {
		return validate.Fail("relationship", "unsupported relationship: "+d.Relationship)
	}
	return nil
}

// UnsureData backs the "not sure what I need" form.
type UnsureData struct {
	Situation        string `json:"situation"`
	Questions        string `json:"questions,omitempty"`
	PreferredContact string `json:"preferredContact,omitempty"`
}

func (UnsureData) FormType() FormType { return FormUnsure }

func (d UnsureData) Validate() error { return validate.Required("situation", d.Situation) }

// GeneralData backs catch-all inquiries.
type GeneralData struct {
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (GeneralData) FormType() FormType { return FormGeneral }

func (d GeneralData) Validate() error { return validate.Required("message", d.Message) }

// ClaimReadinessData backs the claim-readiness review booking.  When the
// visitor arrives from the self-assessment, DiagnosticSessionID links the two.
type ClaimReadinessData struct {
	DiagnosticSessionID string   `json:"diagnosticSessionId,omitempty"`
	Conditions          []string `json:"conditions"`
	CurrentRating       string   `json:"currentRating,omitempty"`
	HasServiceRecords   bool     `json:"hasServiceRecords"`
	HasMedicalRecords   bool     `json:"hasMedicalRecords"`
	ReadinessScore      *int     `json:"readinessScore,omitempty"`
	Notes               string   `json:"notes,omitempty"`
}

func (ClaimReadinessData) FormType() FormType { return FormClaimReadinessReview }

func (d ClaimReadinessData) Validate() error {
	if len(d.Conditions) == 0 {
		return validate.Fail("conditions", "at least one condition is required")
	}
	if d.ReadinessScore != nil && (*d.ReadinessScore < 0 || *d.ReadinessScore > 100) {
		return validate.Fail("readinessScore", "readinessScore must be between 0 and 100")
	}
	return nil
}

func newFormData(t FormType) (FormData, bool) {
	switch t {
	case FormQuickIntake:
		return &QuickIntakeData{}, true
	case FormAidAttendance:
		return &AidAttendanceData{}, true
	case FormUnsure:
		return &UnsureData{}, true
	case FormGeneral:
		return &GeneralData{}, true
	case FormClaimReadinessReview:
		return &ClaimReadinessData{}, true
	}
	return nil, false
}

// DecodeFormData picks the variant for t and decodes raw into it, rejecting
// fields the variant does not declare.  An empty payload yields the zero
// variant so its own Validate decides what is missing.
func DecodeFormData(t FormType, raw json.RawMessage) (FormData, error) {
	return decodeFormData(t, raw, true)
}

// LoadFormData decodes a stored payload.  Unknown fields are tolerated so
// rows written by older form versions still load.
func LoadFormData(t FormType, raw []byte) (FormData, error) {
	return decodeFormData(t, raw, false)
}

func decodeFormData(t FormType, raw []byte, strict bool) (FormData, error) {
	fd, ok := newFormData(t)
	if !ok {
		return nil, validate.Fail("formType", "unsupported formType: "+string(t))
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return deref(fd), nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(fd); err != nil {
		return nil, validate.Fail("formData", fmt.Sprintf("invalid formData for %s: %v", t, err))
	}
	return deref(fd), nil
}

// deref stores variants by value so FormSubmission.FormData compares and
// type-switches on plain structs.
func deref(fd FormData) FormData {
	switch v := fd.(type) {
	case *QuickIntakeData:
		return *v
	case *AidAttendanceData:
		return *v
	case *UnsureData:
		return *v
	case *GeneralData:
		return *v
	case *ClaimReadinessData:
		return *v
	}
	return fd
}
