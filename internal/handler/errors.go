package handler

import (
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

func errRequired(field string) error { return validate.Fail(field, field+" is required") }

// publicUploadError keeps validation messages and hides storage details.
func publicUploadError(err error) string {
	if validate.IsValidation(err) {
		return err.Error()
	}
	return "Upload failed"
}
