package validation

import (
	"strings"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/request"
)

// entryFields maps the EntryPreviewRequest editedField values the calculator
// understands.
var entryFields = map[string]bool{
	"amount": true, "shares": true, "unitCost": true, "gain": true,
}

func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	// Required fields
	if strings.TrimSpace(req.Code) == "" {
		errors["code"] = "code is required"
	} else if len(req.Code) > 20 {
		errors["code"] = "code must be 20 characters or less"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.Platform) == "" {
		errors["platform"] = "platform is required"
	} else if len(req.Platform) > 50 {
		errors["platform"] = "platform must be 50 characters or less"
	}

	// NAV positivity is re-checked by the entry calculator at commit; this
	// only rejects obviously malformed payloads early.
	if req.CurrentNav <= 0 {
		errors["currentNav"] = "currentNav must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Platform != nil {
		if strings.TrimSpace(*req.Platform) == "" {
			errors["platform"] = "platform cannot be empty"
		} else if len(*req.Platform) > 50 {
			errors["platform"] = "platform must be 50 characters or less"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateEntryPreview(req request.EntryPreviewRequest) error {
	errors := make(map[string]string)

	if !entryFields[req.EditedField] {
		errors["editedField"] = "editedField must be one of amount, shares, unitCost, gain"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
