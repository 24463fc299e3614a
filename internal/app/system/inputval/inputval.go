// internal/app/system/inputval/inputval.go

// Package inputval declares the request structs for every write endpoint
// and validates them with go-playground/validator. Failures come back as
// apperr.Validation with the first offending field named, so handlers can
// pass them straight to the JSON boundary.
package inputval

import (
	"strings"

	"github.com/dalemusser/flockhub/internal/app/system/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterUnit is the multipart form for campus/district/community/cell
// registration. Parent id fields are validated per-variant by the handler;
// here we only enforce shape.
type RegisterUnit struct {
	Name        string `validate:"required"`
	Email       string `validate:"omitempty,email"`
	Password    string `validate:"required"`
	CampusID    string `validate:"omitempty,len=24,hexadecimal"`
	DistrictID  string `validate:"omitempty,len=24,hexadecimal"`
	CommunityID string `validate:"omitempty,len=24,hexadecimal"`
}

// RegisterSuperAdmin is the form for superadmin registration.
type RegisterSuperAdmin struct {
	Name     string `validate:"required"`
	Password string `validate:"required"`
}

// Login is the JSON body for per-unit login and both universal-login routes.
type Login struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RegisterMember is the JSON body for member registration.
type RegisterMember struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty"`
	DistrictID string `json:"district_id" validate:"omitempty,len=24,hexadecimal"`
	CellID     string `json:"cell_id" validate:"omitempty,len=24,hexadecimal"`
}

// UploadMeta is the non-file portion of the multipart upload form.
// Logo is optional; the other uploader fields are required.
type UploadMeta struct {
	Comment      string `validate:"omitempty"`
	UploaderID   string `validate:"required,len=24,hexadecimal"`
	UploaderRole string `validate:"required"`
	UploaderName string `validate:"required"`
	UploaderLogo string `validate:"omitempty"`
}

// LikeToggle is the JSON body for the per-device like toggle.
type LikeToggle struct {
	DeviceID string `json:"deviceId" validate:"required"`
}

// Check validates v and converts the first failure into a client-facing
// validation error.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return apperr.New(apperr.Validation, field+" is required")
		case "email":
			return apperr.New(apperr.Validation, field+" must be a valid email address")
		case "len", "hexadecimal":
			return apperr.New(apperr.Validation, field+" must be a valid object id")
		default:
			return apperr.New(apperr.Validation, field+" is invalid")
		}
	}
	return apperr.Wrap(apperr.Validation, "invalid input", err)
}
