// Package checkout validates customer details and forwards orders to the
// external collector.
package checkout

import (
	"regexp"
	"strings"
	"unicode"

	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
)

// Validation messages mirror the storefront's inline form copy.
const (
	MsgRequired = "This field is required"
	MsgEmail    = "Please enter a valid email address"
	MsgPhone    = "Please enter a valid phone number (minimum 8 digits)"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{8,}$`)
)

// CustomerInfo carries the checkout form fields. Every field is required.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// Normalize trims surrounding whitespace from every field.
func (c CustomerInfo) Normalize() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		City:    strings.TrimSpace(c.City),
		Address: strings.TrimSpace(c.Address),
		Email:   strings.TrimSpace(c.Email),
	}
}

// FieldErrors maps a form field to its validation message. An empty map
// means the form is valid.
type FieldErrors map[string]string

// ValidateCustomer checks the whole form at once. Format errors are
// reported only for non-empty fields, so a blank phone gets the required
// message rather than the format one.
func ValidateCustomer(info CustomerInfo) FieldErrors {
	errs := FieldErrors{}

	if info.Name == "" {
		errs["name"] = MsgRequired
	}
	if info.Phone == "" {
		errs["phone"] = MsgRequired
	} else if !phonePattern.MatchString(stripSpaces(info.Phone)) {
		errs["phone"] = MsgPhone
	}
	if info.City == "" {
		errs["city"] = MsgRequired
	}
	if info.Address == "" {
		errs["address"] = MsgRequired
	}
	if info.Email == "" {
		errs["email"] = MsgRequired
	} else if !emailPattern.MatchString(info.Email) {
		errs["email"] = MsgEmail
	}

	return errs
}

// AsError converts non-empty field errors into a coded validation error
// whose details carry the per-field messages.
func (f FieldErrors) AsError() error {
	if len(f) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "checkout form is invalid").WithDetails(f)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
