// AngelaMos | 2026
// rules.go

package customer

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const legacyEmailTag = "legacy_email"

var legacyEmailPattern = regexp.MustCompile(
	`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`,
)

// IsValidEmail reports whether email is accepted by the legacy backfill.
func IsValidEmail(email string) bool {
	return legacyEmailPattern.MatchString(email)
}

// NewValidator returns a validator with the legacy_email tag registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	//nolint:errcheck // tag name and func are static
	_ = v.RegisterValidation(legacyEmailTag, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	return v
}

// UpdatePreferences overwrites every field present in patch. The email is
// taken as is, without format validation.
func UpdatePreferences(c *Customer, patch PreferencesPatch) *Customer {
	if patch.Notifications != nil {
		c.Notifications = *patch.Notifications
	}
	if patch.PreferredStore != nil {
		c.PreferredStore = *patch.PreferredStore
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	return c
}

// BackfillEmail assigns an email to a customer that has none. The
// already-present check runs before the email is looked at.
func BackfillEmail(c *Customer, email *string) (*Customer, error) {
	if c.HasEmail() {
		return nil, ErrEmailAlreadyPresent
	}

	if email == nil || !IsValidEmail(*email) {
		return nil, ErrInvalidEmail
	}

	c.Email = *email
	return c, nil
}
