// Package validate registers the portal's field validators with gin's
// binding engine: device MAC addresses, South African ID numbers and
// South African mobile numbers.
package validate

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	macPattern     = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	saIDPattern    = regexp.MustCompile(`^\d{13}$`)
	saPhonePattern = regexp.MustCompile(`^(\+27|0)[6-8][0-9]{8}$`)
)

// MAC reports whether s is a colon- or hyphen-separated MAC address.
func MAC(s string) bool {
	return macPattern.MatchString(strings.TrimSpace(s))
}

// SAIDNumber reports whether s is a 13-digit South African ID number.
func SAIDNumber(s string) bool {
	return saIDPattern.MatchString(strings.TrimSpace(s))
}

// SAPhone reports whether s is a South African mobile number. Spaces and
// dashes are ignored, matching how the registration form normalizes input.
func SAPhone(s string) bool {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(s)
	return saPhonePattern.MatchString(normalized)
}

// NormalizePhone strips spaces and dashes so that lookups and duplicate
// checks compare the same canonical form the validator accepted.
func NormalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
}

// NormalizeMAC upper-cases a MAC address and converts hyphens to colons.
func NormalizeMAC(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ":"))
}

// RegisterBindings installs the custom tags on gin's validator engine.
// Called once at startup before any request binding runs.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("mac", func(fl validator.FieldLevel) bool {
		return MAC(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("saidnum", func(fl validator.FieldLevel) bool {
		return SAIDNumber(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("saphone", func(fl validator.FieldLevel) bool {
		return SAPhone(fl.Field().String())
	})
}
