package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/seo-radar/api/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "DE"

// ValidationError marks user input that must be rejected before any I/O is
// attempted. Handlers map it to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validateEmail(field, email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(strings.ToLower(email)) {
		return ValidationError{Field: field, Message: "malformed email address"}
	}
	return nil
}

func validatePhone(field, phone, region string) error {
	if phone == "" {
		return nil
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return ValidationError{Field: field, Message: "malformed phone number"}
	}
	return nil
}

func validateDomain(field, domain string) error {
	ascii, err := idnaProfile.ToASCII(strings.TrimSpace(domain))
	if err != nil || !strings.Contains(ascii, ".") {
		return ValidationError{Field: field, Message: fmt.Sprintf("invalid domain %q", domain)}
	}
	return nil
}

func validateTrackedCountries(countries []entity.TrackedCountry) error {
	if len(countries) > entity.MaxTrackedCountries {
		return ValidationError{
			Field:   "tracked_countries",
			Message: fmt.Sprintf("at most %d tracked countries allowed", entity.MaxTrackedCountries),
		}
	}
	for _, country := range countries {
		code := country.CountryCode
		if len(code) != 2 || strings.ToUpper(code) != code {
			return ValidationError{
				Field:   "tracked_countries",
				Message: fmt.Sprintf("invalid country code %q (use ISO 3166-1 alpha-2)", code),
			}
		}
	}
	return nil
}
