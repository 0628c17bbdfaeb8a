package alfa

import (
	"regexp"
	"time"

	validation "github.com/jellydator/validation"
)

var (
	typeCodePattern       = regexp.MustCompile(`^[A-Z]{1,2}$`)
	documentNumberPattern = regexp.MustCompile(`^[0-9A-Z]{0,9}$`)
	optionalDataPattern   = regexp.MustCompile(`^[0-9A-Z ]{0,16}$`)
	identifierCodePattern = regexp.MustCompile(`^[0-9A-Z]{4}$`)
	hexPattern            = regexp.MustCompile(`^[0-9A-F]+$`)
	visaTypePattern       = regexp.MustCompile(`^[0-9A-Fa-f]{1,8}$`)
)

// countryCodeRule accepts ISO 3166-1 alpha-3 codes, ICAO-specific codes and
// the reserved user-assigned ranges.
type countryCodeRule struct{}

func (countryCodeRule) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_country_code_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if !IsCountryCode(s) {
		return validation.NewError("validation_country_code", "must be an ISO 3166-1 alpha-3 or ICAO code")
	}
	return nil
}

// mrzYearRule keeps a date inside the century an MRZ expiry field can express.
type mrzYearRule struct{}

func (mrzYearRule) Validate(value interface{}) error {
	t, ok := value.(time.Time)
	if !ok {
		return validation.NewError("validation_date_type", "must be a time")
	}
	if t.IsZero() {
		return nil
	}
	if t.Year() < 2000 || t.Year() > 2099 {
		return validation.NewError("validation_mrz_year", "year must be in 2000-2099")
	}
	return nil
}

// checkField runs rules against value and reports a failure as a *RangeError.
func checkField(field string, value interface{}, display string, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return newRangeError(field, display, err.Error())
	}
	return nil
}

// dateOnly drops the clock and zone, keeping the calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
