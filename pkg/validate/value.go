package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// MsgRequired is returned for required fields with an empty answer.
const MsgRequired = "This field is required"

const (
	msgNotANumber    = "Must be a number"
	msgWholeNumber   = "Must be a whole number"
	msgPositive      = "Must be a positive number"
	msgInvalidDate   = "Invalid date"
	msgFuture        = "Date must be in the future"
	msgPast          = "Date must be in the past"
	msgInvalidFormat = "Invalid format"
	msgInvalidOption = "Select a valid option"
)

// stepEpsilon absorbs float error in the step remainder check so values such
// as 0.3 with step 0.1 do not get rejected.
const stepEpsilon = 1e-9

const isoDate = "2006-01-02"

// Validator runs fill-time value checks. Now is injectable so future/past/age
// rules stay deterministic in tests; when nil, the wall clock is used, so the
// zero value behaves like New().
type Validator struct {
	Now func() time.Time
}

// New returns a Validator bound to the wall clock.
func New() *Validator {
	return &Validator{Now: time.Now}
}

// Value checks a submitted raw value against a field's declared constraints.
// It returns the user-facing message for the FIRST failing check, or "" when
// the value is acceptable. Checks are ordered: the required check wins over
// everything, an empty optional value passes unconditionally, and a value
// that fails to parse never reaches the range checks.
func (v *Validator) Value(f field.Field, raw string) string {
	if raw == "" {
		if f.Required {
			return MsgRequired
		}
		return ""
	}

	switch f.Type {
	case field.TypeText:
		return v.textValue(f.Text, raw)
	case field.TypeNumber:
		return v.numberValue(f.Number, raw)
	case field.TypeDate:
		return v.dateValue(f.Date, raw)
	case field.TypeDropdown:
		return v.dropdownValue(f.Dropdown, raw)
	}
	return ""
}

// Value checks a raw value with the wall clock. See Validator.Value.
func Value(f field.Field, raw string) string {
	return New().Value(f, raw)
}

func (v *Validator) textValue(c *field.TextConstraints, raw string) string {
	if c == nil {
		return ""
	}
	length := utf8.RuneCountInString(raw)
	if c.MinLength != nil && length < *c.MinLength {
		return fmt.Sprintf("Minimum length is %d characters (current: %d)", *c.MinLength, length)
	}
	if c.MaxLength != nil && length > *c.MaxLength {
		return fmt.Sprintf("Maximum length is %d characters (current: %d)", *c.MaxLength, length)
	}
	if c.Pattern != "" {
		re, err := regexp.Compile(`\A(?:` + c.Pattern + `)\z`)
		if err != nil {
			// An uncompilable pattern is a definition bug; the value is not
			// at fault, so it passes.
			return ""
		}
		if !re.MatchString(raw) {
			if c.PatternMessage != "" {
				return c.PatternMessage
			}
			return msgInvalidFormat
		}
	}
	return ""
}

func (v *Validator) numberValue(c *field.NumberConstraints, raw string) string {
	num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return msgNotANumber
	}
	if c == nil {
		return ""
	}
	if c.Min != nil && num < *c.Min {
		return "Minimum value is " + formatNumber(*c.Min)
	}
	if c.Max != nil && num > *c.Max {
		return "Maximum value is " + formatNumber(*c.Max)
	}
	if c.Step != nil && *c.Step > 0 {
		base := 0.0
		if c.Min != nil {
			base = *c.Min
		}
		// Floor modulo: a truncating remainder goes negative for values below
		// the base and would wrongly reject valid inputs.
		rem := math.Mod(num-base, *c.Step)
		if rem < 0 {
			rem += *c.Step
		}
		if rem > stepEpsilon && *c.Step-rem > stepEpsilon {
			return "Value must be in steps of " + formatNumber(*c.Step)
		}
	}
	if c.IntegerOnly && num != math.Trunc(num) {
		return msgWholeNumber
	}
	if c.PositiveOnly && num <= 0 {
		return msgPositive
	}
	return ""
}

func (v *Validator) dateValue(c *field.DateConstraints, raw string) string {
	date, err := parseDate(raw)
	if err != nil {
		return msgInvalidDate
	}
	if c == nil {
		return ""
	}
	if c.MinDate != "" {
		if min, err := parseDate(c.MinDate); err == nil && date.Before(min) {
			return "Date must be after " + min.Format("January 2, 2006")
		}
	}
	if c.MaxDate != "" {
		if max, err := parseDate(c.MaxDate); err == nil && date.After(max) {
			return "Date must be before " + max.Format("January 2, 2006")
		}
	}
	today := dateOnly(v.now())
	if c.FutureOnly && !date.After(today) {
		return msgFuture
	}
	if c.PastOnly && !date.Before(today) {
		return msgPast
	}
	if c.MinAge != nil || c.MaxAge != nil {
		age := wholeYears(date, today)
		if c.MinAge != nil && age < *c.MinAge {
			return fmt.Sprintf("Must be at least %d years old", *c.MinAge)
		}
		if c.MaxAge != nil && age > *c.MaxAge {
			return fmt.Sprintf("Must be at most %d years old", *c.MaxAge)
		}
	}
	return ""
}

func (v *Validator) dropdownValue(c *field.DropdownConstraints, raw string) string {
	if c == nil {
		return msgInvalidOption
	}
	for _, option := range c.Options {
		if option == raw {
			return ""
		}
	}
	return msgInvalidOption
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(isoDate, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return dateOnly(t), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wholeYears computes completed years between birth and now, stepping the
// year back when the anniversary has not been reached yet.
func wholeYears(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
