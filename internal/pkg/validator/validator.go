package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Phone: optional leading +, then 7-15 digits. Spaces, dashes and parentheses are ignored.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func IsValidPhoneNumber(phone string) bool {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRegex.MatchString(phone)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsNonNegative reports whether d >= 0.
func IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

var hundred = decimal.NewFromInt(100)

// IsValidPercent reports whether 0 <= d <= 100.
func IsValidPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}

// DateRange validates a YYYY-MM-DD pair and appends errors under the given field names.
// It returns the parsed dates; they are zero when invalid.
func DateRange(errs *ValidationErrors, startField, start, endField, end string) (time.Time, time.Time) {
	var startDate, endDate time.Time
	var startOK, endOK bool

	if IsEmpty(start) {
		errs.Add(startField, startField+" is required")
	} else if startDate, startOK = IsValidDate(start); !startOK {
		errs.Add(startField, startField+" must be in YYYY-MM-DD format")
	}

	if IsEmpty(end) {
		errs.Add(endField, endField+" is required")
	} else if endDate, endOK = IsValidDate(end); !endOK {
		errs.Add(endField, endField+" must be in YYYY-MM-DD format")
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs.Add(endField, endField+" must not be before "+startField)
	}

	return startDate, endDate
}
