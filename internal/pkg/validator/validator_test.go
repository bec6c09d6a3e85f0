package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"081234567890", "+628123456789", "+1 (555) 123-4567", "555-0100-22"}
	invalid := []string{"123456", "abc0812345678", "0812345678a", "++15551234567", "1234567890123456"}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestIsValidPercent(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"20", true},
		{"12.5", true},
		{"100", true},
		{"100.01", false},
		{"-1", false},
	}
	for _, c := range cases {
		got := IsValidPercent(decimal.RequireFromString(c.input))
		if got != c.want {
			t.Errorf("IsValidPercent(%s) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		name      string
		start     string
		end       string
		wantError []string
	}{
		{"valid", "2024-01-01", "2024-01-31", nil},
		{"same day", "2024-01-01", "2024-01-01", nil},
		{"reversed", "2024-02-01", "2024-01-01", []string{"end"}},
		{"missing both", "", "", []string{"start", "end"}},
		{"bad format", "01/01/2024", "2024-01-31", []string{"start"}},
	}
	for _, c := range cases {
		var errs ValidationErrors
		DateRange(&errs, "start", c.start, "end", c.end)
		if len(errs) != len(c.wantError) {
			t.Errorf("%s: DateRange errors = %v, want fields %v", c.name, errs, c.wantError)
			continue
		}
		for i, field := range c.wantError {
			if errs[i].Field != field {
				t.Errorf("%s: error[%d].Field = %q, want %q", c.name, i, errs[i].Field, field)
			}
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Errorf("empty ValidationErrors.Err() = %v, want nil", errs.Err())
	}
	errs.Add("name", "name is required")
	if errs.Err() == nil {
		t.Errorf("ValidationErrors.Err() = nil, want error")
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
