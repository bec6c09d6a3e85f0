package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hire_date"`
	Status     string `json:"status,omitempty"`

	// Parsed by Validate
	HireDateParsed time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	// Email
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address, e.g. user@example.com",
		})
	}

	// Phone
	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must contain 7-15 digits with an optional leading +",
		})
	}

	// Department
	if !validator.IsInSlice(r.Department, Departments) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must be one of: " + strings.Join(Departments, ", "),
		})
	}

	// Position
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	// Hire date
	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date is required",
		})
	} else if hireDate, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	} else {
		r.HireDateParsed = hireDate
	}

	// Status
	if r.Status == "" {
		r.Status = string(StatusActive)
	}
	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest only overwrites the fields that are present.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(strings.TrimSpace(*r.Email)) {
		errs.Add("email", "email must be a valid email address, e.g. user@example.com")
	}
	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must contain 7-15 digits with an optional leading +")
	}
	if r.Department != nil && !validator.IsInSlice(*r.Department, Departments) {
		errs.Add("department", "department must be one of: "+strings.Join(Departments, ", "))
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs.Add("position", "position must not be empty")
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs.Add("hire_date", "hire_date must be in YYYY-MM-DD format")
		}
	}
	if r.Status != nil && !Status(*r.Status).Valid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}

	return errs.Err()
}

// Apply merges the present fields into e. Validate must have succeeded.
func (r *UpdateEmployeeRequest) Apply(e *Employee) {
	if r.Name != nil {
		e.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		e.Email = strings.TrimSpace(strings.ToLower(*r.Email))
	}
	if r.Phone != nil {
		e.Phone = *r.Phone
	}
	if r.Department != nil {
		e.Department = Department(*r.Department)
	}
	if r.Position != nil {
		e.Position = *r.Position
	}
	if r.HireDate != nil {
		if hireDate, ok := validator.IsValidDate(*r.HireDate); ok {
			e.HireDate = hireDate
		}
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
}

type EmployeeFilter struct {
	Status     *Status
	Department *Department
	Search     string
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !f.Status.Valid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}
	if f.Department != nil && !validator.IsInSlice(string(*f.Department), Departments) {
		errs.Add("department", "department must be one of: "+strings.Join(Departments, ", "))
	}

	return errs.Err()
}

// Matches applies the filter in memory.
func (f EmployeeFilter) Matches(e Employee) bool {
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.Department != nil && e.Department != *f.Department {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Name), q) && !strings.Contains(strings.ToLower(e.Email), q) {
			return false
		}
	}
	return true
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	HireDate   string    `json:"hire_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateEmployeeResponse struct {
	EmployeeResponse
	UserID            string `json:"user_id"`
	TemporaryPassword string `json:"temporary_password"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: string(e.Department),
		Position:   e.Position,
		HireDate:   e.HireDate.Format(validator.DateLayout),
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
