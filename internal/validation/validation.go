// Package validation holds the stateless field validators for the three
// entities. Validators never fail hard; they return the full list of
// human-readable problems so the API can surface them in one response.
package validation

import (
	"regexp"
	"strings"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserInput carries the fields checked when creating a user.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CustomerInput carries the fields checked when creating or updating a customer.
type CustomerInput struct {
	Name         string
	ContactTitle string
	Email        string
	Phone        string
	AgentID      string
}

// InteractionInput carries the fields checked when recording an interaction.
// CallDuration is a pointer so "absent" and "zero" stay distinguishable.
type InteractionInput struct {
	CustomerID        string
	AgentID           string
	CallDuration      *int
	FollowUpStatus    string
	CallStatus        string
	Note              string
	SupervisorComment string
}

// ValidateUser checks a user payload and returns every violation found.
func ValidateUser(in UserInput) []string {
	var errs []string

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "Name is required")
	} else if len(in.Name) > 100 {
		errs = append(errs, "Name must be less than 100 characters")
	}

	if in.Email == "" || !emailPattern.MatchString(in.Email) {
		errs = append(errs, "Invalid email address")
	}

	if len(in.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}

	if !domain.Role(in.Role).Valid() {
		errs = append(errs, "Invalid role")
	}

	return errs
}

// ValidateCustomer checks a customer payload and returns every violation found.
func ValidateCustomer(in CustomerInput) []string {
	var errs []string

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "Customer name is required")
	} else if len(in.Name) > 100 {
		errs = append(errs, "Customer name must be less than 100 characters")
	}

	if in.ContactTitle != "" && len(in.ContactTitle) > 100 {
		errs = append(errs, "Contact title must be less than 100 characters")
	}

	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		errs = append(errs, "Invalid email address")
	}

	if in.Phone != "" && len(in.Phone) > 20 {
		errs = append(errs, "Phone number must be less than 20 characters")
	}

	if strings.TrimSpace(in.AgentID) == "" {
		errs = append(errs, "Agent ID is required")
	}

	return errs
}

// ValidateInteraction checks an interaction payload and returns every
// violation found. Enum fields are only checked when present; the service
// fills defaults afterwards.
func ValidateInteraction(in InteractionInput) []string {
	var errs []string

	if strings.TrimSpace(in.CustomerID) == "" {
		errs = append(errs, "Customer ID is required")
	}

	if strings.TrimSpace(in.AgentID) == "" {
		errs = append(errs, "Agent ID is required")
	}

	if in.CallDuration != nil && *in.CallDuration < 0 {
		errs = append(errs, "Call duration must be a positive number")
	}

	if in.FollowUpStatus != "" && !domain.FollowUpStatus(in.FollowUpStatus).Valid() {
		errs = append(errs, "Invalid follow-up status")
	}

	if len(in.Note) > 1000 {
		errs = append(errs, "Note must be less than 1000 characters")
	}

	if len(in.SupervisorComment) > 1000 {
		errs = append(errs, "Supervisor comment must be less than 1000 characters")
	}

	if in.CallStatus != "" && !domain.CallStatus(in.CallStatus).Valid() {
		errs = append(errs, "Invalid call status")
	}

	return errs
}
