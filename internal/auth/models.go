package auth

import (
	"clinic-desk/internal/apierrors"

	"github.com/google/uuid"
)

type Role string

const (
	PatientRole      Role = "PATIENT"
	ReceptionistRole Role = "RECEPTIONIST"
	AdminRole        Role = "ADMIN"
)

type Credentials struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Validate validates if the credentials given are valid.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return apierrors.NewValidationError("username", "required")
	}
	if c.Password == "" {
		return apierrors.NewValidationError("password", "required")
	}
	return nil
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	GrantType    string `json:"grant_type,omitempty"`
}

// Validate validates if the tokens given are valid.
func (c Tokens) Validate() error {
	if c.AccessToken == "" {
		return apierrors.NewValidationError("access_token", "required")
	}
	if c.RefreshToken == "" {
		return apierrors.NewValidationError("refresh_token", "required")
	}
	if c.GrantType == "" {
		return apierrors.NewValidationError("grant_type", "required")
	}
	if c.GrantType != "refresh_token" {
		return apierrors.NewValidationError("grant_type", "invalid")
	}
	return nil
}

// User is a clinic system account. Receptionists and administrators carry an
// employee reference used to stamp billing records; patient accounts may
// carry a patient reference.
type User struct {
	ID        int64     `json:"-" dbfield:"user_id"`
	UUID      uuid.UUID `json:"uuid" dbfield:"uuid"`
	Username  string    `json:"username" dbfield:"username"`
	Password  string    `json:"password,omitempty" dbfield:"password"`
	Role      Role      `json:"role" dbfield:"user_role"`
	EmpID     *int64    `json:"emp_id,omitempty" dbfield:"emp_id"`
	PatientID *int64    `json:"patient_id,omitempty" dbfield:"patient_id"`
}
