package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the user's portal role.
type Role string

const (
	RolePatient  Role = "PATIENT"
	RoleDoctor   Role = "DOCTOR"
	RoleLab      Role = "LAB"
	RolePharmacy Role = "PHARMACY"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleLab, RolePharmacy, RoleAdmin:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderOther          Gender = "Other"
	GenderPreferNotToSay Gender = "Prefer Not to Say"
)

// User is the central identity record. Activation is admin-controlled.
type User struct {
	UserID      uuid.UUID  `json:"user_id"`
	Email       string     `json:"email,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Token is the login response. The client persists it in the session store
// and never inspects the access token beyond passing it back as a bearer.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      uuid.UUID `json:"user_id"`
	Role        Role      `json:"role"`
}

// PatientProfile is the patient-side demographic record. DateOfBirth stays
// a plain ISO date string; format.AgeFromISO derives the display age.
type PatientProfile struct {
	UserID              uuid.UUID  `json:"user_id"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	DateOfBirth         string     `json:"date_of_birth"`
	Gender              Gender     `json:"gender"`
	GeneralHealthIssues string     `json:"general_health_issues,omitempty"`
	PrimaryDoctorID     *uuid.UUID `json:"primary_doctor_id,omitempty"`
	PrimaryDoctorName   string     `json:"primary_doctor_name,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

func (p *PatientProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}

type DoctorProfile struct {
	UserID         uuid.UUID  `json:"user_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	HospitalName   string     `json:"hospital_name,omitempty"`
	Specialty      string     `json:"specialty,omitempty"`
	Degree         string     `json:"degree,omitempty"`
	LastDegreeYear *int       `json:"last_degree_year,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func (d *DoctorProfile) FullName() string {
	return d.FirstName + " " + d.LastName
}

type LabProfile struct {
	UserID       uuid.UUID `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	LicenseYear  *int      `json:"license_year,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type PharmacyProfile struct {
	UserID       uuid.UUID `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	LicenseYear  *int      `json:"license_year,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PatientProfileInput is the create/update payload for a patient profile.
type PatientProfileInput struct {
	FirstName           string     `json:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty"`
	DateOfBirth         string     `json:"date_of_birth,omitempty"`
	Gender              Gender     `json:"gender,omitempty"`
	GeneralHealthIssues string     `json:"general_health_issues,omitempty"`
	PrimaryDoctorID     *uuid.UUID `json:"primary_doctor_id,omitempty"`
	Notes               string     `json:"notes,omitempty"`
}
