package domain

import (
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleBuilder  = "builder"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrAccountDeactivated = errors.New("account is deactivated")
var ErrInvalidRefreshToken = errors.New("invalid refresh token")
var ErrTokenExpired = errors.New("token expired")

// User models an authenticated actor: either a customer listing plots or a
// builder bidding on them. The role is fixed at registration; builder-only
// fields are populated iff Role == RoleBuilder.
type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         string `json:"role" bson:"role"`

	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`

	// Builder-specific fields.
	CompanyName     string   `json:"companyName,omitempty" bson:"company_name,omitempty"`
	LicenseNumber   string   `json:"licenseNumber,omitempty" bson:"license_number,omitempty"`
	YearsExperience int      `json:"yearsExperience,omitempty" bson:"years_experience,omitempty"`
	Specializations []string `json:"specializations,omitempty" bson:"specializations,omitempty"`
	ServiceAreas    []string `json:"serviceAreas,omitempty" bson:"service_areas,omitempty"`
	Bio             string   `json:"bio,omitempty" bson:"bio,omitempty"`
	Website         string   `json:"website,omitempty" bson:"website,omitempty"`

	IsVerified bool `json:"isVerified" bson:"is_verified"`
	IsActive   bool `json:"isActive" bson:"is_active"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// IsBuilder reports whether the user holds the builder role.
func (u *User) IsBuilder() bool { return u.Role == RoleBuilder }
