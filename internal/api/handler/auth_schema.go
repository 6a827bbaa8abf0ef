package handler

import "github.com/plotbuild/marketplace/internal/core/domain"

type registerRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	Role      string `json:"role"      validate:"required,oneof=customer builder"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Phone     string `json:"phone"`

	// Builder-only fields, ignored for customers.
	CompanyName     string   `json:"companyName"`
	LicenseNumber   string   `json:"licenseNumber"`
	YearsExperience int      `json:"yearsOfExperience" validate:"gte=0"`
	Specializations []string `json:"specializations"`
	ServiceAreas    []string `json:"serviceAreas"`
	Bio             string   `json:"bio"`
	Website         string   `json:"website"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type authResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}
