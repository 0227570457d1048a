package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Account represents a registered user account
type Account struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Username         string    `json:"username" gorm:"uniqueIndex;not null"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	Password         string    `json:"-"` // Store hashed password, ignore for JSON serialization
	Avatar           string    `json:"avatar,omitempty"`
	IsVerified       bool      `json:"is_verified"`
	VerificationCode string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AccountCompact is the minimal author projection embedded in post views
type AccountCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// ToCompact converts an Account to its compact projection
func (a *Account) ToCompact() AccountCompact {
	return AccountCompact{
		ID:       a.ID,
		Username: a.Username,
		Avatar:   a.Avatar,
	}
}

// CreateAccountRequest defines the request body for account signup
type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for account signin
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyAccountRequest defines the request body for email verification
type VerifyAccountRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// UpdateAccountRequest defines the request body for profile updates
type UpdateAccountRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
