package models

import "time"

// User represents an account in the directory
type User struct {
	ID           string     `json:"id" dynamodbav:"id" bson:"id"`
	Email        string     `json:"email" dynamodbav:"email" bson:"email"`
	Name         string     `json:"name" dynamodbav:"name" bson:"name"`
	Role         Role       `json:"role" dynamodbav:"role" bson:"role"`
	PasswordHash string     `json:"-" dynamodbav:"passwordHash" bson:"passwordHash"`
	ResetToken   string     `json:"-" dynamodbav:"resetToken,omitempty" bson:"resetToken,omitempty"`
	ResetExpires *time.Time `json:"-" dynamodbav:"resetExpires,omitempty" bson:"resetExpires,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}

// EmailClaim reserves an email address for one user. The email is the table
// key, so a second claim for the same address fails its conditional put.
type EmailClaim struct {
	Email     string    `json:"email" dynamodbav:"email" bson:"email"`
	UserID    string    `json:"userId" dynamodbav:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
}

// Profile returns the public view of the user
func (u *User) Profile() UserProfile {
	return UserProfile{Email: u.Email, Name: u.Name, Role: u.Role}
}

// UserProfile is the user shape returned by login and register
type UserProfile struct {
	Email string `json:"email" example:"tech@gearguard.com"`
	Name  string `json:"name" example:"Tech User"`
	Role  Role   `json:"role" example:"Technician"`
}

// Technician is one entry of the technician directory
type Technician struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"admin@gearguard.com"`
	Password string `json:"password" validate:"required" example:"admin123"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        UserProfile `json:"user"`
}

// RegisterRequest represents the registration payload
// @Description User registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required" example:"new.tech@gearguard.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
	Name     string `json:"name" validate:"required" example:"New Tech"`
	Role     string `json:"role,omitempty" example:"Technician"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required" example:"tech@gearguard.com"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}
