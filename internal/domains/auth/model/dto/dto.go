package dto

import (
	"hotel/internal/domains/auth/session"
	staffModel "hotel/internal/domains/staff/model"
	staffDto "hotel/internal/domains/staff/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"unicode/utf8"

	"github.com/google/uuid"
)

const errPasswordTooShort = "Password must be at least 8 characters"

type SignupRequest struct {
	Name     *string `json:"name"     validate:"required,max=100"`
	Email    *string `json:"email"    validate:"required,staffemail,max=100"`
	Password *string `json:"password" validate:"required"`
	Position *string `json:"position" validate:"required,max=100"`
}

// CheckPassword enforces the minimum length in characters.
func (s *SignupRequest) CheckPassword() error {
	if utf8.RuneCountInString(*s.Password) < constant.MinPasswordLength {
		return failure.BadRequestFromString(errPasswordTooShort)
	}

	return nil
}

func (s *SignupRequest) ToStaffModel(passwordHash string) staffModel.Staff {
	return staffModel.Staff{
		Name:         *s.Name,
		Email:        *s.Email,
		Position:     *s.Position,
		PasswordHash: passwordHash,
	}
}

type SignupResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

func (s *SignupResponse) FromModel(staff staffModel.Staff) {
	s.ID = staff.ID
	s.Name = staff.Name
	s.Email = staff.Email
	s.Position = staff.Position
}

type LoginRequest struct {
	Email    *string `json:"email"    validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// LoginResponse carries the signed session token for the cookie next to the
// staff record returned to the client.
type LoginResponse struct {
	Token string
	Staff staffDto.StaffResponse
}

// NewSession opens a session for staffID under a fresh random token id.
func NewSession(staffID int64) session.Session {
	return session.Session{
		TokenID:   uuid.NewString(),
		StaffID:   staffID,
		CreatedAt: timezone.Now(),
	}
}
