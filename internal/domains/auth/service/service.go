package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/session"
	staffModel "hotel/internal/domains/staff/model"
	staffDto "hotel/internal/domains/staff/model/dto"
	staffRepo "hotel/internal/domains/staff/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	errEmailRegistered    = "Email already registered"
	errRegistrationFailed = "Registration failed"
	errInvalidCredentials = "Invalid email or password"
	errUnauthorized       = "Unauthorized"
	errPasswordTooLong    = "Password must be at most 72 bytes"
)

type Auth interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.SignupResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	// Logout ends the session behind token. It never fails.
	Logout(ctx context.Context, token string)
	// Authenticate resolves a session token to the staff member it belongs to.
	Authenticate(ctx context.Context, token string) (staffDto.StaffResponse, error)
}

type serviceImpl struct {
	staffRepo staffRepo.Staff
	sessions  session.Store
	signer    jwt.Signer
	otel      otel.Otel
}

func New(staffRepo staffRepo.Staff, sessions session.Store, signer jwt.Signer, otel otel.Otel) Auth {
	return &serviceImpl{
		staffRepo: staffRepo,
		sessions:  sessions,
		signer:    signer,
		otel:      otel,
	}
}

func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res dto.SignupResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Signup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.CheckPassword(); err != nil {
		return res, err
	}

	exists, err := s.staffRepo.Exist(ctx, shared.FilterByField(staffModel.FieldEmail, *req.Email, staffModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return res, failure.InternalErrorFromString(errRegistrationFailed) //nolint:wrapcheck
	}

	if exists {
		return res, failure.Conflict(errEmailRegistered) //nolint:wrapcheck
	}

	hash, err := password.Hash(*req.Password)
	if errors.Is(err, password.ErrTooLong) {
		return res, failure.BadRequestFromString(errPasswordTooLong) //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, failure.InternalErrorFromString(errRegistrationFailed) //nolint:wrapcheck
	}

	staff := req.ToStaffModel(hash)

	staff.ID, err = s.staffRepo.Insert(ctx, staff)
	if err != nil {
		if shared.IsUniqueViolation(err, staffModel.ConstraintEmailUnique) {
			return res, failure.Conflict(errEmailRegistered) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create staff")

		return res, failure.InternalErrorFromString(errRegistrationFailed) //nolint:wrapcheck
	}

	res.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff, err := s.staffRepo.Get(ctx, shared.FilterByField(staffModel.FieldEmail, *req.Email, staffModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, failure.Unauthorized(errInvalidCredentials) //nolint:wrapcheck
	}

	if staff.ID == 0 {
		password.Burn(*req.Password)

		log.Warn().Str("email", *req.Email).Msg("login attempt with unknown email")

		return res, failure.Unauthorized(errInvalidCredentials) //nolint:wrapcheck
	}

	if err = password.Verify(*req.Password, staff.PasswordHash); err != nil {
		log.Warn().Int64("staff_id", staff.ID).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials) //nolint:wrapcheck
	}

	sess := dto.NewSession(staff.ID)

	if err = s.sessions.Create(ctx, sess); err != nil {
		return res, fmt.Errorf("failed to create session: %w", err)
	}

	res.Token, err = s.signer.Sign(sess.TokenID, staff.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign session token")

		return res, fmt.Errorf("failed to sign session token: %w", err)
	}

	res.Staff.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, token string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()

	if token == "" {
		return
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("logout with invalid session token")

		return
	}

	if err := s.sessions.Delete(ctx, claims.TokenID); err != nil {
		log.Warn().Err(err).Int64("staff_id", claims.StaffID).Msg("failed to delete session on logout")
	}
}

func (s *serviceImpl) Authenticate(ctx context.Context, token string) (res staffDto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Authenticate")
	defer scope.End()

	if token == "" {
		return res, failure.Unauthorized(errUnauthorized) //nolint:wrapcheck
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("invalid session token")

		return res, failure.Unauthorized(errUnauthorized) //nolint:wrapcheck
	}

	sess, err := s.sessions.Get(ctx, claims.TokenID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to load session")
		}

		return res, failure.Unauthorized(errUnauthorized) //nolint:wrapcheck
	}

	if sess.StaffID != claims.StaffID {
		log.Warn().Int64("staff_id", claims.StaffID).Msg("session token bound to another staff member")

		return res, failure.Unauthorized(errUnauthorized) //nolint:wrapcheck
	}

	staff, err := s.staffRepo.Get(ctx, shared.FilterByID(sess.StaffID, staffModel.FieldID, staffModel.TableName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("staff_id", sess.StaffID).Msg("failed to get session staff")

		return res, failure.Unauthorized(errUnauthorized) //nolint:wrapcheck
	}

	if staff.ID == 0 {
		return res, failure.Unauthorized(errUnauthorized) //nolint:wrapcheck
	}

	res.FromModel(staff)

	return res, nil
}
