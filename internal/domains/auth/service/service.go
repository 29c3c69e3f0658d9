package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rkhub/config"
	"rkhub/infras/jwt"
	"rkhub/infras/otel"
	adminModel "rkhub/internal/domains/admin/model"
	adminRepo "rkhub/internal/domains/admin/repository"
	"rkhub/internal/domains/auth/model/dto"
	"rkhub/shared"
	"rkhub/shared/constant"
	"rkhub/shared/failure"
	"rkhub/shared/password"
	"rkhub/shared/timezone"
	"rkhub/shared/validator"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid email or password"

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.Session, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.Session, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) error
}

type serviceImpl struct {
	adminRepo adminRepo.Admin
	cfg       *config.Config
	otel      otel.Otel
	tokens    jwt.JWT
}

func New(adminRepo adminRepo.Admin, cfg *config.Config, otel otel.Otel, tokens jwt.JWT) Auth {
	return &serviceImpl{
		adminRepo: adminRepo,
		cfg:       cfg,
		otel:      otel,
		tokens:    tokens,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	emailFilter := shared.FilterByField(adminModel.TableName, adminModel.FieldEmail, req.Email)

	admin, err := s.adminRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(invalidCredentials)
	}

	if err = password.Verify(req.Password, admin.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(invalidCredentials)
	}

	if !admin.Active {
		return res, failure.Forbidden("admin account is deactivated")
	}

	tokenPair, err := s.tokens.Issue(jwt.Identity{AdminID: admin.ID, Email: admin.Email, Role: admin.Role})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.LastLoginUpdate{LastLogin: timezone.Now()}

	if updateErr := s.adminRepo.Update(ctx, shared.TransformFields(lastLogin), shared.FilterByID(admin.ID, adminModel.FieldID, adminModel.TableName)); updateErr != nil {
		log.Warn().Err(updateErr).Str("admin_id", admin.ID).Msg("failed to update last login")
	}

	return dto.NewSession(tokenPair), nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.Session, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	tokenPair, err := s.tokens.Refresh(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	return dto.NewSession(tokenPair), nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	filter := shared.FilterByID(adminID, adminModel.FieldID, adminModel.TableName)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return failure.NotFound(adminModel.EntityName)
	}

	if err = password.Verify(req.CurrentPassword, admin.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.PasswordUpdate{Password: hashedPassword}

	if err = s.adminRepo.Update(ctx, shared.TransformFields(updatePassword), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
