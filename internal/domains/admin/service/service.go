package service

import (
	"context"
	"fmt"
	"rkhub/infras/otel"
	"rkhub/internal/domains/admin/model/dto"
	"rkhub/internal/domains/admin/repository"
	"rkhub/shared/constant"
	"rkhub/shared/password"
	"rkhub/shared/validator"

	"github.com/rs/zerolog/log"
)

type Admin interface {
	Create(ctx context.Context, req dto.CreateAdminRequest) (dto.AdminResponse, error)
}

type serviceImpl struct {
	repo repository.Admin
	otel otel.Otel
}

func New(repo repository.Admin, otel otel.Otel) Admin {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Create registers an admin account. A duplicate email surfaces as a 409.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAdminRequest) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := s.repo.InsertReturning(ctx, req.ToModel(hashedPassword))
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to create admin")

		return res, err
	}

	res.FromModel(admin)

	return res, nil
}
