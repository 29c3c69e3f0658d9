package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rkhub/config"
	"rkhub/infras/otel"
	"rkhub/internal/domains/announcement/model"
	"rkhub/internal/domains/announcement/model/dto"
	"rkhub/internal/domains/announcement/repository"
	"rkhub/shared"
	"rkhub/shared/cache"
	"rkhub/shared/constant"
	gDto "rkhub/shared/dto"
	"rkhub/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllAnnouncement = "updates:get_all"
)

type Announcement interface {
	Create(ctx context.Context, req dto.CreateAnnouncementRequest) error
	List(ctx context.Context, params gDto.QueryParams) ([]dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Announcement
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Announcement, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Announcement {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAnnouncementRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".announcement.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel()); err != nil {
		log.Error().Err(err).Msg("failed to insert update")

		return err
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAnnouncement)

	return nil
}

// List returns updates newest first, at most params.Limit of them when set.
func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res []dto.AnnouncementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".announcement.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params = gDto.NewestFirst(params.Limit)

	cacheKey, keyErr := shared.ListCacheKey(ctx, s.cache, cacheGetAllAnnouncement, params, gDto.FilterGroup{})
	if keyErr != nil {
		log.Warn().Err(keyErr).Msg("updates cache unavailable, reading the store")
	} else if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for updates")

		return res, nil
	}

	announcements, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get updates")

		return nil, fmt.Errorf("failed to get updates: %w", err)
	}

	res = dto.FromModels(announcements)

	if keyErr != nil {
		return res, nil
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save updates to cache")
	}

	return res, nil
}

// Delete removes one update. Deleting an id that no longer exists succeeds.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".announcement.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete update")

		return fmt.Errorf("failed to delete update: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAnnouncement)

	return nil
}
