package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rkhub/config"
	"rkhub/infras/kafka"
	"rkhub/infras/otel"
	"rkhub/internal/domains/admission/model"
	"rkhub/internal/domains/admission/model/dto"
	"rkhub/internal/domains/admission/repository"
	"rkhub/shared"
	"rkhub/shared/cache"
	"rkhub/shared/constant"
	gDto "rkhub/shared/dto"
	"rkhub/shared/validator"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllAdmission = "admissions:get_all"
)

type Admission interface {
	Create(ctx context.Context, req dto.CreateAdmissionRequest) error
	List(ctx context.Context, params gDto.QueryParams) ([]dto.AdmissionResponse, error)
	Delete(ctx context.Context, id string) error
	Courses() []string
}

type serviceImpl struct {
	repo   repository.Admission
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	events kafka.Publisher
}

func New(repo repository.Admission, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, events kafka.Publisher) Admission {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		events: events,
	}
}

// Create stores one enquiry. When Kafka is enabled a submitted event is
// published afterwards; a publish failure is logged and does not fail the call.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAdmissionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admission.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	admission, err := s.repo.InsertReturning(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to insert admission")

		return err
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAdmission)

	s.publishSubmitted(ctx, admission)

	return nil
}

func (s *serviceImpl) publishSubmitted(ctx context.Context, admission model.Admission) {
	if !s.cfg.Kafka.Enable {
		return
	}

	topic := s.cfg.Kafka.Topics.AdmissionSubmitted

	err := s.events.Publish(ctx, topic, kafka.Event{
		Key:   admission.ID,
		Value: dto.NewSubmittedEvent(admission),
	})
	if err != nil {
		log.Warn().Err(err).Str("id", admission.ID).Str("topic", topic).Msg("failed to publish admission event")
	}
}

// List returns enquiries newest first, at most params.Limit of them when set.
func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res []dto.AdmissionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admission.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params = gDto.NewestFirst(params.Limit)

	cacheKey, keyErr := shared.ListCacheKey(ctx, s.cache, cacheGetAllAdmission, params, gDto.FilterGroup{})
	if keyErr != nil {
		log.Warn().Err(keyErr).Msg("admissions cache unavailable, reading the store")
	} else if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for admissions")

		return res, nil
	}

	admissions, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get admissions")

		return nil, fmt.Errorf("failed to get admissions: %w", err)
	}

	res = dto.FromModels(admissions)

	if keyErr != nil {
		return res, nil
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save admissions to cache")
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admission.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete admission")

		return fmt.Errorf("failed to delete admission: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAdmission)

	return nil
}

func (s *serviceImpl) Courses() []string {
	return slices.Clone(model.Courses)
}
