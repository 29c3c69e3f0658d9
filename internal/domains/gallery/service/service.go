package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"rkhub/config"
	"rkhub/infras/otel"
	"rkhub/infras/s3"
	"rkhub/internal/domains/gallery/model"
	"rkhub/internal/domains/gallery/model/dto"
	"rkhub/internal/domains/gallery/repository"
	"rkhub/shared"
	"rkhub/shared/cache"
	"rkhub/shared/constant"
	gDto "rkhub/shared/dto"
	"rkhub/shared/thumbnail"
	"rkhub/shared/validator"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllGallery = "gallery:get_all"
)

var imageExtensions = map[string]string{
	constant.ContentTypePNG:  ".png",
	constant.ContentTypeJPEG: ".jpg",
	constant.ContentTypeWEBP: ".webp",
}

type Gallery interface {
	Create(ctx context.Context, req dto.CreateGalleryItemRequest) error
	List(ctx context.Context, params gDto.QueryParams) ([]dto.GalleryItemResponse, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo  repository.Gallery
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Gallery, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGalleryItemRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel()); err != nil {
		log.Error().Err(err).Msg("failed to insert gallery item")

		return err
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllGallery)

	return nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res []dto.GalleryItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params = gDto.NewestFirst(params.Limit)

	cacheKey, keyErr := shared.ListCacheKey(ctx, s.cache, cacheGetAllGallery, params, gDto.FilterGroup{})
	if keyErr != nil {
		log.Warn().Err(keyErr).Msg("gallery cache unavailable, reading the store")
	} else if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery")

		return res, nil
	}

	items, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery items")

		return nil, fmt.Errorf("failed to get gallery items: %w", err)
	}

	res = dto.FromModels(items)

	if keyErr != nil {
		return res, nil
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save gallery to cache")
	}

	return res, nil
}

// Delete removes one gallery item and then, best effort, its image when the
// image lives in our bucket. Deleting an id that no longer exists succeeds.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	removed, err := s.repo.DeleteReturning(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete gallery item")

		return fmt.Errorf("failed to delete gallery item: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllGallery)

	if removed.ID == constant.Empty {
		log.Info().Str("id", id).Msg("gallery item already gone")

		return nil
	}

	s.deleteImage(ctx, removed.ImageURL)

	return nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, imageURL string) {
	objectKey := s.s3.ObjectKeyFromURL(imageURL)
	if objectKey == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warn().Err(err).Str("key", objectKey).Msg("failed to delete gallery image")
	}

	if path.Dir(objectKey) != model.EntityName {
		return
	}

	if err := s.s3.DeleteFile(ctx, thumbnailKey(objectKey)); err != nil {
		log.Warn().Err(err).Str("key", objectKey).Msg("failed to delete gallery thumbnail")
	}
}

// UploadImage stores the image under a generated name plus a JPEG thumbnail.
// A failed thumbnail leaves ThumbnailURL empty.
func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	name := uuid.NewString()

	url, err := s.s3.UploadFileBytes(ctx, model.EntityName, name+imageExtensions[req.ContentType], req.ContentType, req.Data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload gallery image")

		return res, fmt.Errorf("failed to upload gallery image: %w", err)
	}

	res.URL = url
	res.FileName = req.FileName

	thumb, err := thumbnail.Generate(bytes.NewReader(req.Data), s.cfg.App.Gallery.ThumbnailWidth, s.cfg.App.Gallery.ThumbnailHeight)
	if err != nil {
		log.Warn().Err(err).Str("file", req.FileName).Msg("failed to generate thumbnail")

		return res, nil
	}

	thumbURL, err := s.s3.UploadFileBytes(ctx, model.ThumbnailDirectory, name+imageExtensions[constant.ContentTypeJPEG], constant.ContentTypeJPEG, thumb)
	if err != nil {
		log.Warn().Err(err).Str("file", req.FileName).Msg("failed to upload thumbnail")

		return res, nil
	}

	res.ThumbnailURL = thumbURL

	return res, nil
}

func thumbnailKey(objectKey string) string {
	base := path.Base(objectKey)

	return path.Join(model.ThumbnailDirectory, strings.TrimSuffix(base, path.Ext(base))+imageExtensions[constant.ContentTypeJPEG])
}
