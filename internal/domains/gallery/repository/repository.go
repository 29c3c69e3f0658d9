package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rkhub/infras/otel"
	"rkhub/infras/postgres"
	"rkhub/internal/domains/gallery/model"
	gDto "rkhub/shared/dto"
	gRepo "rkhub/shared/repository"
)

type Gallery interface {
	Insert(ctx context.Context, item model.GalleryItem) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.GalleryItem, error)
	DeleteReturning(ctx context.Context, filter gDto.FilterGroup) (model.GalleryItem, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.GalleryItem]
}

func New(db *postgres.Connection, otel otel.Otel) Gallery {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.GalleryItem](model.EntityName, model.TableName, db, otel),
	}
}
