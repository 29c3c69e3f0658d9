package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rkhub/infras/otel"
	"rkhub/infras/postgres"
	"rkhub/internal/domains/announcement/model"
	gDto "rkhub/shared/dto"
	gRepo "rkhub/shared/repository"
)

type Announcement interface {
	Insert(ctx context.Context, announcement model.Announcement) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Announcement, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Announcement]
}

func New(db *postgres.Connection, otel otel.Otel) Announcement {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Announcement](model.EntityName, model.TableName, db, otel),
	}
}
