package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rkhub/infras/otel"
	"rkhub/infras/postgres"
	"rkhub/internal/domains/admin/model"
	gDto "rkhub/shared/dto"
	gRepo "rkhub/shared/repository"
)

type Admin interface {
	InsertReturning(ctx context.Context, admin model.Admin) (model.Admin, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Admin, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Admin]
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Admin](model.EntityName, model.TableName, db, otel),
	}
}
