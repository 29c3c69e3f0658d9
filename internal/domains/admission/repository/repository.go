package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rkhub/infras/otel"
	"rkhub/infras/postgres"
	"rkhub/internal/domains/admission/model"
	gDto "rkhub/shared/dto"
	gRepo "rkhub/shared/repository"
)

type Admission interface {
	InsertReturning(ctx context.Context, admission model.Admission) (model.Admission, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Admission, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Admission]
}

func New(db *postgres.Connection, otel otel.Otel) Admission {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Admission](model.EntityName, model.TableName, db, otel),
	}
}
