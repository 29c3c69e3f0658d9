package repository_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"rkhub/infras/otel/mocks"
	"rkhub/infras/postgres"
	"rkhub/shared"
	"rkhub/shared/dto"
	"rkhub/shared/failure"
	"rkhub/shared/model"
	"rkhub/shared/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string  `db:"id"    insert:"-"`
	Title string  `db:"title"`
	Note  *string `db:"note"`
	model.Metadata
}

func newRepository(t *testing.T) (repository.Repository[item], sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = sqlDB.Close() })

	db := sqlx.NewDb(sqlDB, "sqlmock")
	conn := &postgres.Connection{Read: db, Write: db}

	return repository.NewRepository[item]("item", "items", conn, mocks.NewOtel()), mock
}

func TestNewRepository_InsertColumnsSkipStoreGenerated(t *testing.T) {
	repo, _ := newRepository(t)

	assert.Equal(t, []string{"title", "note"}, repo.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO items (title, note) VALUES (?, ?)")).
		WithArgs("Exam schedule", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), item{Title: "Exam schedule"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertUniqueViolation(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec("INSERT INTO items").
		WillReturnError(&pq.Error{Code: pgerrcode.UniqueViolation})

	err := repo.Insert(context.Background(), item{Title: "dup"})

	assert.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestRepository_InsertFailureIsRequestError(t *testing.T) {
	repo, mock := newRepository(t)
	cause := errors.New("connection reset by peer")

	mock.ExpectExec("INSERT INTO items").WillReturnError(cause)

	err := repo.Insert(context.Background(), item{Title: "Holiday notice"})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, failure.ErrRequestFailed, failure.PublicMessage(err))
}

func TestRepository_InsertReturning(t *testing.T) {
	repo, mock := newRepository(t)
	createdAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	note := "bring photo"

	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO items (title, note) VALUES (?, ?) RETURNING id, title, note, created_at")).
		ExpectQuery().
		WithArgs("Results", note).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "note", "created_at"}).
			AddRow("abc", "Results", note, createdAt))

	stored, err := repo.InsertReturning(context.Background(), item{Title: "Results", Note: &note})

	require.NoError(t, err)
	assert.Equal(t, "abc", stored.ID)
	assert.Equal(t, createdAt, stored.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllNewestFirst(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectPrepare(`SELECT items.id, items.title, items.note, items.created_at FROM items\s+ORDER BY created_at DESC LIMIT \?`).
		ExpectQuery().
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "note", "created_at"}).
			AddRow("b", "second", nil, now).
			AddRow("a", "first", nil, now.Add(-time.Hour)))

	items, err := repo.GetAll(context.Background(), dto.NewestFirst(3), dto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Nil(t, items[0].Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllWithoutLimit(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`FROM items\s+ORDER BY created_at DESC\s*$`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "note", "created_at"}))

	items, err := repo.GetAll(context.Background(), dto.NewestFirst(0), dto.FilterGroup{})

	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteReturning(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`DELETE FROM items\s+WHERE \(items.id = \?\)\s+RETURNING id, title, note, created_at`).
		ExpectQuery().
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "note", "created_at"}).
			AddRow("abc", "gone", nil, time.Now()))

	removed, err := repo.DeleteReturning(context.Background(), shared.FilterByID("abc", "id", "items"))

	require.NoError(t, err)
	assert.Equal(t, "abc", removed.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteReturningNothingMatched(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("DELETE FROM items").
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "note", "created_at"}))

	removed, err := repo.DeleteReturning(context.Background(), shared.FilterByID("missing", "id", "items"))

	assert.NoError(t, err)
	assert.Empty(t, removed.ID)
}

func TestRepository_DeleteRequiresFilter(t *testing.T) {
	repo, _ := newRepository(t)

	_, err := repo.DeleteReturning(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)

	assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE items SET note = ?, title = ? WHERE (items.id = ?)")).
		WithArgs("moved to Monday", "Exam schedule", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"title": "Exam schedule", "note": "moved to Monday"}, shared.FilterByID("abc", "id", "items"))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNoRows(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT items.id, items.title FROM items WHERE (items.id = ?)")).
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	found, err := repo.Get(context.Background(), shared.FilterByID("missing", "id", "items"), "id", "title")

	assert.NoError(t, err)
	assert.Empty(t, found.ID)
}
