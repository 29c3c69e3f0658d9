package repository

//nolint:revive
import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"rkhub/infras/otel"
	"rkhub/infras/postgres"
	"rkhub/shared/constant"
	"rkhub/shared/dto"
	"rkhub/shared/failure"
	"rkhub/shared/logger"
	"reflect"
	"slices"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

var errRequiredFilter = errors.New("required filter")

const insertTagSkip = "-"

// Repository is the table gateway every domain embeds. Columns come from the
// `db` tags of T; fields tagged `insert:"-"` are filled in by the database
// and only read back.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	columns       []string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		columns:       columns,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

// fail logs and traces err and wraps it as a store failure.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return failure.RequestError(fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err))
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, 0, len(repo.InsertColumns))
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

// insertError reports unique violations as a conflict and anything else as
// a store failure.
func (repo *Repository[T]) insertError(scope otel.Scope, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.UniqueViolation {
		scope.TraceError(err)

		return failure.Conflict(fmt.Sprintf("%s already exists", repo.entity))
	}

	return repo.fail(scope, "insert data", err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		return repo.insertError(scope, err)
	}

	return nil
}

// InsertReturning inserts model and scans the stored row back, including the
// columns the database fills in.
func (repo *Repository[T]) InsertReturning(ctx context.Context, model T) (T, error) {
	ctx, scope := repo.scope(ctx, "InsertReturning")
	defer scope.End()

	query := fmt.Sprintf("%s RETURNING %s", repo.insertQuery(), strings.Join(repo.columns, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var stored T

	stmt, err := repo.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		return stored, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.GetContext(ctx, &stored, model); err != nil {
		return stored, repo.insertError(scope, err)
	}

	return stored, nil
}

// Get returns the first row matching filter. A zero T and nil error mean no
// row matched.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := whereClause(filter)
	query := joinClauses("SELECT", repo.selectList(columns), "FROM", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return model, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// GetAll lists rows ordered by params. Page is only honoured together with a
// positive limit; a zero limit returns every row.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := whereClause(filter)

	var ordering, pagination string

	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	switch {
	case params.Page > 0 && params.Limit > 0:
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit
		pagination = "LIMIT :limit OFFSET :offset"
	case params.Limit > 0:
		args["limit"] = params.Limit
		pagination = "LIMIT :limit"
	}

	query := joinClauses("SELECT", repo.selectList(columns), "FROM", repo.table, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

// Delete removes the rows matched by filter. An empty filter is refused so a
// missing id can never wipe a table.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := joinClauses("DELETE FROM", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

// DeleteReturning removes the rows matched by filter and returns the first
// removed row. A zero T and nil error mean nothing matched.
func (repo *Repository[T]) DeleteReturning(ctx context.Context, filter dto.FilterGroup) (T, error) {
	ctx, scope := repo.scope(ctx, "DeleteReturning")
	defer scope.End()

	var removed T

	where, args := whereClause(filter)
	if where == "" {
		return removed, errRequiredFilter
	}

	query := joinClauses("DELETE FROM", repo.table, where, "RETURNING", strings.Join(repo.columns, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		return removed, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &removed, args)
	if errors.Is(err, sql.ErrNoRows) {
		return removed, nil
	}

	if err != nil {
		return removed, repo.fail(scope, "delete data", err)
	}

	return removed, nil
}

// Update sets the columns in mod on the rows matched by filter.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	query := joinClauses("UPDATE", repo.table, "SET", strings.Join(assignments, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, mod)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

// selectList qualifies the requested columns with the table name. No
// columns means all of them.
func (repo *Repository[T]) selectList(only []string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		selected = append(selected, repo.table+"."+col)
	}

	return strings.Join(selected, ", ")
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func joinClauses(clauses ...string) string {
	return strings.Join(slices.DeleteFunc(clauses, func(clause string) bool { return clause == "" }), " ")
}

func getColumns(reflectType reflect.Type) (columns, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		columns = append(columns, dbTag)

		if field.Tag.Get("insert") != insertTagSkip {
			insertColumns = append(insertColumns, dbTag)
		}
	}

	return columns, insertColumns
}
