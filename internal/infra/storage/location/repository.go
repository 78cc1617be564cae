package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var locationColumns = []string{
	"id",
	"name",
	"address",
	"type",
	"total_slots",
	"created_at",
	"updated_at",
}

// Repository репозиторий парковочных локаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает локацию
func (r *Repository) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("locations").
		Columns("name", "address", "type", "total_slots").
		Values(loc.Name, loc.Address, loc.Type, loc.TotalSlots).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return loc, nil
}

// GetByID получает локацию по ID (в транзакции с блокировкой строки)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var loc domain.Location
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&loc.Name,
		&loc.Address,
		&loc.Type,
		&loc.TotalSlots,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %v", ErrScanRow, err)
	}

	return &loc, nil
}

// List получает локации с поиском, фильтром по типу и пагинацией
func (r *Repository) List(ctx context.Context, filter domain.LocationsFilter) ([]*domain.Location, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
		})
	}
	if filter.Type != nil {
		where = append(where, squirrel.Eq{"type": *filter.Type})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("locations").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(where).
		OrderBy("name ASC").
		Limit(filter.Page.PageLimit()).
		Offset(filter.Page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		var loc domain.Location
		err := rows.Scan(
			&loc.ID,
			&loc.Name,
			&loc.Address,
			&loc.Type,
			&loc.TotalSlots,
			&loc.CreatedAt,
			&loc.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, &loc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return locations, total, nil
}

// Update обновляет название, адрес, тип и количество мест
func (r *Repository) Update(ctx context.Context, loc *domain.Location) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("locations").
		Set("name", loc.Name).
		Set("address", loc.Address).
		Set("type", loc.Type).
		Set("total_slots", loc.TotalSlots).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": loc.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&loc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrLocationNotFound
	}
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет локацию вместе с местами (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrLocationInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
