package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий парковочных мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает места локации с переданными кодами одним запросом
func (r *Repository) CreateBatch(ctx context.Context, locationID int64, codes []string) error {
	if len(codes) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("slots").Columns("location_id", "spot_code")
	for _, code := range codes {
		insert = insert.Values(locationID, code)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: CreateBatch - %v", ErrDuplicateSpotCode, err)
		}
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает место по ID
// Внутри транзакции строка блокируется (FOR UPDATE): так сериализуются конкурирующие резервирования одного места
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := getByIDQuery(ctx, id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.LocationID, &s.SpotCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		if pgerrors.IsLockConflict(err) {
			return nil, fmt.Errorf("%w: GetByID - %v", ErrLockConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListAvailability возвращает места локации со статусом на интервале window
// BOOKED, если есть upcoming/active бронирование с entry_time < End и estimated_exit_time > Start
func (r *Repository) ListAvailability(ctx context.Context, locationID int64, window domain.TimeWindow) ([]*domain.SlotAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := availabilityQuery(locationID, window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.SlotAvailability, 0)
	for rows.Next() {
		var (
			s        domain.SlotAvailability
			isBooked bool
		)
		if err := rows.Scan(&s.ID, &s.LocationID, &s.SpotCode, &isBooked); err != nil {
			return nil, fmt.Errorf("%w: ListAvailability - scan row: %v", ErrScanRow, err)
		}

		s.Status = domain.SlotAvailable
		if isBooked {
			s.Status = domain.SlotBooked
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ListByCodes получает места локации с указанными кодами (в транзакции с блокировкой)
func (r *Repository) ListByCodes(ctx context.Context, locationID int64, codes []string) ([]*domain.Slot, error) {
	if len(codes) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "location_id", "spot_code").
		From("slots").
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"spot_code": codes}).
		OrderBy("spot_code ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCodes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsLockConflict(err) {
			return nil, fmt.Errorf("%w: ListByCodes - %v", ErrLockConflict, err)
		}
		return nil, fmt.Errorf("%w: ListByCodes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0, len(codes))
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.LocationID, &s.SpotCode); err != nil {
			return nil, fmt.Errorf("%w: ListByCodes - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCodes - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// DeleteByIDs удаляет места
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByIDs - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// Reprefix меняет букву в кодах мест локации после смены типа (M-001 -> B-001)
func (r *Repository) Reprefix(ctx context.Context, locationID int64, prefix string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("spot_code", squirrel.Expr("? || substr(spot_code, 2)", prefix)).
		Where(squirrel.Eq{"location_id": locationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reprefix - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: Reprefix - %v", ErrDuplicateSpotCode, err)
		}
		return fmt.Errorf("%w: Reprefix - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// getByIDQuery выборка места, в транзакции с блокировкой строки
func getByIDQuery(ctx context.Context, id int64) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select("id", "location_id", "spot_code").
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	return selectBuilder
}

// availabilityQuery места локации с признаком занятости на интервале window
func availabilityQuery(locationID int64, window domain.TimeWindow) squirrel.SelectBuilder {
	booked := squirrel.Expr(
		"EXISTS (SELECT 1 FROM bookings b WHERE b.slot_id = s.id AND b.status IN (?, ?) AND b.entry_time < ? AND b.estimated_exit_time > ?)",
		domain.StatusUpcoming, domain.StatusActive, window.End, window.Start,
	)

	return psqlbuilder.Select("s.id", "s.location_id", "s.spot_code").
		Column(booked).
		From("slots s").
		Where(squirrel.Eq{"s.location_id": locationID}).
		OrderBy("s.spot_code ASC")
}
