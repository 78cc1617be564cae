package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Колонки бронирования вместе с названием локации
var bookingColumns = []string{
	"b.id",
	"b.user_id",
	"b.slot_id",
	"b.location_id",
	"b.spot_code",
	"b.entry_time",
	"b.estimated_exit_time",
	"b.actual_exit_time",
	"b.total_price",
	"b.status",
	"b.created_at",
	"b.updated_at",
	"l.name",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри транзакции резервирования, после блокировки строки слота
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"slot_id",
			"location_id",
			"spot_code",
			"entry_time",
			"estimated_exit_time",
			"total_price",
			"status",
		).
		Values(
			booking.UserID,
			booking.SlotID,
			booking.LocationID,
			booking.SpotCode,
			booking.EntryTime,
			booking.EstimatedExitTime,
			booking.TotalPrice,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsLockConflict(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrLockConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// В транзакции строка блокируется (FOR UPDATE), чтобы завершение парковки не выполнилось дважды
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := getByIDQuery(ctx, id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if pgerrors.IsLockConflict(err) {
			return nil, fmt.Errorf("%w: GetByID - %v", ErrLockConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// CountOverlapping считает бронирования слота, занимающие его на интервале window
// Пересечение полуоткрытое: entry_time < window.End AND estimated_exit_time > window.Start
func (r *Repository) CountOverlapping(ctx context.Context, slotID int64, window domain.TimeWindow) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overlapQuery(slotID, window).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountBlockingForSlots считает бронирования upcoming/active на любом из слотов
// Используется перед удалением мест при уменьшении локации
func (r *Repository) CountBlockingForSlots(ctx context.Context, slotIDs []int64) (int64, error) {
	if len(slotIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotIDs}).
		Where(squirrel.Eq{"status": blockingStatuses()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBlockingForSlots - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBlockingForSlots - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountByLocation считает все бронирования локации, включая историю
func (r *Repository) CountByLocation(ctx context.Context, locationID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"location_id": locationID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByLocation - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByLocation - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// List получает бронирования с фильтрацией и пагинацией
// Возвращает страницу и общее количество записей под фильтром
//
// Фильтр по статусу active учитывает upcoming бронирования с наступившим entry_time,
// фильтр upcoming их исключает, поэтому списки совпадают с EffectiveStatus
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter, now time.Time) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.UserID != nil {
		where = append(where, squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.LocationID != nil {
		where = append(where, squirrel.Eq{"b.location_id": *filter.LocationID})
	}
	if filter.Status != nil {
		where = append(where, statusCondition(*filter.Status, now))
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("locations l ON l.id = b.location_id").
		Where(where).
		OrderBy("b.entry_time DESC", "b.id DESC").
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

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListActiveSessions получает текущие парковки вместе с данными пользователя
func (r *Repository) ListActiveSessions(ctx context.Context, locationID *int64, now time.Time, page domain.Page) ([]*domain.ActiveSession, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{statusCondition(domain.StatusActive, now)}
	if locationID != nil {
		where = append(where, squirrel.Eq{"b.location_id": *locationID})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListActiveSessions - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListActiveSessions - scan count: %v", ErrScanRow, err)
	}

	columns := append(append([]string{}, bookingColumns...), "u.name", "u.email")
	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		Join("locations l ON l.id = b.location_id").
		Join("users u ON u.id = b.user_id").
		Where(where).
		OrderBy("b.entry_time ASC", "b.id ASC").
		Limit(page.PageLimit()).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListActiveSessions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListActiveSessions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.ActiveSession, 0)
	for rows.Next() {
		var (
			booking domain.Booking
			session domain.ActiveSession
			slotID  sql.NullInt64
		)

		err := rows.Scan(append(bookingDest(&booking, &slotID), &session.UserName, &session.UserEmail)...)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: ListActiveSessions - scan row: %v", ErrScanRow, err)
		}
		booking.SlotID = slotID.Int64

		session.Booking = &booking
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: ListActiveSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, total, nil
}

// Complete завершает парковку: статус completed, фактическое время выезда и итоговая цена
func (r *Repository) Complete(ctx context.Context, id int64, exitTime time.Time, totalPrice int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("actual_exit_time", exitTime).
		Set("total_price", totalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsLockConflict(err) {
			return fmt.Errorf("%w: Complete - %v", ErrLockConflict, err)
		}
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ActivateDue переводит upcoming бронирования с наступившим entry_time в active
// Возвращает количество обновленных строк
func (r *Repository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusUpcoming}).
		Where(squirrel.LtOrEq{"entry_time": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ActivateDue - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ActivateDue - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ActivateDue - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// getByIDQuery выборка бронирования, в транзакции с блокировкой строки
func getByIDQuery(ctx context.Context, id int64) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("locations l ON l.id = b.location_id").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}
	return selectBuilder
}

// overlapQuery число блокирующих бронирований слота, пересекающих window
func overlapQuery(slotID int64, window domain.TimeWindow) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"status": blockingStatuses()}).
		Where(squirrel.Lt{"entry_time": window.End}).
		Where(squirrel.Gt{"estimated_exit_time": window.Start})
}

// statusCondition условие WHERE по эффективному статусу
func statusCondition(status domain.BookingStatus, now time.Time) squirrel.Sqlizer {
	switch status {
	case domain.StatusActive:
		return squirrel.Or{
			squirrel.Eq{"b.status": domain.StatusActive},
			squirrel.And{
				squirrel.Eq{"b.status": domain.StatusUpcoming},
				squirrel.LtOrEq{"b.entry_time": now},
			},
		}
	case domain.StatusUpcoming:
		return squirrel.And{
			squirrel.Eq{"b.status": domain.StatusUpcoming},
			squirrel.Gt{"b.entry_time": now},
		}
	default:
		return squirrel.Eq{"b.status": status}
	}
}

func blockingStatuses() []string {
	statuses := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// bookingDest адреса для Scan в порядке bookingColumns
func bookingDest(b *domain.Booking, slotID *sql.NullInt64) []interface{} {
	return []interface{}{
		&b.ID,
		&b.UserID,
		slotID,
		&b.LocationID,
		&b.SpotCode,
		&b.EntryTime,
		&b.EstimatedExitTime,
		&b.ActualExitTime,
		&b.TotalPrice,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.LocationName,
	}
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var (
		booking domain.Booking
		slotID  sql.NullInt64
	)
	if err := row.Scan(bookingDest(&booking, &slotID)...); err != nil {
		return nil, err
	}
	booking.SlotID = slotID.Int64
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			booking domain.Booking
			slotID  sql.NullInt64
		)

		if err := rows.Scan(bookingDest(&booking, &slotID)...); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		booking.SlotID = slotID.Int64

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
