package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Оплаченные часы завершенной парковки, как в domain.BillableHours
const billedHoursExpr = "GREATEST(1, CEIL(EXTRACT(EPOCH FROM (b.actual_exit_time - b.entry_time)) / 3600))"

// Repository агрегирующие запросы для отчетов и аналитики
// Только чтение, транзакции не нужны
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// RevenueTotals итоги по завершенным бронированиям за период
func (r *Repository) RevenueTotals(ctx context.Context, filter domain.RevenueFilter) (domain.RevenueTotals, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(b.total_price), 0)",
		"COALESCE(SUM("+billedHoursExpr+"), 0)::BIGINT",
	).
		From("bookings b").
		Where(revenueWhere(filter)).
		ToSql()
	if err != nil {
		return domain.RevenueTotals{}, fmt.Errorf("%w: RevenueTotals - build select query: %v", ErrBuildQuery, err)
	}

	var totals domain.RevenueTotals
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&totals.Bookings, &totals.Revenue, &totals.Hours); err != nil {
		return domain.RevenueTotals{}, fmt.Errorf("%w: RevenueTotals - scan totals: %v", ErrScanRow, err)
	}

	return totals, nil
}

// RevenueByLocation выручка за период в разрезе локаций, по убыванию выручки
func (r *Repository) RevenueByLocation(ctx context.Context, filter domain.RevenueFilter) ([]domain.LocationRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.location_id",
		"l.name",
		"COUNT(*)",
		"COALESCE(SUM(b.total_price), 0)",
	).
		From("bookings b").
		Join("locations l ON l.id = b.location_id").
		Where(revenueWhere(filter)).
		GroupBy("b.location_id", "l.name").
		OrderBy("4 DESC", "l.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.LocationRevenue, 0)
	for rows.Next() {
		var lr domain.LocationRevenue
		if err := rows.Scan(&lr.LocationID, &lr.LocationName, &lr.Bookings, &lr.Revenue); err != nil {
			return nil, fmt.Errorf("%w: RevenueByLocation - scan row: %v", ErrScanRow, err)
		}
		result = append(result, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RevenueByLocation - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// RevenueByDay выручка за период по дням в часовом поясе timezone
func (r *Repository) RevenueByDay(ctx context.Context, filter domain.RevenueFilter, timezone string) ([]domain.DailyRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("(b.actual_exit_time AT TIME ZONE ?)::DATE", timezone)).
		Columns("COUNT(*)", "COALESCE(SUM(b.total_price), 0)").
		From("bookings b").
		Where(revenueWhere(filter)).
		GroupBy("1").
		OrderBy("1 ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.DailyRevenue, 0)
	for rows.Next() {
		var dr domain.DailyRevenue
		if err := rows.Scan(&dr.Day, &dr.Bookings, &dr.Revenue); err != nil {
			return nil, fmt.Errorf("%w: RevenueByDay - scan row: %v", ErrScanRow, err)
		}
		result = append(result, dr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RevenueByDay - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountLocations количество локаций
func (r *Repository) CountLocations(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountLocations", psqlbuilder.Select("COUNT(*)").From("locations"))
}

// CountSlots количество мест
func (r *Repository) CountSlots(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountSlots", psqlbuilder.Select("COUNT(*)").From("slots"))
}

// CountActive количество текущих парковок с учетом наступивших upcoming
func (r *Repository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return r.count(ctx, "CountActive", psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusActive},
			squirrel.And{
				squirrel.Eq{"status": domain.StatusUpcoming},
				squirrel.LtOrEq{"entry_time": now},
			},
		}))
}

// CountUpcoming количество будущих бронирований
func (r *Repository) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	return r.count(ctx, "CountUpcoming", psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusUpcoming}).
		Where(squirrel.Gt{"entry_time": now}))
}

// CompletedBetween количество и выручка парковок, завершенных в [from, to)
func (r *Repository) CompletedBetween(ctx context.Context, from, to time.Time) (int64, int64, error) {
	totals, err := r.RevenueTotals(ctx, domain.RevenueFilter{From: from, To: to})
	if err != nil {
		return 0, 0, err
	}
	return totals.Bookings, totals.Revenue, nil
}

// BookingsByLocationType количество бронирований по типу локации
func (r *Repository) BookingsByLocationType(ctx context.Context) (map[domain.LocationType]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("l.type", "COUNT(b.id)").
		From("locations l").
		LeftJoin("bookings b ON b.location_id = l.id").
		GroupBy("l.type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: BookingsByLocationType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BookingsByLocationType - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[domain.LocationType]int64)
	for rows.Next() {
		var (
			t domain.LocationType
			n int64
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("%w: BookingsByLocationType - scan row: %v", ErrScanRow, err)
		}
		result[t] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BookingsByLocationType - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) count(ctx context.Context, op string, builder squirrel.SelectBuilder) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var n int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return n, nil
}

func revenueWhere(filter domain.RevenueFilter) squirrel.And {
	where := squirrel.And{
		squirrel.Eq{"b.status": domain.StatusCompleted},
		squirrel.GtOrEq{"b.actual_exit_time": filter.From},
		squirrel.Lt{"b.actual_exit_time": filter.To},
	}
	if filter.LocationID != nil {
		where = append(where, squirrel.Eq{"b.location_id": *filter.LocationID})
	}
	return where
}
