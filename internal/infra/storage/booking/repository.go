package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourAvailability/pkg/psqlbuilder"
)

// Repository репозиторий бронирований (только чтение).
// Таблицей bookings владеет сервис бронирований, здесь она только читается.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListConfirmed получает подтвержденные бронирования тура за период [from, to]
// Строки без даты или времени возвращаются с пустыми полями: их отбрасывает агрегатор
func (r *Repository) ListConfirmed(ctx context.Context, tourID string, from, to time.Time) ([]domain.Booking, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"tour_id",
		"booking_date",
		"start_time",
		"adults",
		"children",
		"infants",
		"status",
	).
		From("bookings").
		Where(squirrel.Eq{"tour_id": tourID}).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	defer dbmetrics.Track(r.db, query)()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var bookingDate sql.NullTime
		var startTime sql.NullString

		err := rows.Scan(
			&booking.ID,
			&booking.TourID,
			&bookingDate,
			&startTime,
			&booking.Adults,
			&booking.Children,
			&booking.Infants,
			&booking.Status,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if bookingDate.Valid {
			booking.Date = bookingDate.Time.Format(domain.DateFormat)
		}
		booking.Time = normalizeStartTime(startTime)

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// normalizeStartTime приводит TIME колонки ("10:00:00") к формату слота "10:00"
func normalizeStartTime(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	if len(s.String) > 5 && s.String[5] == ':' {
		return s.String[:5]
	}
	return s.String
}
