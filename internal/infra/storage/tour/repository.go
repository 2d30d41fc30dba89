package tour

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourAvailability/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации туров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория туров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает конфигурацию тура по ID
//
// Незаданные (NULL) поля политики остаются нулевыми: значения по умолчанию
// применяет domain.CutoffPolicy.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"product_key",
		"max_slots",
		"available_times",
		"cancellation_cutoff_hours",
		"cancellation_cutoff_hours_with_participant",
		"next_day_cutoff_time",
		"price",
		"timezone",
	).
		From("tours").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var tour domain.Tour
	var productKey, nextDayCutoff, timezone sql.NullString
	var cutoffHours, cutoffHoursWithParticipant sql.NullFloat64
	var maxSlots sql.NullInt64
	var price sql.NullFloat64

	defer dbmetrics.Track(r.db, query)()

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&tour.ID,
		&productKey,
		&maxSlots,
		pq.Array(&tour.AvailableTimes),
		&cutoffHours,
		&cutoffHoursWithParticipant,
		&nextDayCutoff,
		&price,
		&timezone,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tour: %v", ErrScanRow, err)
	}

	tour.ProductKey = productKey.String
	tour.MaxSlots = int(maxSlots.Int64)
	tour.Policy = domain.CutoffPolicy{
		CancellationCutoffHours:                cutoffHours.Float64,
		CancellationCutoffHoursWithParticipant: cutoffHoursWithParticipant.Float64,
		NextDayCutoffTime:                      nextDayCutoff.String,
	}
	tour.Price = price.Float64
	tour.Timezone = timezone.String

	return &tour, nil
}
