package cache

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/pkg/clock"
)

const (
	defaultTTL              = 15 * time.Minute
	defaultPreloadFreshness = 5 * time.Minute
	defaultConcurrency      = 8
)

// Options параметры кэша
type Options struct {
	TTL              time.Duration     // окно переиспользования записи для одиночной даты
	PreloadFreshness time.Duration     // окно, в котором preload не перезапрашивает дату
	Concurrency      int               // одновременных запросов при preload
	PreloadBudget    time.Duration     // сколько preload ждет провайдера; 0 - без ограничения
	Aliases          map[string]string // product key -> product key с общим инвентарем
	Clock            TimeProvider
	Metrics          Recorder
}

// Cache кэш доступности из внешнего inventory
//
// Ключ записи - (product key после alias, дата). При ошибке провайдера
// сохраняется fallback-запись со сконфигурированными слотами: дата никогда
// не блокируется только из-за недоступности провайдера.
type Cache struct {
	fetcher Fetcher
	store   Store
	opts    Options
	logger  Logger
	flights singleflight.Group
}

// PreloadResult итог preload диапазона дат.
// TimedOut - даты, не получившие ответа провайдера за PreloadBudget; они входят в Fallbacks.
type PreloadResult struct {
	Fetched   int
	Skipped   int
	Fallbacks int
	TimedOut  int
}

// New создает кэш
func New(fetcher Fetcher, store Store, opts Options, logger Logger) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.PreloadFreshness <= 0 {
		opts.PreloadFreshness = defaultPreloadFreshness
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}

	aliases := make(map[string]string, len(opts.Aliases))
	for from, to := range opts.Aliases {
		aliases[from] = to
	}
	opts.Aliases = aliases

	return &Cache{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
		logger:  logger,
	}
}

// ResolveKey применяет alias map к product key
func (c *Cache) ResolveKey(productKey string) string {
	if target, ok := c.opts.Aliases[productKey]; ok && target != "" {
		return target
	}
	return productKey
}

// GetAvailableTimeSlots слоты продукта на дату
func (c *Cache) GetAvailableTimeSlots(ctx context.Context, productKey, date string, configuredTimes []string) []domain.TimeSlot {
	return c.Get(ctx, productKey, date, configuredTimes).TimeSlots
}

// Get возвращает копию записи на дату: из кэша, если она моложе TTL, иначе
// запрашивает провайдера. configuredTimes используются для fallback-записи.
func (c *Cache) Get(ctx context.Context, productKey, date string, configuredTimes []string) domain.DateAvailabilityRecord {
	key := c.ResolveKey(productKey)

	record, ok := c.lookup(ctx, key, date)
	if ok && record.IsFresh(c.opts.Clock.Now(), c.opts.TTL) {
		c.opts.Metrics.CacheHit()
		return withCallerSlots(record, configuredTimes)
	}

	if ok {
		c.opts.Metrics.CacheStale()
	} else {
		c.opts.Metrics.CacheMiss()
	}

	return withCallerSlots(c.fetch(ctx, key, date, configuredTimes), configuredTimes)
}

// withCallerSlots подставляет в fallback-запись слоты вызывающего тура:
// запись под общим product key могла быть создана другим туром
func withCallerSlots(record domain.DateAvailabilityRecord, configuredTimes []string) domain.DateAvailabilityRecord {
	if record.IsFallback {
		record.TimeSlots = domain.ConfiguredTimeSlots(configuredTimes)
	}
	return record
}

// Preload загружает диапазон дат [start, end] (включительно) для отрисовки календаря.
// Каждая дата запрашивается независимо; ошибка одной даты дает fallback только для нее.
// Даты с записью моложе PreloadFreshness не перезапрашиваются.
// Возвращается после завершения всех запросов, но не позже PreloadBudget (и дедлайна ctx):
// дата, до которой очередь не дошла, получает fallback-запись, а начатый запрос
// продолжается в фоне и сам сохранит свой результат.
func (c *Cache) Preload(ctx context.Context, productKey string, start, end time.Time, configuredTimes []string) PreloadResult {
	key := c.ResolveKey(productKey)
	now := c.opts.Clock.Now()

	var (
		result  PreloadResult
		pending []string
	)

	for _, date := range DateRange(start, end) {
		record, ok := c.lookup(ctx, key, date)
		if ok && record.IsFresh(now, c.opts.PreloadFreshness) {
			result.Skipped++
			continue
		}
		pending = append(pending, date)
	}
	result.Fetched = len(pending)
	if len(pending) == 0 {
		return result
	}

	waitCtx, cancel := c.preloadContext(ctx)
	defer cancel()

	done := make(chan domain.DateAvailabilityRecord, len(pending))
	go func() {
		var g errgroup.Group
		g.SetLimit(c.opts.Concurrency)
		for _, date := range pending {
			date := date
			g.Go(func() error {
				if waitCtx.Err() != nil {
					c.storeFallback(ctx, key, date, configuredTimes)
					return nil
				}
				done <- c.fetch(ctx, key, date, configuredTimes)
				return nil
			})
		}
		_ = g.Wait()
	}()

	finished := 0
wait:
	for finished < len(pending) {
		select {
		case record := <-done:
			finished++
			if record.IsFallback {
				result.Fallbacks++
			}
		case <-waitCtx.Done():
			break wait
		}
	}

	if finished < len(pending) {
		result.TimedOut = len(pending) - finished
		result.Fallbacks += result.TimedOut
		c.logger.Warn("availability cache: preload product=%s stopped waiting after %v, %d of %d dates unresolved",
			key, c.opts.PreloadBudget, result.TimedOut, len(pending))
	}

	c.logger.Info("availability cache: preload product=%s range=%s..%s fetched=%d skipped=%d fallbacks=%d",
		key, start.Format(domain.DateFormat), end.Format(domain.DateFormat),
		result.Fetched, result.Skipped, result.Fallbacks)

	return result
}

func (c *Cache) preloadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.PreloadBudget <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.opts.PreloadBudget)
}

// storeFallback сохраняет fallback-запись для даты, которую preload не успел запросить.
// Свежая запись, сохраненная другим запросом за это время, не перезаписывается.
func (c *Cache) storeFallback(ctx context.Context, key, date string, configuredTimes []string) {
	ctx = context.WithoutCancel(ctx)
	now := c.opts.Clock.Now()
	if existing, ok := c.lookup(ctx, key, date); ok && existing.IsFresh(now, c.opts.TTL) {
		return
	}

	record := fallbackRecord(date, configuredTimes, now)
	if err := c.store.Set(ctx, storeKey(key, date), record); err != nil {
		c.logger.Warn("availability cache: store write failed for %s: %v", storeKey(key, date), err)
	}
}

// Snapshot возвращает копии записей моложе TTL для указанных дат.
// Даты без записи (или с устаревшей записью) в результат не попадают.
func (c *Cache) Snapshot(ctx context.Context, productKey string, dates []string) map[string]domain.DateAvailabilityRecord {
	key := c.ResolveKey(productKey)
	now := c.opts.Clock.Now()

	snapshot := make(map[string]domain.DateAvailabilityRecord, len(dates))
	for _, date := range dates {
		record, ok := c.lookup(ctx, key, date)
		if ok && record.IsFresh(now, c.opts.TTL) {
			snapshot[date] = record
		}
	}
	return snapshot
}

func (c *Cache) lookup(ctx context.Context, key, date string) (domain.DateAvailabilityRecord, bool) {
	record, ok, err := c.store.Get(ctx, storeKey(key, date))
	if err != nil {
		c.logger.Warn("availability cache: store read failed for %s %s, treating as miss: %v", key, date, err)
		return domain.DateAvailabilityRecord{}, false
	}
	return record, ok
}

// fetch запрашивает провайдера и сохраняет запись.
// Одновременные запросы одного ключа объединяются в один вызов провайдера.
// Запрос отвязан от отмены вызывающего: более новый запрос пользователя
// отбрасывает результат старого, но не прерывает загрузку данных.
func (c *Cache) fetch(ctx context.Context, key, date string, configuredTimes []string) domain.DateAvailabilityRecord {
	k := storeKey(key, date)
	fetchCtx := context.WithoutCancel(ctx)

	v, _, _ := c.flights.Do(k, func() (interface{}, error) {
		started := time.Now()
		slots, err := c.fetcher.FetchAvailability(fetchCtx, key, date)
		now := c.opts.Clock.Now()

		var record domain.DateAvailabilityRecord
		if err != nil {
			c.opts.Metrics.ObserveFetch("error", time.Since(started))
			c.opts.Metrics.CacheFallback(key)
			c.logger.Warn("availability cache: fetch failed for product=%s date=%s, storing optimistic fallback: %v",
				key, date, err)
			record = fallbackRecord(date, configuredTimes, now)
		} else {
			c.opts.Metrics.ObserveFetch("ok", time.Since(started))
			record = domain.DateAvailabilityRecord{
				Date:            date,
				TimeSlots:       slots,
				HasAvailability: len(slots) > 0,
				FetchedAt:       now,
				IsFallback:      false,
			}
		}

		if err := c.store.Set(fetchCtx, k, record); err != nil {
			c.logger.Warn("availability cache: store write failed for %s: %v", k, err)
		}
		return record, nil
	})

	record, ok := v.(domain.DateAvailabilityRecord)
	if !ok {
		c.logger.Error("availability cache: unexpected flight result for %s", k)
		return fallbackRecord(date, configuredTimes, c.opts.Clock.Now())
	}
	return record.Clone()
}

func fallbackRecord(date string, configuredTimes []string, now time.Time) domain.DateAvailabilityRecord {
	return domain.DateAvailabilityRecord{
		Date:            date,
		TimeSlots:       domain.ConfiguredTimeSlots(configuredTimes),
		HasAvailability: true,
		FetchedAt:       now,
		IsFallback:      true,
	}
}

func storeKey(productKey, date string) string {
	return productKey + ":" + date
}

// DateRange даты YYYY-MM-DD от start до end включительно
func DateRange(start, end time.Time) []string {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, start.Location())
	if end.Before(start) {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(domain.DateFormat))
	}
	return dates
}
