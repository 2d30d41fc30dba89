package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего inventory-провайдера
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента
// requestsPerSecond и burst ограничивают частоту обращений к провайдеру
// (preload календаря может выпустить десятки запросов одновременно)
func NewClient(baseURL, apiKey string, timeout time.Duration, requestsPerSecond float64, burst int, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		log:     log,
	}
}

// FetchAvailability получает слоты продукта на дату (YYYY-MM-DD)
// Порядок слотов сохраняется как у провайдера
func (c *Client) FetchAvailability(ctx context.Context, productID, date string) ([]domain.TimeSlot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	endpoint := fmt.Sprintf("%s/v1/products/%s/availability?date=%s",
		c.baseURL, url.PathEscape(productID), url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: product=%s", ErrProductNotFound, productID)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, errorDetail(resp))
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, errorDetail(resp))
	}

	// Парсим ответ
	var payload AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return c.toTimeSlots(productID, date, payload.TimeSlots), nil
}

// toTimeSlots отбрасывает слоты с некорректным временем и обрезает отрицательные остатки
func (c *Client) toTimeSlots(productID, date string, items []TimeSlotItem) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(items))
	for _, item := range items {
		if !types.IsValidTimeString(item.Time) {
			c.log.Warn("inventory: skipping slot with invalid time %q for product=%s date=%s", item.Time, productID, date)
			continue
		}

		slot := domain.TimeSlot{Time: item.Time}
		if item.AvailableSpots != nil {
			spots := *item.AvailableSpots
			if spots < 0 {
				spots = 0
			}
			slot.AvailableSpots = &spots
		}
		slots = append(slots, slot)
	}
	return slots
}

// errorDetail сообщение из ErrorResponse провайдера, иначе тело ответа как есть
func errorDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Sprintf("code=%d message=%s", errResp.Code, errResp.Message)
	}
	return strings.TrimSpace(string(body))
}
