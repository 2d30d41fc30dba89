package availability

import (
	"sync"

	"github.com/google/uuid"
)

// RequestTracker реализует last-request-wins для сессии пользователя.
// Новый запрос сессии делает все предыдущие устаревшими: их результат
// отбрасывается, но загрузка данных не прерывается.
type RequestTracker struct {
	mu     sync.Mutex
	latest map[string]string
}

// NewRequestTracker создает трекер запросов
func NewRequestTracker() *RequestTracker {
	return &RequestTracker{latest: make(map[string]string)}
}

// Begin регистрирует новый запрос сессии и возвращает его токен
func (t *RequestTracker) Begin(scope string) string {
	token := uuid.NewString()

	t.mu.Lock()
	t.latest[scope] = token
	t.mu.Unlock()

	return token
}

// IsLatest проверяет, что токен принадлежит последнему запросу сессии
func (t *RequestTracker) IsLatest(scope, token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[scope] == token
}

// Finish удаляет токен, если он все еще последний
func (t *RequestTracker) Finish(scope, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest[scope] == token {
		delete(t.latest, scope)
	}
}
