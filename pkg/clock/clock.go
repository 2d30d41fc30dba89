package clock

import "time"

// Real реальный провайдер времени для production
type Real struct{}

// Now возвращает текущее время
func (Real) Now() time.Time {
	return time.Now()
}
