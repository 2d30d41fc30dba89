package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// ErrInvalidPartySize возвращается при нечисловых параметрах группы
var ErrInvalidPartySize = errors.New("handlers: invalid party size")

// ParsePartySize читает adults, children, infants из query параметров.
// Отсутствующий adults считается равным 1, остальные 0.
// Диапазоны значений проверяет use case.
func ParsePartySize(r *http.Request) (domain.PartySize, error) {
	query := r.URL.Query()
	party := domain.PartySize{Adults: 1}

	fields := []struct {
		name string
		dst  *int
	}{
		{"adults", &party.Adults},
		{"children", &party.Children},
		{"infants", &party.Infants},
	}

	for _, f := range fields {
		raw := query.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.PartySize{}, ErrInvalidPartySize
		}
		*f.dst = v
	}

	return party, nil
}
