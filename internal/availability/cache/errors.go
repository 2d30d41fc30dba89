package cache

import "errors"

// ErrStore возвращается при ошибках хранилища записей (Redis недоступен, битые данные)
var ErrStore = errors.New("availability.cache: store error")
