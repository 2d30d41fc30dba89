package inventory

// AvailabilityResponse ответ провайдера на запрос доступности продукта на дату
type AvailabilityResponse struct {
	ProductID string         `json:"productId"`
	Date      string         `json:"date"`
	TimeSlots []TimeSlotItem `json:"timeSlots"`
}

// TimeSlotItem слот в ответе провайдера; availableSpots может быть null
type TimeSlotItem struct {
	Time           string `json:"time"`
	AvailableSpots *int   `json:"availableSpots"`
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
