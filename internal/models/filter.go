package models

// DummyOrderFilter используется для приёма параметров фильтра из query-строки
// до их валидации и преобразования. Даты приходят строками в формате 2006-01-02.
type DummyOrderFilter struct {
	OrderID   string `query:"order_id" validate:"omitempty,number"`                // Идентификатор заказа (опционально)
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"` // Начало периода (опционально)
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`   // Конец периода (опционально)
}
