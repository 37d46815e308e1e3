package models

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/order-normalizer/internal/lib/legacydate"
)

// UserOrdersResponse — внешнее JSON-представление пользователя с заказами.
type UserOrdersResponse struct {
	UserID int64           `json:"user_id"`
	Name   string          `json:"name"`
	Orders []OrderResponse `json:"orders"`
}

// OrderResponse — внешнее JSON-представление заказа.
type OrderResponse struct {
	OrderID  int64             `json:"order_id"`
	Total    string            `json:"total"`
	Date     string            `json:"date"`
	Products []ProductResponse `json:"products"`
}

// ProductResponse — внешнее JSON-представление товара.
type ProductResponse struct {
	ProductID int64  `json:"product_id"`
	Value     string `json:"value"`
}

// NewUserOrdersResponses преобразует пользователей в ответ API.
// Для пустого входа возвращает пустой, а не nil, срез.
func NewUserOrdersResponses(users []User) []UserOrdersResponse {
	out := make([]UserOrdersResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserOrdersResponse(u))
	}
	return out
}

// NewUserOrdersResponse преобразует одного пользователя в ответ API.
func NewUserOrdersResponse(u User) UserOrdersResponse {
	orders := make([]OrderResponse, 0, len(u.Orders))
	for _, o := range u.Orders {
		products := make([]ProductResponse, 0, len(o.Products))
		for _, p := range o.Products {
			products = append(products, ProductResponse{
				ProductID: p.ProductID,
				Value:     FormatDecimal(p.Value),
			})
		}
		orders = append(orders, OrderResponse{
			OrderID:  o.OrderID,
			Total:    FormatDecimal(o.Total),
			Date:     legacydate.FormatAPI(o.Date),
			Products: products,
		})
	}
	return UserOrdersResponse{
		UserID: u.UserID,
		Name:   u.Name,
		Orders: orders,
	}
}

// FormatDecimal печатает число с тем же количеством знаков после запятой,
// с которым оно было получено: "100.00" остаётся "100.00".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
