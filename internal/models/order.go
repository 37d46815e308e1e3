// Package models содержит доменные структуры иерархии пользователь → заказы → товары,
// а также плоскую запись строки файла, из которой эта иерархия строится.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineRecord представляет одну строку файла фиксированной ширины.
// Все поля уже очищены от пробелов по краям, но ещё не преобразованы в типы.
type LineRecord struct {
	Line         int    // Номер строки в файле, начиная с 1
	UserID       string // Идентификатор пользователя (цифры)
	UserName     string // Имя пользователя
	OrderID      string // Идентификатор заказа (цифры)
	ProductID    string // Идентификатор товара (цифры)
	ProductValue string // Стоимость товара в десятичной записи
	PurchaseDate string // Дата покупки в формате YYYYMMDD
}

// Product представляет товар внутри заказа.
type Product struct {
	ProductID int64
	Value     decimal.Decimal
}

// Order представляет заказ пользователя.
// Total всегда равен сумме Value всех товаров.
type Order struct {
	OrderID  int64
	Date     time.Time
	Total    decimal.Decimal
	Products []Product
}

// User представляет пользователя со всеми его заказами.
type User struct {
	UserID int64
	Name   string
	Orders []Order
}

// Clone возвращает независимую копию пользователя.
func (u User) Clone() User {
	return u.CloneWithOrders(func(Order) bool { return true })
}

// CloneWithOrders возвращает копию пользователя, в которую попадают только заказы,
// удовлетворяющие keep. Порядок заказов сохраняется.
func (u User) CloneWithOrders(keep func(Order) bool) User {
	out := User{
		UserID: u.UserID,
		Name:   u.Name,
		Orders: make([]Order, 0, len(u.Orders)),
	}
	for _, o := range u.Orders {
		if !keep(o) {
			continue
		}
		out.Orders = append(out.Orders, o.Clone())
	}
	return out
}

// Clone возвращает независимую копию заказа.
func (o Order) Clone() Order {
	products := make([]Product, len(o.Products))
	copy(products, o.Products)
	return Order{
		OrderID:  o.OrderID,
		Date:     o.Date,
		Total:    o.Total,
		Products: products,
	}
}
