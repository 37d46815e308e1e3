// Package normalizer собирает плоские записи файла в иерархию
// пользователь → заказы → товары и считает суммы заказов.
package normalizer

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/order-normalizer/internal/lib/legacydate"
	"github.com/magabrotheeeer/order-normalizer/internal/lib/orderedmap"
	"github.com/magabrotheeeer/order-normalizer/internal/models"
)

// Имена полей в ошибках валидации.
const (
	FieldUserID       = "user_id"
	FieldOrderID      = "order_id"
	FieldProductID    = "product_id"
	FieldProductValue = "product_value"
	FieldPurchaseDate = "purchase_date"
)

var errNotDigits = errors.New("must contain only digits")

type orderGroup struct {
	id       int64
	date     time.Time
	total    decimal.Decimal
	products []models.Product
}

type userGroup struct {
	id     int64
	name   string
	orders *orderedmap.Map[int64, *orderGroup]
}

// Builder накапливает записи по одной и строит иерархию.
// Пользователи и заказы перечисляются в порядке первого появления.
// Builder не предназначен для конкурентного использования.
type Builder struct {
	users *orderedmap.Map[int64, *userGroup]
	lines int
}

// NewBuilder создаёт пустой Builder.
func NewBuilder() *Builder {
	return &Builder{users: orderedmap.New[int64, *userGroup]()}
}

// Add добавляет запись. Имя пользователя берётся из первой его записи,
// дата заказа из первой записи заказа, последующие значения игнорируются.
// При ошибке состояние Builder не меняется.
func (b *Builder) Add(rec models.LineRecord) error {
	userID, err := parseID(rec, FieldUserID, rec.UserID)
	if err != nil {
		return err
	}
	orderID, err := parseID(rec, FieldOrderID, rec.OrderID)
	if err != nil {
		return err
	}
	productID, err := parseID(rec, FieldProductID, rec.ProductID)
	if err != nil {
		return err
	}
	value, err := parseDecimal(rec)
	if err != nil {
		return err
	}

	var date time.Time
	if !b.hasOrder(userID, orderID) {
		date, err = legacydate.Parse(rec.PurchaseDate)
		if err != nil {
			return &ValidationError{Line: rec.Line, Field: FieldPurchaseDate, Value: rec.PurchaseDate, Err: err}
		}
	}

	user := b.users.GetOrInit(userID, func() *userGroup {
		return &userGroup{
			id:     userID,
			name:   rec.UserName,
			orders: orderedmap.New[int64, *orderGroup](),
		}
	})
	order := user.orders.GetOrInit(orderID, func() *orderGroup {
		return &orderGroup{id: orderID, date: date, total: decimal.Zero}
	})

	order.total = order.total.Add(value)
	order.products = append(order.products, models.Product{ProductID: productID, Value: value})
	b.lines++
	return nil
}

func (b *Builder) hasOrder(userID, orderID int64) bool {
	user, ok := b.users.Get(userID)
	if !ok {
		return false
	}
	_, ok = user.orders.Get(orderID)
	return ok
}

// Lines возвращает количество принятых записей.
func (b *Builder) Lines() int {
	return b.lines
}

// Users возвращает собранную иерархию. Для пустого ввода возвращается пустой срез.
func (b *Builder) Users() []models.User {
	users := make([]models.User, 0, b.users.Len())
	b.users.Each(func(_ int64, ug *userGroup) {
		orders := make([]models.Order, 0, ug.orders.Len())
		ug.orders.Each(func(_ int64, og *orderGroup) {
			products := make([]models.Product, len(og.products))
			copy(products, og.products)
			orders = append(orders, models.Order{
				OrderID:  og.id,
				Date:     og.date,
				Total:    og.total,
				Products: products,
			})
		})
		users = append(users, models.User{
			UserID: ug.id,
			Name:   ug.name,
			Orders: orders,
		})
	})
	return users
}

// Normalize строит иерархию из готового набора записей.
// Первая ошибка прерывает работу, частичный результат не возвращается.
func Normalize(records []models.LineRecord) ([]models.User, error) {
	b := NewBuilder()
	for _, rec := range records {
		if err := b.Add(rec); err != nil {
			return nil, err
		}
	}
	return b.Users(), nil
}

func parseID(rec models.LineRecord, field, raw string) (int64, error) {
	if !isDigits(raw) {
		return 0, &ValidationError{Line: rec.Line, Field: field, Value: raw, Err: errNotDigits}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Line: rec.Line, Field: field, Value: raw, Err: err}
	}
	return id, nil
}

func parseDecimal(rec models.LineRecord) (decimal.Decimal, error) {
	if rec.ProductValue == "" {
		return decimal.Zero, &ValidationError{
			Line: rec.Line, Field: FieldProductValue, Value: rec.ProductValue, Err: errors.New("empty value"),
		}
	}
	d, err := decimal.NewFromString(rec.ProductValue)
	if err != nil {
		return decimal.Zero, &ValidationError{Line: rec.Line, Field: FieldProductValue, Value: rec.ProductValue, Err: err}
	}
	return d, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
