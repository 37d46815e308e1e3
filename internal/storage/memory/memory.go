// Package memory реализует хранилище нормализованных заказов в памяти.
//
// Содержимое хранится как неизменяемый снимок. Load собирает новый снимок
// целиком и подменяет указатель атомарно, поэтому читатели видят либо
// старое, либо новое состояние, но никогда их смесь. Запросы не берут
// блокировок и не мешают друг другу.
package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/magabrotheeeer/order-normalizer/internal/models"
)

type snapshot struct {
	users []models.User
}

// Storage хранит текущий набор пользователей.
type Storage struct {
	current atomic.Pointer[snapshot]
}

// New создаёт пустое хранилище.
func New() *Storage {
	s := &Storage{}
	s.current.Store(&snapshot{})
	return s
}

// Load заменяет всё содержимое хранилища. Пользователи копируются, поэтому
// дальнейшие изменения users вызывающей стороной хранилище не затрагивают.
// Повторяющийся UserID заменяет предыдущую запись на её же позиции.
func (s *Storage) Load(_ context.Context, users []models.User) error {
	next := &snapshot{users: make([]models.User, 0, len(users))}
	pos := make(map[int64]int, len(users))
	for _, u := range users {
		if i, ok := pos[u.UserID]; ok {
			next.users[i] = u.Clone()
			continue
		}
		pos[u.UserID] = len(next.users)
		next.users = append(next.users, u.Clone())
	}
	s.current.Store(next)
	return nil
}

// FindAll возвращает копии всех пользователей со всеми заказами.
func (s *Storage) FindAll(_ context.Context) ([]models.User, error) {
	snap := s.current.Load()
	out := make([]models.User, 0, len(snap.users))
	for _, u := range snap.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

// FindByOrderID возвращает пользователей, у которых есть заказ с orderID.
// В каждой копии остаются только заказы с этим идентификатором.
func (s *Storage) FindByOrderID(_ context.Context, orderID int64) ([]models.User, error) {
	return s.filter(func(o models.Order) bool {
		return o.OrderID == orderID
	}), nil
}

// FindByDateRange возвращает пользователей, у которых есть заказы с датой в
// промежутке [start, end]. Отсутствующая граница не ограничивает промежуток.
// В каждой копии остаются только заказы из промежутка. Без обеих границ
// результат совпадает с FindAll.
func (s *Storage) FindByDateRange(ctx context.Context, start, end *time.Time) ([]models.User, error) {
	if start == nil && end == nil {
		return s.FindAll(ctx)
	}
	start, end = calendarDate(start), calendarDate(end)
	return s.filter(func(o models.Order) bool {
		return InDateRange(o.Date, start, end)
	}), nil
}

// InDateRange сообщает, попадает ли дата в промежуток с включёнными границами.
func InDateRange(date time.Time, start, end *time.Time) bool {
	if start != nil && date.Before(*start) {
		return false
	}
	if end != nil && date.After(*end) {
		return false
	}
	return true
}

// calendarDate отбрасывает время суток и зону, оставляя календарную дату в UTC.
func calendarDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}

func (s *Storage) filter(keep func(models.Order) bool) []models.User {
	snap := s.current.Load()
	out := make([]models.User, 0)
	for _, u := range snap.users {
		c := u.CloneWithOrders(keep)
		if len(c.Orders) == 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}
