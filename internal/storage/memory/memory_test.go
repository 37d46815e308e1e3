package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/order-normalizer/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func order(id int64, date time.Time, values ...string) models.Order {
	o := models.Order{OrderID: id, Date: date, Total: decimal.Zero}
	for i, v := range values {
		d := decimal.RequireFromString(v)
		o.Products = append(o.Products, models.Product{ProductID: int64(i + 1), Value: d})
		o.Total = o.Total.Add(d)
	}
	return o
}

func fixture() []models.User {
	return []models.User{
		{UserID: 1, Name: "Zarelli", Orders: []models.Order{
			order(123, day(2021, time.December, 1), "512.24", "512.24"),
			order(124, day(2021, time.December, 5), "10.00"),
		}},
		{UserID: 2, Name: "Medeiros", Orders: []models.Order{
			order(12345, day(2020, time.December, 1), "256.24"),
			order(123, day(2020, time.November, 30), "1.00"),
		}},
		{UserID: 3, Name: "Batz", Orders: []models.Order{
			order(798, day(2021, time.November, 16), "1578.57"),
		}},
	}
}

func loaded(t *testing.T) *Storage {
	t.Helper()
	s := New()
	require.NoError(t, s.Load(context.Background(), fixture()))
	return s
}

func TestStorage_EmptyLoad(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.Load(context.Background(), nil))

	users, err := s.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestStorage_LoadReplacesEverything(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.Load(context.Background(), []models.User{
		{UserID: 9, Name: "Only", Orders: []models.Order{order(1, day(2022, time.January, 1), "1")}},
	}))

	users, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(9), users[0].UserID)
	assert.Len(t, users[0].Orders, 1)
}

func TestStorage_FindAllPreservesOrder(t *testing.T) {
	s := loaded(t)

	users, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{users[0].UserID, users[1].UserID, users[2].UserID})
	assert.Len(t, users[0].Orders, 2)
}

func TestStorage_ReturnedCopiesAreIndependent(t *testing.T) {
	s := loaded(t)

	users, err := s.FindAll(context.Background())
	require.NoError(t, err)
	users[0].Name = "changed"
	users[0].Orders[0].Products[0].ProductID = 999
	users[0].Orders = users[0].Orders[:0]

	again, err := s.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Zarelli", again[0].Name)
	require.Len(t, again[0].Orders, 2)
	assert.Equal(t, int64(1), again[0].Orders[0].Products[0].ProductID)
}

func TestStorage_LoadCopiesInput(t *testing.T) {
	input := fixture()
	s := New()
	require.NoError(t, s.Load(context.Background(), input))

	input[0].Orders[0].Products[0].ProductID = 999

	users, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, users)
	assert.Equal(t, int64(1), users[0].UserID)
	assert.Equal(t, int64(1), users[0].Orders[0].Products[0].ProductID)
}

func TestStorage_FindByOrderID(t *testing.T) {
	s := loaded(t)

	tests := []struct {
		name      string
		orderID   int64
		wantUsers []int64
	}{
		{name: "order shared by two users", orderID: 123, wantUsers: []int64{1, 2}},
		{name: "single user", orderID: 798, wantUsers: []int64{3}},
		{name: "unknown order", orderID: 42, wantUsers: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := s.FindByOrderID(context.Background(), tt.orderID)
			require.NoError(t, err)
			require.NotNil(t, users)

			got := make([]int64, 0, len(users))
			for _, u := range users {
				got = append(got, u.UserID)
				require.NotEmpty(t, u.Orders)
				for _, o := range u.Orders {
					assert.Equal(t, tt.orderID, o.OrderID)
				}
			}
			assert.Equal(t, tt.wantUsers, got)
		})
	}
}

func TestStorage_FindByOrderIDKeepsOrderContents(t *testing.T) {
	s := loaded(t)

	users, err := s.FindByOrderID(context.Background(), 123)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Len(t, users[0].Orders, 1)
	assert.Equal(t, "Zarelli", users[0].Name)
	assert.Equal(t, "1024.48", models.FormatDecimal(users[0].Orders[0].Total))
	assert.Len(t, users[0].Orders[0].Products, 2)
}

func TestStorage_FindByDateRange(t *testing.T) {
	s := loaded(t)

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name       string
		start, end *time.Time
		wantOrders map[int64][]int64
	}{
		{
			name:       "inclusive at both bounds",
			start:      ptr(day(2021, time.December, 1)),
			end:        ptr(day(2021, time.December, 5)),
			wantOrders: map[int64][]int64{1: {123, 124}},
		},
		{
			name:       "only start",
			start:      ptr(day(2021, time.November, 16)),
			wantOrders: map[int64][]int64{1: {123, 124}, 3: {798}},
		},
		{
			name:       "only end",
			end:        ptr(day(2020, time.December, 1)),
			wantOrders: map[int64][]int64{2: {12345, 123}},
		},
		{
			name:       "single day",
			start:      ptr(day(2020, time.November, 30)),
			end:        ptr(day(2020, time.November, 30)),
			wantOrders: map[int64][]int64{2: {123}},
		},
		{
			name:       "bounds with time of day",
			start:      ptr(time.Date(2021, time.December, 5, 23, 59, 0, 0, time.UTC)),
			end:        ptr(time.Date(2021, time.December, 5, 0, 1, 0, 0, time.UTC)),
			wantOrders: map[int64][]int64{1: {124}},
		},
		{
			name:       "inverted range",
			start:      ptr(day(2022, time.January, 1)),
			end:        ptr(day(2021, time.January, 1)),
			wantOrders: map[int64][]int64{},
		},
		{
			name:       "nothing in range",
			start:      ptr(day(2030, time.January, 1)),
			wantOrders: map[int64][]int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := s.FindByDateRange(context.Background(), tt.start, tt.end)
			require.NoError(t, err)
			require.NotNil(t, users)

			got := map[int64][]int64{}
			for _, u := range users {
				require.NotEmpty(t, u.Orders)
				for _, o := range u.Orders {
					got[u.UserID] = append(got[u.UserID], o.OrderID)
				}
			}
			assert.Equal(t, tt.wantOrders, got)
		})
	}
}

func TestStorage_FindByDateRangeWithoutBoundsEqualsFindAll(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.Load(context.Background(), append(fixture(), models.User{UserID: 4, Name: "No Orders"})))

	all, err := s.FindAll(context.Background())
	require.NoError(t, err)
	ranged, err := s.FindByDateRange(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, all, ranged)
}

func TestStorage_LoadDuplicateUserIDReplaces(t *testing.T) {
	s := New()
	require.NoError(t, s.Load(context.Background(), []models.User{
		{UserID: 1, Name: "first"},
		{UserID: 2, Name: "second"},
		{UserID: 1, Name: "replaced"},
	}))

	users, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "replaced", users[0].Name)
	assert.Equal(t, "second", users[1].Name)
}

func TestStorage_ReadersNeverSeeMixedState(t *testing.T) {
	build := func(marker int64, n int) []models.User {
		users := make([]models.User, 0, n)
		for i := 0; i < n; i++ {
			users = append(users, models.User{
				UserID: marker*1000 + int64(i),
				Orders: []models.Order{order(marker, day(2021, time.January, 1), "1")},
			})
		}
		return users
	}
	a, b := build(1, 50), build(2, 80)

	s := New()
	require.NoError(t, s.Load(context.Background(), a))

	ctx := context.Background()
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			next := a
			if i%2 == 0 {
				next = b
			}
			_ = s.Load(ctx, next)
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				users, _ := s.FindAll(ctx)
				if len(users) == 0 {
					t.Error("empty snapshot observed")
					return
				}
				marker := users[0].Orders[0].OrderID
				want := map[int64]int{1: 50, 2: 80}[marker]
				if len(users) != want {
					t.Errorf("mixed snapshot: marker %d with %d users", marker, len(users))
					return
				}
				for _, u := range users {
					if u.Orders[0].OrderID != marker {
						t.Errorf("mixed snapshot: user %d has order %d, want %d", u.UserID, u.Orders[0].OrderID, marker)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
