package normalizer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/order-normalizer/internal/models"
)

func rec(line int, userID, name, orderID, productID, value, date string) models.LineRecord {
	return models.LineRecord{
		Line:         line,
		UserID:       userID,
		UserName:     name,
		OrderID:      orderID,
		ProductID:    productID,
		ProductValue: value,
		PurchaseDate: date,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_SingleLine(t *testing.T) {
	users, err := Normalize([]models.LineRecord{
		rec(1, "0000000001", "Zarelli", "0000000123", "0000000111", "00000512.24", "20211201"),
	})
	require.NoError(t, err)
	require.Len(t, users, 1)

	u := users[0]
	assert.Equal(t, int64(1), u.UserID)
	assert.Equal(t, "Zarelli", u.Name)
	require.Len(t, u.Orders, 1)

	o := u.Orders[0]
	assert.Equal(t, int64(123), o.OrderID)
	assert.Equal(t, date(2021, time.December, 1), o.Date)
	assert.True(t, decimal.RequireFromString("512.24").Equal(o.Total), "total %s", o.Total)
	require.Len(t, o.Products, 1)
	assert.Equal(t, int64(111), o.Products[0].ProductID)
	assert.True(t, decimal.RequireFromString("512.24").Equal(o.Products[0].Value))
}

func TestNormalize_SameOrderAccumulates(t *testing.T) {
	users, err := Normalize([]models.LineRecord{
		rec(1, "0000000001", "Zarelli", "0000000123", "0000000111", "00000512.24", "20211201"),
		rec(2, "0000000001", "Zarelli", "0000000123", "0000000122", "00000512.24", "20211201"),
	})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Len(t, users[0].Orders, 1)

	o := users[0].Orders[0]
	assert.Equal(t, "1024.48", models.FormatDecimal(o.Total))
	require.Len(t, o.Products, 2)
	assert.Equal(t, int64(111), o.Products[0].ProductID)
	assert.Equal(t, int64(122), o.Products[1].ProductID)
}

func TestNormalize_FirstOccurrenceWins(t *testing.T) {
	users, err := Normalize([]models.LineRecord{
		rec(1, "0000000002", "Medeiros", "0000012345", "0000000111", "256.24", "20201201"),
		rec(2, "0000000001", "Zarelli", "0000000123", "0000000111", "512.24", "20211201"),
		rec(3, "0000000002", "Medeiros Renamed", "0000012345", "0000000122", "512.24", "20201130"),
		rec(4, "0000000002", "Medeiros", "0000012346", "0000000111", "10.00", "20201205"),
		rec(5, "0000000001", "Zarelli", "0000000100", "0000000999", "1", "20211203"),
	})
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(2), users[0].UserID)
	assert.Equal(t, "Medeiros", users[0].Name)
	require.Len(t, users[0].Orders, 2)
	assert.Equal(t, int64(12345), users[0].Orders[0].OrderID)
	assert.Equal(t, date(2020, time.December, 1), users[0].Orders[0].Date)
	assert.Equal(t, "768.48", models.FormatDecimal(users[0].Orders[0].Total))
	assert.Equal(t, int64(12346), users[0].Orders[1].OrderID)

	assert.Equal(t, int64(1), users[1].UserID)
	require.Len(t, users[1].Orders, 2)
	assert.Equal(t, int64(123), users[1].Orders[0].OrderID)
	assert.Equal(t, int64(100), users[1].Orders[1].OrderID)
}

func TestNormalize_LaterDateIsNotValidated(t *testing.T) {
	users, err := Normalize([]models.LineRecord{
		rec(1, "1", "A", "10", "1", "1.00", "20220101"),
		rec(2, "1", "A", "10", "2", "2.00", "garbage"),
	})
	require.NoError(t, err)
	assert.Equal(t, date(2022, time.January, 1), users[0].Orders[0].Date)
	assert.Equal(t, "3.00", models.FormatDecimal(users[0].Orders[0].Total))
}

func TestNormalize_TotalsAreExact(t *testing.T) {
	var records []models.LineRecord
	want := decimal.Zero
	for i := 0; i < 1000; i++ {
		records = append(records, rec(i+1, "7", "Precise", "1", "1", "0.10", "20220101"))
		want = want.Add(decimal.RequireFromString("0.10"))
	}

	users, err := Normalize(records)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, u := range users {
		for _, o := range u.Orders {
			sum = sum.Add(o.Total)
			productSum := decimal.Zero
			for _, p := range o.Products {
				productSum = productSum.Add(p.Value)
			}
			assert.True(t, productSum.Equal(o.Total))
		}
	}
	assert.True(t, want.Equal(sum))
	assert.Equal(t, "100.00", models.FormatDecimal(sum))
}

func TestNormalize_Idempotent(t *testing.T) {
	records := []models.LineRecord{
		rec(1, "70", "Palmer Prosacco", "753", "3", "1836.74", "20210308"),
		rec(2, "75", "Bobbie Batz", "798", "2", "1578.57", "20211116"),
		rec(3, "70", "Palmer Prosacco", "753", "4", "618.79", "20210308"),
	}

	first, err := Normalize(records)
	require.NoError(t, err)
	second, err := Normalize(records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalize_Empty(t *testing.T) {
	users, err := Normalize(nil)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestNormalize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		record    models.LineRecord
		wantField string
		wantValue string
	}{
		{
			name:      "non digit user id",
			record:    rec(3, "00000000x1", "A", "1", "1", "1.00", "20220101"),
			wantField: FieldUserID,
			wantValue: "00000000x1",
		},
		{
			name:      "empty order id",
			record:    rec(3, "3", "C", "", "1", "1.00", "20220101"),
			wantField: FieldOrderID,
			wantValue: "",
		},
		{
			name:      "negative product id",
			record:    rec(3, "3", "C", "3", "-1", "1.00", "20220101"),
			wantField: FieldProductID,
			wantValue: "-1",
		},
		{
			name:      "malformed value",
			record:    rec(3, "3", "C", "3", "1", "12,50", "20220101"),
			wantField: FieldProductValue,
			wantValue: "12,50",
		},
		{
			name:      "currency symbol",
			record:    rec(3, "3", "C", "3", "1", "$12.50", "20220101"),
			wantField: FieldProductValue,
			wantValue: "$12.50",
		},
		{
			name:      "empty value",
			record:    rec(3, "3", "C", "3", "1", "", "20220101"),
			wantField: FieldProductValue,
			wantValue: "",
		},
		{
			name:      "bad date",
			record:    rec(3, "3", "C", "3", "1", "1.00", "20221341"),
			wantField: FieldPurchaseDate,
			wantValue: "20221341",
		},
		{
			name:      "id overflows int64",
			record:    rec(3, "99999999999999999999", "A", "1", "1", "1.00", "20220101"),
			wantField: FieldUserID,
			wantValue: "99999999999999999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := Normalize([]models.LineRecord{
				rec(1, "1", "A", "1", "1", "1.00", "20220101"),
				rec(2, "2", "B", "2", "1", "1.00", "20220101"),
				tt.record,
			})
			require.Error(t, err)
			assert.Nil(t, users)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, 3, vErr.Line)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantValue, vErr.Value)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestBuilder_FailedAddLeavesStateUntouched(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(rec(1, "1", "A", "1", "1", "1.00", "20220101")))

	err := b.Add(rec(2, "2", "B", "2", "1", "1.00", "not-a-date"))
	require.Error(t, err)

	users := b.Users()
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].UserID)
	assert.Equal(t, 1, b.Lines())
}
