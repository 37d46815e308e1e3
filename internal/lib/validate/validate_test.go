package validate

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct {
	OrderID string `query:"order_id" validate:"omitempty,number"`
	Date    string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Plain   string `validate:"omitempty,datetime=20060102"`
}

func TestNew(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		in         query
		wantFields []string
	}{
		{name: "empty is valid", in: query{}},
		{name: "valid values", in: query{OrderID: "0000000123", Date: "2021-12-01", Plain: "20211201"}},
		{name: "signed order id", in: query{OrderID: "-1"}, wantFields: []string{"order_id"}},
		{name: "decimal order id", in: query{OrderID: "1.5"}, wantFields: []string{"order_id"}},
		{name: "wrong date layout", in: query{Date: "01-12-2021"}, wantFields: []string{"date"}},
		{name: "impossible date", in: query{Date: "2021-02-30"}, wantFields: []string{"date"}},
		{name: "field name without query tag", in: query{Plain: "2021-12-01"}, wantFields: []string{"Plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)

			var fields []string
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
