// Package validate настраивает validator для входящих запросов.
package validate

import (
	"reflect"
	"time"

	"github.com/go-playground/validator"
)

// New возвращает validator, который называет поля по тегу query
// и понимает тег datetime=<layout>.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("query"); name != "" {
			return name
		}
		return fld.Name
	})
	// Ошибка возможна только для пустого или зарезервированного тега.
	_ = v.RegisterValidation("datetime", isDatetime)
	return v
}

func isDatetime(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := time.Parse(fl.Param(), fl.Field().String())
	return err == nil
}
