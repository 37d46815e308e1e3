package normalizer

import (
	"errors"
	"fmt"
)

// ErrValidation означает, что значение поля строки не удалось преобразовать.
var ErrValidation = errors.New("invalid field value")

// ValidationError описывает некорректное значение конкретного поля.
type ValidationError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибку с ErrValidation через errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
