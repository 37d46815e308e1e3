package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural означает, что строка не соответствует формату фиксированной ширины.
	ErrStructural = errors.New("invalid line structure")
	// ErrLineTooLong означает, что строка длиннее допустимого размера буфера.
	ErrLineTooLong = errors.New("line too long")
	// ErrRead означает, что входной поток не удалось прочитать.
	ErrRead = errors.New("failed to read input")
)

// StructuralError описывает строку короче минимально допустимой длины.
type StructuralError struct {
	Line      int
	Length    int
	MinLength int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %d: invalid line length: %d. Expected: %d", e.Line, e.Length, e.MinLength)
}

// Is позволяет сравнивать ошибку с ErrStructural через errors.Is.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// LineTooLongError описывает строку, превысившую максимальный размер.
// Относится к структурным ошибкам: файл отклоняется, а не считается непрочитанным.
type LineTooLongError struct {
	Line      int
	MaxLength int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("line %d: line exceeds maximum length of %d bytes", e.Line, e.MaxLength)
}

// Is позволяет сравнивать ошибку с ErrLineTooLong и ErrStructural через errors.Is.
func (e *LineTooLongError) Is(target error) bool {
	return target == ErrLineTooLong || target == ErrStructural
}

// ReadError оборачивает ошибку чтения входного потока.
type ReadError struct {
	Line int // номер последней успешно прочитанной строки
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read failed after line %d: %v", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибку с ErrRead через errors.Is.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}
