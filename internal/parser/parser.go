// Package parser читает файл заказов в формате фиксированной ширины и
// превращает каждую строку в models.LineRecord.
//
// Поля извлекаются по байтовым смещениям:
//
//	userId        0..10
//	userName     10..55
//	orderId      55..65
//	productId    65..75
//	productValue 75..87
//	purchaseDate 87..95
//
// Строка короче 95 байт считается структурно некорректной.
package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/magabrotheeeer/order-normalizer/internal/models"
)

type field struct {
	start  int
	length int
}

var (
	userIDField       = field{start: 0, length: 10}
	userNameField     = field{start: 10, length: 45}
	orderIDField      = field{start: 55, length: 10}
	productIDField    = field{start: 65, length: 10}
	productValueField = field{start: 75, length: 12}
	purchaseDateField = field{start: 87, length: 8}
)

// LineLength задаёт минимальную длину строки в байтах.
const LineLength = 95

// DefaultMaxLineSize ограничивает длину строки, если WithMaxLineSize не задан.
const DefaultMaxLineSize = 1 << 20

// Parser разбирает поток строк фиксированной ширины.
type Parser struct {
	charset     encoding.Encoding
	maxLineSize int
}

// Option настраивает Parser.
type Option func(*Parser)

// WithCharset задаёт кодировку текстовых полей. Поддерживаются
// "iso-8859-1" (по умолчанию) и "utf-8".
func WithCharset(name string) (Option, error) {
	switch strings.ToLower(name) {
	case "", "iso-8859-1", "latin1":
		return func(p *Parser) { p.charset = charmap.ISO8859_1 }, nil
	case "utf-8", "utf8":
		return func(p *Parser) { p.charset = nil }, nil
	default:
		return nil, fmt.Errorf("parser.WithCharset: unsupported charset %q", name)
	}
}

// WithMaxLineSize задаёт максимальную длину строки в байтах вместе с
// переводом строки. Неположительное значение оставляет DefaultMaxLineSize,
// значения меньше LineLength+2 поднимаются до него.
func WithMaxLineSize(n int) Option {
	return func(p *Parser) {
		if n <= 0 {
			return
		}
		p.maxLineSize = max(n, LineLength+2)
	}
}

// New создаёт Parser. По умолчанию текстовые поля читаются как ISO-8859-1.
func New(opts ...Option) *Parser {
	p := &Parser{charset: charmap.ISO8859_1, maxLineSize: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scan читает r построчно и вызывает fn для каждой записи.
// Разбор прекращается на первой ошибке: структурной, ошибке чтения,
// ошибке fn или отмене ctx. Конец потока ошибкой не является.
func (p *Parser) Scan(ctx context.Context, r io.Reader, fn func(models.LineRecord) error) error {
	const op = "parser.Scan"

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(4096, p.maxLineSize)), p.maxLineSize)

	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		line++

		rec, err := p.parseLine(line, scanner.Text())
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%s: %w", op, &LineTooLongError{Line: line + 1, MaxLength: p.maxLineSize})
		}
		return fmt.Errorf("%s: %w", op, &ReadError{Line: line, Err: err})
	}
	return nil
}

// Parse читает весь поток и возвращает записи в порядке следования строк.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]models.LineRecord, error) {
	var records []models.LineRecord
	err := p.Scan(ctx, r, func(rec models.LineRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *Parser) parseLine(n int, line string) (models.LineRecord, error) {
	if len(line) < LineLength {
		return models.LineRecord{}, &StructuralError{Line: n, Length: len(line), MinLength: LineLength}
	}

	name, err := p.decode(extract(line, userNameField))
	if err != nil {
		return models.LineRecord{}, &ReadError{Line: n, Err: err}
	}

	return models.LineRecord{
		Line:         n,
		UserID:       extract(line, userIDField),
		UserName:     name,
		OrderID:      extract(line, orderIDField),
		ProductID:    extract(line, productIDField),
		ProductValue: extract(line, productValueField),
		PurchaseDate: extract(line, purchaseDateField),
	}, nil
}

func (p *Parser) decode(s string) (string, error) {
	if p.charset == nil {
		return s, nil
	}
	return p.charset.NewDecoder().String(s)
}

// extract возвращает поле без пробелов по краям, не выходя за конец строки.
func extract(line string, f field) string {
	if f.start >= len(line) {
		return ""
	}
	end := min(f.start+f.length, len(line))
	return strings.TrimSpace(line[f.start:end])
}
