package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Product — товар каталога.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	Description string
}

// NewProduct обрезает пробелы в имени и описании и разбирает цену из строки.
// Отрицательная цена не отклоняется: поведение исходной версии сохранено
// намеренно, см. DESIGN.md.
func NewProduct(name, price, description string) (Product, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return Product{}, fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}

	return Product{
		Name:        strings.TrimSpace(name),
		Price:       parsed,
		Description: strings.TrimSpace(description),
	}, nil
}

func (p Product) String() string {
	return fmt.Sprintf("Product(%s, %.2f)", p.Name, p.Price)
}
