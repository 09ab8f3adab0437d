package domain

import (
	"errors"
	"fmt"
)

// Table — закрытый перечень таблиц, доступных для массовой выгрузки и
// загрузки. Имя таблицы никогда не подставляется в запрос из произвольной
// строки: неизвестное имя отклоняется типизированной ошибкой.
type Table string

const (
	TableClients    Table = "clients"
	TableProducts   Table = "products"
	TableOrders     Table = "orders"
	TableOrderItems Table = "order_items"
)

// ErrUnknownTable возвращается при обращении к таблице вне перечня.
var ErrUnknownTable = errors.New("unknown table")

// Tables перечисляет все известные таблицы в порядке объявления схемы.
func Tables() []Table {
	return []Table{TableClients, TableProducts, TableOrders, TableOrderItems}
}

// Valid проверяет, что таблица относится к известным значениям.
func (t Table) Valid() bool {
	switch t {
	case TableClients, TableProducts, TableOrders, TableOrderItems:
		return true
	default:
		return false
	}
}

// Columns возвращает колонки таблицы в объявленном порядке.
func (t Table) Columns() []string {
	switch t {
	case TableClients:
		return []string{"id", "name", "email", "phone", "address"}
	case TableProducts:
		return []string{"id", "name", "price", "description"}
	case TableOrders:
		return []string{"id", "client_id", "date", "total_cost"}
	case TableOrderItems:
		return []string{"id", "order_id", "product_id", "quantity", "unit_price"}
	default:
		return nil
	}
}

// ParseTable разбирает имя таблицы, отклоняя неизвестные значения.
func ParseTable(name string) (Table, error) {
	t := Table(name)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// TableStore — обобщённый доступ к таблицам для массовой выгрузки и загрузки.
// Реализуется каждым хранилищем поверх его собственных механизмов вставки.
type TableStore interface {
	// DumpTable возвращает все строки таблицы в порядке колонок Columns.
	DumpTable(t Table) ([][]any, error)
	// InsertTableRow вставляет одну строку с указанными колонками.
	// Приведение типов — не шире того, что делает сама вставка хранилища.
	InsertTableRow(t Table, columns []string, values []any) error
}
