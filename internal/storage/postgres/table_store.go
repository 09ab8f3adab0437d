package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// Запросы выгрузки фиксированы на таблицу: имя таблицы не собирается из
// входной строки ни при каком обращении.
var dumpQueries = map[domain.Table]string{
	domain.TableClients:    `SELECT id, name, email, phone, address FROM clients ORDER BY id ASC`,
	domain.TableProducts:   `SELECT id, name, price, COALESCE(description, '') FROM products ORDER BY id ASC`,
	domain.TableOrders:     `SELECT id, client_id, date, total_cost FROM orders ORDER BY id ASC`,
	domain.TableOrderItems: `SELECT id, order_id, product_id, quantity, unit_price FROM order_items ORDER BY id ASC`,
}

// DumpTable возвращает все строки таблицы в порядке колонок Columns.
func (s *Store) DumpTable(t domain.Table) ([][]any, error) {
	query, ok := dumpQueries[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTable, t)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dump table %s: %w", t, err)
	}
	defer rows.Close()

	var result [][]any
	for rows.Next() {
		row, err := scanTableRow(t, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", t, err)
	}

	return result, nil
}

func scanTableRow(t domain.Table, rows *sql.Rows) ([]any, error) {
	switch t {
	case domain.TableClients:
		var id int64
		var name, email, phone, address string
		if err := rows.Scan(&id, &name, &email, &phone, &address); err != nil {
			return nil, err
		}
		return []any{id, name, email, phone, address}, nil
	case domain.TableProducts:
		var id int64
		var name, description string
		var price float64
		if err := rows.Scan(&id, &name, &price, &description); err != nil {
			return nil, err
		}
		return []any{id, name, price, description}, nil
	case domain.TableOrders:
		var id, clientID int64
		var date string
		var total float64
		if err := rows.Scan(&id, &clientID, &date, &total); err != nil {
			return nil, err
		}
		return []any{id, clientID, date, total}, nil
	case domain.TableOrderItems:
		var id, orderID, productID int64
		var quantity int
		var unitPrice float64
		if err := rows.Scan(&id, &orderID, &productID, &quantity, &unitPrice); err != nil {
			return nil, err
		}
		return []any{id, orderID, productID, quantity, unitPrice}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTable, t)
	}
}

// InsertTableRow вставляет одну строку. Каждая колонка проверяется по схеме
// таблицы; значения передаются параметрами и приводятся самим PostgreSQL.
// Явно заданные суррогатные ключи сохраняются как есть.
func (s *Store) InsertTableRow(t domain.Table, columns []string, values []any) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownTable, t)
	}
	if len(columns) == 0 || len(columns) != len(values) {
		return fmt.Errorf("column/value count mismatch: %d vs %d", len(columns), len(values))
	}

	known := make(map[string]bool, len(t.Columns()))
	for _, col := range t.Columns() {
		known[col] = true
	}
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		if !known[col] {
			return fmt.Errorf("unknown column %q for table %s", col, t)
		}
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		string(t), strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)
	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		switch {
		case t == domain.TableClients && isUniqueViolation(err):
			return fmt.Errorf("%w: %v", domain.ErrDuplicateEmail, err)
		case isForeignKeyViolation(err):
			return fmt.Errorf("insert into %s: foreign key violation: %w", t, err)
		default:
			return fmt.Errorf("insert into %s: %w", t, err)
		}
	}

	hasID := false
	for _, col := range columns {
		if col == "id" {
			hasID = true
			break
		}
	}
	if hasID {
		// Явный id обходит BIGSERIAL: сдвигаем последовательность, чтобы
		// следующая обычная вставка не столкнулась с импортированной строкой.
		sync := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))",
			string(t), string(t),
		)
		if _, err := s.db.ExecContext(ctx, sync); err != nil {
			return fmt.Errorf("sync %s id sequence: %w", t, err)
		}
	}

	return nil
}

var _ domain.TableStore = (*Store)(nil)
