package memory

import (
	"fmt"
	"strconv"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// DumpTable возвращает все строки таблицы в порядке колонок Columns.
func (s *Store) DumpTable(t domain.Table) ([][]any, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTable, t)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows [][]any
	switch t {
	case domain.TableClients:
		for _, c := range s.clients {
			rows = append(rows, []any{c.ID, c.Name, c.Email, c.Phone, c.Address})
		}
	case domain.TableProducts:
		for _, p := range s.products {
			rows = append(rows, []any{p.ID, p.Name, p.Price, p.Description})
		}
	case domain.TableOrders:
		for _, o := range s.orders {
			rows = append(rows, []any{o.ID, o.ClientID, o.Date, o.TotalCost})
		}
	case domain.TableOrderItems:
		for _, o := range s.orders {
			for _, item := range o.Items {
				rows = append(rows, []any{item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice})
			}
		}
	}

	return rows, nil
}

// InsertTableRow вставляет одну строку, приводя значения к типам колонок.
// Суррогатные ключи переносятся как есть; счётчики ID сдвигаются, чтобы
// последующие вставки не конфликтовали с импортированными строками.
func (s *Store) InsertTableRow(t domain.Table, columns []string, values []any) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownTable, t)
	}
	if len(columns) != len(values) {
		return fmt.Errorf("column/value count mismatch: %d vs %d", len(columns), len(values))
	}

	row := make(map[string]any, len(columns))
	for i, col := range columns {
		row[col] = values[i]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch t {
	case domain.TableClients:
		return s.insertClientRow(row)
	case domain.TableProducts:
		return s.insertProductRow(row)
	case domain.TableOrders:
		return s.insertOrderRow(row)
	case domain.TableOrderItems:
		return s.insertOrderItemRow(row)
	}
	return nil
}

func (s *Store) insertClientRow(row map[string]any) error {
	email, err := asString(row["email"])
	if err != nil {
		return fmt.Errorf("clients.email: %w", err)
	}
	for _, existing := range s.clients {
		if existing.Email == email {
			return domain.ErrDuplicateEmail
		}
	}

	client := domain.Client{Email: email}
	if client.ID, err = rowID(row, s.nextClientID); err != nil {
		return fmt.Errorf("clients.id: %w", err)
	}
	if client.Name, err = asString(row["name"]); err != nil {
		return fmt.Errorf("clients.name: %w", err)
	}
	if client.Phone, err = asString(row["phone"]); err != nil {
		return fmt.Errorf("clients.phone: %w", err)
	}
	if client.Address, err = asString(row["address"]); err != nil {
		return fmt.Errorf("clients.address: %w", err)
	}

	s.clients = append(s.clients, client)
	if client.ID >= s.nextClientID {
		s.nextClientID = client.ID + 1
	}
	return nil
}

func (s *Store) insertProductRow(row map[string]any) error {
	var product domain.Product
	var err error
	if product.ID, err = rowID(row, s.nextProductID); err != nil {
		return fmt.Errorf("products.id: %w", err)
	}
	if product.Name, err = asString(row["name"]); err != nil {
		return fmt.Errorf("products.name: %w", err)
	}
	if product.Price, err = asFloat(row["price"]); err != nil {
		return fmt.Errorf("products.price: %w", err)
	}
	if product.Description, err = asString(row["description"]); err != nil {
		return fmt.Errorf("products.description: %w", err)
	}

	s.products = append(s.products, product)
	if product.ID >= s.nextProductID {
		s.nextProductID = product.ID + 1
	}
	return nil
}

func (s *Store) insertOrderRow(row map[string]any) error {
	var order domain.Order
	var err error
	if order.ID, err = rowID(row, s.nextOrderID); err != nil {
		return fmt.Errorf("orders.id: %w", err)
	}
	if order.ClientID, err = asInt64(row["client_id"]); err != nil {
		return fmt.Errorf("orders.client_id: %w", err)
	}
	if order.Date, err = asString(row["date"]); err != nil {
		return fmt.Errorf("orders.date: %w", err)
	}
	if order.TotalCost, err = asFloat(row["total_cost"]); err != nil {
		return fmt.Errorf("orders.total_cost: %w", err)
	}

	if _, ok := s.clientByID(order.ClientID); !ok {
		return fmt.Errorf("%w: id=%d", domain.ErrClientNotFound, order.ClientID)
	}

	s.orders = append(s.orders, order)
	if order.ID >= s.nextOrderID {
		s.nextOrderID = order.ID + 1
	}
	return nil
}

func (s *Store) insertOrderItemRow(row map[string]any) error {
	var item domain.OrderItem
	var err error
	if item.ID, err = rowID(row, s.nextItemID); err != nil {
		return fmt.Errorf("order_items.id: %w", err)
	}
	if item.OrderID, err = asInt64(row["order_id"]); err != nil {
		return fmt.Errorf("order_items.order_id: %w", err)
	}
	if item.ProductID, err = asInt64(row["product_id"]); err != nil {
		return fmt.Errorf("order_items.product_id: %w", err)
	}
	qty, err := asInt64(row["quantity"])
	if err != nil {
		return fmt.Errorf("order_items.quantity: %w", err)
	}
	item.Quantity = int(qty)
	if item.UnitPrice, err = asFloat(row["unit_price"]); err != nil {
		return fmt.Errorf("order_items.unit_price: %w", err)
	}

	if _, ok := s.productByID(item.ProductID); !ok {
		return fmt.Errorf("%w: id=%d", domain.ErrProductNotFound, item.ProductID)
	}

	for i := range s.orders {
		if s.orders[i].ID == item.OrderID {
			s.orders[i].Items = append(s.orders[i].Items, item)
			if item.ID >= s.nextItemID {
				s.nextItemID = item.ID + 1
			}
			return nil
		}
	}
	return fmt.Errorf("%w: id=%d", domain.ErrOrderNotFound, item.OrderID)
}

func rowID(row map[string]any, fallback int64) (int64, error) {
	v, ok := row["id"]
	if !ok || v == nil {
		return fallback, nil
	}
	return asInt64(v)
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return fmt.Sprint(v), nil
	}
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

var _ domain.TableStore = (*Store)(nil)
