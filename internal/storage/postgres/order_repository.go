package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// CreateWithItems создаёт заказ и его позиции в одной транзакции. Цены
// читаются внутри транзакции и фиксируются в позициях заказа; при любой
// ошибке транзакция откатывается целиком.
func (r *orderRepository) CreateWithItems(clientID int64, lines []domain.CartLine, date string, discount float64) (int64, error) {
	if err := domain.ValidateCart(lines); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Снимок цен: один запрос на каждый уникальный товар корзины.
	prices := make(map[int64]float64, len(lines))
	for _, line := range lines {
		if _, ok := prices[line.ProductID]; ok {
			continue
		}
		var price float64
		err = tx.QueryRowContext(ctx, `SELECT price FROM products WHERE id = $1`, line.ProductID).Scan(&price)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = fmt.Errorf("%w: id=%d", domain.ErrProductNotFound, line.ProductID)
			} else {
				err = fmt.Errorf("lookup product price: %w", err)
			}
			return 0, err
		}
		prices[line.ProductID] = price
	}

	var total float64
	for _, line := range lines {
		total += prices[line.ProductID] * float64(line.Quantity)
	}
	total, err = domain.ApplyDiscount(total, discount)
	if err != nil {
		return 0, err
	}

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (client_id, date, total_cost)
		VALUES ($1, $2, $3)
		RETURNING id
	`, clientID, date, total).Scan(&orderID)
	if err != nil {
		if isForeignKeyViolation(err) {
			err = fmt.Errorf("%w: id=%d", domain.ErrClientNotFound, clientID)
			return 0, err
		}
		err = fmt.Errorf("insert order: %w", err)
		return 0, err
	}

	for _, line := range lines {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, orderID, line.ProductID, line.Quantity, prices[line.ProductID]); err != nil {
			err = fmt.Errorf("insert order item: %w", err)
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create order: %w", err)
	}

	return orderID, nil
}

// Get возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, date, total_cost
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.ClientID, &order.Date, &order.TotalCost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

// PurchaseHistory агрегирует позиции заказов клиента по названию товара.
func (r *orderRepository) PurchaseHistory(clientID int64) ([]domain.PurchaseHistoryRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.name,
		       COALESCE(SUM(oi.quantity), 0) AS total_qty,
		       MAX(o.date) AS last_date
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.client_id = $1
		GROUP BY p.name
		ORDER BY total_qty DESC, last_date DESC, p.name ASC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query purchase history: %w", err)
	}
	defer rows.Close()

	result := make([]domain.PurchaseHistoryRow, 0)
	for rows.Next() {
		var row domain.PurchaseHistoryRow
		if err := rows.Scan(&row.ProductName, &row.TotalQuantity, &row.LastPurchase); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return result, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
