package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository создаёт PostgreSQL-реализацию AnalyticsRepository.
// Все запросы только читают и безопасны при параллельных записях: заказ
// с частью позиций не наблюдается благодаря транзакционной вставке.
func NewAnalyticsRepository(store *Store) domain.AnalyticsRepository {
	return &analyticsRepository{db: store.DB()}
}

// Top5ClientsByOrders считает заказы клиентов, включая нулевые, и
// возвращает первую пятёрку.
func (r *analyticsRepository) Top5ClientsByOrders() ([]domain.ClientOrderCount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.name, c.email, COUNT(o.id) AS orders_count
		FROM clients c
		LEFT JOIN orders o ON o.client_id = c.id
		GROUP BY c.id
		ORDER BY orders_count DESC, c.name ASC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("query top clients by orders: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ClientOrderCount, 0, 5)
	for rows.Next() {
		var row domain.ClientOrderCount
		if err := rows.Scan(&row.Name, &row.Email, &row.Orders); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranking rows: %w", err)
	}

	return result, nil
}

// Top5ClientsByItems суммирует купленные позиции клиентов и возвращает
// первую пятёрку.
func (r *analyticsRepository) Top5ClientsByItems() ([]domain.ClientItemCount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.name, c.email, COALESCE(SUM(oi.quantity), 0) AS items_count
		FROM clients c
		LEFT JOIN orders o ON o.client_id = c.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY c.id
		ORDER BY items_count DESC, c.name ASC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("query top clients by items: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ClientItemCount, 0, 5)
	for rows.Next() {
		var row domain.ClientItemCount
		if err := rows.Scan(&row.Name, &row.Email, &row.Items); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranking rows: %w", err)
	}

	return result, nil
}

// OrdersByDate группирует заказы по дате по возрастанию.
func (r *analyticsRepository) OrdersByDate() ([]domain.DateCount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, COUNT(*) AS orders_count
		FROM orders
		GROUP BY date
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders by date: %w", err)
	}
	defer rows.Close()

	result := make([]domain.DateCount, 0)
	for rows.Next() {
		var row domain.DateCount
		if err := rows.Scan(&row.Date, &row.Orders); err != nil {
			return nil, fmt.Errorf("scan date row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate date rows: %w", err)
	}

	return result, nil
}

var _ domain.AnalyticsRepository = (*analyticsRepository)(nil)
