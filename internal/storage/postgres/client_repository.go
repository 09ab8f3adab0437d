package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

const opTimeout = 5 * time.Second

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository создаёт PostgreSQL-реализацию ClientRepository.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{db: store.DB()}
}

// Create вставляет клиента; повторный email транслируется в ErrDuplicateEmail.
func (r *clientRepository) Create(client domain.Client) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO clients (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, client.Name, client.Email, client.Phone, client.Address).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, client.Email)
		}
		return 0, fmt.Errorf("insert client: %w", err)
	}

	return id, nil
}

// List возвращает клиентов по имени по возрастанию.
func (r *clientRepository) List() ([]domain.ClientSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email
		FROM clients
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ClientSummary, 0)
	for rows.Next() {
		var c domain.ClientSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}

	return result, nil
}

var _ domain.ClientRepository = (*clientRepository)(nil)
