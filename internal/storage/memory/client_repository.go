package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// clientRepository — in-memory реализация ClientRepository.
type clientRepository struct {
	store *Store
}

// NewClientRepository возвращает репозиторий клиентов поверх store.
func NewClientRepository(store *Store) domain.ClientRepository {
	return store.Clients()
}

// Create сохраняет клиента, проверяя уникальность email.
func (r *clientRepository) Create(client domain.Client) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.clients {
		if existing.Email == client.Email {
			return 0, domain.ErrDuplicateEmail
		}
	}

	client.ID = s.nextClientID
	s.nextClientID++
	s.clients = append(s.clients, client)
	return client.ID, nil
}

// List возвращает клиентов, отсортированных по имени.
func (r *clientRepository) List() ([]domain.ClientSummary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ClientSummary, 0, len(s.clients))
	for _, c := range s.clients {
		result = append(result, domain.ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ domain.ClientRepository = (*clientRepository)(nil)
