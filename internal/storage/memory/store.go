package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// Store — общее in-memory состояние всех таблиц магазина для локальной
// разработки и тестов. Репозитории разделяют один Store, потому что заказы
// ссылаются на клиентов и товары, а аналитика читает все таблицы сразу.
type Store struct {
	mu sync.RWMutex

	clients  []domain.Client
	products []domain.Product
	orders   []domain.Order

	nextClientID  int64
	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
}

// NewStore возвращает пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		nextClientID:  1,
		nextProductID: 1,
		nextOrderID:   1,
		nextItemID:    1,
	}
}

// Clients возвращает репозиторий клиентов поверх этого хранилища.
func (s *Store) Clients() domain.ClientRepository {
	return &clientRepository{store: s}
}

// Products возвращает репозиторий товаров поверх этого хранилища.
func (s *Store) Products() domain.ProductRepository {
	return &productRepository{store: s}
}

// Orders возвращает репозиторий заказов поверх этого хранилища.
func (s *Store) Orders() domain.OrderRepository {
	return &orderRepository{store: s}
}

// Analytics возвращает аналитические выборки поверх этого хранилища.
func (s *Store) Analytics() domain.AnalyticsRepository {
	return &analyticsRepository{store: s}
}

func (s *Store) productByID(id int64) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) clientByID(id int64) (domain.Client, bool) {
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}
