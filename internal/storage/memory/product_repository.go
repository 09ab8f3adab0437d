package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// productRepository — in-memory реализация ProductRepository.
type productRepository struct {
	store *Store
}

// NewProductRepository возвращает репозиторий товаров поверх store.
func NewProductRepository(store *Store) domain.ProductRepository {
	return store.Products()
}

// Create сохраняет товар. Цена записывается как есть.
func (r *productRepository) Create(product domain.Product) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextProductID
	s.nextProductID++
	s.products = append(s.products, product)
	return product.ID, nil
}

// List возвращает товары, отсортированные по имени.
func (r *productRepository) List() ([]domain.ProductSummary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ProductSummary, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, domain.ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
