package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

const topClientsLimit = 5

// analyticsRepository — in-memory реализация AnalyticsRepository.
type analyticsRepository struct {
	store *Store
}

// NewAnalyticsRepository возвращает аналитические выборки поверх store.
func NewAnalyticsRepository(store *Store) domain.AnalyticsRepository {
	return store.Analytics()
}

// Top5ClientsByOrders считает заказы каждого клиента, включая клиентов без
// заказов (ноль), и возвращает первую пятёрку.
func (r *analyticsRepository) Top5ClientsByOrders() ([]domain.ClientOrderCount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int, len(s.clients))
	for _, order := range s.orders {
		counts[order.ClientID]++
	}

	result := make([]domain.ClientOrderCount, 0, len(s.clients))
	for _, client := range s.clients {
		result = append(result, domain.ClientOrderCount{
			Name:   client.Name,
			Email:  client.Email,
			Orders: counts[client.ID],
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Orders != result[j].Orders {
			return result[i].Orders > result[j].Orders
		}
		return result[i].Name < result[j].Name
	})

	if len(result) > topClientsLimit {
		result = result[:topClientsLimit]
	}
	return result, nil
}

// Top5ClientsByItems суммирует количество купленных позиций по клиентам.
func (r *analyticsRepository) Top5ClientsByItems() ([]domain.ClientItemCount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[int64]int, len(s.clients))
	for _, order := range s.orders {
		for _, item := range order.Items {
			sums[order.ClientID] += item.Quantity
		}
	}

	result := make([]domain.ClientItemCount, 0, len(s.clients))
	for _, client := range s.clients {
		result = append(result, domain.ClientItemCount{
			Name:  client.Name,
			Email: client.Email,
			Items: sums[client.ID],
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Items != result[j].Items {
			return result[i].Items > result[j].Items
		}
		return result[i].Name < result[j].Name
	})

	if len(result) > topClientsLimit {
		result = result[:topClientsLimit]
	}
	return result, nil
}

// OrdersByDate группирует заказы по дате с сортировкой по возрастанию.
func (r *analyticsRepository) OrdersByDate() ([]domain.DateCount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, order := range s.orders {
		counts[order.Date]++
	}

	result := make([]domain.DateCount, 0, len(counts))
	for date, n := range counts {
		result = append(result, domain.DateCount{Date: date, Orders: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result, nil
}

var _ domain.AnalyticsRepository = (*analyticsRepository)(nil)
