package memory

import (
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// orderRepository — in-memory реализация OrderRepository.
type orderRepository struct {
	store *Store
}

// NewOrderRepository возвращает репозиторий заказов поверх store. Клиенты и
// товары для заказа должны жить в том же store.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return store.Orders()
}

// CreateWithItems создаёт заказ вместе с позициями. Состояние меняется только
// после того, как все проверки и расчёт суммы прошли, поэтому частичный заказ
// наблюдаться не может.
func (r *orderRepository) CreateWithItems(clientID int64, lines []domain.CartLine, date string, discount float64) (int64, error) {
	if err := domain.ValidateCart(lines); err != nil {
		return 0, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clientByID(clientID); !ok {
		return 0, fmt.Errorf("%w: id=%d", domain.ErrClientNotFound, clientID)
	}

	// Снимок цен: одинаковые товары в корзине получают одну и ту же цену.
	prices := make(map[int64]float64, len(lines))
	for _, line := range lines {
		if _, ok := prices[line.ProductID]; ok {
			continue
		}
		product, ok := s.productByID(line.ProductID)
		if !ok {
			return 0, fmt.Errorf("%w: id=%d", domain.ErrProductNotFound, line.ProductID)
		}
		prices[line.ProductID] = product.Price
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: prices[line.ProductID],
		})
	}

	total, err := domain.ApplyDiscount(domain.OrderTotal(items), discount)
	if err != nil {
		return 0, err
	}

	orderID := s.nextOrderID
	s.nextOrderID++
	for i := range items {
		items[i].ID = s.nextItemID
		items[i].OrderID = orderID
		s.nextItemID++
	}

	s.orders = append(s.orders, domain.Order{
		ID:        orderID,
		ClientID:  clientID,
		Date:      date,
		TotalCost: total,
		Items:     items,
	})

	return orderID, nil
}

// Get возвращает заказ по идентификатору или ErrOrderNotFound.
func (r *orderRepository) Get(id int64) (domain.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == id {
			// Копируем срез позиций, чтобы избежать мутаций извне.
			items := make([]domain.OrderItem, len(order.Items))
			copy(items, order.Items)
			order.Items = items
			return order, nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

// PurchaseHistory агрегирует покупки клиента по названию товара.
func (r *orderRepository) PurchaseHistory(clientID int64) ([]domain.PurchaseHistoryRow, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		qty      int
		lastDate string
	}
	byProduct := make(map[string]*acc)

	for _, order := range s.orders {
		if order.ClientID != clientID {
			continue
		}
		for _, item := range order.Items {
			name := ""
			if product, ok := s.productByID(item.ProductID); ok {
				name = product.Name
			}
			a, ok := byProduct[name]
			if !ok {
				a = &acc{}
				byProduct[name] = a
			}
			a.qty += item.Quantity
			// Даты формата YYYY-MM-DD сравниваются лексикографически.
			if order.Date > a.lastDate {
				a.lastDate = order.Date
			}
		}
	}

	result := make([]domain.PurchaseHistoryRow, 0, len(byProduct))
	for name, a := range byProduct {
		result = append(result, domain.PurchaseHistoryRow{
			ProductName:   name,
			TotalQuantity: a.qty,
			LastPurchase:  a.lastDate,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalQuantity != result[j].TotalQuantity {
			return result[i].TotalQuantity > result[j].TotalQuantity
		}
		if result[i].LastPurchase != result[j].LastPurchase {
			return result[i].LastPurchase > result[j].LastPurchase
		}
		return result[i].ProductName < result[j].ProductName
	})

	return result, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
