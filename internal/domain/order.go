package domain

import "fmt"

// CartLine — одна позиция корзины при оформлении заказа: товар и количество.
// Цена подставляется хранилищем в момент создания заказа.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// OrderItem — строка заказа с зафиксированной ценой.
// UnitPrice — снимок цены товара на момент оформления: последующие изменения
// каталога не влияют на исторические суммы.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// Order агрегирует шапку заказа и его позиции.
// TotalCost вычисляется один раз при создании и далее не изменяется.
type Order struct {
	ID        int64
	ClientID  int64
	Date      string
	TotalCost float64
	Items     []OrderItem
}

// ValidateCart проверяет предусловия оформления заказа: корзина непуста
// и каждое количество положительно.
func ValidateCart(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: product %d, qty %d", ErrInvalidQuantity, line.ProductID, line.Quantity)
		}
	}
	return nil
}

// OrderTotal суммирует позиции заказа: Σ unit_price * quantity.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ApplyDiscount применяет процентную скидку к сумме заказа.
// Скидка задаётся параметром, а не отдельным видом заказа: в хранилище нет
// колонки discount, поэтому скидка применяется до записи total_cost.
func ApplyDiscount(total, discount float64) (float64, error) {
	// Проверка написана утвердительно: NaN не проходит ни одно сравнение
	// и отклоняется вместе со значениями вне [0, 100].
	if !(discount >= 0 && discount <= 100) {
		return 0, fmt.Errorf("%w: %.2f", ErrInvalidDiscount, discount)
	}
	return total * (1 - discount/100), nil
}

func (o Order) String() string {
	return fmt.Sprintf("Order(%d, Client: %d, Date: %s, Total: %.2f)", o.ID, o.ClientID, o.Date, o.TotalCost)
}
