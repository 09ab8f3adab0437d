package domain

// ClientSummary — строка списка клиентов.
type ClientSummary struct {
	ID    int64
	Name  string
	Email string
}

// ProductSummary — строка списка товаров.
type ProductSummary struct {
	ID    int64
	Name  string
	Price float64
}

// PurchaseHistoryRow — агрегат покупок клиента по одному товару.
type PurchaseHistoryRow struct {
	ProductName   string
	TotalQuantity int
	LastPurchase  string
}

// ClientOrderCount — место клиента в рейтинге по числу заказов.
type ClientOrderCount struct {
	Name   string
	Email  string
	Orders int
}

// ClientItemCount — место клиента в рейтинге по числу купленных позиций.
type ClientItemCount struct {
	Name  string
	Email string
	Items int
}

// DateCount — число заказов за одну дату.
type DateCount struct {
	Date   string
	Orders int
}

// ClientRepository описывает требования к хранилищу клиентов.
type ClientRepository interface {
	// Create сохраняет клиента и возвращает присвоенный ID.
	// Возвращает ErrDuplicateEmail, если email уже зарегистрирован.
	Create(client Client) (int64, error)
	// List возвращает всех клиентов, отсортированных по имени.
	List() ([]ClientSummary, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет товар и возвращает присвоенный ID.
	// Цена записывается как есть: валидация — обязанность вызывающего.
	Create(product Product) (int64, error)
	// List возвращает все товары, отсортированные по имени.
	List() ([]ProductSummary, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// CreateWithItems атомарно создаёт заказ и его позиции, фиксируя
	// текущие цены товаров. Скидка в процентах применяется к итогу до
	// записи. Заказ с частью позиций наблюдаться не может.
	CreateWithItems(clientID int64, lines []CartLine, date string, discount float64) (int64, error)
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(id int64) (Order, error)
	// PurchaseHistory возвращает покупки клиента, сгруппированные по
	// товару: суммарное количество и дата последней покупки, по убыванию
	// количества, при равенстве — по убыванию даты.
	PurchaseHistory(clientID int64) ([]PurchaseHistoryRow, error)
}

// AnalyticsRepository — аналитические выборки только на чтение.
type AnalyticsRepository interface {
	// Top5ClientsByOrders — до пяти клиентов по числу заказов, по убыванию,
	// при равенстве — по имени.
	Top5ClientsByOrders() ([]ClientOrderCount, error)
	// Top5ClientsByItems — до пяти клиентов по числу купленных позиций.
	Top5ClientsByItems() ([]ClientItemCount, error)
	// OrdersByDate — число заказов по датам, по возрастанию даты.
	// Пустой срез при отсутствии заказов, не ошибка.
	OrdersByDate() ([]DateCount, error)
}
