package shop

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
	"github.com/vladislavdragonenkov/shopdesk/internal/metrics"
)

const (
	opRegisterClient  = "register_client"
	opRegisterProduct = "register_product"
	opListClients     = "list_clients"
	opListProducts    = "list_products"
	opPlaceOrder      = "place_order"
	opGetOrder        = "get_order"
	opPurchaseHistory = "purchase_history"
	opClientsByOrders = "top_clients_by_orders"
	opClientsByItems  = "top_clients_by_items"
	opOrdersByDate    = "orders_by_date"
)

// Service связывает валидацию доменных значений, репозитории и
// наблюдаемость. Слой представления работает только через него.
type Service struct {
	clients   domain.ClientRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	analytics domain.AnalyticsRepository
	logger    *log.Entry
	metrics   *metrics.ShopMetrics
}

// NewService конструирует сервис с зависимостями.
func NewService(
	clients domain.ClientRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	analytics domain.AnalyticsRepository,
	logger *log.Entry,
	m *metrics.ShopMetrics,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "shop-service")
	}
	return &Service{
		clients:   clients,
		products:  products,
		orders:    orders,
		analytics: analytics,
		logger:    logger,
		metrics:   m,
	}
}

// RegisterClient валидирует поля и сохраняет нового клиента.
func (s *Service) RegisterClient(name, email, phone, address string) (domain.Client, error) {
	start := time.Now()

	client, err := domain.NewClient(name, email, phone, address)
	if err != nil {
		s.fail(opRegisterClient, err)
		return domain.Client{}, err
	}

	client.ID, err = s.clients.Create(client)
	if err != nil {
		s.logger.WithError(err).WithField("email", client.Email).Error("failed to create client")
		s.fail(opRegisterClient, err)
		return domain.Client{}, err
	}

	s.metrics.ClientRegistered()
	s.metrics.ObserveOp(opRegisterClient, time.Since(start))
	s.logger.WithFields(log.Fields{"client_id": client.ID, "email": client.Email}).Info("client registered")
	return client, nil
}

// RegisterProduct валидирует цену и сохраняет новый товар.
func (s *Service) RegisterProduct(name, price, description string) (domain.Product, error) {
	start := time.Now()

	product, err := domain.NewProduct(name, price, description)
	if err != nil {
		s.fail(opRegisterProduct, err)
		return domain.Product{}, err
	}

	product.ID, err = s.products.Create(product)
	if err != nil {
		s.logger.WithError(err).WithField("name", product.Name).Error("failed to create product")
		s.fail(opRegisterProduct, err)
		return domain.Product{}, err
	}

	s.metrics.ProductAdded()
	s.metrics.ObserveOp(opRegisterProduct, time.Since(start))
	s.logger.WithFields(log.Fields{"product_id": product.ID, "name": product.Name}).Info("product registered")
	return product, nil
}

// ListClients возвращает клиентов, отсортированных по имени.
func (s *Service) ListClients() ([]domain.ClientSummary, error) {
	start := time.Now()

	clients, err := s.clients.List()
	if err != nil {
		s.logger.WithError(err).Error("failed to list clients")
		s.fail(opListClients, err)
		return nil, err
	}

	s.metrics.ObserveOp(opListClients, time.Since(start))
	return clients, nil
}

// ListProducts возвращает товары, отсортированные по названию.
func (s *Service) ListProducts() ([]domain.ProductSummary, error) {
	start := time.Now()

	products, err := s.products.List()
	if err != nil {
		s.logger.WithError(err).Error("failed to list products")
		s.fail(opListProducts, err)
		return nil, err
	}

	s.metrics.ObserveOp(opListProducts, time.Since(start))
	return products, nil
}

// PlaceOrder создаёт заказ из корзины. Пустая дата означает сегодня,
// скидка задаётся в процентах от 0 до 100. Цены позиций снимаются с
// товаров в момент создания.
func (s *Service) PlaceOrder(clientID int64, lines []domain.CartLine, date string, discount float64) (domain.Order, error) {
	start := time.Now()

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	orderID, err := s.orders.CreateWithItems(clientID, lines, date, discount)
	if err != nil {
		s.logger.WithError(err).WithField("client_id", clientID).Error("failed to place order")
		s.fail(opPlaceOrder, err)
		return domain.Order{}, err
	}

	order, err := s.orders.Get(orderID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to load placed order")
		s.fail(opPlaceOrder, err)
		return domain.Order{}, err
	}

	s.metrics.OrderPlaced(order.TotalCost)
	s.metrics.ObserveOp(opPlaceOrder, time.Since(start))
	s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"client_id":  order.ClientID,
		"total_cost": order.TotalCost,
		"items":      len(order.Items),
	}).Info("order placed")
	return order, nil
}

// GetOrder возвращает заказ вместе с позициями.
func (s *Service) GetOrder(id int64) (domain.Order, error) {
	start := time.Now()

	order, err := s.orders.Get(id)
	if err != nil {
		s.fail(opGetOrder, err)
		return domain.Order{}, err
	}

	s.metrics.ObserveOp(opGetOrder, time.Since(start))
	return order, nil
}

// PurchaseHistory возвращает покупки клиента, сгруппированные по товару.
func (s *Service) PurchaseHistory(clientID int64) ([]domain.PurchaseHistoryRow, error) {
	start := time.Now()

	rows, err := s.orders.PurchaseHistory(clientID)
	if err != nil {
		s.logger.WithError(err).WithField("client_id", clientID).Error("failed to load purchase history")
		s.fail(opPurchaseHistory, err)
		return nil, err
	}

	s.metrics.ObserveOp(opPurchaseHistory, time.Since(start))
	return rows, nil
}

// Top5ClientsByOrders возвращает до пяти клиентов по числу заказов.
func (s *Service) Top5ClientsByOrders() ([]domain.ClientOrderCount, error) {
	start := time.Now()

	rows, err := s.analytics.Top5ClientsByOrders()
	if err != nil {
		s.logger.WithError(err).Error("failed to rank clients by orders")
		s.fail(opClientsByOrders, err)
		return nil, err
	}

	s.metrics.ObserveOp(opClientsByOrders, time.Since(start))
	return rows, nil
}

// Top5ClientsByItems возвращает до пяти клиентов по числу купленных единиц.
func (s *Service) Top5ClientsByItems() ([]domain.ClientItemCount, error) {
	start := time.Now()

	rows, err := s.analytics.Top5ClientsByItems()
	if err != nil {
		s.logger.WithError(err).Error("failed to rank clients by items")
		s.fail(opClientsByItems, err)
		return nil, err
	}

	s.metrics.ObserveOp(opClientsByItems, time.Since(start))
	return rows, nil
}

// OrdersByDate возвращает число заказов по датам по возрастанию даты.
func (s *Service) OrdersByDate() ([]domain.DateCount, error) {
	start := time.Now()

	rows, err := s.analytics.OrdersByDate()
	if err != nil {
		s.logger.WithError(err).Error("failed to count orders by date")
		s.fail(opOrdersByDate, err)
		return nil, err
	}

	s.metrics.ObserveOp(opOrdersByDate, time.Since(start))
	return rows, nil
}

func (s *Service) fail(op string, err error) {
	// Отказы валидации и предусловий не считаем сбоями хранилища.
	if domain.IsValidation(err) || domain.IsCartError(err) {
		return
	}
	s.metrics.OpFailed(op)
}
