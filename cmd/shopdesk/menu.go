package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vladislavdragonenkov/shopdesk/internal/app"
	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
	"github.com/vladislavdragonenkov/shopdesk/internal/transfer"
)

const menuText = `
--- shopdesk ---
 1. Зарегистрировать клиента
 2. Добавить товар
 3. Список клиентов
 4. Список товаров
 5. Оформить заказ
 6. Показать заказ
 7. История покупок клиента
 8. Топ-5 клиентов по заказам
 9. Топ-5 клиентов по товарам
10. Динамика заказов по датам
11. Экспорт таблицы
12. Импорт таблицы
 0. Выход
`

// session хранит состояние интерактивной сессии: корзина живёт здесь,
// а не в ядре — ядро без состояния, кроме самого хранилища.
type session struct {
	deps *app.Dependencies
	in   *bufio.Scanner
	out  io.Writer
	cart []domain.CartLine
}

func newSession(deps *app.Dependencies, in *bufio.Scanner, out io.Writer) *session {
	return &session{deps: deps, in: in, out: out}
}

func (s *session) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, menuText)
		choice, err := s.prompt("Выбор")
		if err != nil {
			return nil
		}

		var actErr error
		switch choice {
		case "0":
			return nil
		case "1":
			actErr = s.registerClient()
		case "2":
			actErr = s.registerProduct()
		case "3":
			actErr = s.listClients()
		case "4":
			actErr = s.listProducts()
		case "5":
			actErr = s.placeOrder()
		case "6":
			actErr = s.showOrder()
		case "7":
			actErr = s.showHistory()
		case "8":
			actErr = s.topByOrders()
		case "9":
			actErr = s.topByItems()
		case "10":
			actErr = s.ordersByDate()
		case "11":
			actErr = s.exportTable()
		case "12":
			actErr = s.importTable()
		default:
			fmt.Fprintf(s.out, "Неизвестный пункт меню: %q\n", choice)
		}

		if errors.Is(actErr, errInputClosed) {
			return nil
		}
		if actErr != nil {
			fmt.Fprintf(s.out, "Ошибка: %v\n", actErr)
		}
	}
}

var errInputClosed = errors.New("input closed")

func (s *session) prompt(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) promptInt64(label string) (int64, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ожидалось целое число, получено %q", raw)
	}
	return value, nil
}

func (s *session) registerClient() error {
	name, err := s.prompt("Имя")
	if err != nil {
		return err
	}
	email, err := s.prompt("Email")
	if err != nil {
		return err
	}
	phone, err := s.prompt("Телефон")
	if err != nil {
		return err
	}
	address, err := s.prompt("Адрес")
	if err != nil {
		return err
	}

	client, err := s.deps.Shop.RegisterClient(name, email, phone, address)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Клиент зарегистрирован, ID %d\n", client.ID)
	return nil
}

func (s *session) registerProduct() error {
	name, err := s.prompt("Название")
	if err != nil {
		return err
	}
	price, err := s.prompt("Цена")
	if err != nil {
		return err
	}
	description, err := s.prompt("Описание")
	if err != nil {
		return err
	}

	product, err := s.deps.Shop.RegisterProduct(name, price, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Товар добавлен, ID %d\n", product.ID)
	return nil
}

func (s *session) listClients() error {
	clients, err := s.deps.Shop.ListClients()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(s.out, "Клиентов пока нет")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tИмя\tEmail")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Email)
	}
	return tw.Flush()
}

func (s *session) listProducts() error {
	products, err := s.deps.Shop.ListProducts()
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(s.out, "Товаров пока нет")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tНазвание\tЦена")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\n", p.ID, p.Name, p.Price)
	}
	return tw.Flush()
}

func (s *session) placeOrder() error {
	clientID, err := s.promptInt64("ID клиента")
	if err != nil {
		return err
	}

	s.cart = s.cart[:0]
	for {
		raw, err := s.prompt("ID товара (пусто — закончить корзину)")
		if err != nil {
			return err
		}
		if raw == "" {
			break
		}
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fmt.Fprintf(s.out, "Ожидался ID товара, получено %q\n", raw)
			continue
		}
		qty, err := s.promptInt64("Количество")
		if err != nil {
			return err
		}
		s.cart = append(s.cart, domain.CartLine{ProductID: productID, Quantity: int(qty)})
		fmt.Fprintf(s.out, "В корзине позиций: %d\n", len(s.cart))
	}

	date, err := s.prompt("Дата заказа YYYY-MM-DD (пусто — сегодня)")
	if err != nil {
		return err
	}
	discountRaw, err := s.prompt("Скидка в процентах (пусто — без скидки)")
	if err != nil {
		return err
	}
	var discount float64
	if discountRaw != "" {
		discount, err = strconv.ParseFloat(discountRaw, 64)
		if err != nil {
			return fmt.Errorf("ожидалось число процентов, получено %q", discountRaw)
		}
	}

	order, err := s.deps.Shop.PlaceOrder(clientID, s.cart, date, discount)
	if err != nil {
		return err
	}
	s.cart = s.cart[:0]
	fmt.Fprintf(s.out, "Заказ %d оформлен, итог %.2f\n", order.ID, order.TotalCost)
	return nil
}

func (s *session) showOrder() error {
	orderID, err := s.promptInt64("ID заказа")
	if err != nil {
		return err
	}

	order, err := s.deps.Shop.GetOrder(orderID)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Заказ %d: клиент %d, дата %s, итог %.2f\n", order.ID, order.ClientID, order.Date, order.TotalCost)
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Товар ID\tКол-во\tЦена за шт.")
	for _, item := range order.Items {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\n", item.ProductID, item.Quantity, item.UnitPrice)
	}
	return tw.Flush()
}

func (s *session) showHistory() error {
	clientID, err := s.promptInt64("ID клиента")
	if err != nil {
		return err
	}

	rows, err := s.deps.Shop.PurchaseHistory(clientID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "Покупок не найдено")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Товар\tВсего куплено\tПоследняя покупка")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", row.ProductName, row.TotalQuantity, row.LastPurchase)
	}
	return tw.Flush()
}

func (s *session) topByOrders() error {
	rows, err := s.deps.Shop.Top5ClientsByOrders()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "Нет данных для отображения")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Имя\tEmail\tКол-во заказов")
	bars := make([]barValue, 0, len(rows))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", row.Name, row.Email, row.Orders)
		bars = append(bars, barValue{Label: row.Name, Value: float64(row.Orders)})
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	renderBarChart(s.out, "Топ-5 клиентов по количеству заказов", bars)
	return nil
}

func (s *session) topByItems() error {
	rows, err := s.deps.Shop.Top5ClientsByItems()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "Нет данных для отображения")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Имя\tEmail\tКол-во товаров")
	bars := make([]barValue, 0, len(rows))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", row.Name, row.Email, row.Items)
		bars = append(bars, barValue{Label: row.Name, Value: float64(row.Items)})
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	renderBarChart(s.out, "Топ-5 клиентов по количеству товаров", bars)
	return nil
}

func (s *session) ordersByDate() error {
	rows, err := s.deps.Shop.OrdersByDate()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "Нет данных для отображения")
		return nil
	}

	bars := make([]barValue, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, barValue{Label: row.Date, Value: float64(row.Orders)})
	}
	renderBarChart(s.out, "Динамика количества заказов по датам", bars)
	return nil
}

func (s *session) promptTableFormat() (domain.Table, transfer.Format, error) {
	names := make([]string, 0, len(domain.Tables()))
	for _, t := range domain.Tables() {
		names = append(names, string(t))
	}
	raw, err := s.prompt("Таблица (" + strings.Join(names, ", ") + ")")
	if err != nil {
		return "", "", err
	}
	table, err := domain.ParseTable(raw)
	if err != nil {
		return "", "", err
	}

	formatRaw, err := s.prompt("Формат (csv, json)")
	if err != nil {
		return "", "", err
	}
	format := transfer.Format(formatRaw)
	if !format.Valid() {
		return "", "", fmt.Errorf("неизвестный формат: %q", formatRaw)
	}
	return table, format, nil
}

func (s *session) exportTable() error {
	table, format, err := s.promptTableFormat()
	if err != nil {
		return err
	}
	path, err := s.prompt("Файл")
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("не удалось создать файл: %w", err)
	}

	count, err := s.deps.Transfer.Export(table, format, f)
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Выгружено строк: %d\n", count)
	return nil
}

func (s *session) importTable() error {
	table, format, err := s.promptTableFormat()
	if err != nil {
		return err
	}
	path, err := s.prompt("Файл")
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer func() { _ = f.Close() }()

	count, err := s.deps.Transfer.Import(table, format, f)
	if count > 0 {
		fmt.Fprintf(s.out, "Загружено строк: %d\n", count)
	}
	return err
}
