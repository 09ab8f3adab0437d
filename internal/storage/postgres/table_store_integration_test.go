package postgres

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

func TestTableStore_PostgresUnknownTable(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	if _, err := store.DumpTable(domain.Table("pg_catalog.pg_tables")); !errors.Is(err, domain.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
	if err := store.InsertTableRow(domain.Table("users"), []string{"id"}, []any{int64(1)}); !errors.Is(err, domain.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
	if err := store.InsertTableRow(domain.TableClients, []string{"id; DROP TABLE clients"}, []any{int64(1)}); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestTableStore_PostgresDumpAndInsert(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	clientID, err := NewClientRepository(store).Create(domain.Client{
		Name: "Ivan", Email: "ivan@example.com", Phone: "9161234567", Address: "Moscow",
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	productID, err := NewProductRepository(store).Create(domain.Product{Name: "Tea", Price: 99.9, Description: "loose leaf"})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := NewOrderRepository(store).CreateWithItems(clientID, []domain.CartLine{{ProductID: productID, Quantity: 2}}, "2025-01-15", 0); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	for _, table := range domain.Tables() {
		rows, err := store.DumpTable(table)
		if err != nil {
			t.Fatalf("dump %s: %v", table, err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row in %s, got %d", table, len(rows))
		}
		if len(rows[0]) != len(table.Columns()) {
			t.Fatalf("row width %d != columns %d for %s", len(rows[0]), len(table.Columns()), table)
		}
	}

	// Вставка строки с явным суррогатным ключом проходит как есть.
	err = store.InsertTableRow(domain.TableClients,
		[]string{"id", "name", "email", "phone", "address"},
		[]any{int64(100), "Anna", "anna@example.com", "9167654321", "Kazan"})
	if err != nil {
		t.Fatalf("insert explicit id: %v", err)
	}

	err = store.InsertTableRow(domain.TableClients,
		[]string{"id", "name", "email", "phone", "address"},
		[]any{int64(101), "Copy", "ivan@example.com", "9160000000", "Tver"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}
