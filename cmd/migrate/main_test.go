package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/shopdesk/internal/storage/postgres"
)

func TestRun_UnsupportedDirection(t *testing.T) {
	err := run(context.Background(), nil, "sideways", 0)
	if err == nil {
		t.Fatal("expected error for unsupported direction")
	}
	if !strings.Contains(err.Error(), "unsupported direction") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_StatusDoesNotTouchStore(t *testing.T) {
	if err := run(context.Background(), nil, "status", 0); err != nil {
		t.Errorf("status should not require a live store: %v", err)
	}
}

func TestRun_UpAndDown(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("SHOPDESK_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("SHOPDESK_POSTGRES_TEST_DSN is not set")
	}

	ctx := context.Background()
	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		t.Skipf("postgres is not available: %v", err)
	}
	defer store.Close()

	if err := run(ctx, store, "up", 0); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}
	version, applied, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status failed: %v", err)
	}
	if version == 0 || applied == 0 {
		t.Errorf("expected applied migrations, got version=%d applied=%d", version, applied)
	}

	if err := run(ctx, store, "down", applied); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	version, applied, err = store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status failed: %v", err)
	}
	if version != 0 || applied != 0 {
		t.Errorf("expected clean slate, got version=%d applied=%d", version, applied)
	}

	// Возвращаем схему, чтобы не мешать другим интеграционным тестам.
	if err := run(ctx, store, "up", 0); err != nil {
		t.Fatalf("restore schema failed: %v", err)
	}
}
