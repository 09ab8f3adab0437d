package postgres

import (
	"context"
	"testing"
	"time"
)

func TestStore_PostgresPingAndMigrationFlow(t *testing.T) {
	store := openRawPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	version, applied, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if version == 0 || applied == 0 {
		t.Fatalf("expected applied migrations, got version=%d applied=%d", version, applied)
	}

	// Повторный прогон идемпотентен.
	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("second migrate up: %v", err)
	}
	version2, applied2, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if version2 != version || applied2 != applied {
		t.Fatalf("idempotency broken: %d/%d vs %d/%d", version, applied, version2, applied2)
	}

	if err := store.MigrateDown(ctx, applied); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	version3, applied3, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if version3 != 0 || applied3 != 0 {
		t.Fatalf("expected clean slate, got version=%d applied=%d", version3, applied3)
	}

	// Возвращаем схему, чтобы не ломать последующие тесты пакета.
	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("restore schema: %v", err)
	}
}
