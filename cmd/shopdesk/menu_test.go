package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/shopdesk/internal/app"
)

func runScript(t *testing.T, lines ...string) string {
	t.Helper()

	deps, err := app.NewDependencies(context.Background(), app.Config{}, nil)
	if err != nil {
		t.Fatalf("failed to build dependencies: %v", err)
	}
	t.Cleanup(func() { _ = deps.Close() })

	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	if err := newSession(deps, in, &out).run(context.Background()); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	return out.String()
}

func TestSession_RegisterAndOrderFlow(t *testing.T) {
	out := runScript(t,
		"1", "Anna", "anna@example.com", "+79990000001", "Moscow",
		"2", "Lamp", "40", "desk lamp",
		"5", "1", "1", "2", "", "2026-08-30", "",
		"3",
		"8",
		"0",
	)

	for _, want := range []string{
		"Клиент зарегистрирован, ID 1",
		"Товар добавлен, ID 1",
		"Заказ 1 оформлен, итог 80.00",
		"anna@example.com",
		"Топ-5 клиентов по количеству заказов",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestSession_ValidationErrorIsReportedAndLoopContinues(t *testing.T) {
	out := runScript(t,
		"1", "Anna", "not-an-email", "+79990000001", "Moscow",
		"3",
		"0",
	)

	if !strings.Contains(out, "Ошибка:") {
		t.Errorf("expected validation error in output:\n%s", out)
	}
	if !strings.Contains(out, "Клиентов пока нет") {
		t.Errorf("expected empty client list after failed registration:\n%s", out)
	}
}

func TestSession_ExportTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")

	out := runScript(t,
		"2", "Lamp", "40", "",
		"11", "products", "csv", path,
		"0",
	)

	if !strings.Contains(out, "Выгружено строк: 1") {
		t.Errorf("expected export confirmation:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file was not written: %v", err)
	}
	if !strings.Contains(string(data), "id,name,price,description") {
		t.Errorf("export file is missing header: %q", string(data))
	}
}

func TestSession_UnknownMenuItem(t *testing.T) {
	out := runScript(t, "99", "0")

	if !strings.Contains(out, "Неизвестный пункт меню") {
		t.Errorf("expected unknown menu item message:\n%s", out)
	}
}

func TestSession_InputClosedStopsLoop(t *testing.T) {
	// Сценарий без "0": конец ввода завершает сессию без ошибки.
	_ = runScript(t, "3")
}

func TestSession_InputClosedMidHandlerStopsLoop(t *testing.T) {
	// Ввод обрывается посреди регистрации клиента: сессия завершается
	// тихо, без сообщения об ошибке.
	out := runScript(t, "1", "Anna")

	if strings.Contains(out, "Ошибка:") {
		t.Errorf("unexpected error on closed input:\n%s", out)
	}
}

func TestErrInputClosedMatchesWrapped(t *testing.T) {
	wrapped := fmt.Errorf("register client: %w", errInputClosed)
	if !errors.Is(wrapped, errInputClosed) {
		t.Error("wrapped sentinel should still match")
	}
}
