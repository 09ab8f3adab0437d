package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// writeJSON пишет таблицу массивом объектов, ключи — имена колонок.
func writeJSON(w io.Writer, columns []string, rows [][]any) error {
	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]any, len(columns))
		for i, col := range columns {
			record[col] = row[i]
		}
		records = append(records, record)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// readJSON читает массив объектов. Пустой массив означает отсутствие
// работы, а не ошибку. Ключи объектов обязаны быть именами колонок
// таблицы, каждая колонка обязана присутствовать в каждом объекте.
func readJSON(r io.Reader, t domain.Table) ([]string, [][]any, error) {
	var records []map[string]any
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode json: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	columns := t.Columns()
	known := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		known[col] = struct{}{}
	}

	rows := make([][]any, 0, len(records))
	for i, record := range records {
		for key := range record {
			if _, ok := known[key]; !ok {
				return nil, nil, fmt.Errorf("record %d has unknown column %q for table %q", i+1, key, t)
			}
		}
		row := make([]any, len(columns))
		for j, col := range columns {
			v, ok := record[col]
			if !ok {
				return nil, nil, fmt.Errorf("record %d is missing column %q", i+1, col)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}
