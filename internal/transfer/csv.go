package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
)

// writeCSV пишет заголовок из имён колонок и по строке на запись.
func writeCSV(w io.Writer, columns []string, rows [][]any) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// readCSV читает заголовок и строки. Заголовок обязан совпадать с
// объявленным порядком колонок таблицы. Значения остаются строками,
// приведение типов выполняет хранилище при вставке.
func readCSV(r io.Reader, t domain.Table) ([]string, [][]any, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("empty csv input: header row is required")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := t.Columns()
	if len(header) != len(columns) {
		return nil, nil, fmt.Errorf("csv header has %d columns, table %q has %d", len(header), t, len(columns))
	}
	for i, name := range header {
		if name != columns[i] {
			return nil, nil, fmt.Errorf("csv header column %d is %q, expected %q", i+1, name, columns[i])
		}
	}

	var rows [][]any
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int64:
		return strconv.FormatInt(c, 10)
	case int:
		return strconv.Itoa(c)
	case float64:
		return strconv.FormatFloat(c, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
