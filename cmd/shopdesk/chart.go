package main

import (
	"fmt"
	"io"
	"strings"
)

const chartMaxWidth = 40

type barValue struct {
	Label string
	Value float64
}

// renderBarChart печатает горизонтальную ASCII-диаграмму: строки
// масштабируются к chartMaxWidth по максимальному значению. Ненулевое
// значение всегда получает хотя бы один символ.
func renderBarChart(w io.Writer, title string, bars []barValue) {
	if len(bars) == 0 {
		return
	}

	labelWidth := 0
	maxValue := 0.0
	for _, bar := range bars {
		if n := len([]rune(bar.Label)); n > labelWidth {
			labelWidth = n
		}
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}

	fmt.Fprintf(w, "\n%s\n", title)
	for _, bar := range bars {
		width := 0
		if maxValue > 0 && bar.Value > 0 {
			width = int(bar.Value / maxValue * chartMaxWidth)
			if width == 0 {
				width = 1
			}
		}
		padding := strings.Repeat(" ", labelWidth-len([]rune(bar.Label)))
		fmt.Fprintf(w, "%s%s | %s %g\n", bar.Label, padding, strings.Repeat("#", width), bar.Value)
	}
}
