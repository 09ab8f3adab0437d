package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderBarChart(t *testing.T) {
	var buf bytes.Buffer

	renderBarChart(&buf, "Заказы", []barValue{
		{Label: "Anna", Value: 4},
		{Label: "Boris", Value: 2},
		{Label: "Vera", Value: 0},
	})

	out := buf.String()
	if !strings.Contains(out, "Заказы") {
		t.Error("expected chart title in output")
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title and 3 bars, got %d lines:\n%s", len(lines), out)
	}

	annaBars := strings.Count(lines[1], "#")
	borisBars := strings.Count(lines[2], "#")
	veraBars := strings.Count(lines[3], "#")

	if annaBars != chartMaxWidth {
		t.Errorf("max value should fill the chart: got %d of %d", annaBars, chartMaxWidth)
	}
	if borisBars != chartMaxWidth/2 {
		t.Errorf("half value should fill half the chart: got %d", borisBars)
	}
	if veraBars != 0 {
		t.Errorf("zero value should have no bar, got %d", veraBars)
	}
}

func TestRenderBarChart_SmallValueGetsOneMark(t *testing.T) {
	var buf bytes.Buffer

	renderBarChart(&buf, "t", []barValue{
		{Label: "a", Value: 1000},
		{Label: "b", Value: 1},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Count(lines[2], "#") != 1 {
		t.Errorf("tiny non-zero value should render one mark, got %q", lines[2])
	}
}

func TestRenderBarChart_Empty(t *testing.T) {
	var buf bytes.Buffer

	renderBarChart(&buf, "empty", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty data, got %q", buf.String())
	}
}
