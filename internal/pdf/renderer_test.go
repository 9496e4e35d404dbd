package pdf

import (
	"math"
	"testing"

	"github.com/akulinich/foodgram-backend/internal/config"
	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

func exportConfig() config.ExportConfig {
	return config.ExportConfig{
		FontPath:     "testdata/missing.ttf",
		FontSize:     24,
		TextX:        70,
		TextY:        700,
		BottomMargin: 40,
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		line types.AggregatedLine
		want string
	}{
		{types.AggregatedLine{Name: "Flour", MeasurementUnit: "g", Amount: 500}, "Flour (g) — 500"},
		{types.AggregatedLine{Name: "Мука", MeasurementUnit: "г", Amount: 500}, "Мука (г) — 500"},
		{types.AggregatedLine{Name: "Egg", MeasurementUnit: "pcs", Amount: 2}, "Egg (pcs) — 2"},
	}
	for _, tc := range tests {
		if got := FormatLine(tc.line); got != tc.want {
			t.Errorf("FormatLine(%+v) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestLayoutPositions(t *testing.T) {
	cfg := exportConfig()
	lines := []types.AggregatedLine{
		{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "Flour", MeasurementUnit: "g", Amount: 500},
	}

	placed := layout(cfg, lines)
	if len(placed) != 2 {
		t.Fatalf("expected 2 placed lines, got %d", len(placed))
	}

	// 700pt from the bottom of a 792pt page is 92pt from the top.
	if placed[0].x != 70 || math.Abs(placed[0].y-92) > 1e-9 {
		t.Errorf("first line at (%v, %v), want (70, 92)", placed[0].x, placed[0].y)
	}
	leading := cfg.FontSize * 1.2
	if math.Abs(placed[1].y-(92+leading)) > 1e-9 {
		t.Errorf("second line at y=%v, want %v", placed[1].y, 92+leading)
	}
	if placed[0].text != "Egg (pcs) — 2" {
		t.Errorf("first line text %q", placed[0].text)
	}
}

func TestLayoutEmptyInput(t *testing.T) {
	placed := layout(exportConfig(), nil)
	if len(placed) != 0 {
		t.Fatalf("expected no placed lines, got %d", len(placed))
	}
}

func TestLayoutDropsOverflow(t *testing.T) {
	cfg := exportConfig()

	var lines []types.AggregatedLine
	for i := 0; i < 100; i++ {
		lines = append(lines, types.AggregatedLine{Name: "Salt", MeasurementUnit: "g", Amount: i + 1})
	}

	placed := layout(cfg, lines)
	if len(placed) == 0 || len(placed) >= len(lines) {
		t.Fatalf("expected overflow cutoff, got %d of %d lines", len(placed), len(lines))
	}

	// Every placed baseline stays above the bottom margin.
	maxY := letterHeightPt - cfg.BottomMargin
	for i, pl := range placed {
		if pl.y > maxY {
			t.Errorf("line %d at y=%v exceeds bottom margin boundary %v", i, pl.y, maxY)
		}
	}

	// The cutoff is exact: one more line would not have fit.
	last := placed[len(placed)-1]
	if next := last.y + cfg.FontSize*1.2; next <= maxY {
		t.Errorf("line at y=%v would still fit below last placed line", next)
	}
}

func TestNewRendererMissingFont(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	if _, err := NewRenderer(exportConfig(), log); err == nil {
		t.Fatal("expected error for missing font file")
	}
}
