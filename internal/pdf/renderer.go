package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/akulinich/foodgram-backend/internal/config"
	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

const fontFamily = "shoppinglist"

// letter page height in points; width is 612 but the layout only needs the
// vertical extent.
const letterHeightPt = 792.0

// Renderer produces the downloadable shopping-list document: a single
// US-letter page with one text line per aggregated ingredient. The TTF font
// is read once at construction; a missing font file is a configuration
// failure and the process should not start without it.
type Renderer struct {
	log       *logger.Logger
	cfg       config.ExportConfig
	fontBytes []byte
}

func NewRenderer(cfg config.ExportConfig, log *logger.Logger) (*Renderer, error) {
	raw, err := os.ReadFile(cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("load export font %s: %w", cfg.FontPath, err)
	}
	return &Renderer{
		log:       log.With("service", "PDFRenderer"),
		cfg:       cfg,
		fontBytes: raw,
	}, nil
}

type placedLine struct {
	text string
	x    float64
	y    float64 // from the top edge, baseline
}

// layout converts aggregated lines into positioned text. The block starts at
// (TextX, TextY) measured from the bottom-left corner and advances downward
// by FontSize * 1.2 per line. Lines that would land below the bottom margin
// are dropped: the document is a single page.
func layout(cfg config.ExportConfig, lines []types.AggregatedLine) []placedLine {
	leading := cfg.FontSize * 1.2
	y := letterHeightPt - cfg.TextY
	maxY := letterHeightPt - cfg.BottomMargin

	placed := make([]placedLine, 0, len(lines))
	for _, line := range lines {
		if y > maxY {
			break
		}
		placed = append(placed, placedLine{
			text: FormatLine(line),
			x:    cfg.TextX,
			y:    y,
		})
		y += leading
	}
	return placed
}

// FormatLine renders one aggregated row the way the list has always been
// printed: "Мука (г) — 500".
func FormatLine(line types.AggregatedLine) string {
	return fmt.Sprintf("%s (%s) — %d", line.Name, line.MeasurementUnit, line.Amount)
}

// Render returns the PDF bytes for the given lines. Deterministic for a
// fixed input sequence. An empty input produces a valid empty page.
func (r *Renderer) Render(lines []types.AggregatedLine) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddUTF8FontFromBytes(fontFamily, "", r.fontBytes)
	doc.AddPage()
	doc.SetFont(fontFamily, "", r.cfg.FontSize)

	for _, pl := range layout(r.cfg, lines) {
		doc.Text(pl.x, pl.y, pl.text)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
