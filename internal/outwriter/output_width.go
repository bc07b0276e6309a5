package outwriter

import (
	"math"
	"os"
	"strings"

	"github.com/huangsam/airspot/internal/contract"
	"golang.org/x/term"
)

const barGlyph = "█"

// GetMaxBarWidth calculates how many cells the bar column of a pattern table may use,
// based on terminal width.
func GetMaxBarWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Bucket + Mean + Count columns with borders and padding
	available := termWidth - 45
	if available < 10 {
		return 10
	}
	if available > 60 {
		return 60
	}
	return available
}

// renderBar draws value as a bar scaled so that maxValue fills width cells.
func renderBar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(math.Round(value / maxValue * float64(width)))
	n = max(1, min(n, width))
	return strings.Repeat(barGlyph, n)
}
