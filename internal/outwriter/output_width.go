package outwriter

import (
	"os"

	"github.com/huangsam/spendchart/internal/contract"
	"golang.org/x/term"
)

// getMaxLabelWidth calculates the maximum width for category labels in table output
// based on terminal width and the fixed columns of chart tables.
func getMaxLabelWidth(cfg *contract.Config) int {
	termWidth := cfg.TermWidth

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Index + Color + Total + Share + Start + Sweep + Records, with borders/padding
	baseWidth := 75

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 50 {
		return 50
	}
	return available
}
