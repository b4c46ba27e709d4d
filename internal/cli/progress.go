package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

var stageDescriptions = map[string]string{
	"brands":     "Learning brands",
	"flavors":    "Learning flavors",
	"validation": "Validating",
	"categorize": "Categorizing products",
}

// ProgressBar draws one terminal progress bar per stage. It satisfies the
// progress interfaces of the learning engine and the categorizer.
type ProgressBar struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewProgressBar creates a progress reporter writing to w.
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{writer: w}
}

// Start begins a new bar for stage with total steps.
func (p *ProgressBar) Start(stage string, total int) {
	p.Finish()

	description, ok := stageDescriptions[stage]
	if !ok {
		description = stage
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]%s...[reset]", description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// Advance moves the current bar one step.
func (p *ProgressBar) Advance() {
	if p.bar == nil {
		return
	}
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the current bar, if any.
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	p.bar = nil
}
