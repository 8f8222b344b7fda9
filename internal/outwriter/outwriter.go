// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePie prints a pie chart result using the configured output format.
func (ow *OutWriter) WritePie(result *schema.PieResult, cfg *contract.Config, duration time.Duration) error {
	return WritePieResult(result, cfg, duration)
}

// WriteLine prints a line chart result using the configured output format.
func (ow *OutWriter) WriteLine(result *schema.LineResult, cfg *contract.Config, duration time.Duration) error {
	return WriteLineResult(result, cfg, duration)
}

// WriteTap prints a hit-test result using the configured output format.
func (ow *OutWriter) WriteTap(result *schema.TapResult, cfg *contract.Config, duration time.Duration) error {
	return WriteTapResult(result, cfg, duration)
}

// WriteAnimation prints the frames observed during a reveal animation.
func (ow *OutWriter) WriteAnimation(frames []schema.AnimationFrame, cfg *contract.Config, duration time.Duration) error {
	return WriteAnimationFrames(frames, cfg, duration)
}

