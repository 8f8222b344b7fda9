package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAnimationFrames outputs the frames observed during a reveal.
func WriteAnimationFrames(frames []schema.AnimationFrame, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, frames)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFramesCSV(w, frames, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFramesTable(w, frames, fmtFloat, duration)
		}, "Wrote table")
	default:
		return fmt.Errorf("output %s is not supported for animations", cfg.Output)
	}
	return nil
}

func writeFramesCSV(w io.Writer, frames []schema.AnimationFrame, fmtFloat func(float64) string) error {
	header := []string{"index", "elapsed_ms", "progress", "file"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range frames {
			rec := []string{
				strconv.Itoa(f.Index),
				strconv.FormatInt(f.Elapsed.Milliseconds(), 10),
				fmtFloat(f.Progress),
				f.File,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFramesTable(w io.Writer, frames []schema.AnimationFrame, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Frame", "Elapsed", "Progress", "File"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, f := range frames {
		data = append(data, []string{
			strconv.Itoa(f.Index),
			f.Elapsed.Round(time.Millisecond).String(),
			fmtFloat(f.Progress*100) + "%",
			f.File,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Rendered %d frames in %v\n", len(frames), duration)
	return err
}
