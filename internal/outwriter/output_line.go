package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/parquet"
	"github.com/huangsam/spendchart/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteLineResult outputs a line layout, dispatching based on the output format configured.
func WriteLineResult(result *schema.LineResult, cfg *contract.Config, duration time.Duration) error {
	_, fmtInt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLineCSV(w, result, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WritePoints(w, parquet.ConvertLineLayout(result.SnapshotKey, result.Layout))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.PNGOut:
		if err := writePNG(cfg.OutputFile, result.Commands, result.Width, result.Height); err != nil {
			return fmt.Errorf("error writing PNG output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLineTable(w, result, cfg, fmtInt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeLineCSV writes one row per plotted point.
func writeLineCSV(w io.Writer, result *schema.LineResult, fmtInt func(int64) string) error {
	header := []string{"category", "color", "day", "amount", "time"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		if result.Layout == nil {
			return nil
		}
		for _, series := range result.Layout.Series {
			for _, p := range series.Points {
				rec := []string{
					series.Category,
					series.Color.Hex(),
					strconv.Itoa(p.Day),
					fmtInt(p.Amount),
					p.Time.Format(contract.DateTimeFormat),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeLineTable writes one summary row per series.
func writeLineTable(w io.Writer, result *schema.LineResult, cfg *contract.Config, fmtInt func(int64) string, duration time.Duration) error {
	if result.Layout == nil || len(result.Layout.Series) == 0 {
		_, err := fmt.Fprintf(w, "No spending to chart (%d records). Completed in %v\n", result.Records, duration)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"", "Category", "Points", "Days", "Peak", "Total"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := getMaxLabelWidth(cfg)
	var data [][]string
	for _, series := range result.Layout.Series {
		var peak, total int64
		first, last := 0, 0
		for i, p := range series.Points {
			peak = max(peak, p.Amount)
			total += p.Amount
			if i == 0 || p.Day < first {
				first = p.Day
			}
			last = max(last, p.Day)
		}
		days := "-"
		if len(series.Points) > 0 {
			days = fmt.Sprintf("%d-%d", first, last)
		}
		data = append(data, []string{
			contract.ColorSwatch(series.Color, cfg.UseColors),
			contract.TruncateLabel(series.Category, labelWidth),
			strconv.Itoa(len(series.Points)),
			days,
			fmtInt(peak) + cfg.CurrencySuffix,
			fmtInt(total) + cfg.CurrencySuffix,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	bounds := result.Layout.Bounds
	if _, err := fmt.Fprintf(w, "Showing %d series (max amount: %s%s, days: %d, records: %d)\n",
		len(result.Layout.Series), fmtInt(bounds.MaxAmount), cfg.CurrencySuffix, bounds.MaxDayOfMonth, result.Records); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Layout built in %v for %.0fx%.0f. State backend: %s\n",
		duration, result.Width, result.Height, cfg.StateBackend)
	return err
}
