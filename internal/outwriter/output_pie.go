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

// WritePieResult outputs a pie layout, dispatching based on the output format configured.
func WritePieResult(result *schema.PieResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePieCSV(w, result, fmtFloat, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteSectors(w, parquet.ConvertPieSectors(result.SnapshotKey, result.Sectors))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.PNGOut:
		if err := writePNG(cfg.OutputFile, result.Commands, result.Width, result.Height); err != nil {
			return fmt.Errorf("error writing PNG output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePieTable(w, result, cfg, fmtFloat, fmtInt, duration)
		}, "Wrote table")
	}
	return nil
}

// writePieCSV writes one row per sector.
func writePieCSV(w io.Writer, result *schema.PieResult, fmtFloat func(float64) string, fmtInt func(int64) string) error {
	header := []string{"position", "category", "total", "share", "start_angle", "sweep_angle", "color", "records"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range result.Sectors {
			rec := []string{
				strconv.Itoa(i + 1),
				s.Label,
				fmtInt(s.Total),
				fmtFloat(share(s.Total, result.SumAmount)),
				fmtFloat(s.StartAngle),
				fmtFloat(s.SweepAngle),
				s.Color.Hex(),
				strconv.Itoa(len(s.Records)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writePieTable generates and writes the human-readable sector table.
func writePieTable(w io.Writer, result *schema.PieResult, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int64) string, duration time.Duration) error {
	if len(result.Sectors) == 0 {
		_, err := fmt.Fprintf(w, "No spending to chart (%d records). Completed in %v\n", result.Records, duration)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "", "Category", "Total", "Share", "Start", "Sweep", "Records"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := getMaxLabelWidth(cfg)
	var data [][]string
	for i, s := range result.Sectors {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.ColorSwatch(s.Color, cfg.UseColors),
			contract.TruncateLabel(s.Label, labelWidth),
			fmtInt(s.Total) + cfg.CurrencySuffix,
			fmtFloat(share(s.Total, result.SumAmount)) + "%",
			fmtFloat(s.StartAngle),
			fmtFloat(s.SweepAngle),
			strconv.Itoa(len(s.Records)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d categories (total: %s%s, records: %d, revealed: %s%%)\n",
		len(result.Sectors), fmtInt(result.SumAmount), cfg.CurrencySuffix, result.Records, fmtFloat(result.Progress*100)); err != nil {
		return err
	}
	source := "computed"
	if result.Restored {
		source = "restored"
	}
	_, err := fmt.Fprintf(w, "Layout %s in %v for %.0fx%.0f. State backend: %s\n",
		source, duration, result.Width, result.Height, cfg.StateBackend)
	return err
}
