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
)

// WriteTapResult outputs the records selected by a hit-test.
func WriteTapResult(result *schema.TapResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordsCSV(w, result.Records)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTapTable(w, result, cfg, duration)
		}, "Wrote table")
	default:
		return fmt.Errorf("output %s is not supported for hit-tests", cfg.Output)
	}
	return nil
}

func writeRecordsCSV(w io.Writer, records []schema.PayloadRecord) error {
	header := []string{"id", "name", "category", "amount", "time"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			rec := []string{
				strconv.FormatInt(r.ID, 10),
				r.Name,
				r.Category,
				strconv.FormatInt(r.Amount, 10),
				r.Time.Format(contract.DateTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTapTable(w io.Writer, result *schema.TapResult, cfg *contract.Config, duration time.Duration) error {
	if !result.Hit {
		_, err := fmt.Fprintf(w, "No sector at (%.1f, %.1f). Completed in %v\n", result.X, result.Y, duration)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s at %.1f° (%d records)\n",
		contract.HeaderColor.Sprint(result.Category), result.Angle, len(result.Records)); err != nil {
		return err
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Amount", "Time"})
	var data [][]string
	for _, r := range result.Records {
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10),
			contract.TruncateLabel(r.Name, getMaxLabelWidth(cfg)),
			strconv.FormatInt(r.Amount, 10) + cfg.CurrencySuffix,
			r.Time.In(loc).Format(time.DateTime),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
