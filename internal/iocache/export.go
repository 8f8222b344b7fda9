package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/parquet"
)

// ExportRuns writes all runs and their sectors to two Parquet files
// named after outputFile.
func ExportRuns(w io.Writer, store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run tracking is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	fmt.Fprintf(w, "Total sector records: %d\n", status.TableSizes[runSectorsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	sectors, err := store.GetAllSectors()
	if err != nil {
		return fmt.Errorf("failed to retrieve run sectors: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteChartRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	sectorsFile := outputFile + ".sectors.parquet"
	if err := parquet.WriteRunSectorsParquet(parquet.ConvertSectorRecords(sectors), sectorsFile); err != nil {
		return fmt.Errorf("failed to write run sectors: %w", err)
	}
	fmt.Fprintf(w, "Exported %d sector records to: %s\n", len(sectors), sectorsFile)
	return nil
}
