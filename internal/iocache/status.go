package iocache

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/huangsam/spendchart/schema"
)

// PrintStateStatus prints view state store status information.
func PrintStateStatus(w io.Writer, status schema.StateStatus) {
	fmt.Fprintf(w, "State Backend: %s\n", status.Backend)
	fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format(time.DateTime))
		fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format(time.DateTime))
	}
	fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintRunStatus prints run store status information.
func PrintRunStatus(w io.Writer, status schema.RunStatus) {
	fmt.Fprintf(w, "Run Backend: %s\n", status.Backend)
	fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format(time.DateTime))
		fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format(time.DateTime))
		fmt.Fprintf(w, "Total Records Charted: %d\n", status.TotalRecords)
	}
	fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
