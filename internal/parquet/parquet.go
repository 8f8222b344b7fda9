// Package parquet provides data structures and functions for exporting spendchart
// run history and pie layouts to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/spendchart/schema"
	"github.com/parquet-go/parquet-go"
)

// ChartRun represents a single chart build with metadata.
// This struct maps to the spendchart_runs database table.
type ChartRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the build began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the build completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// SnapshotKey identifies the data snapshot the charts were built from
	SnapshotKey string `parquet:"snapshot_key,snappy"`

	// TotalRecords is the number of payload records charted in this run
	TotalRecords int32 `parquet:"total_records,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunSector represents one pie sector computed during a run.
// This struct maps to the spendchart_run_sectors database table.
type RunSector struct {
	RunID      int64   `parquet:"run_id,snappy"`
	Position   int32   `parquet:"position,snappy"`
	Category   string  `parquet:"category,snappy"`
	Total      int64   `parquet:"total,snappy"`
	StartAngle float64 `parquet:"start_angle,snappy"`
	SweepAngle float64 `parquet:"sweep_angle,snappy"`
	Color      string  `parquet:"color,snappy"`
	Records    int32   `parquet:"records,snappy"`
}

// Sector is a flattened pie sector of a single layout, used by the parquet output mode.
type Sector struct {
	SnapshotKey string  `parquet:"snapshot_key,snappy"`
	Position    int32   `parquet:"position,snappy"`
	Category    string  `parquet:"category,snappy"`
	Total       int64   `parquet:"total,snappy"`
	Share       float64 `parquet:"share,snappy"` // Fraction of the full rotation
	StartAngle  float64 `parquet:"start_angle,snappy"`
	SweepAngle  float64 `parquet:"sweep_angle,snappy"`
	Color       string  `parquet:"color,snappy"`
	Records     int32   `parquet:"records,snappy"`
}

// Point is a flattened line chart point, used by the parquet output mode.
type Point struct {
	SnapshotKey string    `parquet:"snapshot_key,snappy"`
	Category    string    `parquet:"category,snappy"`
	Color       string    `parquet:"color,snappy"`
	Day         int32     `parquet:"day,snappy"`
	Amount      int64     `parquet:"amount,snappy"`
	Time        time.Time `parquet:"time,snappy"`
}

// write encodes rows with a schema inferred from T's struct tags.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteChartRunsParquet writes a slice of ChartRun structs to a Parquet file.
func WriteChartRunsParquet(data []ChartRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRunSectorsParquet writes a slice of RunSector structs to a Parquet file.
func WriteRunSectorsParquet(data []RunSector, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteSectors writes pie sectors as Parquet to w.
func WriteSectors(w io.Writer, data []Sector) error {
	return write(w, data)
}

// WritePoints writes line chart points as Parquet to w.
func WritePoints(w io.Writer, data []Point) error {
	return write(w, data)
}

// ConvertRunRecords converts schema.RunRecord to ChartRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ChartRun {
	result := make([]ChartRun, len(records))
	for i, record := range records {
		result[i] = ChartRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDuration,
			SnapshotKey:   record.SnapshotKey,
			TotalRecords:  record.TotalRecords,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSectorRecords converts schema.SectorRecord to RunSector for Parquet export.
func ConvertSectorRecords(records []schema.SectorRecord) []RunSector {
	result := make([]RunSector, len(records))
	for i, record := range records {
		result[i] = RunSector(record)
	}
	return result
}

// ConvertPieSectors flattens the sectors of one pie layout.
func ConvertPieSectors(snapshotKey string, sectors []schema.PieSector) []Sector {
	result := make([]Sector, len(sectors))
	for i, s := range sectors {
		result[i] = Sector{
			SnapshotKey: snapshotKey,
			Position:    int32(i),
			Category:    s.Label,
			Total:       s.Total,
			Share:       s.SweepAngle / schema.FullRotation,
			StartAngle:  s.StartAngle,
			SweepAngle:  s.SweepAngle,
			Color:       s.Color.Hex(),
			Records:     int32(len(s.Records)),
		}
	}
	return result
}

// ConvertLineLayout flattens every series of one line layout in plotting order.
func ConvertLineLayout(snapshotKey string, layout *schema.LineLayout) []Point {
	if layout == nil {
		return nil
	}
	var result []Point
	for _, series := range layout.Series {
		for _, p := range series.Points {
			result = append(result, Point{
				SnapshotKey: snapshotKey,
				Category:    series.Category,
				Color:       series.Color.Hex(),
				Day:         int32(p.Day),
				Amount:      p.Amount,
				Time:        p.Time,
			})
		}
	}
	return result
}
