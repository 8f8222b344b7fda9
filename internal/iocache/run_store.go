package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/schema"
)

// Table names for run tracking.
const (
	runsTable       = "spendchart_runs"
	runSectorsTable = "spendchart_run_sectors"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == schema.NoneBackend {
		return &RunStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetRunDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run store: %w", err)
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{runSectorsTable, getCreateRunSectorsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for spendchart_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				snapshot_key VARCHAR(64) NOT NULL,
				total_records INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				snapshot_key TEXT NOT NULL,
				total_records INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				snapshot_key TEXT NOT NULL,
				total_records INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)
	}
}

// getCreateRunSectorsQuery returns the CREATE TABLE query for spendchart_run_sectors.
func getCreateRunSectorsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runSectorsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				category VARCHAR(255) NOT NULL,
				total BIGINT NOT NULL,
				start_angle DOUBLE NOT NULL,
				sweep_angle DOUBLE NOT NULL,
				color VARCHAR(9) NOT NULL,
				records INT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				category TEXT NOT NULL,
				total BIGINT NOT NULL,
				start_angle DOUBLE PRECISION NOT NULL,
				sweep_angle DOUBLE PRECISION NOT NULL,
				color TEXT NOT NULL,
				records INT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				position INTEGER NOT NULL,
				category TEXT NOT NULL,
				total INTEGER NOT NULL,
				start_angle REAL NOT NULL,
				sweep_angle REAL NOT NULL,
				color TEXT NOT NULL,
				records INTEGER NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quoted)
	}
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, snapshotKey string, configParams map[string]any) (int64, error) {
	if rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quoted := quoteTableName(runsTable, rs.backend)
	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, snapshot_key, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quoted)
		err = rs.db.QueryRow(query, startTime, snapshotKey, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, snapshot_key, config_params) VALUES (?, ?, ?)`, quoted)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), snapshotKey, string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalRecords int) error {
	if rs.db == nil {
		return nil
	}

	quoted := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quoted, placeholder(rs.backend, 1))
	start := scanTime{backend: rs.backend}
	if err := rs.db.QueryRow(query, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	if startTime == nil {
		return fmt.Errorf("run %d has no start_time", runID)
	}

	update := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_records = %s WHERE run_id = %s`, quoted,
		placeholder(rs.backend, 1), placeholder(rs.backend, 2), placeholder(rs.backend, 3), placeholder(rs.backend, 4))
	durationMs := endTime.Sub(*startTime).Milliseconds()
	if _, err := rs.db.Exec(update, formatTime(endTime, rs.backend), durationMs, totalRecords, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordSector stores one computed pie sector of a run.
func (rs *RunStoreImpl) RecordSector(runID int64, position int, sector schema.PieSector) error {
	if rs.db == nil {
		return nil
	}

	ph := make([]any, 8)
	for i := range ph {
		ph[i] = placeholder(rs.backend, i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (run_id, position, category, total, start_angle, sweep_angle, color, records)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)`, append([]any{quoteTableName(runSectorsTable, rs.backend)}, ph...)...)
	_, err := rs.db.Exec(query, runID, position, sector.Label, sector.Total,
		sector.StartAngle, sector.SweepAngle, sector.Color.Hex(), len(sector.Records))
	if err != nil {
		return fmt.Errorf("failed to insert run sector: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if rs.db == nil {
		return status, nil
	}

	quoted := quoteTableName(runsTable, rs.backend)
	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := scanTime{backend: rs.backend}
		query := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoted)
		if err := rs.db.QueryRow(query).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		oldest := scanTime{backend: rs.backend}
		query = fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoted)
		if err := rs.db.QueryRow(query).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}

		query = fmt.Sprintf("SELECT COALESCE(SUM(total_records), 0) FROM %s", quoted)
		if err := rs.db.QueryRow(query).Scan(&status.TotalRecords); err != nil {
			return status, fmt.Errorf("failed to get total records: %w", err)
		}
	}

	for _, table := range []string{runsTable, runSectorsTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))
		if err := rs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns retrieves all runs ordered by ID.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, snapshot_key, total_records, config_params FROM %s ORDER BY run_id",
		quoteTableName(runsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		start := scanTime{backend: rs.backend}
		end := scanTime{backend: rs.backend}
		if err := rows.Scan(&record.RunID, start.dest(), end.dest(), &record.RunDuration,
			&record.SnapshotKey, &record.TotalRecords, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllSectors retrieves all recorded sectors ordered by run and position.
func (rs *RunStoreImpl) GetAllSectors() ([]schema.SectorRecord, error) {
	if rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, position, category, total, start_angle, sweep_angle, color, records
		FROM %s ORDER BY run_id, position`, quoteTableName(runSectorsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run sectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SectorRecord
	for rows.Next() {
		var r schema.SectorRecord
		if err := rows.Scan(&r.RunID, &r.Position, &r.Category, &r.Total,
			&r.StartAngle, &r.SweepAngle, &r.Color, &r.Records); err != nil {
			return nil, fmt.Errorf("failed to scan run sector: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run sectors: %w", err)
	}
	return results, nil
}
