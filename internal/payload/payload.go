// Package payload loads transaction records from JSON or CSV files.
//
// Loaders never fail into the core: read and parse problems are reported as
// warnings and yield an empty list, and malformed entries are dropped.
package payload

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/logger"
	"github.com/huangsam/spendchart/schema"
	"go.uber.org/zap"
)

// Supported payload formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Stdin is the path that reads the payload from standard input.
const Stdin = "-"

// ErrUnknownFormat is returned when the payload format cannot be determined.
var ErrUnknownFormat = errors.New("unknown payload format")

// FileLoader reads records from a file path.
type FileLoader struct {
	Path   string
	Format string // json or csv, empty = infer from extension
	stdin  io.Reader
}

var _ contract.PayloadLoader = &FileLoader{} // Compile-time check

// NewFileLoader returns a loader for path in the given format.
func NewFileLoader(path, format string) *FileLoader {
	return &FileLoader{Path: path, Format: format, stdin: os.Stdin}
}

// Load implements contract.PayloadLoader.
func (l *FileLoader) Load(ctx context.Context) []schema.PayloadRecord {
	if err := ctx.Err(); err != nil {
		contract.LogWarn("Payload load cancelled", err)
		return []schema.PayloadRecord{}
	}
	records, err := l.read()
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to load payload %s", l.Path), err)
		return []schema.PayloadRecord{}
	}
	return records
}

func (l *FileLoader) read() ([]schema.PayloadRecord, error) {
	format, err := DetectFormat(l.Path, l.Format)
	if err != nil {
		return nil, err
	}

	var data []byte
	if l.Path == Stdin {
		data, err = io.ReadAll(l.stdin)
	} else {
		data, err = os.ReadFile(l.Path)
	}
	if err != nil {
		return nil, err
	}

	if format == FormatCSV {
		return ParseCSV(bytes.NewReader(data))
	}
	return ParseJSON(data)
}

// DetectFormat returns format when set, and otherwise infers it from the path extension.
// Standard input defaults to JSON.
func DetectFormat(path, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if path == Stdin {
		return FormatJSON, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: cannot infer from %q, use --format", ErrUnknownFormat, path)
	}
}

// Static is a loader over records already in memory.
type Static []schema.PayloadRecord

// Load implements contract.PayloadLoader.
func (s Static) Load(_ context.Context) []schema.PayloadRecord {
	if s == nil {
		return []schema.PayloadRecord{}
	}
	return s
}

// rawRecord is one JSON payload entry before validation.
type rawRecord struct {
	ID       *int64       `json:"id"`
	Name     string       `json:"name"`
	Category *string      `json:"category"`
	Amount   *json.Number `json:"amount"`
	Time     *json.Number `json:"time"` // Epoch milliseconds
}

// ParseJSON decodes a JSON array of records, dropping malformed entries.
func ParseJSON(data []byte) ([]schema.PayloadRecord, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("invalid payload JSON: %w", err)
	}

	records := make([]schema.PayloadRecord, 0, len(raws))
	dropped := 0
	for i, msg := range raws {
		var raw rawRecord
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			dropped++
			logger.Debug("dropping payload entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		rec, err := raw.validate()
		if err != nil {
			dropped++
			logger.Debug("dropping payload entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	logDropped(dropped, len(raws))
	return records, nil
}

func (r rawRecord) validate() (schema.PayloadRecord, error) {
	if r.Category == nil || strings.TrimSpace(*r.Category) == "" {
		return schema.PayloadRecord{}, errors.New("missing category")
	}
	if r.Amount == nil {
		return schema.PayloadRecord{}, errors.New("missing amount")
	}
	if r.Time == nil {
		return schema.PayloadRecord{}, errors.New("missing time")
	}
	amount, err := parseAmount(r.Amount.String())
	if err != nil {
		return schema.PayloadRecord{}, err
	}
	millis, err := parseInteger(r.Time.String())
	if err != nil {
		return schema.PayloadRecord{}, fmt.Errorf("invalid time: %w", err)
	}
	rec := schema.PayloadRecord{
		Name:     r.Name,
		Category: *r.Category,
		Amount:   amount,
		Time:     time.UnixMilli(millis).UTC(),
	}
	if r.ID != nil {
		rec.ID = *r.ID
	}
	return rec, nil
}

// ParseCSV decodes CSV with a header row naming at least category, amount
// and time columns; id and name are optional. Time is epoch milliseconds or RFC 3339.
func ParseCSV(r io.Reader) ([]schema.PayloadRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid payload CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"category", "amount", "time"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("payload CSV is missing the %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []schema.PayloadRecord
	total, dropped := 0, 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid payload CSV: %w", err)
		}
		total++
		rec, err := csvRecord(field, row)
		if err != nil {
			dropped++
			logger.Debug("dropping payload row", zap.Int("row", total), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	logDropped(dropped, total)
	if records == nil {
		records = []schema.PayloadRecord{}
	}
	return records, nil
}

func csvRecord(field func([]string, string) string, row []string) (schema.PayloadRecord, error) {
	category := field(row, "category")
	if category == "" {
		return schema.PayloadRecord{}, errors.New("missing category")
	}
	amount, err := parseAmount(field(row, "amount"))
	if err != nil {
		return schema.PayloadRecord{}, err
	}
	ts, err := parseTime(field(row, "time"))
	if err != nil {
		return schema.PayloadRecord{}, err
	}
	rec := schema.PayloadRecord{Name: field(row, "name"), Category: category, Amount: amount, Time: ts}
	if id := field(row, "id"); id != "" {
		if rec.ID, err = strconv.ParseInt(id, 10, 64); err != nil {
			return schema.PayloadRecord{}, fmt.Errorf("invalid id: %w", err)
		}
	}
	return rec, nil
}

// parseAmount accepts non-negative integers, including integral decimals like "1500.0".
func parseAmount(s string) (int64, error) {
	v, err := parseInteger(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid amount: %d is negative", v)
	}
	return v, nil
}

func parseInteger(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64 {
		return 0, fmt.Errorf("%s is not an integer", s)
	}
	return int64(f), nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing time")
	}
	if millis, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want epoch milliseconds or RFC 3339", s)
	}
	return t, nil
}

func logDropped(dropped, total int) {
	if dropped > 0 {
		logger.Warn("dropped malformed payload entries", zap.Int("dropped", dropped), zap.Int("total", total))
	}
}
