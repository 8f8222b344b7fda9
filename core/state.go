package core

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/schema"
)

// currentStateVersion defines the version of the persisted view state schema
const currentStateVersion = 1

// stateTTL bounds how long a saved layout is trusted.
const stateTTL = 7 * 24 * time.Hour

// ErrNoState is returned when there is no usable view state to restore.
var ErrNoState = errors.New("no saved chart state")

// ErrStateVersion is returned when saved view state has an unknown schema version.
var ErrStateVersion = errors.New("unsupported chart state version")

// SnapshotKey identifies a data snapshot together with every option that
// shapes its layout, so a restored layout always matches what would be computed.
func SnapshotKey(records []schema.PayloadRecord, cfg *contract.Config) string {
	h := sha256.New()
	for _, r := range records {
		_, _ = fmt.Fprintf(h, "%d\x1f%q\x1f%q\x1f%d\x1f%d\x1e", r.ID, r.Name, r.Category, r.Amount, r.Time.UnixMilli())
	}
	loc := "UTC"
	if cfg.Location != nil {
		loc = cfg.Location.String()
	}
	_, _ = fmt.Fprintf(h, "palette=%v;seed=%d:%t;scale=%s;sort=%t;tz=%s",
		cfg.Palette, cfg.Seed, cfg.HasSeed, cfg.AmountScale, cfg.SortPoints, loc)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Serialize encodes view state for storage.
func Serialize(state *schema.ChartState) ([]byte, error) {
	if state == nil {
		return nil, ErrNoState
	}
	out := *state
	out.Version = currentStateVersion
	return json.Marshal(&out)
}

// Deserialize decodes view state written by Serialize.
func Deserialize(data []byte) (*schema.ChartState, error) {
	if len(data) == 0 {
		return nil, ErrNoState
	}
	var state schema.ChartState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode chart state: %w", err)
	}
	if state.Version != currentStateVersion {
		return nil, fmt.Errorf("%w: %d", ErrStateVersion, state.Version)
	}
	return &state, nil
}

// CaptureState snapshots the layouts of both charts under key.
func CaptureState(key string, pieChart *PieChart, lineChart *LineChart) *schema.ChartState {
	return &schema.ChartState{
		Version:     currentStateVersion,
		SnapshotKey: key,
		Sectors:     pieChart.Sectors(),
		Line:        lineChart.Layout(),
	}
}

// RestoreState binds saved layouts to both charts without recomputing them.
func RestoreState(state *schema.ChartState, pieChart *PieChart, lineChart *LineChart) {
	pieChart.SetSectors(state.Sectors)
	lineChart.SetLayout(state.Line)
}

// loadState attempts to retrieve and validate saved state for key.
func loadState(store contract.StateStore, key string) *schema.ChartState {
	if store == nil {
		return nil
	}
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Nothing saved
	}

	// Validate version and staleness
	if version != currentStateVersion || time.Since(time.Unix(ts, 0)) > stateTTL {
		return nil
	}
	state, err := Deserialize(data)
	if err != nil || state.SnapshotKey != key {
		return nil
	}
	return state
}

// saveState stores state under key, warning instead of failing on storage errors.
func saveState(store contract.StateStore, key string, state *schema.ChartState) {
	if store == nil {
		return
	}
	data, err := Serialize(state)
	if err != nil {
		contract.LogWarn("Cannot encode chart state", err)
		return
	}
	if err := store.Set(key, data, currentStateVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Cannot save chart state", err)
	}
}
