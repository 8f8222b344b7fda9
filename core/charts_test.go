package core

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/spendchart/internal/iocache"
	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildCharts_ComputeThenRestore(t *testing.T) {
	cfg := testConfig()
	records := testRecords()
	key := SnapshotKey(records, cfg)

	// First build: nothing saved, layouts are computed and saved
	var saved []byte
	first := &iocache.MockStateStore{}
	first.On("Get", key).Return(nil, 0, int64(0), sql.ErrNoRows)
	first.On("Set", key, mock.Anything, currentStateVersion, mock.AnythingOfType("int64")).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]byte) }).
		Return(nil)

	computed, err := BuildCharts(cfg, records, first)
	require.NoError(t, err)
	first.AssertExpectations(t)
	assert.False(t, computed.Restored)
	assert.Equal(t, key, computed.Key)
	assert.Equal(t, 3, computed.Records)
	require.NotEmpty(t, saved)

	// Second build: the saved layout is restored, colors included
	second := &iocache.MockStateStore{}
	second.On("Get", key).Return(saved, currentStateVersion, time.Now().Unix(), nil)

	restored, err := BuildCharts(cfg, records, second)
	require.NoError(t, err)
	second.AssertExpectations(t)
	second.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, restored.Restored)

	want, got := computed.Pie.Sectors(), restored.Pie.Sectors()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Label, got[i].Label)
		assert.Equal(t, want[i].Color, got[i].Color)
		assert.Equal(t, want[i].StartAngle, got[i].StartAngle)
		assert.Equal(t, want[i].SweepAngle, got[i].SweepAngle)
	}
	assert.Equal(t, computed.Line.Layout().Bounds, restored.Line.Layout().Bounds)
	assert.Equal(t, computed.Pie.Geometry(), restored.Pie.Geometry(), "restored charts are measured too")
}

func TestBuildCharts_SharedAllocator(t *testing.T) {
	cfg := testConfig()
	charts, err := BuildCharts(cfg, testRecords(), nil)
	require.NoError(t, err)

	// Pie draws first, then the line chart continues from the same allocator
	sectors := charts.Pie.Sectors()
	series := charts.Line.Layout().Series
	require.Len(t, sectors, 2)
	require.Len(t, series, 2)
	assert.NotEqual(t, sectors[0].Color, sectors[1].Color)
	assert.ElementsMatch(t, []schema.Color{red, blue}, []schema.Color{sectors[0].Color, sectors[1].Color})
	assert.ElementsMatch(t, []schema.Color{red, blue}, []schema.Color{series[0].Color, series[1].Color})
}

func TestBuildCharts_Seeded(t *testing.T) {
	cfg := testConfig()
	a, err := BuildCharts(cfg, testRecords(), nil)
	require.NoError(t, err)
	b, err := BuildCharts(cfg, testRecords(), nil)
	require.NoError(t, err)
	assert.Equal(t, a.Pie.Sectors()[0].Color, b.Pie.Sectors()[0].Color)
	assert.Equal(t, a.Line.Layout().Series[1].Color, b.Line.Layout().Series[1].Color)
}

func TestBuildCharts_EmptyIsNotSaved(t *testing.T) {
	store := &iocache.MockStateStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), sql.ErrNoRows)

	charts, err := BuildCharts(testConfig(), []schema.PayloadRecord{}, store)
	require.NoError(t, err)
	assert.Empty(t, charts.Pie.Sectors())
	assert.Empty(t, charts.Line.Layout().Series)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildPie(t *testing.T) {
	cfg := testConfig()
	cfg.Progress = 0.25

	mgr := &iocache.MockStateManager{}
	mgr.On("GetStateStore").Return(nil)
	mgr.On("GetRunStore").Return(nil)

	result, err := BuildPie(context.Background(), cfg, testRecords(), mgr)
	require.NoError(t, err)
	assert.Equal(t, int64(400), result.SumAmount)
	assert.Equal(t, 3, result.Records)
	assert.Equal(t, 0.25, result.Progress)
	assert.Equal(t, 200.0, result.Width)
	assert.Equal(t, 200.0, result.Height)
	assert.Len(t, result.Sectors, 2)
	assert.NotEmpty(t, result.Commands)
	mgr.AssertExpectations(t)
}

func TestBuildPie_TracksRun(t *testing.T) {
	cfg := testConfig()
	records := testRecords()

	runs := &iocache.MockRunStore{}
	runs.On("BeginRun", mock.Anything, SnapshotKey(records, cfg), mock.Anything).Return(int64(7), nil)
	runs.On("RecordSector", int64(7), 0, mock.MatchedBy(func(s schema.PieSector) bool { return s.Label == "Food" })).Return(nil)
	runs.On("RecordSector", int64(7), 1, mock.MatchedBy(func(s schema.PieSector) bool { return s.Label == "Transport" })).Return(nil)
	runs.On("EndRun", int64(7), mock.Anything, 3).Return(nil)

	mgr := &iocache.MockStateManager{}
	mgr.On("GetStateStore").Return(nil)
	mgr.On("GetRunStore").Return(runs)

	_, err := BuildPie(context.Background(), cfg, records, mgr)
	require.NoError(t, err)
	runs.AssertExpectations(t)
}

func TestBuildPie_RunTrackingFailureOnlyWarns(t *testing.T) {
	runs := &iocache.MockRunStore{}
	runs.On("BeginRun", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	mgr := &iocache.MockStateManager{}
	mgr.On("GetStateStore").Return(nil)
	mgr.On("GetRunStore").Return(runs)

	result, err := BuildPie(context.Background(), testConfig(), testRecords(), mgr)
	require.NoError(t, err)
	assert.Len(t, result.Sectors, 2)
	runs.AssertNotCalled(t, "RecordSector", mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildPie_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildPie(ctx, testConfig(), testRecords(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildLine(t *testing.T) {
	result, err := BuildLine(context.Background(), testConfig(), testRecords(), nil)
	require.NoError(t, err)
	assert.Equal(t, 200.0, result.Width)
	assert.Equal(t, 100.0, result.Height)
	require.NotNil(t, result.Layout)
	assert.Equal(t, schema.ChartBounds{MaxAmount: 300, MaxDayOfMonth: 30}, result.Layout.Bounds)
	assert.NotEmpty(t, result.Commands)
}

func TestTap(t *testing.T) {
	ctx := context.Background()

	hit, err := Tap(ctx, testConfig(), testRecords(), nil, 100, 190)
	require.NoError(t, err)
	assert.True(t, hit.Hit)
	assert.Equal(t, "Food", hit.Category)
	assert.InDelta(t, 90.0, hit.Angle, 1e-9)
	assert.Len(t, hit.Records, 2)

	miss, err := Tap(ctx, testConfig(), testRecords(), nil, 100, 100)
	require.NoError(t, err)
	assert.False(t, miss.Hit)
	assert.Empty(t, miss.Category)
	assert.NotNil(t, miss.Records)
}
