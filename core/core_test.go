package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/iocache"
	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLoader(records []schema.PayloadRecord) *contract.MockPayloadLoader {
	loader := &contract.MockPayloadLoader{}
	loader.On("Load", mock.Anything).Return(records)
	return loader
}

func noStores() *iocache.MockStateManager {
	mgr := &iocache.MockStateManager{}
	mgr.On("GetStateStore").Return(nil)
	mgr.On("GetRunStore").Return(nil)
	return mgr
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestExecutors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("pie", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.JSONOut
		cfg.OutputFile = filepath.Join(dir, "pie.json")
		loader := newLoader(testRecords())

		require.NoError(t, ExecutePie(ctx, cfg, loader, noStores()))
		loader.AssertExpectations(t)

		var result schema.PieResult
		readJSON(t, cfg.OutputFile, &result)
		assert.Len(t, result.Sectors, 2)
	})

	t.Run("line", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.JSONOut
		cfg.OutputFile = filepath.Join(dir, "line.json")

		require.NoError(t, ExecuteLine(ctx, cfg, newLoader(testRecords()), noStores()))

		var result schema.LineResult
		readJSON(t, cfg.OutputFile, &result)
		require.NotNil(t, result.Layout)
		assert.Len(t, result.Layout.Series, 2)
	})

	t.Run("tap", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.JSONOut
		cfg.OutputFile = filepath.Join(dir, "tap.json")
		cfg.TapX, cfg.TapY = 190, 100

		require.NoError(t, ExecuteTap(ctx, cfg, newLoader(testRecords()), noStores()))

		var result schema.TapResult
		readJSON(t, cfg.OutputFile, &result)
		assert.True(t, result.Hit)
		assert.Equal(t, "Transport", result.Category)
	})

	t.Run("empty payload", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.JSONOut
		cfg.OutputFile = filepath.Join(dir, "empty.json")

		require.NoError(t, ExecutePie(ctx, cfg, newLoader([]schema.PayloadRecord{}), noStores()))

		var result schema.PieResult
		readJSON(t, cfg.OutputFile, &result)
		assert.Empty(t, result.Sectors)
		assert.Zero(t, result.SumAmount)
	})
}

func TestAnimate(t *testing.T) {
	cfg := testConfig()
	cfg.FramesDir = filepath.Join(t.TempDir(), "frames")

	frames, err := Animate(context.Background(), cfg, testRecords(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, frames)

	first, last := frames[0], frames[len(frames)-1]
	assert.Equal(t, 0.0, first.Progress)
	assert.Equal(t, 1.0, last.Progress)
	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.FileExists(t, f.File)
		if i > 0 {
			assert.GreaterOrEqual(t, f.Progress, frames[i-1].Progress, "progress never goes back")
		}
	}
}

func TestAnimate_Cancelled(t *testing.T) {
	cfg := testConfig()
	cfg.AnimationDuration = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	frames, err := Animate(ctx, cfg, testRecords(), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotEmpty(t, frames)
	assert.Less(t, frames[len(frames)-1].Progress, 1.0)
}
