package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorSwatch(t *testing.T) {
	assert.Equal(t, Swatch, ColorSwatch(schema.Black, false))
	assert.Contains(t, ColorSwatch(schema.Color{R: 10, G: 20, B: 30, A: 255}, true), Swatch)
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePaths(t *testing.T) {
	state := GetStateDBFilePath()
	runs := GetRunDBFilePath()
	assert.True(t, strings.HasSuffix(state, ".spendchart_state.db"))
	assert.True(t, strings.HasSuffix(runs, ".spendchart_runs.db"))
	assert.NotEqual(t, state, runs)
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label    string
		maxWidth int
		want     string
	}{
		{"groceries", 20, "groceries"},
		{"groceries", 6, "gro..."},
		{"groceries", 3, "groceries"},
		{"кафе и рестораны", 7, "кафе..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateLabel(tt.label, tt.maxWidth))
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
