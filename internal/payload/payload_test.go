package payload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON(t *testing.T) {
	data := []byte(`[
		{"id": 1, "name": "Пятёрочка", "category": "Продукты", "amount": 1500, "time": 1623318000000},
		{"id": 2, "name": "Ozon", "category": "Магазины", "amount": 499.0, "time": 1623404400000},
		{"id": 3, "category": "Продукты", "amount": 200, "time": 1623490800000}
	]`)

	records, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, "Пятёрочка", records[0].Name)
	assert.Equal(t, "Продукты", records[0].Category)
	assert.Equal(t, int64(1500), records[0].Amount)
	assert.Equal(t, time.UnixMilli(1623318000000).UTC(), records[0].Time)
	assert.Equal(t, int64(499), records[1].Amount)
	assert.Empty(t, records[2].Name)
}

func TestParseJSON_DropsMalformedEntries(t *testing.T) {
	data := []byte(`[
		{"category": "Food", "amount": 10, "time": 1000},
		{"category": "", "amount": 10, "time": 1000},
		{"category": "Food", "amount": -5, "time": 1000},
		{"category": "Food", "amount": 1.5, "time": 1000},
		{"category": "Food", "time": 1000},
		{"category": "Food", "amount": 10},
		{"category": "Food", "amount": "ten", "time": 1000},
		"not an object",
		{"category": "Cafe", "amount": 0, "time": 2000}
	]`)

	records, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Food", records[0].Category)
	assert.Equal(t, "Cafe", records[1].Category)
	assert.Equal(t, int64(0), records[1].Amount)
}

func TestParseJSON_Invalid(t *testing.T) {
	for _, input := range []string{``, `{}`, `[{"category":`, `null`} {
		t.Run(input, func(t *testing.T) {
			records, err := ParseJSON([]byte(input))
			if input == "null" {
				// A JSON null decodes into an empty list.
				require.NoError(t, err)
				assert.Empty(t, records)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"id,name,category,amount,time",
		"1,Shop,Food,120,1000",
		"2,Bar,Cafe,80,2021-06-10T12:00:00Z",
		"3,,Food,,1000",
		"4,,,50,1000",
		"x,,Food,50,1000",
		"6,,Food,50,yesterday",
	}, "\n")

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, schema.PayloadRecord{
		ID: 1, Name: "Shop", Category: "Food", Amount: 120, Time: time.UnixMilli(1000).UTC(),
	}, records[0])
	assert.Equal(t, time.Date(2021, 6, 10, 12, 0, 0, 0, time.UTC), records[1].Time)
}

func TestParseCSV_ColumnOrderAndOptionalColumns(t *testing.T) {
	input := "Time, Amount, Category\n5000, 42, Travel\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Travel", records[0].Category)
	assert.Equal(t, int64(42), records[0].Amount)
	assert.Zero(t, records[0].ID)
}

func TestParseCSV_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.Error(t, err)
	})
	t.Run("missing column", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("category,amount\nFood,1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"time"`)
	})
	t.Run("header only", func(t *testing.T) {
		records, err := ParseCSV(strings.NewReader("category,amount,time\n"))
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path, format, want string
		expectError        bool
	}{
		{"payload.json", "", FormatJSON, false},
		{"payload.CSV", "", FormatCSV, false},
		{"payload.txt", "csv", FormatCSV, false},
		{"payload.csv", "JSON", FormatJSON, false},
		{Stdin, "", FormatJSON, false},
		{"payload.txt", "", "", true},
		{"payload.json", "xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.format, func(t *testing.T) {
			got, err := DetectFormat(tt.path, tt.format)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("json file", func(t *testing.T) {
		path := writeFile(t, "payload.json", `[{"category":"Food","amount":3,"time":1000}]`)
		records := NewFileLoader(path, "").Load(ctx)
		require.Len(t, records, 1)
		assert.Equal(t, "Food", records[0].Category)
	})

	t.Run("csv file", func(t *testing.T) {
		path := writeFile(t, "payload.csv", "category,amount,time\nFood,3,1000\nCafe,4,2000\n")
		records := NewFileLoader(path, "").Load(ctx)
		assert.Len(t, records, 2)
	})

	t.Run("stdin", func(t *testing.T) {
		loader := NewFileLoader(Stdin, "")
		loader.stdin = strings.NewReader(`[{"category":"Food","amount":3,"time":1000}]`)
		assert.Len(t, loader.Load(ctx), 1)
	})

	t.Run("missing file yields empty", func(t *testing.T) {
		records := NewFileLoader(filepath.Join(t.TempDir(), "nope.json"), "").Load(ctx)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("broken json yields empty", func(t *testing.T) {
		path := writeFile(t, "payload.json", `[{"category":`)
		records := NewFileLoader(path, "").Load(ctx)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("cancelled context yields empty", func(t *testing.T) {
		path := writeFile(t, "payload.json", `[{"category":"Food","amount":3,"time":1000}]`)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.Empty(t, NewFileLoader(path, "").Load(cancelled))
	})
}

func TestStatic_Load(t *testing.T) {
	var empty Static
	assert.NotNil(t, empty.Load(context.Background()))

	records := Static{{Category: "Food", Amount: 1}}
	assert.Equal(t, []schema.PayloadRecord(records), records.Load(context.Background()))
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in          string
		want        int64
		expectError bool
	}{
		{"42", 42, false},
		{"42.0", 42, false},
		{"1e3", 1000, false},
		{"-7", -7, false},
		{"4.2", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseInteger(tt.in)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
