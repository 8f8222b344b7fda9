//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSpendchartWithMySQL tests the spendchart CLI with a MySQL backend.
func TestSpendchartWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "spendchart",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/spendchart?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestSpendchartWithPostgres tests the spendchart CLI with a PostgreSQL backend.
func TestSpendchartWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}

// runBackendScenario drives the CLI against one database for both the state and run stores.
func runBackendScenario(t *testing.T, backend, connStr string) {
	t.Setenv("SPENDCHART_STATE_BACKEND", backend)
	t.Setenv("SPENDCHART_STATE_DB_CONNECT", connStr)
	t.Setenv("SPENDCHART_RUN_BACKEND", backend)
	t.Setenv("SPENDCHART_RUN_DB_CONNECT", connStr)

	payloadPath := writePayload(t)

	steps := [][]string{
		{"state", "clear"},
		{"runs", "clear"},
		{"pie", payloadPath, "--seed", "1"},
		{"pie", payloadPath, "--seed", "1"}, // restored from state
		{"line", payloadPath, "--seed", "1"},
		{"state", "status"},
		{"runs", "status"},
		{"runs", "export", "--output-file", t.TempDir() + "/runs.parquet"},
		{"runs", "migrate"},
	}
	for _, args := range steps {
		_, err := runSpendchart(t, args...)
		require.NoError(t, err, "spendchart %v", args)
	}
}
