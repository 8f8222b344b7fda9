package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/iocache"
	"github.com/huangsam/spendchart/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stateSetup loads minimal configuration needed for view state operations.
// This is used by commands that need state access without full shared setup.
func stateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("state-backend"))
	connStr := viper.GetString("state-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid state backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// No run tracking for state commands
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}

	cfg.StateBackend = backend
	cfg.StateDBConnect = connStr

	return nil
}

// sqlitePath returns the SQLite file a store uses: the connection string when given, else the default.
func sqlitePath(connStr, defaultPath string) string {
	if connStr != "" {
		return connStr
	}
	return defaultPath
}

// stateSetupWrapper wraps stateSetup to provide PreRunE for state commands.
func stateSetupWrapper(_ *cobra.Command, _ []string) error {
	return stateSetup()
}

// stateCmd focused on view state management.
//
// Note: State subcommands use minimal initialization (stateSetup) instead of
// the full sharedSetup used by chart commands. This avoids payload validation
// and chart option processing for simple store operations.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage saved chart view state",
	Long: `Manage the saved view state that lets charts be restored without recomputation.

Every chart build stores its sectors, colors and line layout under a key derived
from the payload and the layout options. Building the same payload again restores
the saved layout, so colors stay stable between runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (always recompute)

Subcommands:
  status - Show state statistics and connection info
  clear  - Remove all saved state

Examples:
  # Check state status
  spendchart state status

  # Forget all saved layouts and colors
  spendchart state clear`,
}

// stateClearCmd clears the view state.
var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved chart view state",
	Long: `Delete all saved chart view state from the configured backend.

The next build of every payload recomputes its layout and draws new colors.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the state table

Examples:
  # Clear SQLite state (default)
  spendchart state clear

  # Clear MySQL state (set connection string via env variable)
  SPENDCHART_STATE_BACKEND=mysql SPENDCHART_STATE_DB_CONNECT="..." spendchart state clear`,
	PreRunE: stateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The open handle must be released before the SQLite file is removed
		iocache.CloseStores()
		if err := iocache.ClearState(cfg.StateBackend, sqlitePath(cfg.StateDBConnect, iocache.GetStateDBFilePath()), cfg.StateDBConnect); err != nil {
			contract.LogFatal("Failed to clear state", err)
		}
		fmt.Println("State cleared successfully.")
	},
}

// stateStatusCmd shows view state status.
var stateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display state statistics and connection details",
	Long: `Show detailed information about the saved chart view state.

Displays:
- Backend type and connection status
- Total number of saved snapshots
- Last and oldest save timestamps
- State table size

Examples:
  # Check state status
  spendchart state status`,
	PreRunE: stateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetStateStore()
		if store == nil {
			contract.LogFatal("Failed to get state status", fmt.Errorf("state store is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get state status", err)
		}
		iocache.PrintStateStatus(os.Stdout, status)
	},
}
