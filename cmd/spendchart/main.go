// main is the entry point of the spendchart CLI.
package main

import (
	"github.com/huangsam/spendchart/cmd"
	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/iocache"
	"github.com/huangsam/spendchart/internal/logger"
)

func main() {
	cmd.SetStateManager(iocache.Manager)

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	iocache.CloseStores()
	_ = logger.Sync()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
