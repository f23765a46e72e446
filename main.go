// main holds the entry logic for the parityscope CLI.
package main

import (
	"os"

	"github.com/parityscope/parityscope/cmd"
	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/internal/history"
)

func main() {
	// The manager is populated lazily during command setup once the
	// backend configuration has been validated.
	cmd.SetHistoryManager(history.Manager)
	defer history.CloseHistory()

	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
