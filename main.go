// main is the entry point for the gapscope CLI.
package main

import (
	"fmt"
	"os"

	"github.com/seralva/gapscope/cmd"
	"github.com/seralva/gapscope/internal/snapcache"
)

func main() {
	// Snapshot stores are initialized lazily by command setup; close them
	// on the way out regardless of which command ran.
	defer snapcache.CloseStores()

	cmd.SetSnapshotManager(snapcache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", profErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		snapcache.CloseStores()
		os.Exit(1)
	}
}
