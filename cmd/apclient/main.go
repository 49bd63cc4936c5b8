package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "apclient",
		Short: "Archipelago multiworld client",
		Long: `apclient talks to an Archipelago multiworld server.

It joins a session, authenticates as a slot, and exchanges item and
location events with the coordinator. Useful for text play, tracking,
and debugging a multiworld.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		listenCmd(),
		datapackageCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
