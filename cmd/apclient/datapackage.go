package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/archipelago-gg/apclient/pkg/client"
)

func datapackageCmd() *cobra.Command {
	var (
		server  string
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "datapackage",
		Short: "Fetch and print the server's data package",
		Long: `Fetch the data package for every game in the multiworld and print a
summary of its name/id tables. Requires no authentication.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := client.DefaultConfig()
			cfg.Logger = newLogger(verbose)

			anonymous, err := client.Dial(ctx, server, cfg)
			if err != nil {
				return err
			}
			defer anonymous.Close()

			pkg, err := anonymous.GetDataPackage(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(pkg.Data)
			}

			games := make([]string, 0, len(pkg.Data.Games))
			for game := range pkg.Data.Games {
				games = append(games, game)
			}
			sort.Strings(games)

			for _, game := range games {
				data := pkg.Data.Games[game]
				fmt.Printf("%s: %d items, %d locations (checksum %s)\n",
					game, len(data.ItemNameToID), len(data.LocationNameToID), data.Checksum)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "archipelago.gg", "Server endpoint, host or host:port")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw data package as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable wire-level debug logging")

	return cmd
}
