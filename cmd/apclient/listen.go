package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/archipelago-gg/apclient/pkg/client"
	"github.com/archipelago-gg/apclient/pkg/protocol"
)

func listenCmd() *cobra.Command {
	var (
		server   string
		game     string
		name     string
		password string
		tags     []string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Connect to a multiworld and print server events",
		Long: `Connect to a multiworld server, authenticate as the given slot, and
print every server event until interrupted or the server closes the
connection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := client.DefaultConfig()
			cfg.Logger = newLogger(verbose)

			anonymous, err := client.Dial(ctx, server, cfg)
			if err != nil {
				return err
			}

			room := anonymous.RoomInfo()
			fmt.Printf("Connected to %q (server %s, %d games)\n",
				room.SeedName, room.Version, len(room.Games))

			var pw *string
			if password != "" {
				pw = &password
			}

			session, err := anonymous.Login(ctx, client.LoginOptions{
				Password:      pw,
				Game:          game,
				Name:          name,
				Tags:          tags,
				ItemsHandling: protocol.ReceiveItems | protocol.StartingInventory,
				SlotData:      true,
			})
			if err != nil {
				return err
			}
			defer session.Close()

			identity := session.Connected()
			fmt.Printf("Joined as team %d slot %d (%d hint points, %d locations left)\n",
				identity.Team, identity.Slot, identity.HintPoints, len(identity.MissingLocations))

			for {
				msg, err := session.Next(ctx)
				if errors.Is(err, io.EOF) {
					fmt.Println("Server closed the connection")
					return nil
				}
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				printMessage(msg)
			}
		},
	}

	cmd.Flags().StringVar(&server, "server", "archipelago.gg", "Server endpoint, host or host:port")
	cmd.Flags().StringVar(&game, "game", "", "Game this client plays")
	cmd.Flags().StringVar(&name, "name", "", "Slot name to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Room password, if required")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Capability tags (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable wire-level debug logging")
	cmd.MarkFlagRequired("game")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printMessage renders one server event to stdout.
func printMessage(msg protocol.ServerMessage) {
	switch m := msg.(type) {
	case *protocol.PrintJSON:
		fmt.Println(m.Text())
	case *protocol.ReceivedItems:
		for i, item := range m.Items {
			fmt.Printf("Received item %d from player %d (location %d, index %d)\n",
				item.Item, item.Player, item.Location, m.Index+int64(i))
		}
	case *protocol.LocationInfo:
		for _, item := range m.Locations {
			fmt.Printf("Scouted: item %d for player %d at location %d\n",
				item.Item, item.Player, item.Location)
		}
	case *protocol.RoomUpdate:
		if len(m.CheckedLocations) > 0 {
			fmt.Printf("Checked locations: %v\n", m.CheckedLocations)
		}
	case *protocol.InvalidPacket:
		fmt.Printf("Server rejected a packet (%s): %s\n", m.Type, m.Text)
	default:
		fmt.Printf("[%s]\n", msg.Cmd())
	}
}
