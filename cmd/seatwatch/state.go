package main

import (
	"fmt"
	"io"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/datastore"
	"github.com/aleister1102/seatwatch/internal/logger"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newStateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the saved baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return common.WrapError(err, "failed to load configuration")
			}

			appLogger, err := logger.New(cfg.LogConfig)
			if err != nil {
				return common.WrapError(err, "failed to initialize logger")
			}
			defer appLogger.Close()

			store, err := datastore.NewStateStore(cfg.StorageConfig, *appLogger.GetZerolog())
			if err != nil {
				return err
			}
			defer store.Close()

			snapshot, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			renderState(cmd.OutOrStdout(), store.Location(), snapshot)
			return nil
		},
	}
}

func renderState(out io.Writer, location string, snapshot *models.Snapshot) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetOutputMirror(out)
	t.SetTitle(location)

	t.AppendHeader(table.Row{"Code", "Open", "Seats", "Gone notified"})
	open := 0
	for _, record := range snapshot.Records() {
		if record.Open {
			open++
		}
		t.AppendRow(table.Row{record.Code, record.Open, record.Seats, record.GoneNotified})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d courses", snapshot.Len()), fmt.Sprintf("%d open", open), "", ""})

	t.Render()
}
