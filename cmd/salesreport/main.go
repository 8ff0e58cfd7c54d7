package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

var version = "dev"

type app struct {
	cfg    *config.Config
	file   string
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "salesreport",
		Short:   "📊 Supermarket sales report",
		Long:    `salesreport loads the supermarket sales workbook and prints the dashboard KPIs and aggregates for a filter selection.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if !cmd.Flags().Changed("file") {
				a.file = cfg.Data.File
			}
			a.logger = observability.NewLoggerTo(cmd.ErrOrStderr(), cfg.Logger)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&a.file, "file", "", "sales workbook (default: $DATA_FILE or supermarkt_sales.xlsx)")

	cmd.AddCommand(summaryCmd(a))
	cmd.AddCommand(optionsCmd(a))

	return cmd
}

func (a *app) load(ctx context.Context) (*services.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Data.LoadTimeout)
	defer cancel()
	return services.LoadDashboard(ctx, a.file, a.logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
