package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/komsit37/sheetreport/pkg/sheetreport/api"
	"github.com/komsit37/sheetreport/pkg/sheetreport/columns"
	"github.com/komsit37/sheetreport/pkg/sheetreport/config"
	"github.com/komsit37/sheetreport/pkg/sheetreport/logger"
	"github.com/komsit37/sheetreport/pkg/sheetreport/quote"
	"github.com/komsit37/sheetreport/pkg/sheetreport/render"
	"github.com/komsit37/sheetreport/pkg/sheetreport/report"
	"github.com/komsit37/sheetreport/pkg/sheetreport/sheet"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "sheetreport",
		Short:         "Price the stocks listed in a spreadsheet and write an analysis block back",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml); env and .env are read regardless")

	var port string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /analyze",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)
			return serve(cmd.Context(), cfg, log)
		},
	}
	serveCmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	var (
		asJSON  bool
		dryRun  bool
		noColor bool
	)
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the report once and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			// Logs go to stderr so stdout stays clean for the report.
			log := logger.NewWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			runner, err := newRunner(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			rep, err := runner.Run(cmd.Context(), report.RunOptions{DryRun: dryRun})
			if err != nil {
				return err
			}

			var r render.Renderer = render.NewTableRenderer()
			if asJSON {
				r = render.NewJSONRenderer()
			}
			return r.Render(os.Stdout, rep, render.RenderOptions{
				Color:       !noColor && !asJSON,
				PrettyJSON:  true,
				MaxColWidth: maxColWidth(),
			})
		},
	}
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON response body instead of a table")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not write the report back to the sheet")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored table output")

	rootCmd.AddCommand(serveCmd, runCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newRunner builds the clients once; they are shared by every request.
func newRunner(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*report.Runner, error) {
	var svc sheet.Service
	switch cfg.Backend {
	case config.BackendYAML:
		svc = sheet.NewYAMLService(cfg.Workbook)
	default:
		gs, err := sheet.NewGoogleService(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		svc = gs
	}
	in, out, err := cfg.Ranges()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("backend", cfg.Backend).
		Str("input", in.String()).
		Str("output", out.String()).
		Msg("report configured")

	return &report.Runner{
		Source: &sheet.Reader{Service: svc, SpreadsheetID: cfg.SheetID, Range: in},
		Sink: &sheet.Writer{
			Service:          svc,
			SpreadsheetID:    cfg.SheetID,
			Anchor:           out,
			ValueInputOption: cfg.ValueInputOption,
		},
		Quotes: quote.NewLimited(quote.NewYFFetcher(cfg.QuoteTimeout), cfg.QuoteRPS),
		Layout: columns.Default,
		Log:    log,
	}, nil
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	runner, err := newRunner(ctx, cfg, log)
	if err != nil {
		return err
	}
	router := api.NewRouter(api.NewHandler(runner, log), log)
	server := api.NewServer(":"+cfg.Port, router, log)

	errc := make(chan error, 1)
	go func() { errc <- server.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func maxColWidth() int {
	w := detectTerminalWidth()
	if w <= 0 {
		return 0
	}
	// Seven columns share the line.
	if per := w / len(columns.Output); per > 10 {
		return per
	}
	return 10
}
