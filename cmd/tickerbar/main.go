// Package main serves as the entry-point for the ticker bar.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/franco-grobler/tickerbar/internal/color"
	"github.com/franco-grobler/tickerbar/internal/config"
	"github.com/franco-grobler/tickerbar/internal/driver"
	"github.com/franco-grobler/tickerbar/internal/feed"
	"github.com/franco-grobler/tickerbar/internal/market"
	"github.com/franco-grobler/tickerbar/internal/render"
	binancestream "github.com/franco-grobler/tickerbar/pkg/binance-stream"
	"github.com/franco-grobler/tickerbar/pkg/printer"
)

type options struct {
	polybar    bool
	once       bool
	configPath string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "tickerbar",
	Short: "Print Binance 24hr ticker prices as a status bar line",
	Long: `tickerbar subscribes to Binance 24hr ticker statistics for the symbols in its
configuration file and prints one line per update, grouped by base asset.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd.Context(), opts); err != nil {
			log.Fatalf("tickerbar: %v", err)
		}
	},
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	rootCmd.Flags().BoolVarP(&opts.polybar, "polybar-mode", "p", false, "Emit polybar formatting tags instead of terminal colors.")
	rootCmd.Flags().BoolVarP(&opts.once, "once", "o", false, "Print a single line and exit.")
	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to the configuration file.")

	// Setup Context with graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Debug("Shutdown signal received")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel())

	defs, err := cfg.Definitions()
	if err != nil {
		return err
	}

	mode := color.Terminal
	if o.polybar {
		mode = color.Markup
	}

	client := binancestream.NewClient(ctx, cfg.Feed.APIURL, cfg.Feed.WSURL)

	var source driver.Source
	switch cfg.Feed.Source {
	case config.SourceREST:
		source = feed.NewPoller(client, defs.Symbols(), cfg.Feed.PollInterval)
	case config.SourceWebsocket:
		streams := feed.StreamNames(feed.Streams(cfg.Feed.Streams), defs.Symbols())
		source = feed.NewStream(client, streams, log.StandardLogger())
	default:
		return fmt.Errorf("%w: unknown feed source %q", config.ErrInvalid, cfg.Feed.Source)
	}

	d := driver.New(
		source,
		market.NewEngine(defs, cfg.EngineOptions()...),
		render.NewPresenter(mode),
		printer.NewStdout(),
		driver.WithSingleShot(o.once),
		driver.WithLogger(log.StandardLogger()),
	)

	log.WithFields(log.Fields{
		"tickers": defs.Len(),
		"source":  cfg.Feed.Source,
	}).Debug("starting")

	return d.Run(ctx)
}
