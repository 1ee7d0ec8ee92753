package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/bobmcallan/scout/internal/clients/catalyst"
	"github.com/bobmcallan/scout/internal/clients/nasdaq"
	"github.com/bobmcallan/scout/internal/clients/yahoo"
	"github.com/bobmcallan/scout/internal/common"
	"github.com/bobmcallan/scout/internal/models"
	"github.com/bobmcallan/scout/internal/services/market"
	"github.com/bobmcallan/scout/internal/universe"
)

func main() {
	configPath := flag.String("config", os.Getenv("SCOUT_CONFIG"), "path to scout.toml")
	source := flag.String("source", "", "universe source: nasdaq, nyse, sp500, user")
	userFile := flag.String("symbols", "", "symbol file for the user source")
	limit := flag.Int("limit", 0, "override result count")
	flag.Parse()

	config, err := common.LoadConfig(*configPath, "scout.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *source != "" {
		config.Scan.Source = *source
	}

	// Production emits raw JSON events; development gets the console writer.
	var logger *common.Logger
	if config.IsProduction() || config.Logging.Format == "json" {
		logger = common.NewLoggerWithOutput(config.Logging.Level, os.Stderr)
	} else {
		logger = common.NewLogger(config.Logging.Level)
	}
	common.PrintBanner(config)

	svc := buildService(config, logger)

	req := models.ScanRequest{
		Source:      models.UniverseSource(config.Scan.Source),
		Criteria:    config.Filter.Criteria(),
		Concurrency: config.Scan.Concurrency,
		Deadline:    config.Scan.GetDeadline(),
	}
	if *limit > 0 {
		req.Criteria.ResultCount = *limit
	}
	if req.Source == models.SourceUserList {
		if *userFile == "" {
			fmt.Fprintln(os.Stderr, "user source requires -symbols <file>")
			os.Exit(1)
		}
		raw, err := os.ReadFile(*userFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read symbol file: %v\n", err)
			os.Exit(1)
		}
		req.UserList = raw
	}

	// Cancel the scan on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resp, err := svc.Scan(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Scan failed")
		os.Exit(1)
	}

	for _, w := range resp.Warnings {
		logger.Warn().Msg(w)
	}

	printRecords(resp.Records)

	logger.Info().
		Str("scan_id", resp.Meta.ScanID).
		Int("universe", resp.Meta.UniverseSize).
		Int("matched", resp.Meta.TotalMatched).
		Int64("elapsed_ms", resp.Meta.QueryTimeMS).
		Msg("Done")
}

func buildService(config *common.Config, logger *common.Logger) *market.Service {
	listings := nasdaq.NewClient(
		nasdaq.WithBaseURL(config.Clients.Listing.BaseURL),
		nasdaq.WithRateLimit(config.Clients.Listing.RateLimit),
		nasdaq.WithTimeout(config.Clients.Listing.GetTimeout()),
		nasdaq.WithLogger(logger),
	)

	provider := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	resolver := universe.NewResolver(listings, logger)

	engine := market.NewEngine(provider, catalyst.NewStaticFeed(), logger,
		market.WithWorkers(config.Scan.Concurrency),
		market.WithProgress(func(p models.Progress) {
			logger.Debug().
				Int("completed", p.Completed).
				Int("total", p.Total).
				Str("symbol", p.LastSymbol).
				Msg("Acquisition progress")
		}),
	)

	cache := market.NewCache(config.Scan.GetCacheTTL(), logger)

	return market.NewService(resolver, engine, cache, logger)
}

func printRecords(records []models.SymbolRecord) {
	if len(records) == 0 {
		fmt.Println("No matches.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tCOMPANY\tPRICE\tCHANGE%\tVOLUME\tAVG VOL\tFLOAT(M)\tCAP(B)\tSECTOR\tPE\tCATALYST")
	for _, r := range records {
		pe := "N/A"
		if r.HasPE() {
			pe = fmt.Sprintf("%.1f", r.PERatio)
		}
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%+.2f\t%d\t%d\t%.2f\t%.2f\t%s\t%s\t%s\n",
			r.Symbol, r.CompanyName, r.Price, r.PercentChange, r.Volume,
			r.AverageVolume, r.FloatSharesM, r.MarketCapB, r.Sector, pe, r.Catalyst)
	}
	w.Flush()
}
