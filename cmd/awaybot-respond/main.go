package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/joshsymonds/awaybot/internal/config"
	"github.com/joshsymonds/awaybot/internal/respond"
	"github.com/joshsymonds/awaybot/internal/runtime"
)

type respondConfig struct {
	configFile string
	authDir    string
	label      string
	since      string
	interval   time.Duration
	body       string
	subject    string
	from       string
	maxThreads int
	pageSize   int
	rps        int
}

func main() {
	cfg, err := parseRespondFlags()
	if err != nil {
		runtime.DefaultLogger().Error("awaybot-respond failed", "error", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		runtime.DefaultLogger().Error("awaybot-respond failed", "error", err)
		os.Exit(1)
	}
}

func parseRespondFlags() (respondConfig, error) {
	configFile := flag.String("config-file", "", "awaybot TOML configuration file")
	authDir := flag.String("auth", os.ExpandEnv("$HOME/.gmailctl"), "gmailctl auth directory")
	label := flag.String("label", "", "marker label applied to answered messages")
	since := flag.String("since", "", "vacation start date (mm/dd/yyyy)")
	interval := flag.Duration("interval", 0, "polling interval")
	body := flag.String("body", "", "vacation notice body text")
	subject := flag.String("subject", "", "fallback subject for threads without one")
	from := flag.String("from", "", "sender identity (default \"me\")")
	maxThreads := flag.Int("max-threads", 0, "cap on threads handled per cycle")
	pageSize := flag.Int("page-size", 0, "Gmail list page size (<=500)")
	rps := flag.Int("rps", -1, "max requests per second")
	flag.Parse()

	fileCfg, err := config.Load(*configFile)
	if err != nil {
		return respondConfig{}, err
	}

	cfg := respondConfig{
		configFile: *configFile,
		authDir:    fileCfg.AuthDir,
		label:      fileCfg.Label,
		since:      fileCfg.VacationStart,
		interval:   fileCfg.PollInterval(),
		body:       fileCfg.Body,
		subject:    fileCfg.DefaultSubject,
		from:       fileCfg.From,
		maxThreads: fileCfg.MaxThreads,
		pageSize:   fileCfg.PageSize,
		rps:        fileCfg.RPS,
	}
	if cfg.authDir == "" {
		cfg.authDir = *authDir
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "auth":
			cfg.authDir = *authDir
		case "label":
			cfg.label = *label
		case "since":
			cfg.since = *since
		case "interval":
			cfg.interval = *interval
		case "body":
			cfg.body = *body
		case "subject":
			cfg.subject = *subject
		case "from":
			cfg.from = *from
		case "max-threads":
			cfg.maxThreads = *maxThreads
		case "page-size":
			cfg.pageSize = *pageSize
		case "rps":
			cfg.rps = *rps
		}
	})
	return cfg, nil
}

func run(cfg respondConfig) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.since == "" {
		return fmt.Errorf("vacation start date is required (-since or vacation_start)")
	}
	if err := config.ValidateCutoff(cfg.since); err != nil {
		return err
	}
	if cfg.interval <= 0 {
		return fmt.Errorf("polling interval must be positive, got %s", cfg.interval)
	}

	client, err := runtime.NewGmailClient(ctx, cfg.authDir, runtime.ScopeModify)
	if err != nil {
		return fmt.Errorf("create gmail client: %w", err)
	}

	var limiter interface{ Wait(context.Context) error }
	if cfg.rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.rps), 1)
	}

	logger := runtime.DefaultLogger()
	svc := respond.NewService(client, limiter, logger)

	spec := respond.Spec{
		MarkerLabel:    cfg.label,
		Since:          cfg.since,
		From:           cfg.from,
		Body:           cfg.body,
		DefaultSubject: cfg.subject,
		MaxThreads:     cfg.maxThreads,
		PageSize:       cfg.pageSize,
	}

	logger.Info("starting responder",
		"label", spec.MarkerLabel,
		"since", spec.Since,
		"interval", cfg.interval,
	)
	svc.Watch(ctx, spec, cfg.interval)
	return nil
}
