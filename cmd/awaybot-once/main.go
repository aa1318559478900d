package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/joshsymonds/awaybot/internal/config"
	"github.com/joshsymonds/awaybot/internal/respond"
	"github.com/joshsymonds/awaybot/internal/runtime"
)

type onceConfig struct {
	configFile string
	authDir    string
	label      string
	since      string
	body       string
	subject    string
	from       string
	maxThreads int
	pageSize   int
	rps        int
	dryRun     bool
	jsonOut    string
}

func main() {
	cfg, err := parseOnceFlags()
	if err != nil {
		runtime.DefaultLogger().Error("awaybot-once failed", "error", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		runtime.DefaultLogger().Error("awaybot-once failed", "error", err)
		os.Exit(1)
	}
}

func parseOnceFlags() (onceConfig, error) {
	configFile := flag.String("config-file", "", "awaybot TOML configuration file")
	authDir := flag.String("auth", os.ExpandEnv("$HOME/.gmailctl"), "gmailctl auth directory")
	label := flag.String("label", "", "marker label applied to answered messages")
	since := flag.String("since", "", "vacation start date (mm/dd/yyyy)")
	body := flag.String("body", "", "vacation notice body text")
	subject := flag.String("subject", "", "fallback subject for threads without one")
	from := flag.String("from", "", "sender identity (default \"me\")")
	maxThreads := flag.Int("max-threads", 0, "cap on threads handled per cycle")
	pageSize := flag.Int("page-size", 0, "Gmail list page size (<=500)")
	rps := flag.Int("rps", -1, "max requests per second")
	dryRun := flag.Bool("dry-run", false, "evaluate and log only; skip sends and labeling")
	jsonOut := flag.String("json", "", "write JSON cycle stats to path")
	flag.Parse()

	fileCfg, err := config.Load(*configFile)
	if err != nil {
		return onceConfig{}, err
	}

	cfg := onceConfig{
		configFile: *configFile,
		authDir:    fileCfg.AuthDir,
		label:      fileCfg.Label,
		since:      fileCfg.VacationStart,
		body:       fileCfg.Body,
		subject:    fileCfg.DefaultSubject,
		from:       fileCfg.From,
		maxThreads: fileCfg.MaxThreads,
		pageSize:   fileCfg.PageSize,
		rps:        fileCfg.RPS,
		dryRun:     *dryRun,
		jsonOut:    *jsonOut,
	}
	if cfg.authDir == "" {
		cfg.authDir = *authDir
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "auth":
			cfg.authDir = *authDir
		case "label":
			cfg.label = *label
		case "since":
			cfg.since = *since
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

func run(cfg onceConfig) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.since == "" {
		return fmt.Errorf("vacation start date is required (-since or vacation_start)")
	}
	if err := config.ValidateCutoff(cfg.since); err != nil {
		return err
	}

	scope := runtime.ScopeModify
	if cfg.dryRun {
		scope = runtime.ScopeReadonly
	}
	client, err := runtime.NewGmailClient(ctx, cfg.authDir, scope)
	if err != nil {
		return fmt.Errorf("create gmail client: %w", err)
	}

	var limiter interface{ Wait(context.Context) error }
	if cfg.rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.rps), 1)
	}

	svc := respond.NewService(client, limiter, runtime.DefaultLogger())
	spec := respond.Spec{
		MarkerLabel:    cfg.label,
		Since:          cfg.since,
		From:           cfg.from,
		Body:           cfg.body,
		DefaultSubject: cfg.subject,
		MaxThreads:     cfg.maxThreads,
		PageSize:       cfg.pageSize,
		DryRun:         cfg.dryRun,
	}

	stats, err := svc.RunCycle(ctx, spec)
	if err != nil {
		return fmt.Errorf("run cycle: %w", err)
	}

	if printErr := respond.PrintHuman(stats, os.Stdout); printErr != nil {
		return fmt.Errorf("print stats: %w", printErr)
	}
	if cfg.jsonOut == "" {
		return nil
	}
	if writeErr := respond.WriteJSON(stats, cfg.jsonOut); writeErr != nil {
		return fmt.Errorf("write json: %w", writeErr)
	}
	return nil
}
