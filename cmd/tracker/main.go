package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FinanceSentinel/internal/aggregate"
	"FinanceSentinel/internal/config"
	"FinanceSentinel/internal/ledger"
	"FinanceSentinel/internal/predict"
	"FinanceSentinel/internal/refresh"
	"FinanceSentinel/internal/report"
	"FinanceSentinel/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FinanceSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	period, _ := cfg.Period()
	interval, _ := cfg.RefreshInterval()

	// Init persistence
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed the ledger from disk
	ls := ledger.NewStore()
	accounts, txns, err := st.Load(ctx)
	if err != nil {
		log.Fatalf("[FATAL] load ledger: %v", err)
	}
	if len(accounts) > 0 || len(txns) > 0 {
		if err := ls.Replace(accounts, txns); err != nil {
			log.Fatalf("[FATAL] seed ledger: %v", err)
		}
		log.Printf("[INFO] ledger seeded: %d accounts, %d transactions", len(accounts), len(txns))
	}

	// Init analytics pipeline
	engine := aggregate.NewEngine(period, cfg.Ledger.Currency)
	model := predict.NewModel(cfg.Prediction)
	sched := refresh.NewScheduler(ls, engine, model, interval, cfg.Refresh.HistoryCap)

	// Every ledger mutation invalidates derived state
	ls.SetOnMutate(sched.Request)

	// The presentation layer subscribes here; until it attaches we log
	// each publication.
	sched.Subscribe(func(p *refresh.Published) {
		log.Printf("[INFO] published ledger v%d\n%s", p.LedgerVersion, report.FormatSummary(p))
	})

	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[FATAL] start scheduler: %v", err)
	}

	// First publication so Current() is available immediately
	sched.Request()

	log.Println("[INFO] FinanceSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	sched.Stop()

	// Persist the final ledger contents
	accounts, txns = ls.Contents()
	if err := st.Save(context.Background(), accounts, txns); err != nil {
		log.Printf("[ERROR] save ledger: %v", err)
	}
	cancel()
	log.Println("[INFO] FinanceSentinel stopped")
}
