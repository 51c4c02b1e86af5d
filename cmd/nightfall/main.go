package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/nightfall/cryptcore/internal/config"
	"github.com/nightfall/cryptcore/internal/data"
	"github.com/nightfall/cryptcore/internal/game"
	"github.com/nightfall/cryptcore/internal/persist"
	"github.com/nightfall/cryptcore/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(seed int64, hardMode bool) {
	fmt.Println()
	fmt.Println("\033[35;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[35;1m  │\033[0m            Nightfall Crypt  v0.1.0        \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  │\033[0m         headless survival simulation      \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	mode := "normal"
	if hardMode {
		mode = "hard"
	}
	fmt.Printf("  \033[1mseed:\033[0m %d \033[90m(mode: %s)\033[0m\n\n", seed, mode)
}

func printSection(title string) {
	lineLen := max(3, 46-len(title)-1)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(3, 42-len(label)-len(numStr))
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("NIGHTFALL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	printBanner(seed, cfg.Simulation.HardMode)

	// 3. Content tables and scripted curves
	printSection("content")
	cat, err := loadCatalog(cfg.Data)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	weapons, enemies, bosses := cat.Count()
	printStat("weapons", weapons)
	printStat("enemies", enemies)
	printStat("bosses", bosses)

	eng, err := scripting.NewEngine(cfg.Scripting.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer eng.Close()
	formulas := scripting.NewFormulas(eng, cfg.XP.BaseThreshold, cfg.XP.GrowthFactor, cat.Scaling())
	printOK("formula scripts loaded")
	fmt.Println()

	// 4. Meta progression store
	printSection("meta progression")
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelOpen()
	store, err := persist.Open(openCtx, cfg.Meta, log)
	if err != nil {
		return fmt.Errorf("meta store: %w", err)
	}
	defer store.Close()
	meta := persist.LoadMeta(openCtx, store, log)
	printOK(fmt.Sprintf("store %q ready", driverName(cfg.Meta.Driver)))
	printStat("runs recorded", meta.Runs)
	printStat("weapons discovered", len(meta.WeaponsDiscovered))
	fmt.Println()

	recorder := persist.NewRecorder(store, cfg.Meta.QueueSize, cfg.Meta.WriteTimeout.Duration, log)

	// 5. Session
	done := make(chan game.Summary, 1)
	session, err := game.NewSession(game.Options{
		Config:   cfg,
		Catalog:  cat,
		Formulas: formulas,
		Meta:     meta,
		Seed:     seed,
		Effects:  logEffects{log: log},
		Recorder: recorder,
		Hooks: game.Hooks{
			OnPlayerDefeated: func(s game.Summary) { done <- s },
			OnVictory:        func(s game.Summary) { done <- s },
			OnAbandoned:      func(s game.Summary) { done <- s },
		},
		Log: log,
	})
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}

	// 6. Run the loop and the recorder side by side
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	recCtx, stopRecorder := context.WithCancel(context.Background())

	printSection("run")
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Simulation.TickRate))
	fmt.Println()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return recorder.Run(recCtx)
	})
	eg.Go(func() error {
		defer stopRecorder()
		return loop(ctx, session, cfg, done, log)
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	written, dropped := recorder.Stats()
	log.Info("meta records flushed", zap.Int64("written", written), zap.Int64("dropped", dropped))
	return nil
}

// loop drives the session from a ticker until the run ends, the time limit
// passes or ctx is cancelled.
func loop(ctx context.Context, s *game.Session, cfg *config.Config, done <-chan game.Summary, log *zap.Logger) error {
	ticker := time.NewTicker(cfg.Simulation.TickRate.Duration)
	defer ticker.Stop()
	pilot := newAutopilot(s)
	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			s.SetInput(pilot.steer())
			s.Update(now.Sub(last))
			last = now
			if s.Paused() {
				if err := pilot.choose(); err != nil {
					return fmt.Errorf("level-up choice: %w", err)
				}
			}
			if limit := cfg.Simulation.MaxDuration.Duration; limit > 0 && s.Elapsed() >= limit && !s.Over() {
				log.Info("time limit reached", zap.Duration("limit", limit))
				s.Abandon()
			}
		case sum := <-done:
			report(sum)
			return nil
		case <-ctx.Done():
			log.Info("shutdown signal received")
			s.Abandon()
			report(s.Summary())
			return nil
		}
	}
}

func report(s game.Summary) {
	fmt.Println()
	printSection("result")
	printStat("seconds survived", int(s.Time.Seconds()))
	printStat("kills", s.Kills)
	printStat("bosses defeated", s.BossesDefeated)
	printStat("weapons evolved", s.WeaponsEvolved)
	printStat("level", s.Level)
}

func loadCatalog(cfg config.DataConfig) (*data.Catalog, error) {
	if cfg.YAMLDir != "" {
		return data.LoadDir(cfg.YAMLDir)
	}
	return data.LoadBuiltin()
}

func driverName(d string) string {
	if d == "" {
		return "none"
	}
	return d
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
