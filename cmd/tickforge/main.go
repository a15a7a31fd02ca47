package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tickforge/runtime/internal/engine"
	"github.com/tickforge/runtime/internal/injector"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             tickforge  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mengine:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	s := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(s)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), s)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main logic ────────────────────────────────────────────────────

func run() error {
	cfgPath := "config/engine.toml"
	if p := os.Getenv("TICKFORGE_CONFIG"); p != "" {
		cfgPath = p
	}

	eng, cleanup, err := injector.InitializeEngine(injector.ConfigPath(cfgPath))
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	defer cleanup()
	log := eng.Log

	printBanner(eng.Config.Engine.Name)
	printSection("startup")
	printStat("identifiers", eng.Names.Len())
	printStat("bindings", eng.Bindings.Count())
	printStat("processors", len(eng.Manager.Processors()))

	if err := spawnDemo(eng); err != nil {
		return fmt.Errorf("spawn demo: %w", err)
	}
	printStat("entities", eng.Manager.Len())
	fmt.Println()
	printReady(fmt.Sprintf("loop running (step: %s)", eng.Config.Loop.TickRate))
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return eng.Run(ctx)
	})
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Info("signal received, stopping", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("loop: %w", err)
	}

	printSection("shutdown")
	printStat("ticks", eng.Loop.Ticks())
	printStat("frames", eng.Loop.Frames())
	printStat("dropped lag", eng.Loop.DroppedLag())
	printStat("entities", eng.Manager.Len())
	printStat("digest", fmt.Sprintf("%016x", eng.Inspector.Digest()))

	if path := os.Getenv("TICKFORGE_DUMP"); path != "" {
		if err := dump(eng, path); err != nil {
			return err
		}
		printReady("snapshot written to " + path)
	}
	return nil
}

func dump(eng *engine.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	if err := eng.Inspector.Dump(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
