// Command zeno serves the chat API: completion with provider failover,
// conversation persistence, image generation and file upload.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/Dushyant-2004/Zeno/anthropic"
	"github.com/Dushyant-2004/Zeno/config"
	"github.com/Dushyant-2004/Zeno/engine"
	"github.com/Dushyant-2004/Zeno/gemini"
	"github.com/Dushyant-2004/Zeno/httpapi"
	"github.com/Dushyant-2004/Zeno/imagegen"
	"github.com/Dushyant-2004/Zeno/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "zeno:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to TOML config file")
		addr       = flag.String("addr", "", "listen address (overrides config)")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	primary := buildAnthropic(cfg)
	fallback, err := buildGemini(ctx, cfg)
	if err != nil {
		return err
	}

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if cfg.Providers.SystemPrompt != "" {
		engineOpts = append(engineOpts, engine.WithSystemPrompt(cfg.Providers.SystemPrompt))
	}
	eng := engine.New(primary, fallback, engineOpts...)

	serverOpts := []httpapi.Option{httpapi.WithLogger(logger)}
	if cfg.Image.APIKey != "" {
		serverOpts = append(serverOpts, httpapi.WithImageGenerator(buildImages(cfg)))
	} else {
		logger.Warn("OPENAI_API_KEY not set, image generation disabled")
	}
	if cfg.Server.RateLimitPerSec > 0 {
		serverOpts = append(serverOpts, httpapi.WithRateLimit(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst))
	}

	srv := httpapi.New(eng, store, store, serverOpts...)
	return srv.Run(ctx, cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSec)*time.Second)
}

func buildAnthropic(cfg *config.Config) zeno.Provider {
	var opts []anthropic.Option
	if cfg.Providers.AnthropicModel != "" {
		opts = append(opts, anthropic.WithModel(cfg.Providers.AnthropicModel))
	}
	return anthropic.New(cfg.Providers.AnthropicAPIKey, opts...)
}

func buildGemini(ctx context.Context, cfg *config.Config) (zeno.Provider, error) {
	var opts []gemini.Option
	if cfg.Providers.GeminiModel != "" {
		opts = append(opts, gemini.WithModel(cfg.Providers.GeminiModel))
	}
	return gemini.New(ctx, cfg.Providers.GeminiAPIKey, opts...)
}

func buildImages(cfg *config.Config) *imagegen.Client {
	var opts []imagegen.Option
	if cfg.Image.BaseURL != "" {
		opts = append(opts, imagegen.WithBaseURL(cfg.Image.BaseURL))
	}
	if cfg.Image.Model != "" {
		opts = append(opts, imagegen.WithModel(cfg.Image.Model))
	}
	return imagegen.New(cfg.Image.APIKey, opts...)
}
