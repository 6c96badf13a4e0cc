package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bornholm/masthead/internal/config"
	"github.com/bornholm/masthead/internal/setup"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"

	_ "github.com/bornholm/masthead/pkg/kv/all"
)

var (
	configFile string = ""
	dumpConfig bool   = false
)

func init() {
	flag.StringVar(&configFile, "config", configFile, "configuration file")
	flag.BoolVar(&dumpConfig, "dump-config", dumpConfig, "dump default configuration file and exit")
}

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conf := config.NewDefaultConfig()

	if dumpConfig {
		if err := config.Dump(os.Stdout, conf); err != nil {
			slog.ErrorContext(ctx, "could not dump config file", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		os.Exit(0)
	}

	if configFile != "" {
		if err := config.LoadFile(configFile, conf); err != nil {
			slog.ErrorContext(ctx, "could not parse config file", log.Error(errors.WithStack(err)), slog.String("file", configFile))
			os.Exit(1)
		}
	}

	if err := config.Interpolate(conf); err != nil {
		slog.ErrorContext(ctx, "could not interpolate config file", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	if err := config.Validate(conf); err != nil {
		slog.ErrorContext(ctx, "invalid configuration", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	level := slog.Level(conf.Logger.Level)

	slog.SetDefault(slog.New(log.ContextHandler{Handler: newLogHandler(string(conf.Logger.Format), level)}))
	slog.SetLogLoggerLevel(level)

	httpHandler, err := setup.NewHandlerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not generate handler from config", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	server := http.Server{
		Addr:    string(conf.HTTP.Address),
		Handler: httpHandler,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "could not shutdown server", log.Error(errors.WithStack(err)))
		}
	}()

	slog.InfoContext(ctx, "http server listening", slog.String("addr", server.Addr), log.ScrubbedURL("baseUrl", string(conf.HTTP.BaseURL)))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.ErrorContext(ctx, "could not listen", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}
}

func newLogHandler(format string, level slog.Level) slog.Handler {
	if format == config.LoggerFormatAuto {
		format = config.LoggerFormatText
		if level <= slog.LevelDebug {
			format = config.LoggerFormatTint
		}
	}

	switch format {
	case config.LoggerFormatJSON:
		return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

	case config.LoggerFormatTint:
		return tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})

	default:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
}
