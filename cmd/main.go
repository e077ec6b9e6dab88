package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/bwmarrin/discordgo"
	"github.com/jessevdk/go-flags"
	"github.com/samber/mo"

	"selfbot/clients"
	anthropicclient "selfbot/clients/anthropic"
	"selfbot/clients/discord"
	"selfbot/clients/enrichment"
	"selfbot/config"
	"selfbot/handlers"
	"selfbot/middleware"
	"selfbot/models"
	"selfbot/services/commands"
	"selfbot/services/session"
	"selfbot/usecases/dispatch"
	"selfbot/utils"
)

const (
	assistantTimeout = 60 * time.Second
	shutdownTimeout  = 5 * time.Second
)

type Options struct {
	EnvFile string `long:"env-file" default:".env" description:"Path to the .env file to load before reading the environment"`
	NoLock  bool   `long:"no-lock" description:"Skip the single-instance lock (allows two processes on the same account)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadConfig(opts.EnvFile)
	if err != nil {
		return err
	}

	if !opts.NoLock {
		instanceLock, err := utils.NewInstanceLock(cfg.Token)
		if err != nil {
			return fmt.Errorf("failed to create instance lock: %w", err)
		}
		if err := instanceLock.TryLock(); err != nil {
			return err
		}
		defer func() {
			if err := instanceLock.Unlock(); err != nil {
				log.Printf("⚠️ Failed to release instance lock: %v", err)
			}
		}()
	}

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertConfig.SlackWebhookURL,
		Environment: cfg.Environment,
		AppName:     "selfbot",
	})
	defer alertMiddleware.Wait()

	discordSession, err := discordgo.New(cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	state := session.NewState()
	defer state.Close()

	chatClient := discord.NewDiscordClient(discordSession)
	enrichmentClient := enrichment.NewEnrichmentClient(&http.Client{}, cfg.EnrichmentTimeout, map[string]string{
		enrichment.ProviderWeather: cfg.WeatherConfig.APIKey,
	})

	assistantClient := mo.None[clients.AssistantClient]()
	if cfg.AnthropicConfig.IsConfigured() {
		assistantClient = mo.Some(anthropicclient.NewAnthropicClient(
			cfg.AnthropicConfig.APIKey,
			anthropic.Model(cfg.AnthropicConfig.Model),
			assistantTimeout,
		))
	}

	var shutdownOnce sync.Once
	shutdownRequested := make(chan struct{})
	requestShutdown := func() {
		shutdownOnce.Do(func() { close(shutdownRequested) })
	}

	commandsService := commands.NewCommandsService(
		state,
		chatClient,
		enrichmentClient,
		assistantClient,
		cfg.Prefix,
		requestShutdown,
	)
	dispatchUseCase := dispatch.NewDispatchUseCase(chatClient, commandsService, state, alertMiddleware)

	eventsHandler := handlers.NewDiscordEventsHandler(
		discordSession,
		chatClient,
		dispatchUseCase,
		alertMiddleware,
		cfg.WorkerCount,
		func(presence models.Presence) {
			state.UpdatePresence(func(current *models.Presence) { *current = presence })
		},
	)
	if err := eventsHandler.StartBot(); err != nil {
		return err
	}
	defer eventsHandler.StopBot()

	if cfg.HealthConfig.IsConfigured() {
		healthHandler := handlers.NewHealthHTTPHandler(state, commandsService.Count(), cfg.HealthConfig.CORSAllowedOrigins)
		server := &http.Server{
			Addr:              ":" + cfg.HealthConfig.Port,
			Handler:           alertMiddleware.HTTPMiddleware(healthHandler.Handler()),
			ReadHeaderTimeout: 30 * time.Second,
		}

		go func() {
			_ = alertMiddleware.WrapBackgroundTask("health server", func() error {
				log.Printf("✅ Health server listening on http://localhost%s", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("❌ Health server error: %v", err)
					return err
				}
				return nil
			})()
		}()

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Printf("⚠️ Health server shutdown error: %v", err)
			}
		}()
	}

	return waitForShutdown(shutdownRequested)
}

// waitForShutdown blocks until an OS signal or the shutdown command; both end the process with status 0
func waitForShutdown(shutdownRequested <-chan struct{}) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case sig := <-stop:
		log.Printf("🛑 Received %s, shutting down...", sig)
	case <-shutdownRequested:
		log.Printf("🛑 Shutdown command received, shutting down...")
	}
	return nil
}
