package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weather-display/api"
	"weather-display/chart"
	"weather-display/config"
	"weather-display/datasource"
	"weather-display/forecast"
	"weather-display/logger"
	"weather-display/lookup"
	"weather-display/present"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Warnf("Error loading .env file: %v", err)
	}

	// Parse command line arguments
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	city := flag.String("city", "", "Look up a single city, print it and exit")
	chartFile := flag.String("chart", "", "With -city, also write an HTML forecast chart to this file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	logger.SetLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	policy, err := cfg.CutoffPolicy()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	owm := datasource.NewOpenWeatherMapProvider(
		cfg.OpenWeatherMap.APIKey,
		datasource.WithBaseURL(cfg.OpenWeatherMap.BaseURL),
		datasource.WithTimeout(cfg.OpenWeatherMap.Timeout),
	)
	service := lookup.NewService(owm, owm,
		lookup.WithSelector(forecast.Selector{Policy: policy}),
		lookup.WithTimeout(cfg.SearchTimeout),
	)
	logger.Infof("Using %s with %s forecast cutoff", owm.Name(), policy)

	if *city != "" {
		os.Exit(lookupOnce(service, *city, *chartFile))
	}

	serve(service, cfg)
}

// lookupOnce runs a single search, prints the page and returns the exit code
func lookupOnce(service *lookup.Service, city, chartFile string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := lookup.NewSession()
	runErr := service.Run(ctx, session, city)

	page := present.FromView(session.View(), time.Now())
	if err := present.WriteText(os.Stdout, page); err != nil {
		logger.Errorf("Failed to write output: %v", err)
		return 1
	}
	if runErr != nil {
		return 1
	}

	if chartFile != "" {
		if err := writeChart(chartFile, page); err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		fmt.Printf("Chart written to %s\n", chartFile)
	}
	return 0
}

func writeChart(filename string, page present.Page) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := chart.RenderDaily(f, page); err != nil {
		return err
	}
	return f.Close()
}

// serve runs the HTTP API until SIGINT or SIGTERM
func serve(service *lookup.Service, cfg *config.Config) {
	server := api.NewServer(service, cfg.Server.Port,
		api.WithRateLimit(cfg.Server.RequestsPerSecond, cfg.Server.Burst),
	)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdownChan
	logger.Infof("Shutting down due to %s signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}

	logger.Infof("Shutdown complete")
}
