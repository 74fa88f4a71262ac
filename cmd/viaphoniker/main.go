package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/viaphoniker/viaphoniker/internal"
	"github.com/viaphoniker/viaphoniker/internal/config"
	"github.com/viaphoniker/viaphoniker/internal/log"
)

var BuildVersion = "dev"

func generateDefaultConfig(path string) error {
	routes := make([]map[string]any, 0, len(config.DefaultMediaRoutes()))
	for _, r := range config.DefaultMediaRoutes() {
		routes = append(routes, map[string]any{
			"name": r.Name,
			"path": r.Path,
			"url":  r.URL,
			"mode": string(r.Mode),
		})
	}

	defaultConfig := map[string]any{
		"version": config.Version,
		"server": map[string]any{
			"baseURL":        "https://viaphoniker.de",
			"addr":           ":8080",
			"name":           config.DefaultName,
			"allowedOrigins": []string{"https://viaphoniker.de"},
		},
		"firebase": map[string]any{
			"apiKey":     map[string]string{"$env": "FIREBASE_API_KEY"},
			"authDomain": "viaphoniker.firebaseapp.com",
			"projectId":  "viaphoniker",
			"appId":      map[string]string{"$env": "FIREBASE_APP_ID"},
		},
		"google": map[string]any{
			"clientId":     map[string]string{"$env": "GOOGLE_CLIENT_ID"},
			"clientSecret": map[string]string{"$env": "GOOGLE_CLIENT_SECRET"},
		},
		"session": map[string]any{
			"storage":       config.StorageSQLite,
			"sqlitePath":    config.DefaultSQLitePath,
			"encryptionKey": map[string]string{"$env": "ENCRYPTION_KEY"},
			"stateSecret":   map[string]string{"$env": "STATE_SECRET"},
			"stateTtl":      config.DefaultStateTTL.String(),
		},
		"media": map[string]any{
			"timeout": "30s",
			"routes":  routes,
		},
	}

	data, err := json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func validateConfig(path string) error {
	result, err := config.ValidateFile(path)
	if err != nil {
		return fmt.Errorf("error during validation: %w", err)
	}

	fmt.Printf("Validating: %s\n", path)

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(result.Errors))
		for _, err := range result.Errors {
			if err.Path != "" {
				fmt.Printf("  - %s: %s\n", err.Path, err.Message)
			} else {
				fmt.Printf("  - %s\n", err.Message)
			}
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, warn := range result.Warnings {
			if warn.Path != "" {
				fmt.Printf("  - %s: %s\n", warn.Path, warn.Message)
			} else {
				fmt.Printf("  - %s\n", warn.Message)
			}
		}
	}

	fmt.Println()
	switch {
	case !result.IsValid():
		fmt.Println("Result: FAIL")
		return fmt.Errorf("validation failed: %d error(s), %d warning(s)", len(result.Errors), len(result.Warnings))
	case len(result.Warnings) > 0:
		fmt.Println("Result: PASS (with warnings)")
	default:
		fmt.Println("Result: PASS")
	}
	return nil
}

func main() {
	conf := flag.String("config", "", "path to config file, JSON or YAML (required)")
	envFile := flag.String("env-file", "", "load environment variables from a .env file before reading the config")
	version := flag.Bool("version", false, "print version and exit")
	help := flag.Bool("help", false, "print help and exit")
	configInit := flag.String("config-init", "", "generate default config file at specified path")
	validate := flag.Bool("validate", false, "validate config file and exit")
	logLevel := flag.String("log-level", "", "override LOG_LEVEL (error, warn, info, debug, trace)")
	flag.Parse()
	if *help {
		flag.Usage()
		return
	}
	if *version {
		fmt.Println(BuildVersion)
		return
	}
	if *configInit != "" {
		if err := generateDefaultConfig(*configInit); err != nil {
			log.LogError("Failed to generate config: %v", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default config at: %s\n", *configInit)
		return
	}

	if *logLevel != "" {
		if err := log.SetLogLevel(*logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.LogError("Failed to load env file: %v", err)
			os.Exit(1)
		}
	}

	if *validate {
		if *conf == "" {
			fmt.Fprintf(os.Stderr, "Error: -config flag is required for validation\n")
			os.Exit(1)
		}
		if err := validateConfig(*conf); err != nil {
			os.Exit(1)
		}
		return
	}

	if *conf == "" {
		fmt.Fprintf(os.Stderr, "Error: -config flag is required\n")
		fmt.Fprintf(os.Stderr, "Run with -help for usage information\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*conf)
	if err != nil {
		log.LogError("Failed to load config: %v", err)
		os.Exit(1)
	}

	log.LogInfoWithFields("main", "Starting viaphoniker", map[string]any{
		"version":   BuildVersion,
		"config":    *conf,
		"log_level": log.GetLogLevel(),
	})

	ctx := context.Background()
	app, err := internal.NewViaphoniker(ctx, cfg)
	if err != nil {
		log.LogError("Failed to create application: %v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.LogError("Server stopped: %v", err)
		os.Exit(1)
	}
}
