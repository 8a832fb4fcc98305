package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
	"github.com/wytfitness/Fitness-App-04112025/internal/session"
)

var (
	flagBaseURL   string
	flagAnonKey   string
	flagConfigDir string
	flagTimeout   time.Duration
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "fitrack",
	Short: "fitrack tracks meals, workouts, weight and water from your terminal",
	Long:  "fitrack is a thin client over the fitness backend: food diary, workout logging, body weight, water, goals, and a daily dashboard.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Supabase project URL (defaults to FITRACK_SUPABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagAnonKey, "anon-key", "", "Supabase anon key (defaults to FITRACK_SUPABASE_ANON_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Directory for the session file")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", gateway.DefaultTimeout, "Per-request timeout")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

func baseURL() string {
	if flagBaseURL != "" {
		return flagBaseURL
	}
	return os.Getenv("FITRACK_SUPABASE_URL")
}

func anonKey() string {
	if flagAnonKey != "" {
		return flagAnonKey
	}
	return os.Getenv("FITRACK_SUPABASE_ANON_KEY")
}

func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newProvider wires the session provider and attaches the sign-out watcher:
// if the session disappears mid-process the user gets a one-shot notice
// instead of a bare auth error.
func newProvider(logger *zap.Logger) (*session.Provider, error) {
	auth, err := session.NewAuth(baseURL(), anonKey(), logger)
	if err != nil {
		return nil, err
	}
	provider := session.NewProvider(auth, session.NewStore(flagConfigDir), logger)
	if err := provider.Init(); err != nil {
		return nil, err
	}
	provider.OnChange(func(s *model.Session) {
		if s == nil {
			fmt.Fprintln(os.Stderr, "Your session ended. Please sign in again.")
		}
	})
	return provider, nil
}

// withAPI builds the full client stack and runs fn against it.
func withAPI(fn func(*api.Client) error) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	provider, err := newProvider(logger)
	if err != nil {
		return err
	}
	gw, err := gateway.New(baseURL(), anonKey(), provider, logger)
	if err != nil {
		return err
	}
	gw.Timeout = flagTimeout
	client, err := api.New(gw, logger)
	if err != nil {
		return err
	}
	return fn(client)
}

// withProvider is for auth commands that need no gateway.
func withProvider(fn func(*session.Provider) error) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	provider, err := newProvider(logger)
	if err != nil {
		return err
	}
	return fn(provider)
}
