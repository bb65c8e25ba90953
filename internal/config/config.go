// Package config loads training-run settings from the environment,
// with optional .env file support.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the knobs of a training run.
type Config struct {
	Gamma        float64 // discount factor
	LearningRate float64
	MaxEpisodes  int    // global episode budget across all workers
	ModelName    string // selects the checkpoint filename template
	InputSize    int
	TaskSteps    int // self-adjusted task steps, 0 when unset
	PlotWindow   int // running-average window for loss plots
	Workers      int // 0 lets the caller pick a default
}

// Default returns the configuration used when no environment overrides
// are present.
func Default() Config {
	return Config{
		Gamma:        0.9,
		LearningRate: 1e-4,
		MaxEpisodes:  100,
		ModelName:    "Encoder",
		InputSize:    4,
		PlotWindow:   100,
	}
}

// Load reads configuration from the environment on top of the
// defaults. A .env file in the working directory is honored when
// present; a missing file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	var err error

	if cfg.Gamma, err = envFloat("TREK_GAMMA", cfg.Gamma); err != nil {
		return Config{}, err
	}
	if cfg.LearningRate, err = envFloat("TREK_LR", cfg.LearningRate); err != nil {
		return Config{}, err
	}
	if cfg.MaxEpisodes, err = envInt("TREK_MAX_EPISODES", cfg.MaxEpisodes); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("TREK_MODEL_NAME"); v != "" {
		cfg.ModelName = v
	}
	if cfg.InputSize, err = envInt("TREK_INPUT_SIZE", cfg.InputSize); err != nil {
		return Config{}, err
	}
	if cfg.TaskSteps, err = envInt("TREK_TASK_STEPS", cfg.TaskSteps); err != nil {
		return Config{}, err
	}
	if cfg.PlotWindow, err = envInt("TREK_PLOT_WINDOW", cfg.PlotWindow); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = envInt("TREK_WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable for training.
func (c Config) Validate() error {
	if c.Gamma <= 0 || c.Gamma > 1 {
		return fmt.Errorf("config: gamma must be in (0, 1], got %v", c.Gamma)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("config: learning rate must be positive, got %v", c.LearningRate)
	}
	if c.MaxEpisodes <= 0 {
		return fmt.Errorf("config: max episodes must be positive, got %d", c.MaxEpisodes)
	}
	if c.ModelName == "" {
		return fmt.Errorf("config: model name must not be empty")
	}
	if c.InputSize <= 0 {
		return fmt.Errorf("config: input size must be positive, got %d", c.InputSize)
	}
	if c.TaskSteps < 0 {
		return fmt.Errorf("config: task steps must not be negative, got %d", c.TaskSteps)
	}
	if c.PlotWindow <= 0 {
		return fmt.Errorf("config: plot window must be positive, got %d", c.PlotWindow)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	return f, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	return n, nil
}
