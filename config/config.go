package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TradingConfig holds every tunable parameter the decision engine needs.
// The caller owns it; the core never mutates a config it was handed.
type TradingConfig struct {
	// Allocation / sizing
	MaxAllocation    float64 `yaml:"max_allocation" envconfig:"MAX_ALLOCATION" default:"5000"`
	BaseFraction     float64 `yaml:"base_fraction" envconfig:"BASE_FRACTION" default:"0.05"`
	UseKellySizing   bool    `yaml:"use_kelly_sizing" envconfig:"USE_KELLY_SIZING" default:"true"`
	RiskLevel        string  `yaml:"risk_level" envconfig:"RISK_LEVEL" default:"medium"`

	// Signal gating
	ConfidenceThreshold float64 `yaml:"confidence_threshold" envconfig:"CONFIDENCE_THRESHOLD" default:"65"`
	TrendFilter         bool    `yaml:"trend_filter" envconfig:"TREND_FILTER" default:"true"`
	VolatilityFilter    bool    `yaml:"volatility_filter" envconfig:"VOLATILITY_FILTER" default:"true"`

	// Daily limits
	MaxDailyTrades float64 `yaml:"max_daily_trades" envconfig:"MAX_DAILY_TRADES" default:"20"`
	MaxDailyLoss   float64 `yaml:"max_daily_loss" envconfig:"MAX_DAILY_LOSS" default:"500"`
	MaxDailyGain   float64 `yaml:"max_daily_gain" envconfig:"MAX_DAILY_GAIN" default:"1500"`

	// Exit bounds
	StopLossPct   float64 `yaml:"stop_loss_pct" envconfig:"STOP_LOSS_PCT" default:"0.03"`
	TakeProfitPct float64 `yaml:"take_profit_pct" envconfig:"TAKE_PROFIT_PCT" default:"0.06"`
}

// riskLevels enumerates the accepted RiskLevel labels.
var riskLevels = map[string]bool{
	"conservative": true,
	"low":          true,
	"medium":       true,
	"high":         true,
	"aggressive":   true,
}

// Validate checks that all numeric fields are within sensible bounds.
// It returns the first encountered error so a configuration problem
// surfaces before any trading starts.
func (c *TradingConfig) Validate() error {
	if c.MaxAllocation <= 0 {
		return errors.New("MaxAllocation must be positive")
	}
	if c.BaseFraction <= 0 || c.BaseFraction > 0.5 {
		return fmt.Errorf("BaseFraction (%f) must be >0 and <=0.5", c.BaseFraction)
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 100 {
		return fmt.Errorf("ConfidenceThreshold (%f) must be within [0,100]", c.ConfidenceThreshold)
	}
	if c.MaxDailyTrades <= 0 {
		return errors.New("MaxDailyTrades must be positive")
	}
	if c.MaxDailyLoss <= 0 || c.MaxDailyGain <= 0 {
		return errors.New("daily loss/gain limits must be positive")
	}
	if c.StopLossPct <= 0 || c.StopLossPct > 0.2 {
		return fmt.Errorf("StopLossPct (%f) must be >0 and <=0.2", c.StopLossPct)
	}
	if c.TakeProfitPct <= 0 || c.TakeProfitPct > 0.5 {
		return fmt.Errorf("TakeProfitPct (%f) must be >0 and <=0.5", c.TakeProfitPct)
	}
	if !riskLevels[c.RiskLevel] {
		return fmt.Errorf("unknown risk level %q", c.RiskLevel)
	}
	return nil
}

// Default returns the configuration the simulator starts with when the
// settings store supplies nothing.
func Default() TradingConfig {
	return TradingConfig{
		MaxAllocation:       5000,
		BaseFraction:        0.05,
		UseKellySizing:      true,
		RiskLevel:           "medium",
		ConfidenceThreshold: 65,
		TrendFilter:         true,
		VolatilityFilter:    true,
		MaxDailyTrades:      20,
		MaxDailyLoss:        500,
		MaxDailyGain:        1500,
		StopLossPct:         0.03,
		TakeProfitPct:       0.06,
	}
}

// FromEnv builds a config from PAPERTRADER_-prefixed environment
// variables, falling back to struct defaults.
func FromEnv() (TradingConfig, error) {
	var c TradingConfig
	if err := envconfig.Process("papertrader", &c); err != nil {
		return TradingConfig{}, fmt.Errorf("load config from env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return TradingConfig{}, err
	}
	return c, nil
}

// FromFile loads a YAML config file. Values absent from the file keep
// their Default() value.
func FromFile(path string) (TradingConfig, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return TradingConfig{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return TradingConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return TradingConfig{}, err
	}
	return c, nil
}
