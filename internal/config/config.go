// Package config loads the storefront settings from an optional
// storefront.yaml plus environment overrides. The offer tier table and the
// minimum order value are static configuration: they are validated here once
// and never change at runtime.
package config

import (
	"fmt"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/betichouu-bot/Poster-Point/internal/offer"
)

type Config struct {
	Port string `mapstructure:"port" validate:"required"`

	// ImageBaseURL is the host serving the artwork and its per-category
	// list-images endpoint. ManifestFile, when set, takes precedence and
	// loads the category manifest from disk instead.
	ImageBaseURL string        `mapstructure:"image_base_url" validate:"required,url"`
	ManifestFile string        `mapstructure:"manifest_file"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" validate:"gt=0"`

	WhatsAppPhone string `mapstructure:"whatsapp_phone" validate:"required,numeric"`
	MinOrderValue int    `mapstructure:"min_order_value" validate:"gte=0"`

	OfferTiers []offer.Tier `mapstructure:"offer_tiers" validate:"min=1,dive"`

	// RabbitURL enables checkout event publishing when non-empty.
	RabbitURL string `mapstructure:"rabbitmq_url"`

	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
}

// Load reads storefront.yaml from the working directory when present, lets
// environment variables override file values (PORT, IMAGE_BASE_URL, ...),
// and validates the result.
func Load() (Config, error) {
	v := viper.New()

	// Every key needs a default (empty is fine): AutomaticEnv only
	// consults the environment for keys viper already knows about.
	v.SetDefault("port", "8084")
	v.SetDefault("image_base_url", "http://localhost:8080/")
	v.SetDefault("manifest_file", "")
	v.SetDefault("probe_timeout", 5*time.Second)
	v.SetDefault("whatsapp_phone", "919395508081")
	v.SetDefault("min_order_value", 250)
	v.SetDefault("rabbitmq_url", "")
	v.SetDefault("cors_allow_origins", []string{"*"})

	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.OfferTiers) == 0 {
		cfg.OfferTiers = offer.DefaultTiers()
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces field-level rules. Tier ordering is the offer engine's
// construction-time check; this catches malformed values earlier, at
// configuration-load time.
func Validate(cfg Config) error {
	if err := validatorv10.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := offer.NewEngine(cfg.OfferTiers); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
