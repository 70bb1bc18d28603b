package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. Engine thresholds are
// code constants by design; only pricing bands and operational settings are
// configurable.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Pricing PricingConfig `yaml:"pricing" mapstructure:"pricing"`
}

// StoreConfig configures the assessment store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int `yaml:"port" mapstructure:"port"`
	AssessPerMin   int `yaml:"assess_per_min" mapstructure:"assess_per_min"`
	AssessBurst    int `yaml:"assess_burst" mapstructure:"assess_burst"`
	ShutdownGraceS int `yaml:"shutdown_grace_secs" mapstructure:"shutdown_grace_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// BatchConfig configures concurrent batch assessment.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// PriceBand is an installed-cost range for like-for-like replacement.
type PriceBand struct {
	Low  float64 `yaml:"low" mapstructure:"low"`
	High float64 `yaml:"high" mapstructure:"high"`
}

// TierConfig defines one replacement quote tier: a warranty class, a price
// multiplier over the equipment band, and the infrastructure items whose
// cost the tier bundles when the matching issue is open.
type TierConfig struct {
	WarrantyYears int      `yaml:"warranty_years" mapstructure:"warranty_years"`
	Multiplier    float64  `yaml:"multiplier" mapstructure:"multiplier"`
	Includes      []string `yaml:"includes" mapstructure:"includes"`
}

// SoftenerConfig holds the economics of a whole-house softener.
type SoftenerConfig struct {
	UnitCost    float64 `yaml:"unit_cost" mapstructure:"unit_cost"`
	LifeYears   float64 `yaml:"life_years" mapstructure:"life_years"`
	SaltPerYear float64 `yaml:"salt_per_year" mapstructure:"salt_per_year"`
}

// PricingConfig holds per-fuel equipment bands, tier definitions,
// infrastructure item costs, and softener economics.
type PricingConfig struct {
	Equipment      map[string]PriceBand  `yaml:"equipment" mapstructure:"equipment"`
	Tiers          map[string]TierConfig `yaml:"tiers" mapstructure:"tiers"`
	Infrastructure map[string]float64    `yaml:"infrastructure" mapstructure:"infrastructure"`
	Softener       SoftenerConfig        `yaml:"softener" mapstructure:"softener"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OPTERRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "opterra.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.assess_per_min", 120)
	v.SetDefault("server.assess_burst", 20)
	v.SetDefault("server.shutdown_grace_secs", 10)
	v.SetDefault("batch.max_concurrent", 5)

	// Installed like-for-like replacement bands per fuel type.
	v.SetDefault("pricing.equipment.GAS_TANK.low", 1600)
	v.SetDefault("pricing.equipment.GAS_TANK.high", 2600)
	v.SetDefault("pricing.equipment.ELECTRIC_TANK.low", 1400)
	v.SetDefault("pricing.equipment.ELECTRIC_TANK.high", 2300)
	v.SetDefault("pricing.equipment.HYBRID.low", 3200)
	v.SetDefault("pricing.equipment.HYBRID.high", 4800)
	v.SetDefault("pricing.equipment.TANKLESS_GAS.low", 3500)
	v.SetDefault("pricing.equipment.TANKLESS_GAS.high", 5500)
	v.SetDefault("pricing.equipment.TANKLESS_ELECTRIC.low", 1800)
	v.SetDefault("pricing.equipment.TANKLESS_ELECTRIC.high", 3200)

	// Tier definitions: warranty class, band multiplier, bundled infra.
	v.SetDefault("pricing.tiers.BUILDER.warranty_years", 6)
	v.SetDefault("pricing.tiers.BUILDER.multiplier", 0.85)
	v.SetDefault("pricing.tiers.BUILDER.includes", []string{})
	v.SetDefault("pricing.tiers.STANDARD.warranty_years", 9)
	v.SetDefault("pricing.tiers.STANDARD.multiplier", 1.0)
	v.SetDefault("pricing.tiers.STANDARD.includes", []string{"expansion_tank"})
	v.SetDefault("pricing.tiers.PROFESSIONAL.warranty_years", 12)
	v.SetDefault("pricing.tiers.PROFESSIONAL.multiplier", 1.25)
	v.SetDefault("pricing.tiers.PROFESSIONAL.includes", []string{"expansion_tank", "prv"})
	v.SetDefault("pricing.tiers.PREMIUM.warranty_years", 15)
	v.SetDefault("pricing.tiers.PREMIUM.multiplier", 1.55)
	v.SetDefault("pricing.tiers.PREMIUM.includes", []string{"expansion_tank", "prv", "drain_pan", "isolation_valves"})

	v.SetDefault("pricing.infrastructure.prv", 350)
	v.SetDefault("pricing.infrastructure.expansion_tank", 300)
	v.SetDefault("pricing.infrastructure.drain_pan", 150)
	v.SetDefault("pricing.infrastructure.isolation_valves", 250)

	v.SetDefault("pricing.softener.unit_cost", 1500)
	v.SetDefault("pricing.softener.life_years", 10)
	v.SetDefault("pricing.softener.salt_per_year", 60)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
