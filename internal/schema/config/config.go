package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"

	"sheltercms/internal/schema/domain/model"
)

// Config holds all configuration for the schema module.
type Config struct {
	// MongoDB Configuration
	MongoDBURI   string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"sheltercms"`

	// Redis Configuration. Leave RedisAddr empty to run without the
	// section-list cache.
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:""`
	RedisPassword   string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	SectionCacheTTL time.Duration `env:"SECTION_CACHE_TTL" envDefault:"5m"`

	// JWT Configuration for the tenant middleware.
	JWTSecretKey string `env:"JWT_SECRET_KEY" envDefault:""`

	// Family policy overrides.
	CascadeSectionDelete bool `env:"CASCADE_SECTION_DELETE" envDefault:"false"`
	AdoptionUniqueNames  bool `env:"ADOPTION_UNIQUE_NAMES" envDefault:"false"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load schema configuration from environment: " + err.Error())
	}
	if cfg.MongoDBURI == "" {
		return nil, errors.New("MONGODB_URI environment variable is not set")
	}
	if cfg.SectionCacheTTL <= 0 {
		cfg.SectionCacheTTL = 5 * time.Minute
	}
	return cfg, nil
}

// DefaultConfig returns a Config with local development defaults.
func DefaultConfig() *Config {
	return &Config{
		MongoDBURI:      "mongodb://localhost:27017",
		DatabaseName:    "sheltercms",
		SectionCacheTTL: 5 * time.Minute,
	}
}

// FamilyRegistry builds the family registry with the configured policy
// overrides applied on top of the builtin families.
func (c *Config) FamilyRegistry() *model.FamilyRegistry {
	reg := model.NewFamilyRegistry()
	reg.Register(model.FamilyPetHealth, model.FamilyPolicy{
		OwnerScoped:          true,
		UniqueSectionNames:   true,
		CascadeSectionDelete: c.CascadeSectionDelete,
	})
	reg.Register(model.FamilyAdoption, model.FamilyPolicy{
		UniqueSectionNames:   c.AdoptionUniqueNames,
		CascadeSectionDelete: c.CascadeSectionDelete,
	})
	return reg
}
