package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dafibh/drivelog/drivelog-backend/internal/analysis"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL   string
	RunMigrations bool

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Rate limiting per workspace
	RateLimitPerMinute int
	RateLimitBurst     int

	// S3 Storage
	S3 S3Config

	// Analysis cost rules
	Policy PolicyConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether photo storage can be used
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && (s.Endpoint != "" || s.AccessKeyID != "")
}

// PolicyConfig names the analysis cost rules
type PolicyConfig struct {
	FuelMerge       string // override | sum
	PeriodFuel      string // period | daily
	MonthlyRent     string // ceil | prorata
	MonthlyKmLimit  string // ceil | prorata
	MonthlyGoal     string // ceil | prorata
	DailyFixedCosts bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		Auth0Domain:        getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:      getEnv("AUTH0_AUDIENCE", ""),
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                getEnv("ENV", "development"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		Policy: PolicyConfig{
			FuelMerge:       getEnv("POLICY_FUEL_MERGE", "override"),
			PeriodFuel:      getEnv("POLICY_PERIOD_FUEL", "period"),
			MonthlyRent:     getEnv("POLICY_MONTHLY_RENT", "ceil"),
			MonthlyKmLimit:  getEnv("POLICY_MONTHLY_KM_LIMIT", "ceil"),
			MonthlyGoal:     getEnv("POLICY_MONTHLY_GOAL", "ceil"),
			DailyFixedCosts: getEnvBool("POLICY_DAILY_FIXED_COSTS", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	if _, err := c.Policy.Build(); err != nil {
		return err
	}
	return nil
}

// Build resolves the named rules into an analysis policy
func (p PolicyConfig) Build() (analysis.Policy, error) {
	policy := analysis.DefaultPolicy()
	policy.DailyFixedCosts = p.DailyFixedCosts

	switch p.FuelMerge {
	case "override":
		policy.FuelMerge = analysis.FuelOverridesManual
	case "sum":
		policy.FuelMerge = analysis.FuelAddsToManual
	default:
		return analysis.Policy{}, fmt.Errorf("POLICY_FUEL_MERGE must be override or sum, got %q", p.FuelMerge)
	}

	switch p.PeriodFuel {
	case "period":
		policy.PeriodFuel = analysis.FuelFromPeriodDistance
	case "daily":
		policy.PeriodFuel = analysis.FuelFromDailySum
	default:
		return analysis.Policy{}, fmt.Errorf("POLICY_PERIOD_FUEL must be period or daily, got %q", p.PeriodFuel)
	}

	switch p.MonthlyRent {
	case "ceil":
		policy.MonthlyRent = analysis.WeeklyCeilingRent
	case "prorata":
		policy.MonthlyRent = analysis.ProratedWeeklyRent
	default:
		return analysis.Policy{}, fmt.Errorf("POLICY_MONTHLY_RENT must be ceil or prorata, got %q", p.MonthlyRent)
	}

	switch p.MonthlyKmLimit {
	case "ceil":
		policy.MonthlyKmLimit = analysis.CeilingWeeksLimit
	case "prorata":
		policy.MonthlyKmLimit = analysis.ProRataLimit
	default:
		return analysis.Policy{}, fmt.Errorf("POLICY_MONTHLY_KM_LIMIT must be ceil or prorata, got %q", p.MonthlyKmLimit)
	}

	switch p.MonthlyGoal {
	case "ceil":
		policy.MonthlyGoal = analysis.CeilingWeeksLimit
	case "prorata":
		policy.MonthlyGoal = analysis.ProRataLimit
	default:
		return analysis.Policy{}, fmt.Errorf("POLICY_MONTHLY_GOAL must be ceil or prorata, got %q", p.MonthlyGoal)
	}

	return policy, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
