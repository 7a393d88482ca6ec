package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"time"

	"freight/internal/core/domain/model/pricing"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
// Tags used:
// - mapstructure: environment variable the field is read from
// - default: default value to set if missing
// - required: if "true", error if missing
type Config struct {
	Environment string `mapstructure:"APP_ENV" default:"development"`
	LogLevel    string `mapstructure:"LOG_LEVEL" default:"info"`
	HTTPPort    int    `mapstructure:"HTTP_PORT" default:"8080"`

	// ExternalCallTimeout bounds every call to the payment gateway and the carrier.
	ExternalCallTimeout time.Duration `mapstructure:"EXTERNAL_CALL_TIMEOUT" default:"5s"`

	// ReconciliationSchedule is a six field cron expression.
	ReconciliationSchedule string `mapstructure:"RECONCILIATION_SCHEDULE" default:"0 */15 * * * *"`

	Database DatabaseConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Payment  PaymentConfig  `mapstructure:",squash"`
	Carrier  CarrierConfig  `mapstructure:",squash"`
	Pricing  PricingConfig  `mapstructure:",squash"`
	Labels   LabelsConfig   `mapstructure:",squash"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DB_HOST" default:"localhost"`
	Port     int    `mapstructure:"DB_PORT" default:"5432"`
	User     string `mapstructure:"DB_USER" required:"true"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME" required:"true"`
	SSLMode  string `mapstructure:"DB_SSLMODE" default:"disable"`
}

// DSN is the connection string for the postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// OrderLockTTL caps how long one workflow step may hold an order.
	OrderLockTTL time.Duration `mapstructure:"ORDER_LOCK_TTL" default:"2m"`
}

type PaymentConfig struct {
	StoreID            string        `mapstructure:"PAYMENT_STORE_ID" required:"true"`
	APIToken           string        `mapstructure:"PAYMENT_API_TOKEN" required:"true"`
	CheckoutID         string        `mapstructure:"PAYMENT_CHECKOUT_ID" required:"true"`
	Environment        string        `mapstructure:"PAYMENT_ENVIRONMENT" default:"qa"`
	EndpointQA         string        `mapstructure:"PAYMENT_ENDPOINT_QA"`
	EndpointProd       string        `mapstructure:"PAYMENT_ENDPOINT_PROD"`
	CompletionEndpoint string        `mapstructure:"PAYMENT_COMPLETION_ENDPOINT" required:"true"`
	TicketTTL          time.Duration `mapstructure:"PAYMENT_TICKET_TTL" default:"20m"`
}

type CarrierConfig struct {
	Endpoint       string `mapstructure:"SHIPTRACK_ENDPOINT" required:"true"`
	Username       string `mapstructure:"SHIPTRACK_USERNAME" required:"true"`
	Password       string `mapstructure:"SHIPTRACK_PASSWORD"`
	DefaultAccount string `mapstructure:"SHIPTRACK_DEFAULT_ACCOUNT" default:"O0067"`
	ClientPrefix   string `mapstructure:"SHIPTRACK_CLIENT_PREFIX" default:"MBW"`
}

// PricingConfig keeps amounts as text so they reach decimal.Decimal without
// passing through floating point.
type PricingConfig struct {
	TaxRate             string   `mapstructure:"TAX_RATE" default:"5"`
	TaxLabel            string   `mapstructure:"TAX_LABEL" default:"GST"`
	FuelSurcharge       string   `mapstructure:"FUEL_SURCHARGE" default:"0"`
	MaxOrderWeight      string   `mapstructure:"MAX_ORDER_WEIGHT" default:"2200"`
	ExcludedPostalCodes []string `mapstructure:"EXCLUDED_POSTAL_CODES"`

	Tier1  string `mapstructure:"RATES_TIER_1" required:"true"`
	Tier2  string `mapstructure:"RATES_TIER_2" required:"true"`
	Tier3  string `mapstructure:"RATES_TIER_3" required:"true"`
	Tier4  string `mapstructure:"RATES_TIER_4" required:"true"`
	Tier5  string `mapstructure:"RATES_TIER_5" required:"true"`
	Tier6  string `mapstructure:"RATES_TIER_6" required:"true"`
	Tier7  string `mapstructure:"RATES_TIER_7" required:"true"`
	Tier8  string `mapstructure:"RATES_TIER_8" required:"true"`
	Tier9  string `mapstructure:"RATES_TIER_9" required:"true"`
	Tier10 string `mapstructure:"RATES_TIER_10" required:"true"`
	Tier11 string `mapstructure:"RATES_TIER_11" required:"true"`
	Tier12 string `mapstructure:"RATES_TIER_12" required:"true"`
}

// Settings parses the configured amounts into pricing settings.
func (c PricingConfig) Settings() (pricing.Settings, error) {
	var problems []error
	parse := func(key, value string) decimal.Decimal {
		d, err := decimal.NewFromString(value)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}

	tiers := []string{
		c.Tier1, c.Tier2, c.Tier3, c.Tier4, c.Tier5, c.Tier6,
		c.Tier7, c.Tier8, c.Tier9, c.Tier10, c.Tier11, c.Tier12,
	}
	rates := make([]decimal.Decimal, len(tiers))
	for i, tier := range tiers {
		rates[i] = parse(fmt.Sprintf("RATES_TIER_%d", i+1), tier)
	}
	settings := pricing.Settings{
		FuelSurcharge:  parse("FUEL_SURCHARGE", c.FuelSurcharge),
		TaxRate:        parse("TAX_RATE", c.TaxRate),
		TaxLabel:       c.TaxLabel,
		MaxOrderWeight: parse("MAX_ORDER_WEIGHT", c.MaxOrderWeight),
	}
	if err := errors.Join(problems...); err != nil {
		return pricing.Settings{}, err
	}

	table, err := pricing.NewRateTable(rates...)
	if err != nil {
		return pricing.Settings{}, err
	}
	settings.Rates = table
	return settings, settings.Validate()
}

type LabelsConfig struct {
	Region          string `mapstructure:"AWS_REGION" default:"ca-central-1"`
	AccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID" required:"true"`
	SecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY" required:"true"`
	Bucket          string `mapstructure:"LABELS_BUCKET" required:"true"`
	// Endpoint points at an S3 compatible server instead of AWS.
	Endpoint string `mapstructure:"LABELS_ENDPOINT"`
}

// LoadConfig reads the environment, after loading an optional .env file from
// dir. Variables already set in the environment win over the file.
func LoadConfig(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	var config Config
	processTags(v, &config)

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags binds every tagged field to its environment variable and
// registers its default.
func processTags(v *viper.Viper, config any) {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			processTags(v, val.Field(i).Addr().Interface())
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		_ = v.BindEnv(key)

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config any) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	var missing []error
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				missing = append(missing, err)
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			missing = append(missing, fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure")))
		}
	}
	return errors.Join(missing...)
}
