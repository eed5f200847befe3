package config

import (
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const (
	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMemory   = "memory"
)

// Config is loaded from environment variables (a .env file is honored via
// godotenv) and, when present, config.yaml in the working directory.
//
// The AWS variables keep their SDK names so local DynamoDB setups work as-is:
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID (default: local)
//   - AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
type Config struct {
	Port            string        `env:"PORT" yaml:"port" default:"8080" usage:"HTTP listen port"`
	LogMode         string        `env:"LOG_MODE" yaml:"log_mode" default:"dev" usage:"dev or prod"`
	StoreDriver     string        `env:"STORE_DRIVER" yaml:"store_driver" default:"dynamodb" usage:"dynamodb or memory"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" default:"10s" usage:"graceful shutdown deadline"`
	TracingEnabled  bool          `env:"TRACING_ENABLED" yaml:"tracing_enabled" default:"false" usage:"export spans to stdout"`

	EstimatesTable     string `env:"ESTIMATES_TABLE" yaml:"estimates_table" default:"estimates"`
	AWSRegion          string `env:"AWS_REGION" yaml:"aws_region" default:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" yaml:"aws_access_key_id" default:"local"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" yaml:"aws_secret_access_key" default:"local"`
	DynamoDBEndpoint   string `env:"DYNAMODB_ENDPOINT" yaml:"dynamodb_endpoint"`
}

// Load reads the configuration. files overrides the default config file
// lookup and is mostly useful in tests.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{"config.yaml"}
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:          true,
		AllowUnknownEnvs:   true,
		AllowUnknownFields: true,
		Files:              files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverDynamoDB, StoreDriverMemory:
	default:
		return errors.Errorf("unknown store driver %q: use %q or %q", c.StoreDriver, StoreDriverDynamoDB, StoreDriverMemory)
	}
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is required")
	}
	if c.StoreDriver == StoreDriverDynamoDB && strings.TrimSpace(c.EstimatesTable) == "" {
		return errors.New("estimates table is required for the dynamodb store")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
