// Package config defines the run configuration for the lakehouse pipeline:
// layer locations, synthetic generator knobs, dimension date range, fact
// build policy, quality gating, and the optional warehouse and metrics
// endpoints. Values load from a YAML file with LAKEHOUSE_* environment
// overrides.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix namespaces environment overrides, e.g.
// LAKEHOUSE_WAREHOUSE_DSN=... overrides warehouse.dsn.
const EnvPrefix = "LAKEHOUSE_"

type Config struct {
	Env struct {
		ServiceName string `koanf:"serviceName"`
		Log         Log    `koanf:"log"`
	} `koanf:"env"`

	Paths     Paths     `koanf:"paths"`
	Generator Generator `koanf:"generator"`
	DimDate   DimDate   `koanf:"dimDate"`
	Fact      Fact      `koanf:"fact"`
	Quality   Quality   `koanf:"quality"`
	Warehouse Warehouse `koanf:"warehouse"`
	ObjStore  ObjStore  `koanf:"objstore"`
	Metrics   Metrics   `koanf:"metrics"`
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

// Paths are the local roots of each layer.
type Paths struct {
	Raw    string `koanf:"raw" validate:"required"`
	Bronze string `koanf:"bronze" validate:"required"`
	Silver string `koanf:"silver" validate:"required"`
	Gold   string `koanf:"gold" validate:"required"`
}

// Generator controls the synthetic source-data producer.
type Generator struct {
	Seed         int64   `koanf:"seed"`
	Customers    int     `koanf:"customers" validate:"min=1"`
	Products     int     `koanf:"products" validate:"min=1"`
	Orders       int     `koanf:"orders" validate:"min=1"`
	MaxItems     int     `koanf:"maxItemsPerOrder" validate:"min=1"`
	DirtyRowPct  float64 `koanf:"dirtyRowPct" validate:"min=0,max=100"`
	DuplicatePct float64 `koanf:"duplicatePct" validate:"min=0,max=100"`
}

// DimDate is the inclusive calendar range materialized into dim_date.
type DimDate struct {
	StartYear int `koanf:"startYear" validate:"min=1970"`
	EndYear   int `koanf:"endYear" validate:"gtefield=StartYear"`
}

type Fact struct {
	// OrphanPolicy decides whether fact rows without a dimension match are
	// dropped or kept with zeroed keys.
	OrphanPolicy string `koanf:"orphanPolicy" validate:"oneof=drop keep"`
}

type Quality struct {
	// FailOnError aborts the run when an error-severity check fails.
	FailOnError     bool `koanf:"failOnError"`
	IncludeWarnings bool `koanf:"includeWarnings"`
	FreshnessHours  int  `koanf:"freshnessMaxAgeHours" validate:"min=1"`
}

// Warehouse is the optional Postgres serving layer for gold tables. An
// empty DSN disables the load stage.
type Warehouse struct {
	DSN    string `koanf:"dsn"`
	Schema string `koanf:"schema"`
}

// ObjStore is the optional object-storage location raw files are staged
// through, as a blob URL (s3://, gs://, file://). Empty disables the
// upload stage.
type ObjStore struct {
	Bucket string `koanf:"bucket"`
	Prefix string `koanf:"prefix"`
}

// Metrics configures the optional Pushgateway sink. An empty URL keeps the
// no-op backend.
type Metrics struct {
	PushgatewayURL string `koanf:"pushgatewayURL"`
	Job            string `koanf:"job"`
}

// Default returns the configuration used when a field is absent from the
// file and environment.
func Default() Config {
	var c Config
	c.Env.ServiceName = "lakehouse"
	c.Env.Log = Log{Level: "info"}
	c.Paths = Paths{Raw: "data/raw", Bronze: "data/bronze", Silver: "data/silver", Gold: "data/gold"}
	c.Generator = Generator{Seed: 42, Customers: 500, Products: 200, Orders: 2000, MaxItems: 5, DirtyRowPct: 5, DuplicatePct: 2}
	c.DimDate = DimDate{StartYear: 2020, EndYear: 2030}
	c.Fact = Fact{OrphanPolicy: "drop"}
	c.Quality = Quality{FailOnError: true, FreshnessHours: 24}
	c.Warehouse = Warehouse{Schema: "gold"}
	c.ObjStore = ObjStore{Prefix: "raw"}
	c.Metrics = Metrics{Job: "lakehouse"}
	return c
}

// Load reads the YAML file at path when it exists, applies LAKEHOUSE_*
// environment overrides, and validates. A missing file is not an error;
// defaults plus environment apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat config %s", path)
		}
	}

	fileKeys := k.Raw()

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// LAKEHOUSE_DIMDATE_STARTYEAR -> dimDate.startYear
			return canonicalEnvKey(key, fileKeys), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env overrides")
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// canonicalEnvKey maps an environment variable name to a config path,
// aligning each segment with the casing of keys already loaded from the
// file so an env value replaces the file's entry instead of landing next
// to it under a lower-cased twin.
func canonicalEnvKey(raw string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(strings.TrimPrefix(raw, EnvPrefix)), "_")
	parts := make([]string, 0, len(segments))
	current := existing
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if match, child, ok := matchSegment(current, seg); ok {
			parts = append(parts, match)
			current = child
			continue
		}
		parts = append(parts, seg)
		current = nil
	}
	return strings.Join(parts, ".")
}

func matchSegment(current map[string]any, seg string) (string, map[string]any, bool) {
	for key, value := range current {
		if strings.EqualFold(key, seg) {
			child, _ := value.(map[string]any)
			return key, child, true
		}
	}
	return "", nil, false
}

// Validate checks field constraints over a decoded config.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
