// Package config provides configuration loading for the shelf CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyBrandsDB       = "paths.brands_db"
	KeyFlavorsDB      = "paths.flavors_db"
	KeyKnowledgeBase  = "paths.knowledge_base"
	KeyProductCatalog = "paths.product_catalog"
	KeySKUCatalog     = "paths.sku_catalog"
	KeySampleSize     = "validation.sample_size"
	KeySeed           = "validation.seed"
	KeyAutoLearn      = "categorize.auto_learn"
)

// Paths locates the persisted stores and the labeled catalogs.
type Paths struct {
	BrandsDB       string
	FlavorsDB      string
	KnowledgeBase  string
	ProductCatalog string
	SKUCatalog     string
}

// Validation configures the model validation sample.
type Validation struct {
	SampleSize int
	Seed       uint64
}

// Config is the resolved application configuration.
type Config struct {
	Paths      Paths
	Validation Validation
	AutoLearn  bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBrandsDB, "brands_db.json")
	v.SetDefault(KeyFlavorsDB, "flavors_db.json")
	v.SetDefault(KeyKnowledgeBase, "knowledge_base.json")
	v.SetDefault(KeyProductCatalog, "product1.xlsx")
	v.SetDefault(KeySKUCatalog, "sku_vkus.xlsx")
	v.SetDefault(KeySampleSize, 500)
	v.SetDefault(KeySeed, 42)
	v.SetDefault(KeyAutoLearn, false)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v, applying defaults for unset keys.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Paths: Paths{
			BrandsDB:       ExpandPath(v.GetString(KeyBrandsDB)),
			FlavorsDB:      ExpandPath(v.GetString(KeyFlavorsDB)),
			KnowledgeBase:  ExpandPath(v.GetString(KeyKnowledgeBase)),
			ProductCatalog: ExpandPath(v.GetString(KeyProductCatalog)),
			SKUCatalog:     ExpandPath(v.GetString(KeySKUCatalog)),
		},
		Validation: Validation{
			SampleSize: v.GetInt(KeySampleSize),
			Seed:       v.GetUint64(KeySeed),
		},
		AutoLearn: v.GetBool(KeyAutoLearn),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	required := map[string]string{
		KeyBrandsDB:      c.Paths.BrandsDB,
		KeyFlavorsDB:     c.Paths.FlavorsDB,
		KeyKnowledgeBase: c.Paths.KnowledgeBase,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s must not be empty", common.ErrInvalidConfig, key)
		}
	}

	if c.Validation.SampleSize <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeySampleSize, c.Validation.SampleSize)
	}

	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
