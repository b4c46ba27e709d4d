package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, Paths{
		BrandsDB:       "brands_db.json",
		FlavorsDB:      "flavors_db.json",
		KnowledgeBase:  "knowledge_base.json",
		ProductCatalog: "product1.xlsx",
		SKUCatalog:     "sku_vkus.xlsx",
	}, cfg.Paths)
	assert.Equal(t, Validation{SampleSize: 500, Seed: 42}, cfg.Validation)
	assert.False(t, cfg.AutoLearn)
}

func TestLoadFrom_Overrides(t *testing.T) {
	t.Setenv("SHELF_TEST_DATA", "/srv/shelf")

	v := viper.New()
	v.Set(KeyBrandsDB, "$SHELF_TEST_DATA/brands.json")
	v.Set(KeySampleSize, 25)
	v.Set(KeySeed, 7)
	v.Set(KeyAutoLearn, true)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/shelf/brands.json", cfg.Paths.BrandsDB)
	assert.Equal(t, Validation{SampleSize: 25, Seed: 7}, cfg.Validation)
	assert.True(t, cfg.AutoLearn)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "empty brands path", key: KeyBrandsDB, value: " "},
		{name: "empty knowledge base path", key: KeyKnowledgeBase, value: ""},
		{name: "zero sample", key: KeySampleSize, value: 0},
		{name: "negative sample", key: KeySampleSize, value: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := LoadFrom(v)
			require.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SHELF_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/shelf/brands.json", want: filepath.Join(home, "shelf/brands.json")},
		{in: "$SHELF_TEST_DIR/kb.json", want: "/data/kb.json"},
		{in: "relative/file.xlsx", want: "relative/file.xlsx"},
		{in: "~user/file", want: "~user/file"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), "input %q", tt.in)
	}
}
