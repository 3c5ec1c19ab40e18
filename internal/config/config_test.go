package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"input_dir": "/data/ads",
		"output_dir": "/data/records",
		"workers": 8,
		"enrich": true,
		"university_threshold": 0.75,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/data/ads", cfg.InputDir)
	assert.Equal(t, "/data/records", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Enrich)
	assert.Equal(t, 0.75, cfg.UniversityThreshold)
	assert.Zero(t, cfg.PostcodeThreshold)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	badJSON := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{ invalid json }`), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"invalid json", badJSON, "failed to parse config JSON"},
		{"file not found", "/nonexistent/path/config.json", "failed to read config file"},
		{"empty path", "", "config path is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "universities.txt")
	require.NoError(t, os.WriteFile(list, []byte("University of Leeds\n"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config", Config{}, ""},
		{"existing paths", Config{InputDir: dir, Universities: list}, ""},
		{"negative workers", Config{Workers: -1}, "'workers' must be non-negative"},
		{"threshold above one", Config{UniversityThreshold: 1.5}, "'university_threshold' must be between 0 and 1"},
		{"negative threshold", Config{PostcodeThreshold: -0.1}, "'postcode_threshold' must be between 0 and 1"},
		{"missing input dir", Config{InputDir: filepath.Join(dir, "absent")}, "input directory not found"},
		{"missing postcode table", Config{Postcodes: filepath.Join(dir, "absent.csv")}, "postcode table not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		InputDir:            "ads",
		UniversityThreshold: 0.8,
		Enrich:              true,
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "ads", merged.InputDir)
	assert.Equal(t, "out", merged.OutputDir)
	assert.Equal(t, 0.8, merged.UniversityThreshold)
	assert.Equal(t, 0.9, merged.PostcodeThreshold)
	assert.True(t, merged.Enrich)
	assert.Zero(t, merged.Workers)

	// The receiver is left untouched.
	assert.Empty(t, cfg.OutputDir)
}
