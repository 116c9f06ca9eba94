package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "eph.toml",
			content: `household = "data/usu_hogar.csv"
report_type = ["csv", "xlsx"]
unknown_policy = "bucket"
top = 5
`,
		},
		{
			name: "yaml",
			file: "eph.yaml",
			content: `household: data/usu_hogar.csv
report_type: [csv, xlsx]
unknown_policy: bucket
top: 5
`,
		},
		{
			name:    "json",
			file:    "eph.json",
			content: `{"household": "data/usu_hogar.csv", "report_type": ["csv", "xlsx"], "unknown_policy": "bucket", "top": 5}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigRepository().LoadConfigFile(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "data/usu_hogar.csv", cfg.Household)
			assert.Equal(t, []string{"csv", "xlsx"}, cfg.ReportType)
			assert.Equal(t, types.UnknownBucket, cfg.UnknownPolicy)
			assert.Equal(t, 5, cfg.Top)
		})
	}
}

func TestLoadConfigFileEnvOverride(t *testing.T) {
	path := writeConfig(t, "eph.yaml", "household: from-file.csv\nindividual: ind.csv\n")
	t.Setenv("EPH_HOUSEHOLD", "from-env.csv")
	t.Setenv("EPH_TOP", "3")

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.Household)
	assert.Equal(t, "ind.csv", cfg.Individual)
	assert.Equal(t, 3, cfg.Top)
}

func TestLoadConfigFileEnvOnly(t *testing.T) {
	t.Setenv("EPH_REPORT_TYPE", "json,pdf")

	cfg, err := NewConfigRepository().LoadConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "pdf"}, cfg.ReportType)
}

func TestLoadConfigFileValidation(t *testing.T) {
	path := writeConfig(t, "eph.toml", "report_type = [\"docx\"]\nunknown_policy = \"merge\"\n")

	_, err := NewConfigRepository().LoadConfigFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "report_type[0]")
	assert.Contains(t, err.Error(), "unknown_policy")
}

func TestLoadConfigFileErrors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeConfig(t, "eph.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config file format: .ini")

	_, err = repo.LoadConfigFile(writeConfig(t, "eph.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}
