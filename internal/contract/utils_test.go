package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetComplianceLabel(t *testing.T) {
	assert.Equal(t, CompliantValue, GetComplianceLabel(true))
	assert.Equal(t, ExceededValue, GetComplianceLabel(false))
	assert.Contains(t, GetColorComplianceLabel(true), CompliantValue)
	assert.Contains(t, GetColorComplianceLabel(false), ExceededValue)
}

func TestGetAlertLabel(t *testing.T) {
	assert.Equal(t, AlertValue, GetAlertLabel(true))
	assert.Equal(t, NormalValue, GetAlertLabel(false))
}

func TestGetColorAQILabel(t *testing.T) {
	levels := []string{
		"Good", "Fair", "Moderate", "Unhealthy for Sensitive Groups", "Poor",
		"Unhealthy", "Very Unhealthy", "Hazardous", "Very Poor", "Unknown",
	}
	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			// Should contain the plain label
			assert.Contains(t, GetColorAQILabel(level), level)
		})
	}
}

func TestGetColorTrend(t *testing.T) {
	for _, trend := range schema.AllTrends {
		assert.Contains(t, GetColorTrend(trend), string(trend))
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePath(t *testing.T) {
	path := GetDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".airspot.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"", false, true},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
