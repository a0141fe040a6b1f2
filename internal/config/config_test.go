// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8084", cfg.GetServerAddr())
	assert.Equal(t, "/dev/ttyAMA0", cfg.Serial.Device)
	assert.Equal(t, 19200, cfg.Serial.BaudRate)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsDebugEnabled())
}

func TestDriverConfigConversion(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	dc := cfg.DriverConfig()
	assert.Equal(t, 19200, dc.BaudRate)
	assert.Equal(t, 30*time.Millisecond, dc.DotPrintTime)
	assert.Equal(t, 2100*time.Microsecond, dc.DotFeedTime)
	assert.Equal(t, 6, dc.LineSpacing)
	assert.Equal(t, uint8(162), dc.BarcodeHeight)
	assert.Equal(t, uint8(11), dc.Heat.Dots)
	assert.Equal(t, uint8(120), dc.Heat.Time)
	assert.Equal(t, uint8(20), dc.Heat.Interval)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	bad := *cfg
	bad.Serial.BaudRate = 0
	assert.Error(t, validate(&bad))

	bad = *cfg
	bad.Printer.BarcodeHeight = 300
	assert.Error(t, validate(&bad))

	bad = *cfg
	bad.Logging.Level = "verbose"
	assert.Error(t, validate(&bad))

	bad = *cfg
	bad.App.Environment = "qa"
	assert.Error(t, validate(&bad))
}
