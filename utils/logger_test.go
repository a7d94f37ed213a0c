package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOptions(LoggerOptions{Level: zerolog.DebugLevel, Output: buf, JSON: true})

	log.Info("loaded %d rows from %s", 3, "01_facebook_ads.csv")

	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), "loaded 3 rows from 01_facebook_ads.csv")
}

func TestLoggerLevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOptions(LoggerOptions{Level: zerolog.WarnLevel, Output: buf, JSON: true})

	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
}
