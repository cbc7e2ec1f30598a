package logger

import (
	"testing"

	"github.com/Domenick1991/fitstudio/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	l := logrus.New()

	require.NoError(t, Configure(l, config.LogConfig{Level: "debug", Format: "text"}))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	require.NoError(t, Configure(l, config.LogConfig{}))
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestConfigure_Invalid(t *testing.T) {
	l := logrus.New()

	assert.Error(t, Configure(l, config.LogConfig{Level: "loud"}))
	assert.Error(t, Configure(l, config.LogConfig{Format: "xml"}))
}
