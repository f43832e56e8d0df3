package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevel(t *testing.T) {
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetOutput(os.Stderr)
	})

	Setup(Options{Level: "debug"})
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup(Options{Level: "not-a-level"})
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestSetupFileOutput(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&log.TextFormatter{})
	})

	path := filepath.Join(t.TempDir(), "welfare.log")
	Setup(Options{Level: "info", File: path, JSON: true})

	log.WithField("component", "test").Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
}
