package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	prevLevel := Level(current.Load())
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestLevelsFilter(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelWarn)

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	assert.Equal(t, "[WARN] warn 3\n[ERROR] error 4\n", buf.String())
}

func TestSetLogLevel_Unknown(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelError)

	SetLogLevel("chatty")

	assert.True(t, Enabled(LevelInfo))
	assert.False(t, Enabled(LevelDebug))
	assert.Contains(t, buf.String(), `unknown log level "chatty"`)
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"debug": LevelDebug,
		"":      LevelInfo,
		"Info":  LevelInfo,
		"WARN":  LevelWarn,
		"error": LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}
