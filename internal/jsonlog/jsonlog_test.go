package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func TestJSONLogger(t *testing.T) {
	t.Run("info entry carries level, message and properties", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{
			"addr": ":4000",
			"env":  "development",
		})

		var entry logEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry.Level)
		assert.Equal(t, "starting server", entry.Message)
		assert.Equal(t, ":4000", entry.Properties["addr"])
		assert.NotEmpty(t, entry.Time)
		assert.Empty(t, entry.Trace)
	})

	t.Run("error entry includes a stack trace", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("connection refused"), nil)

		var entry logEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "ERROR", entry.Level)
		assert.Equal(t, "connection refused", entry.Message)
		assert.NotEmpty(t, entry.Trace)
	})

	t.Run("entries below the minimum level are dropped", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.PrintInfo("noise", nil)
		assert.Zero(t, buf.Len())

		l.PrintError(errors.New("signal"), nil)
		assert.NotZero(t, buf.Len())
	})

	t.Run("writer interface logs at error level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		_, err := l.Write([]byte("http: panic serving"))
		require.NoError(t, err)

		var entry logEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "ERROR", entry.Level)
		assert.Equal(t, "http: panic serving", entry.Message)
	})

	t.Run("each entry is a single line", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("one", nil)
		l.PrintInfo("two", nil)
		lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
		assert.Len(t, lines, 2)
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "FATAL", LevelFatal.String())
	assert.Equal(t, "", LevelOff.String())
}
