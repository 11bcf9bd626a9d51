package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogsNewestFirstWithLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log.json")
	lines := `{"level":"INFO","timestamp":"2026-01-01T00:00:00Z","message":"first","module":"session"}
{"level":"ERROR","timestamp":"2026-01-01T00:00:01Z","message":"second","module":"collection"}
not json
{"level":"INFO","timestamp":"2026-01-01T00:00:02Z","message":"third","module":"edit"}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	l := &ZapLogger{filePath: path}

	all, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Message)
	assert.NotEmpty(t, all[0].Id)

	infos, err := l.GetLogs("INFO", 1, 0)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "third", infos[0].Message)

	past, err := l.GetLogs("", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestGetLogsMissingFile(t *testing.T) {
	l := &ZapLogger{filePath: filepath.Join(t.TempDir(), "absent.json")}
	entries, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNopLoggerAcceptsNilDetails(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Info("test", "hello", nil)
		l.Error("test", "boom", map[string]interface{}{"error": "x"})
	})
}
