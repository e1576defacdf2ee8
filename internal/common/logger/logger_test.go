package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.log")

	zl := New("debug", "json", path)
	log := NewZapAdapter(zl).WithFields(map[string]interface{}{"taskType": "sum-date"})
	log.Info("stage completed", map[string]interface{}{"outputDir": "/out"})
	log.WithError(errors.New("boom")).Debug("detail", nil)
	require.NoError(t, zl.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"stage completed"`)
	assert.Contains(t, string(content), `"taskType":"sum-date"`)
	assert.Contains(t, string(content), `"error":"boom"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.log")

	zl := New("warn", "json", path)
	zl.Info("hidden")
	zl.Warn("shown")
	require.NoError(t, zl.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "shown")
}

func TestMapToZapFields(t *testing.T) {
	assert.Nil(t, mapToZapFields(nil))
	assert.Len(t, mapToZapFields(map[string]interface{}{"a": 1, "err": errors.New("x")}), 2)
}

func TestNew_LevelParsing(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "WARN", wantDebug: false, wantInfo: false},
		{level: "bogus", wantDebug: false, wantInfo: true},
		{level: "", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			zl := New(tt.level, "json", filepath.Join(t.TempDir(), "processor.log"))
			assert.Equal(t, tt.wantDebug, zl.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.wantInfo, zl.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestForRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.log")

	zl := New("info", "json", path)
	log := ForRun(ForStage(NewZapAdapter(zl), "parse-date"), "run-1", "/in", "/out")
	log.Info("processing started", nil)
	require.NoError(t, zl.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, want := range []string{
		`"taskType":"parse-date"`,
		`"runId":"run-1"`,
		`"inputDir":"/in"`,
		`"outputDir":"/out"`,
		`"ts":"`,
	} {
		assert.Contains(t, string(content), want)
	}
}
