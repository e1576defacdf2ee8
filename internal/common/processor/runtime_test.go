package processor

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"minnow/internal/common/errors"
	"minnow/internal/common/logger"
	"minnow/internal/common/properties"
	"minnow/internal/common/resultlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ==========================
// Test Doubles
// ==========================

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, record resultlog.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// upperStage uppercases the payload and renames the type.
type upperStage struct {
	err      error
	seen     *Input
	skipData bool
}

func (s *upperStage) TaskType() string { return "upper" }

func (s *upperStage) Hook() properties.Properties {
	return properties.Properties{"type": "text"}
}

func (s *upperStage) Process(_ context.Context, in *Input, out *Output) error {
	s.seen = in
	if s.err != nil {
		return s.err
	}
	data, err := in.ReadData()
	if err != nil {
		return err
	}
	if s.skipData {
		return out.WriteProperties("upper", properties.Properties{"type": "upper_text"})
	}
	return out.Write("upper", properties.Properties{"type": "upper_text", "length": "5"}, []byte(strings.ToUpper(string(data))))
}

func newTestRuntime(t *testing.T, stage Stage, opts Options) *Runtime {
	rt := New(stage, logger.NewTestLogger(t), opts)
	clock := time.Date(2021, 3, 5, 1, 2, 3, 0, time.UTC)
	rt.now = func() time.Time {
		clock = clock.Add(10 * time.Millisecond)
		return clock
	}
	rt.newID = func() string { return "run-1" }
	return rt
}

// ==========================
// Tests
// ==========================

func TestRuntime_Run_Success(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "nested", "out")
	writeFiles(t, in, map[string]string{"hello.properties": "type = text", "hello": "hello"})

	recorder := new(MockRecorder)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(r resultlog.Record) bool {
		return r.RunID == "run-1" &&
			r.TaskType == "upper" &&
			r.Status == resultlog.StatusSuccess &&
			r.InputType == "text" &&
			r.OutputType == "upper_text" &&
			len(r.InputDigest) == 16 &&
			len(r.OutputDigest) == 16 &&
			r.InputDigest != r.OutputDigest &&
			r.DurationMs == 10
	})).Return(nil)

	stage := &upperStage{}
	rt := newTestRuntime(t, stage, Options{Recorder: recorder})

	require.NoError(t, rt.Run(context.Background(), Request{InputDir: in, OutputDir: out}))

	assert.Equal(t, properties.Properties{"type": "text"}, stage.seen.Properties)
	assert.Equal(t, filepath.Join(in, "hello"), stage.seen.DataPath)

	data, err := os.ReadFile(filepath.Join(out, "upper"))
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(data))

	props, err := properties.ReadFile(filepath.Join(out, "upper.properties"))
	require.NoError(t, err)
	assert.Equal(t, "upper_text", props.Type())

	pair, err := FindPair(out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "upper"), pair.DataPath)

	recorder.AssertExpectations(t)
}

func TestRuntime_Run_TagsEntriesWithRun(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFiles(t, in, map[string]string{"hello.properties": "type = other", "hello": "hello"})

	core, logs := observer.New(zapcore.DebugLevel)
	rt := New(&upperStage{}, logger.NewZapAdapter(zap.New(core)), Options{})
	rt.newID = func() string { return "run-7" }

	require.NoError(t, rt.Run(context.Background(), Request{InputDir: in, OutputDir: out}))

	entries := logs.All()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		fields := entry.ContextMap()
		assert.Equal(t, "upper", fields[logger.FieldTaskType], entry.Message)
		assert.Equal(t, "run-7", fields[logger.FieldRunID], entry.Message)
		assert.Equal(t, in, fields[logger.FieldInputDir], entry.Message)
		assert.Equal(t, out, fields[logger.FieldOutputDir], entry.Message)
	}
	assert.Equal(t, 1, logs.FilterMessage("input properties do not match stage hook").Len())
}

func TestRuntime_Run_InputErrorsSkipStage(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		check func(error) bool
	}{
		{"no metadata", map[string]string{"a": "x"}, errors.IsInputError},
		{"ambiguous", map[string]string{"a.properties": "type = text", "a": "", "b.properties": "type = text", "b": ""}, errors.IsInputError},
		{"missing data", map[string]string{"a.properties": "type = text"}, errors.IsInputError},
		{"malformed properties", map[string]string{"a.properties": "type = text\nbroken", "a": ""}, errors.IsFormatError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := t.TempDir()
			out := t.TempDir()
			writeFiles(t, in, tt.files)

			recorder := new(MockRecorder)
			recorder.On("Record", mock.Anything, mock.MatchedBy(func(r resultlog.Record) bool {
				return r.Status == resultlog.StatusFailed && r.ErrorCode != ""
			})).Return(nil)

			stage := &upperStage{}
			err := newTestRuntime(t, stage, Options{Recorder: recorder}).Run(context.Background(), Request{InputDir: in, OutputDir: out})

			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
			assert.Nil(t, stage.seen)
			entries, _ := os.ReadDir(out)
			assert.Empty(t, entries)
			recorder.AssertExpectations(t)
		})
	}
}

func TestRuntime_Run_StageErrorPropagates(t *testing.T) {
	in := t.TempDir()
	writeFiles(t, in, map[string]string{"a.properties": "type = text", "a": "abc"})

	stageErr := errors.NewMissingPropertyError("year")
	err := newTestRuntime(t, &upperStage{err: stageErr}, Options{}).
		Run(context.Background(), Request{InputDir: in, OutputDir: t.TempDir()})

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, stageErr))
	assert.Equal(t, 3, errors.ExitCode(err))
}

func TestRuntime_Run_RecorderFailureIgnored(t *testing.T) {
	in := t.TempDir()
	writeFiles(t, in, map[string]string{"a.properties": "type = text", "a": "abc"})

	recorder := new(MockRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(stderrors.New("redis down"))

	err := newTestRuntime(t, &upperStage{}, Options{Recorder: recorder}).
		Run(context.Background(), Request{InputDir: in, OutputDir: t.TempDir()})

	assert.NoError(t, err)
	recorder.AssertNumberOfCalls(t, "Record", 1)
}

func TestRuntime_Run_IncompleteOutputStillSucceeds(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFiles(t, in, map[string]string{"a.properties": "type = text", "a": "abc"})

	err := newTestRuntime(t, &upperStage{skipData: true}, Options{}).
		Run(context.Background(), Request{InputDir: in, OutputDir: out})
	require.NoError(t, err)

	_, err = FindPair(out)
	assert.True(t, errors.IsInputError(err))
}

func TestRuntime_Run_OutputDirNotCreatable(t *testing.T) {
	in := t.TempDir()
	writeFiles(t, in, map[string]string{"a.properties": "type = text", "a": "abc"})

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := newTestRuntime(t, &upperStage{}, Options{}).
		Run(context.Background(), Request{InputDir: in, OutputDir: filepath.Join(blocker, "out")})

	require.Error(t, err)
	assert.True(t, errors.IsIOError(err))
}

func TestRuntime_Run_CustomSuffix(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFiles(t, in, map[string]string{"a.meta": "type = text", "a": "abc"})

	err := newTestRuntime(t, &upperStage{}, Options{Suffixes: []string{".meta"}}).
		Run(context.Background(), Request{InputDir: in, OutputDir: out})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "upper.meta"))
	assert.NoError(t, err)
}

func TestOutput_RejectsEmptyName(t *testing.T) {
	out := newOutput(t.TempDir(), properties.Extension)

	err := out.WriteProperties("", properties.Properties{"type": "x"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))

	err = out.WriteData("", nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
}

func TestInput_ReadDataMissing(t *testing.T) {
	in := &Input{DataPath: filepath.Join(t.TempDir(), "gone")}
	_, err := in.ReadData()
	require.Error(t, err)
	assert.True(t, errors.IsIOError(err))
}
