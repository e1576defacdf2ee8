package processor

import (
	"context"
	"os"
	"time"

	"minnow/internal/common/checksum"
	"minnow/internal/common/errors"
	"minnow/internal/common/logger"
	"minnow/internal/common/metrics"
	"minnow/internal/common/observability"
	"minnow/internal/common/properties"
	"minnow/internal/common/resultlog"

	"github.com/google/uuid"
)

// Options configures a Runtime. Zero values are usable.
type Options struct {
	// Suffixes recognized as properties files; the first one is used for output.
	Suffixes      []string
	Recorder      resultlog.Recorder
	Observability *observability.Observability
}

// Request is a single invocation.
type Request struct {
	InputDir  string
	OutputDir string
}

type Runtime struct {
	stage    Stage
	logger   logger.Logger
	suffixes []string
	recorder resultlog.Recorder
	obs      *observability.Observability

	now   func() time.Time
	newID func() string
}

func New(stage Stage, log logger.Logger, opts Options) *Runtime {
	suffixes := opts.Suffixes
	if len(suffixes) == 0 {
		suffixes = []string{properties.Extension}
	}
	return &Runtime{
		stage:    stage,
		logger:   logger.ForStage(log, stage.TaskType()),
		suffixes: suffixes,
		recorder: opts.Recorder,
		obs:      opts.Observability,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run processes the pair in req.InputDir into req.OutputDir. The first
// failure ends the run; nothing already written is rolled back.
func (r *Runtime) Run(ctx context.Context, req Request) error {
	taskType := r.stage.TaskType()
	record := resultlog.Record{
		RunID:     r.newID(),
		TaskType:  taskType,
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		StartedAt: r.now().UTC(),
	}

	log := logger.ForRun(r.logger, record.RunID, req.InputDir, req.OutputDir)
	log.Info("processing started", nil)

	metrics.StageRunsActive.WithLabelValues(taskType).Inc()
	sizes := &dataSizes{read: -1, written: -1}
	err := r.process(ctx, log, req, &record, sizes)
	metrics.StageRunsActive.WithLabelValues(taskType).Dec()

	record.FinishedAt = r.now().UTC()
	duration := record.FinishedAt.Sub(record.StartedAt)
	record.DurationMs = duration.Milliseconds()

	metrics.StageRunDuration.WithLabelValues(taskType).Observe(duration.Seconds())
	if err != nil {
		record.Status = resultlog.StatusFailed
		record.ErrorCode = string(errors.CodeOf(err))
		record.Error = err.Error()
		metrics.StageRunsFailed.WithLabelValues(taskType, record.ErrorCode).Inc()
	} else {
		record.Status = resultlog.StatusSuccess
		metrics.StageRunsCompleted.WithLabelValues(taskType).Inc()
	}
	r.obs.RecordRun(ctx, taskType, duration, record.Status)
	r.obs.RecordDataSizes(ctx, taskType, sizes.read, sizes.written)

	r.publish(log, record)

	if err == nil {
		log.Info("processing completed", map[string]interface{}{
			"outputType": record.OutputType,
			"durationMs": record.DurationMs,
		})
	}
	return err
}

type dataSizes struct {
	read    int64
	written int64
}

func (r *Runtime) process(ctx context.Context, log logger.Logger, req Request, record *resultlog.Record, sizes *dataSizes) error {
	pair, err := FindPair(req.InputDir, r.suffixes...)
	if err != nil {
		return err
	}

	props, err := properties.ReadFile(pair.PropertiesPath)
	if err != nil {
		return err
	}
	record.InputType = props.Type()

	if hook := r.stage.Hook(); !props.Contains(hook) {
		log.Warn("input properties do not match stage hook", map[string]interface{}{
			"propertiesPath": pair.PropertiesPath,
			"inputType":      props.Type(),
			"hook":           hook.String(),
		})
	}

	if info, statErr := os.Stat(pair.DataPath); statErr == nil {
		sizes.read = info.Size()
	}
	if digest, sumErr := checksum.File(pair.DataPath); sumErr == nil {
		record.InputDigest = digest
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return errors.NewIOError("mkdir", req.OutputDir, err)
	}

	in := &Input{
		Properties:     props,
		PropertiesPath: pair.PropertiesPath,
		DataPath:       pair.DataPath,
	}
	out := newOutput(req.OutputDir, r.suffixes[0])

	log.Debug("invoking stage", map[string]interface{}{
		"propertiesPath": in.PropertiesPath,
		"dataPath":       in.DataPath,
		"inputType":      record.InputType,
	})

	if err := r.stage.Process(ctx, in, out); err != nil {
		return err
	}

	record.OutputType = out.outputType
	if out.dataPath != "" {
		sizes.written = out.bytesWritten
		if digest, sumErr := checksum.File(out.dataPath); sumErr == nil {
			record.OutputDigest = digest
		}
	}

	if _, err := FindPair(req.OutputDir, r.suffixes...); err != nil {
		log.Warn("output directory would not be accepted by the next stage", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return nil
}

// publish hands the record to the recorder; a recorder failure never changes
// the outcome of the run.
func (r *Runtime) publish(log logger.Logger, record resultlog.Record) {
	if r.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.recorder.Record(ctx, record); err != nil {
		log.Warn("failed to record run", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
