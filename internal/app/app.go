// Package app is the command-line shell shared by every stage binary:
//
//	<stage> [-config file] <input_dir> <output_dir>
package app

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"minnow/internal/common/config"
	"minnow/internal/common/errors"
	"minnow/internal/common/logger"
	"minnow/internal/common/metrics"
	"minnow/internal/common/observability"
	"minnow/internal/common/processor"

	"github.com/prometheus/client_golang/prometheus"
)

// StageFactory builds the stage from the loaded configuration.
type StageFactory func(cfg *config.Config, log logger.Logger) (processor.Stage, error)

// Command runs one stage invocation and reports an exit status.
type Command struct {
	TaskType string
	NewStage StageFactory
	Stderr   io.Writer

	// Registry receives the OpenTelemetry instruments and is written to the
	// metrics textfile together with the default registry. Nil means the
	// default registry.
	Registry *prometheus.Registry
}

// Main runs the command with the process arguments and exits.
func Main(taskType string, newStage StageFactory) {
	cmd := &Command{TaskType: taskType, NewStage: newStage, Stderr: os.Stderr}
	os.Exit(cmd.Run(context.Background(), os.Args[1:]))
}

// Run returns 0 on success, the error's exit code on a failed run and 1 on
// usage or configuration problems.
func (c *Command) Run(ctx context.Context, args []string) int {
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	fs := flag.NewFlagSet(c.TaskType, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-config file] <input_dir> <output_dir>\n", c.TaskType)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}
	inputDir, outputDir := fs.Arg(0), fs.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", c.TaskType, err)
		return errors.ExitCode(errors.NewConfigError("load", err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
	})
	errHandler := errors.NewErrorHandler(log)

	stage, err := c.NewStage(cfg, log)
	if err != nil {
		return errHandler.Handle(c.TaskType, errors.NewConfigError(c.TaskType, err))
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if c.Registry != nil {
		registerer = c.Registry
		gatherer = prometheus.Gatherers{prometheus.DefaultGatherer, c.Registry}
	}

	obs, err := observability.New(cfg.App.Name, registerer)
	if err != nil {
		log.Warn("observability disabled", map[string]interface{}{"error": err.Error()})
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, closeRecorders := buildRecorders(ctx, cfg, log)
	defer closeRecorders()

	rt := processor.New(stage, log, processor.Options{
		Suffixes:      cfg.Runtime.PropertiesSuffixes,
		Recorder:      recorder,
		Observability: obs,
	})

	runErr := rt.Run(ctx, processor.Request{InputDir: inputDir, OutputDir: outputDir})

	if err := metrics.WriteTextfile(cfg.Metrics.TextfileDir, c.TaskType, gatherer); err != nil {
		log.Warn("failed to write metrics textfile", map[string]interface{}{
			"dir":   cfg.Metrics.TextfileDir,
			"error": err.Error(),
		})
	}

	return errHandler.Handle(c.TaskType, runErr)
}
