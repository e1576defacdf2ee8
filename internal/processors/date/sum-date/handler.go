// internal/processors/date/sum-date/handler.go
package sumdate

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"minnow/internal/common/errors"
	"minnow/internal/common/config"
	"minnow/internal/common/logger"
	"minnow/internal/common/processor"
	"minnow/internal/common/properties"
	"minnow/internal/processors/date"
)

const (
	TaskType = "sum-date"
)

// Handler adds up the calendar fields of a parsed_date. It writes the
// properties, waits for the configured delay and only then creates the empty
// data file, so a watcher sees a half-written pair for the length of the
// delay.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config: config,
		logger: logger.ForStage(log, TaskType),
	}
}

// NewStage builds a validated handler for the sum-date command.
func NewStage(cfg *config.Config, log logger.Logger) (processor.Stage, error) {
	c := LoadConfig(cfg)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewHandler(c, log), nil
}

func (h *Handler) TaskType() string {
	return TaskType
}

func (h *Handler) Hook() properties.Properties {
	return GetHook()
}

func (h *Handler) Process(ctx context.Context, in *processor.Input, out *processor.Output) error {
	input, err := inputFromProperties(in.Properties)
	if err != nil {
		return err
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		return err
	}

	props := properties.Properties{
		properties.TypeKey: date.TypeSummedDate,
		"sum":              strconv.Itoa(output.Sum),
	}
	if err := out.WriteProperties(h.config.OutputName, props); err != nil {
		return err
	}

	if err := h.pause(ctx); err != nil {
		return err
	}

	return out.WriteData(h.config.OutputName, nil)
}

// Execute is the pure transformation. A sum that does not fit in an int is a
// format error rather than a wrapped value.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	sum := 0
	for i, v := range input.Date.Values() {
		if (v > 0 && sum > math.MaxInt-v) || (v < 0 && sum < math.MinInt-v) {
			return nil, errors.NewInvalidPropertyValueError(date.Fields[i], strconv.Itoa(v),
				fmt.Errorf("sum of date fields overflows"))
		}
		sum += v
	}
	return &Output{Sum: sum}, nil
}

func (h *Handler) pause(ctx context.Context) error {
	if h.config.Delay <= 0 {
		return nil
	}

	h.logger.Info("properties written, delaying data file", map[string]interface{}{
		"delay": h.config.Delay.String(),
	})

	timer := time.NewTimer(h.config.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errors.NewInterruptedError(ctx.Err())
	}
}
