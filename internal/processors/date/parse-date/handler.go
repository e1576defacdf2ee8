// internal/processors/date/parse-date/handler.go
package parsedate

import (
	"context"
	"time"

	"minnow/internal/common/config"
	"minnow/internal/common/logger"
	"minnow/internal/common/processor"
	"minnow/internal/common/properties"
	"minnow/internal/processors/date"
)

const (
	TaskType = "parse-date"
)

// Handler splits a `date` payload into parsed_date properties. The output
// data file is empty; everything lives in the properties.
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

// NewStage builds a validated handler for the parse-date command.
func NewStage(_ *config.Config, log logger.Logger) (processor.Stage, error) {
	c := DefaultConfig()
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
	data, err := in.ReadData()
	if err != nil {
		return err
	}

	parsed, err := parsePayload(in.DataPath, string(data))
	if err != nil {
		return err
	}

	output, err := h.execute(ctx, parsed)
	if err != nil {
		return err
	}

	if err := out.Write(h.config.OutputName, output.Date.Properties(date.TypeParsedDate), nil); err != nil {
		return err
	}

	h.logger.Info("date parsed", map[string]interface{}{
		"date": output.Date.Format(),
	})
	return nil
}

// Execute parses the payload of input into its calendar fields.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	parsed, err := parsePayload("payload", input.Payload)
	if err != nil {
		return nil, err
	}
	return h.execute(ctx, parsed)
}

func (h *Handler) execute(_ context.Context, t time.Time) (*Output, error) {
	return &Output{Date: date.PartsFromTime(t)}, nil
}
