// internal/processors/date/format-date/handler.go
package formatdate

import (
	"context"

	"minnow/internal/common/config"
	"minnow/internal/common/logger"
	"minnow/internal/common/processor"
	"minnow/internal/common/properties"
	"minnow/internal/processors/date"
)

const (
	TaskType = "format-date"
)

// Handler turns a parsed_date pair into a `date` pair whose payload is the
// formatted timestamp.
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

// NewStage builds a validated handler for the format-date command.
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
	input, err := inputFromProperties(in.Properties)
	if err != nil {
		return err
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		return err
	}

	props := properties.Properties{properties.TypeKey: date.TypeDate}
	if err := out.Write(h.config.OutputName, props, []byte(output.FormattedDate)); err != nil {
		return err
	}

	h.logger.Info("date formatted", map[string]interface{}{
		"formattedDate": output.FormattedDate,
	})
	return nil
}

// Execute is the pure transformation.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	return &Output{FormattedDate: input.Date.Format()}, nil
}
