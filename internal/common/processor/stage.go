// Package processor runs a single stage over one input directory: it resolves
// the file pair, decodes its properties, hands both to the stage and lets the
// stage write its own pair into the output directory.
package processor

import (
	"context"
	"os"
	"path/filepath"

	"minnow/internal/common/errors"
	"minnow/internal/common/properties"
)

// Stage is the per-processor transformation. The runtime never knows which
// stage it drives.
type Stage interface {
	// TaskType names the stage in logs, metrics and run records.
	TaskType() string
	// Hook lists the properties an input must carry for this stage to accept it.
	Hook() properties.Properties
	Process(ctx context.Context, in *Input, out *Output) error
}

// Input is the resolved, read-only input pair.
type Input struct {
	Properties     properties.Properties
	PropertiesPath string
	DataPath       string
}

// ReadData returns the raw payload of the data file.
func (in *Input) ReadData() ([]byte, error) {
	data, err := os.ReadFile(in.DataPath)
	if err != nil {
		return nil, errors.NewIOError("read", in.DataPath, err)
	}
	return data, nil
}

// Output writes a pair into the output directory. Names are chosen by the
// stage; the properties suffix is appended for the metadata file.
type Output struct {
	dir    string
	suffix string

	propertiesPath string
	dataPath       string
	outputType     string
	bytesWritten   int64
}

func newOutput(dir, suffix string) *Output {
	return &Output{dir: dir, suffix: suffix}
}

func (o *Output) Dir() string {
	return o.dir
}

func (o *Output) PropertiesPath(name string) string {
	return filepath.Join(o.dir, name+o.suffix)
}

func (o *Output) DataPath(name string) string {
	return filepath.Join(o.dir, name)
}

// WriteProperties encodes p to <dir>/<name><suffix>.
func (o *Output) WriteProperties(name string, p properties.Properties) error {
	if name == "" {
		return errors.NewInternalError("stage wrote properties with an empty output name")
	}
	path := o.PropertiesPath(name)
	if err := properties.WriteFile(path, p); err != nil {
		return err
	}
	o.propertiesPath = path
	o.outputType = p.Type()
	return nil
}

// WriteData writes the raw payload to <dir>/<name>.
func (o *Output) WriteData(name string, data []byte) error {
	if name == "" {
		return errors.NewInternalError("stage wrote data with an empty output name")
	}
	path := o.DataPath(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIOError("write", path, err)
	}
	o.dataPath = path
	o.bytesWritten = int64(len(data))
	return nil
}

// Write stores properties first, then data.
func (o *Output) Write(name string, p properties.Properties, data []byte) error {
	if err := o.WriteProperties(name, p); err != nil {
		return err
	}
	return o.WriteData(name, data)
}
