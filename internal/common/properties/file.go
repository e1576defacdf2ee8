package properties

import (
	"os"

	"minnow/internal/common/errors"
)

// ReadFile loads and decodes a properties file.
func ReadFile(path string) (Properties, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}
	return Decode(content)
}

// WriteFile encodes p and writes it to path, replacing any existing file.
func WriteFile(path string, p Properties) error {
	if err := os.WriteFile(path, Encode(p), 0o644); err != nil {
		return errors.NewIOError("write", path, err)
	}
	return nil
}
