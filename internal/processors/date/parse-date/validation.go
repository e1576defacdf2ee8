package parsedate

import (
	"strings"
	"time"

	"minnow/internal/common/errors"
	"minnow/internal/common/properties"
	"minnow/internal/processors/date"
)

// GetHook is the input this stage accepts.
func GetHook() properties.Properties {
	return properties.Properties{properties.TypeKey: date.TypeDate}
}

// parsePayload reads a `date` payload, surrounding whitespace ignored.
func parsePayload(path, payload string) (time.Time, error) {
	t, err := time.Parse(date.Layout, strings.TrimSpace(payload))
	if err != nil {
		return time.Time{}, errors.NewInvalidPayloadError(path, err)
	}
	return t, nil
}
