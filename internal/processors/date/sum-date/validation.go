package sumdate

import (
	"minnow/internal/common/properties"
	"minnow/internal/processors/date"
)

// GetHook is the input this stage accepts.
func GetHook() properties.Properties {
	return properties.Properties{properties.TypeKey: date.TypeParsedDate}
}

func inputFromProperties(p properties.Properties) (*Input, error) {
	parts, err := date.PartsFromProperties(p)
	if err != nil {
		return nil, err
	}
	return &Input{Date: parts}, nil
}
