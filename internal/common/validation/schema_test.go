package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredNumericSchema(t *testing.T) {
	schema, err := NewSchema(RequiredNumericSchema("year", "month"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		props      map[string]string
		valid      bool
		failFields []string
	}{
		{
			name:  "all present and numeric",
			props: map[string]string{"type": "parsed_date", "year": "2021", "month": "3"},
			valid: true,
		},
		{
			name:  "signed values are numeric",
			props: map[string]string{"year": "-44", "month": "+3"},
			valid: true,
		},
		{
			name:       "missing key",
			props:      map[string]string{"year": "2021"},
			failFields: []string{"month"},
		},
		{
			name:       "non numeric",
			props:      map[string]string{"year": "twenty", "month": "3"},
			failFields: []string{"year"},
		},
		{
			name:       "empty value",
			props:      map[string]string{"year": "", "month": ""},
			failFields: []string{"month", "year"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.ValidateProperties(tt.props)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			for _, f := range tt.failFields {
				assert.True(t, result.HasErrors(f), "expected error for %s, got %v", f, result.GetErrorMessages())
			}
		})
	}
}

func TestNewSchema_Invalid(t *testing.T) {
	_, err := NewSchema(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustSchema(`not json`) })
}
