// Package date holds the calendar fields shared by the date stages.
package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"minnow/internal/common/errors"
	"minnow/internal/common/properties"
	"minnow/internal/common/validation"
)

// Property types produced and consumed by the date stages.
const (
	TypeDate       = "date"
	TypeParsedDate = "parsed_date"
	TypeSummedDate = "summed_date"
)

// Layout is the textual date format carried in `date` payloads.
const Layout = "2006-01-02T15:04:05"

// Fields are the property keys of a parsed date, in calendar order.
var Fields = []string{"year", "month", "day", "hour", "minute", "second"}

var partsSchema = validation.MustSchema(validation.RequiredNumericSchema(Fields...))

// Parts is a date broken into its calendar fields. Values are not range
// checked; a month of 13 formats as 13.
type Parts struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// PartsFromTime extracts the calendar fields of t in its own location.
func PartsFromTime(t time.Time) Parts {
	return Parts{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// PartsFromProperties reads every field from p. A missing or non-integer
// field is a format error.
func PartsFromProperties(p properties.Properties) (Parts, error) {
	result, err := partsSchema.ValidateProperties(p)
	if err != nil {
		return Parts{}, errors.NewInternalError(err.Error())
	}
	if !result.Valid {
		for _, field := range Fields {
			if _, ok := p[field]; !ok {
				return Parts{}, errors.NewMissingPropertyError(field)
			}
		}
		return Parts{}, errors.NewSchemaViolationError(result.GetErrorMessages())
	}

	values := make([]int, len(Fields))
	for i, field := range Fields {
		raw := p[field]
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Parts{}, errors.NewInvalidPropertyValueError(field, raw, err)
		}
		values[i] = v
	}

	return Parts{
		Year:   values[0],
		Month:  values[1],
		Day:    values[2],
		Hour:   values[3],
		Minute: values[4],
		Second: values[5],
	}, nil
}

// Values returns the fields in calendar order.
func (p Parts) Values() []int {
	return []int{p.Year, p.Month, p.Day, p.Hour, p.Minute, p.Second}
}

// Properties renders the fields as decimal strings under the given type.
func (p Parts) Properties(typ string) properties.Properties {
	out := properties.Properties{properties.TypeKey: typ}
	for i, v := range p.Values() {
		out[Fields[i]] = strconv.Itoa(v)
	}
	return out
}

// Format renders YYYY-MM-DDTHH:MM:SS with zero padding.
func (p Parts) Format() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		p.Year, p.Month, p.Day, p.Hour, p.Minute, p.Second)
}
