// internal/processors/date/format-date/models.go
package formatdate

import "minnow/internal/processors/date"

type Input struct {
	Date date.Parts `json:"date"`
}

type Output struct {
	FormattedDate string `json:"formattedDate"`
}
