// internal/processors/date/parse-date/models.go
package parsedate

import "minnow/internal/processors/date"

type Input struct {
	Payload string `json:"payload"`
}

type Output struct {
	Date date.Parts `json:"date"`
}
