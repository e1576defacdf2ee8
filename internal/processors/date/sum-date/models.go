// internal/processors/date/sum-date/models.go
package sumdate

import "minnow/internal/processors/date"

type Input struct {
	Date date.Parts `json:"date"`
}

type Output struct {
	Sum int `json:"sum"`
}
