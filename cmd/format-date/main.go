// cmd/format-date/main.go
package main

import (
	"minnow/internal/app"
	formatdate "minnow/internal/processors/date/format-date"
)

func main() {
	app.Main(formatdate.TaskType, formatdate.NewStage)
}
