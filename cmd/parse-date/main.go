// cmd/parse-date/main.go
package main

import (
	"minnow/internal/app"
	parsedate "minnow/internal/processors/date/parse-date"
)

func main() {
	app.Main(parsedate.TaskType, parsedate.NewStage)
}
