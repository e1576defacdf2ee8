// cmd/sum-date/main.go
package main

import (
	"minnow/internal/app"
	sumdate "minnow/internal/processors/date/sum-date"
)

func main() {
	app.Main(sumdate.TaskType, sumdate.NewStage)
}
