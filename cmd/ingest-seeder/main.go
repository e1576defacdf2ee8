// cmd/ingest-seeder/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"minnow/internal/common/config"
	"minnow/internal/common/errors"
	"minnow/internal/common/logger"
	"minnow/internal/seed"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	count := flag.Int("count", 0, "number of pairs to write (default seed.count, 10)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: ingest-seeder [-config file] [-count N] <output_dir>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingest-seeder: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog)

	n := cfg.Seed.Count
	if *count > 0 {
		n = *count
	}

	names, err := seed.NewGenerator(nil).Write(flag.Arg(0), n)
	if err != nil {
		code := errors.NewErrorHandler(log).Handle("ingest-seeder", err)
		_ = zapLog.Sync()
		os.Exit(code)
	}

	log.Info("ingest data written", map[string]interface{}{
		"outputDir": flag.Arg(0),
		"count":     len(names),
	})
	_ = zapLog.Sync()
}
