// cmd/tools/definition-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"minnow/internal/common/properties"
	formatdate "minnow/internal/processors/date/format-date"
	parsedate "minnow/internal/processors/date/parse-date"
	sumdate "minnow/internal/processors/date/sum-date"
	"minnow/pkg/registry"
)

// stageHooks lists the reference stages and the inputs they accept.
var stageHooks = map[string]func() properties.Properties{
	formatdate.TaskType: formatdate.GetHook,
	parsedate.TaskType:  parsedate.GetHook,
	sumdate.TaskType:    sumdate.GetHook,
}

func main() {
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	out := generateCmd.String("out", "definitions", "Directory to write processor definitions into")
	binDir := generateCmd.String("bin", "", "Directory holding the stage binaries (default: next to each definition)")
	poolSize := generateCmd.Int("pool", registry.DefaultPoolSize, "Pool size for every definition")

	path := validateCmd.String("path", "definitions", "Directory of processor definitions")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		generateCmd.Parse(os.Args[2:])
		if err := generate(*out, *binDir, *poolSize); err != nil {
			fmt.Printf("Error generating definitions: %v\n", err)
			os.Exit(1)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validate(*path); err != nil {
			fmt.Printf("Definition validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Definition validation passed.")

	case "help":
		help()
	default:
		help()
		os.Exit(1)
	}
}

func generate(out, binDir string, poolSize int) error {
	names := make([]string, 0, len(stageHooks))
	for name := range stageHooks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		executable := name
		if binDir != "" {
			abs, err := filepath.Abs(filepath.Join(binDir, name))
			if err != nil {
				return err
			}
			executable = abs
		}

		def := &registry.Definition{
			Name:       name,
			Executable: executable,
			PoolSize:   poolSize,
			HookFile:   registry.DefaultHookFile,
			HookType:   registry.HookTypeBasic,
			Hook:       stageHooks[name](),
		}

		dir := filepath.Join(out, name)
		if err := def.Write(dir); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Printf("Wrote definition %s (accepts %s)\n", dir, def.Hook)
	}
	return nil
}

func validate(path string) error {
	defs, failed, err := registry.LoadDefinitions(path)
	if err != nil {
		return fmt.Errorf("failed to read definitions: %w", err)
	}

	for name, err := range failed {
		fmt.Printf("  %s: %v\n", name, err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d invalid definitions", len(failed))
	}
	if len(defs) == 0 {
		return fmt.Errorf("no definitions found in %s", path)
	}

	fmt.Printf("Found %d definitions.\n", len(defs))
	return nil
}

func help() {
	fmt.Print(`
Usage: definition-generator <command> [flags]

Commands:
  generate  Write processor definitions for format-date, parse-date and sum-date
  validate  Load every definition under a directory and report problems
  help      Show this help message

Examples:
  definition-generator generate -out definitions -bin ./bin
  definition-generator validate -path definitions
`)
}
