// pkg/registry/registry.go
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"minnow/internal/common/properties"
)

// Hook decides whether a processor wants an input.
type Hook interface {
	Matches(p properties.Properties) bool
}

// BasicPropertiesMatchHook accepts inputs carrying every one of its pairs.
type BasicPropertiesMatchHook struct {
	Match properties.Properties
}

func (h BasicPropertiesMatchHook) Matches(p properties.Properties) bool {
	return p.Contains(h.Match)
}

// MatchHook returns the hook described by the definition.
func (d *Definition) MatchHook() Hook {
	return BasicPropertiesMatchHook{Match: d.Hook}
}

// ExecutablePath resolves the executable against the definition directory.
func (d *Definition) ExecutablePath(dir string) string {
	if filepath.IsAbs(d.Executable) {
		return d.Executable
	}
	return filepath.Join(dir, d.Executable)
}

// LoadDefinition reads <dir>/config.properties and the hook file it names.
// The definition takes the name of its directory.
func LoadDefinition(dir string) (*Definition, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("processor definition path must be a directory: %s", dir)
	}

	cfg, err := properties.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, fmt.Errorf("processor config %s: %w", dir, err)
	}

	def := &Definition{Name: filepath.Base(dir)}

	executable, found := cfg[KeyExecutable]
	if !found || executable == "" {
		return nil, fmt.Errorf("processor config %s missing %s property", dir, KeyExecutable)
	}
	def.Executable = executable
	if _, err := os.Stat(def.ExecutablePath(dir)); err != nil {
		return nil, fmt.Errorf("could not find executable at %s", def.ExecutablePath(dir))
	}

	def.PoolSize = DefaultPoolSize
	if raw, found := cfg[KeyPoolSize]; found {
		poolSize, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", KeyPoolSize, err)
		}
		if poolSize < 0 {
			return nil, fmt.Errorf("%s must not be negative", KeyPoolSize)
		}
		def.PoolSize = poolSize
	}

	hookFile, found := cfg[KeyHookFile]
	if !found || hookFile == "" {
		return nil, fmt.Errorf("processor config %s missing %s property", dir, KeyHookFile)
	}
	def.HookFile = hookFile

	// hook_type last: an unknown type fails the whole definition
	def.HookType = HookTypeBasic
	if hookType, found := cfg[KeyHookType]; found {
		def.HookType = hookType
	}
	if def.HookType != HookTypeBasic {
		return nil, fmt.Errorf("unknown %s %s", KeyHookType, def.HookType)
	}

	hook, err := properties.ReadFile(filepath.Join(dir, hookFile))
	if err != nil {
		return nil, fmt.Errorf("processor hook %s: %w", dir, err)
	}
	def.Hook = hook

	return def, nil
}

// LoadDefinitions loads every definition directory under root, sorted by
// name. Directories that fail to load are returned in the error map and
// skipped.
func LoadDefinitions(root string) ([]*Definition, map[string]error, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, err
	}

	var defs []*Definition
	failed := make(map[string]error)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		def, err := LoadDefinition(filepath.Join(root, entry.Name()))
		if err != nil {
			failed[entry.Name()] = err
			continue
		}
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, failed, nil
}

// Matching returns the definitions whose hook accepts p.
func Matching(defs []*Definition, p properties.Properties) []*Definition {
	var out []*Definition
	for _, d := range defs {
		if d.MatchHook().Matches(p) {
			out = append(out, d)
		}
	}
	return out
}

// Write stores the definition as <dir>/config.properties plus its hook file.
// The executable itself is not created.
func (d *Definition) Write(dir string) error {
	if d.Executable == "" {
		return fmt.Errorf("definition %s has no executable", d.Name)
	}
	if d.PoolSize < 0 {
		return fmt.Errorf("%s must not be negative", KeyPoolSize)
	}

	hookFile := d.HookFile
	if hookFile == "" {
		hookFile = DefaultHookFile
	}
	hookType := d.HookType
	if hookType == "" {
		hookType = HookTypeBasic
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cfg := properties.Properties{
		KeyExecutable: d.Executable,
		KeyPoolSize:   strconv.Itoa(d.PoolSize),
		KeyHookFile:   hookFile,
		KeyHookType:   hookType,
	}
	if err := properties.WriteFile(filepath.Join(dir, ConfigFile), cfg); err != nil {
		return err
	}

	hook := d.Hook
	if hook == nil {
		hook = properties.Properties{}
	}
	return properties.WriteFile(filepath.Join(dir, hookFile), hook)
}
