// pkg/registry/schema.go
package registry

import "minnow/internal/common/properties"

const (
	// ConfigFile is the definition file inside every definition directory.
	ConfigFile = "config.properties"

	DefaultPoolSize = 5
	DefaultHookFile = "hook.properties"

	// HookTypeBasic matches input properties against a fixed set of pairs.
	HookTypeBasic = "basicpropertiesmatchhook"
)

// Keys of ConfigFile.
const (
	KeyExecutable = "executable"
	KeyPoolSize   = "pool_size"
	KeyHookFile   = "hook_file"
	KeyHookType   = "hook_type"
)

// Definition describes how an orchestrator runs one processor: which binary
// to execute, how many invocations may run at once and which inputs to send
// to it.
type Definition struct {
	Name       string
	Executable string
	PoolSize   int
	HookFile   string
	HookType   string
	Hook       properties.Properties
}
