package registry

import (
	"os"
	"path/filepath"
	"testing"

	"minnow/internal/common/properties"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefinition(t *testing.T, dir, config, hook string, withExecutable bool) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(config), 0o644))
	if hook != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "hook.properties"), []byte(hook), 0o644))
	}
	if withExecutable {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "run"), []byte("#!/bin/sh\n"), 0o755))
	}
}

func TestLoadDefinition(t *testing.T) {
	tests := []struct {
		name       string
		config     string
		hook       string
		executable bool
		want       *Definition
		wantErr    string
	}{
		{
			name:       "defaults",
			config:     "executable = run\nhook_file = hook.properties",
			hook:       "type = date",
			executable: true,
			want: &Definition{
				Name: "proc", Executable: "run", PoolSize: 5,
				HookFile: "hook.properties", HookType: HookTypeBasic,
				Hook: properties.Properties{"type": "date"},
			},
		},
		{
			name:       "explicit pool size zero",
			config:     "executable = run\npool_size = 0\nhook_file = hook.properties\nhook_type = basicpropertiesmatchhook",
			hook:       "type = date",
			executable: true,
			want: &Definition{
				Name: "proc", Executable: "run", PoolSize: 0,
				HookFile: "hook.properties", HookType: HookTypeBasic,
				Hook: properties.Properties{"type": "date"},
			},
		},
		{name: "missing executable property", config: "hook_file = hook.properties", hook: "type = date", executable: true, wantErr: "missing executable"},
		{name: "executable absent on disk", config: "executable = run\nhook_file = hook.properties", hook: "type = date", wantErr: "could not find executable"},
		{name: "pool size not a number", config: "executable = run\npool_size = many\nhook_file = hook.properties", hook: "type = date", executable: true, wantErr: "pool_size"},
		{name: "negative pool size", config: "executable = run\npool_size = -1\nhook_file = hook.properties", hook: "type = date", executable: true, wantErr: "must not be negative"},
		{name: "missing hook file property", config: "executable = run", executable: true, wantErr: "missing hook_file"},
		{name: "unknown hook type", config: "executable = run\nhook_file = hook.properties\nhook_type = regex", hook: "type = date", executable: true, wantErr: "unknown hook_type"},
		{name: "hook file absent", config: "executable = run\nhook_file = hook.properties", executable: true, wantErr: "processor hook"},
		{name: "malformed config", config: "executable run", executable: true, wantErr: "processor config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "proc")
			writeDefinition(t, dir, tt.config, tt.hook, tt.executable)

			def, err := LoadDefinition(dir)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, def)
		})
	}
}

func TestLoadDefinition_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "proc")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := LoadDefinition(file)
	assert.Error(t, err)
}

func TestDefinition_WriteThenLoad(t *testing.T) {
	root := t.TempDir()
	executable := filepath.Join(root, "bin", "parse-date")
	require.NoError(t, os.MkdirAll(filepath.Dir(executable), 0o755))
	require.NoError(t, os.WriteFile(executable, nil, 0o755))

	def := &Definition{
		Name:       "parse-date",
		Executable: executable,
		PoolSize:   3,
		HookFile:   "hook.properties",
		HookType:   HookTypeBasic,
		Hook:       properties.Properties{"type": "date"},
	}
	dir := filepath.Join(root, "defs", def.Name)
	require.NoError(t, def.Write(dir))

	loaded, err := LoadDefinition(dir)
	require.NoError(t, err)
	assert.Equal(t, def, loaded)
}

func TestDefinition_WriteRejectsInvalid(t *testing.T) {
	assert.Error(t, (&Definition{Name: "x"}).Write(t.TempDir()))
	assert.Error(t, (&Definition{Name: "x", Executable: "run", PoolSize: -2}).Write(t.TempDir()))
}

func TestBasicPropertiesMatchHook(t *testing.T) {
	hook := BasicPropertiesMatchHook{Match: properties.Properties{"type": "parsed_date"}}

	assert.True(t, hook.Matches(properties.Properties{"type": "parsed_date", "year": "2021"}))
	assert.False(t, hook.Matches(properties.Properties{"type": "date"}))
	assert.False(t, hook.Matches(properties.Properties{"year": "2021"}))
	assert.True(t, BasicPropertiesMatchHook{}.Matches(properties.Properties{"type": "anything"}))
}

func TestLoadDefinitions(t *testing.T) {
	root := t.TempDir()
	writeDefinition(t, filepath.Join(root, "b-format"), "executable = run\nhook_file = hook.properties", "type = parsed_date", true)
	writeDefinition(t, filepath.Join(root, "a-parse"), "executable = run\nhook_file = hook.properties", "type = date", true)
	writeDefinition(t, filepath.Join(root, "broken"), "hook_file = hook.properties", "type = date", false)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), nil, 0o644))

	defs, failed, err := LoadDefinitions(root)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "a-parse", defs[0].Name)
	assert.Equal(t, "b-format", defs[1].Name)
	assert.Contains(t, failed, "broken")

	matched := Matching(defs, properties.Properties{"type": "date"})
	require.Len(t, matched, 1)
	assert.Equal(t, "a-parse", matched[0].Name)
	assert.Empty(t, Matching(defs, properties.Properties{"type": "summed_date"}))
}
