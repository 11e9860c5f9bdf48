package cmd

import (
	"sync"

	"github.com/spf13/cobra"

	"stockorder.GO/core/registry"
)

var registryMu sync.Mutex

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register adds an extension command. Call from init() in custom packages.
// Panics once Apply has run, or when the name is already used by a built-in or
// another registered command.
func Register(c *cobra.Command) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Execute)")
	}
	list := registered()
	for _, existing := range append(rootCmd.Commands(), list...) {
		if existing.Name() == c.Name() {
			panic("cmd/registry: duplicate command " + c.Name())
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(list, c))
}

// Apply attaches the registered commands to the root command and locks the registry.
// Only the first call has an effect.
func Apply() {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	for _, c := range registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
