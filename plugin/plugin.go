// Package plugin loads external test modules and merges what they
// contribute (test nodes, listeners, XML formatting hooks) into a run.
//
// A module is a Go plugin (.so) exporting two symbols:
//
//	var PluginAPIVersion uint32 = plugin.APIVersion
//	func NewPlugin() plugin.TestPlugin { ... }
//
// Everything a module contributes must be detached before the manager
// is closed: the manager's Close is the final teardown step and refuses
// to run while listeners or hooks are still attached.
package plugin

import (
	"plugtester/engine"
	"plugtester/report"
	"plugtester/registry"
)

// APIVersion is the plug-in interface version this host expects. A
// module declaring a different version fails to load with
// ErrVersionMismatch.
const APIVersion uint32 = 1

const (
	// VersionSymbol is the exported version variable's symbol name.
	VersionSymbol = "PluginAPIVersion"

	// FactorySymbol is the exported factory function's symbol name.
	FactorySymbol = "NewPlugin"
)

// TestPlugin is the interface object a module's factory returns.
type TestPlugin interface {
	// Initialize lets the plug-in contribute tests to the registry.
	// The parameter string is opaque to the host: the manager neither
	// parses nor validates it.
	Initialize(reg *registry.Registry, parameters string) error

	// Uninitialize is called during manager teardown, after every
	// contributed object has been detached and before the module
	// handle is dropped.
	Uninitialize()
}

// ListenerProvider is implemented by plug-ins that contribute a
// listener for the duration of one run.
type ListenerProvider interface {
	Listener() engine.Listener
}

// XMLHookProvider is implemented by plug-ins that contribute XML
// formatting hooks around a single render call.
type XMLHookProvider interface {
	XMLHooks() []report.XMLHook
}
