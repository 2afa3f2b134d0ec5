package plugin

import (
	"errors"
	"fmt"

	"plugtester/engine"
	"plugtester/report"
	"plugtester/registry"
)

var (
	// ErrModuleNotFound marks a module that could not be opened.
	ErrModuleNotFound = errors.New("plug-in module not found")

	// ErrEntryPointMissing marks a module without the factory entry
	// point, or with one of the wrong type.
	ErrEntryPointMissing = errors.New("plug-in entry point missing")

	// ErrVersionMismatch marks a module declaring an interface version
	// other than APIVersion.
	ErrVersionMismatch = errors.New("plug-in interface version mismatch")

	// ErrContributionsAttached is returned by Close while contributed
	// listeners or hooks are still attached.
	ErrContributionsAttached = errors.New("plug-in contributions still attached")
)

// loadedPlugin associates one opened module with the interface object
// its factory returned.
type loadedPlugin struct {
	path   string
	module Module
	plug   TestPlugin
}

// Manager owns the plug-in lifecycle: it loads modules, merges their
// contributions into a run, and tears everything down in its own Close,
// strictly after the caller's use of controllers, collectors and
// outputters has ended. The Go runtime keeps a loaded module mapped for
// the life of the process; dropping every reference here is the host's
// rendition of unloading, and the release-before-unload ordering is
// enforced identically.
type Manager struct {
	loader Loader
	reg    *registry.Registry

	plugins           []*loadedPlugin
	attachedListeners []engine.Listener
	attachedHooks     []report.XMLHook
	closed            bool
}

// NewManager creates a manager contributing into reg, loading modules
// with the runtime's plugin mechanism.
func NewManager(reg *registry.Registry) *Manager {
	return NewManagerWithLoader(reg, soLoader{})
}

// NewManagerWithLoader creates a manager with a custom module loader.
func NewManagerWithLoader(reg *registry.Registry, l Loader) *Manager {
	return &Manager{loader: l, reg: reg}
}

// Load opens the module at path, checks its declared interface version,
// invokes its factory and lets the returned plug-in contribute tests to
// the registry. The parameter string is passed through opaquely. A
// failed load leaves previously loaded modules fully usable.
func (m *Manager) Load(path, parameters string) error {
	mod, err := m.loader.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrModuleNotFound, path, err)
	}

	vsym, err := mod.Lookup(VersionSymbol)
	if err != nil {
		return fmt.Errorf("%w: %s does not declare %s", ErrVersionMismatch, path, VersionSymbol)
	}
	version, ok := vsym.(*uint32)
	if !ok {
		return fmt.Errorf("%w: %s declares %s with type %T", ErrVersionMismatch, path, VersionSymbol, vsym)
	}
	if *version != APIVersion {
		return fmt.Errorf("%w: %s declares version %d, host expects %d",
			ErrVersionMismatch, path, *version, APIVersion)
	}

	fsym, err := mod.Lookup(FactorySymbol)
	if err != nil {
		return fmt.Errorf("%w: %s does not export %s", ErrEntryPointMissing, path, FactorySymbol)
	}
	factory, ok := fsym.(func() TestPlugin)
	if !ok {
		return fmt.Errorf("%w: %s exports %s with signature %T",
			ErrEntryPointMissing, path, FactorySymbol, fsym)
	}

	plug := factory()
	if err := plug.Initialize(m.reg, parameters); err != nil {
		return fmt.Errorf("initialize plug-in %s: %w", path, err)
	}

	m.plugins = append(m.plugins, &loadedPlugin{path: path, module: mod, plug: plug})
	return nil
}

// Count returns the number of loaded modules.
func (m *Manager) Count() int {
	return len(m.plugins)
}

// AddListeners registers every plug-in-contributed listener with the
// controller, in module-load order, for the duration of one run.
func (m *Manager) AddListeners(c *engine.Controller) {
	for _, pl := range m.plugins {
		lp, ok := pl.plug.(ListenerProvider)
		if !ok {
			continue
		}
		if l := lp.Listener(); l != nil {
			c.AddListener(l)
			m.attachedListeners = append(m.attachedListeners, l)
		}
	}
}

// RemoveListeners detaches every listener AddListeners registered.
// Call it once the run completes, before result data is rendered.
func (m *Manager) RemoveListeners(c *engine.Controller) {
	for _, l := range m.attachedListeners {
		c.RemoveListener(l)
	}
	m.attachedListeners = nil
}

// AddXMLHooks attaches every plug-in-contributed formatting hook to the
// outputter, in module-load order, around exactly one render call.
func (m *Manager) AddXMLHooks(o *report.XMLOutputter) {
	for _, pl := range m.plugins {
		hp, ok := pl.plug.(XMLHookProvider)
		if !ok {
			continue
		}
		for _, h := range hp.XMLHooks() {
			o.AddHook(h)
			m.attachedHooks = append(m.attachedHooks, h)
		}
	}
}

// RemoveXMLHooks detaches every hook AddXMLHooks attached.
func (m *Manager) RemoveXMLHooks(o *report.XMLOutputter) {
	for _, h := range m.attachedHooks {
		o.RemoveHook(h)
	}
	m.attachedHooks = nil
}

// Close tears the manager down: every plug-in is uninitialized in
// reverse load order and all module handles are dropped. Calling Close
// while contributed listeners or hooks are still attached is a
// precondition violation; it returns ErrContributionsAttached and
// leaves manager state untouched. Close must be the caller's last
// action, after controllers, collectors and outputters have gone out of
// use.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	if len(m.attachedListeners) > 0 || len(m.attachedHooks) > 0 {
		return fmt.Errorf("%w: %d listeners, %d hooks",
			ErrContributionsAttached, len(m.attachedListeners), len(m.attachedHooks))
	}
	for i := len(m.plugins) - 1; i >= 0; i-- {
		m.plugins[i].plug.Uninitialize()
	}
	m.plugins = nil
	m.closed = true
	return nil
}
