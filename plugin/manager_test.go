package plugin

import (
	"errors"
	"fmt"
	"testing"

	"plugtester/engine"
	"plugtester/report"
	"plugtester/registry"
)

// fakeModule resolves symbols from a map.
type fakeModule struct {
	symbols map[string]any
}

func (m *fakeModule) Lookup(name string) (any, error) {
	sym, ok := m.symbols[name]
	if !ok {
		return nil, fmt.Errorf("symbol %s not found", name)
	}
	return sym, nil
}

// fakeLoader opens modules from a map of path to module.
type fakeLoader struct {
	modules map[string]*fakeModule
}

func (l *fakeLoader) Open(path string) (Module, error) {
	mod, ok := l.modules[path]
	if !ok {
		return nil, fmt.Errorf("cannot open %s", path)
	}
	return mod, nil
}

// fakePlugin contributes a suite named after it, and optionally a
// listener and an XML hook.
type fakePlugin struct {
	name          string
	withListener  bool
	withHook      bool
	parameters    string
	uninitialized bool
	listener      *countingListener
	hook          *report.BaseXMLHook
}

type countingListener struct {
	engine.BaseListener
	name     string
	failures int
	log      *[]string
}

func (l *countingListener) AddFailure(engine.Failure) {
	l.failures++
	if l.log != nil {
		*l.log = append(*l.log, l.name)
	}
}

func (p *fakePlugin) Initialize(reg *registry.Registry, parameters string) error {
	p.parameters = parameters
	s := engine.NewSuite(p.name)
	if err := s.Add(engine.NewCase("always-fails", func() error {
		return errors.New("broken on purpose")
	})); err != nil {
		return err
	}
	return reg.Add(s)
}

func (p *fakePlugin) Uninitialize() {
	p.uninitialized = true
}

func (p *fakePlugin) Listener() engine.Listener {
	if !p.withListener {
		return nil
	}
	return p.listener
}

func (p *fakePlugin) XMLHooks() []report.XMLHook {
	if !p.withHook {
		return nil
	}
	return []report.XMLHook{p.hook}
}

// newFakeWorld builds a loader with one well-formed module per name.
func newFakeWorld(plugs map[string]*fakePlugin) *fakeLoader {
	l := &fakeLoader{modules: map[string]*fakeModule{}}
	for path, p := range plugs {
		p := p
		version := APIVersion
		l.modules[path] = &fakeModule{symbols: map[string]any{
			VersionSymbol: &version,
			FactorySymbol: func() TestPlugin { return p },
		}}
	}
	return l
}

func TestManager_Load(t *testing.T) {
	plug := &fakePlugin{name: "billing"}
	loader := newFakeWorld(map[string]*fakePlugin{"billing.so": plug})
	reg := registry.New("")
	m := NewManagerWithLoader(reg, loader)

	if err := m.Load("billing.so", "fast=1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 loaded module, got %d", m.Count())
	}
	if plug.parameters != "fast=1" {
		t.Errorf("parameters not passed through opaquely: %q", plug.parameters)
	}
	if reg.Count() != 1 {
		t.Errorf("contributed tests missing from registry: %d cases", reg.Count())
	}
}

func TestManager_LoadErrors(t *testing.T) {
	version := APIVersion
	wrongVersion := APIVersion + 1
	wrongType := "not a version"

	tests := []struct {
		name     string
		module   *fakeModule
		expected error
	}{
		{
			name:     "module not found",
			module:   nil,
			expected: ErrModuleNotFound,
		},
		{
			name:     "version symbol missing",
			module:   &fakeModule{symbols: map[string]any{}},
			expected: ErrVersionMismatch,
		},
		{
			name: "version symbol of wrong type",
			module: &fakeModule{symbols: map[string]any{
				VersionSymbol: &wrongType,
			}},
			expected: ErrVersionMismatch,
		},
		{
			name: "version mismatch",
			module: &fakeModule{symbols: map[string]any{
				VersionSymbol: &wrongVersion,
			}},
			expected: ErrVersionMismatch,
		},
		{
			name: "entry point missing",
			module: &fakeModule{symbols: map[string]any{
				VersionSymbol: &version,
			}},
			expected: ErrEntryPointMissing,
		},
		{
			name: "entry point with wrong signature",
			module: &fakeModule{symbols: map[string]any{
				VersionSymbol: &version,
				FactorySymbol: func() int { return 0 },
			}},
			expected: ErrEntryPointMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &fakeLoader{modules: map[string]*fakeModule{}}
			if tt.module != nil {
				loader.modules["mod.so"] = tt.module
			}
			m := NewManagerWithLoader(registry.New(""), loader)
			err := m.Load("mod.so", "")
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestManager_FailedLoadLeavesLoadedModulesIntact(t *testing.T) {
	plug := &fakePlugin{name: "good"}
	loader := newFakeWorld(map[string]*fakePlugin{"good.so": plug})
	reg := registry.New("")
	m := NewManagerWithLoader(reg, loader)

	if err := m.Load("good.so", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Load("missing.so", ""); !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}

	if m.Count() != 1 {
		t.Errorf("failed load corrupted manager state: %d modules", m.Count())
	}
	if reg.Count() != 1 {
		t.Errorf("failed load corrupted registry: %d cases", reg.Count())
	}
}

func TestManager_ListenersInModuleLoadOrder(t *testing.T) {
	var log []string
	first := &fakePlugin{name: "first", withListener: true}
	first.listener = &countingListener{name: "first", log: &log}
	second := &fakePlugin{name: "second", withListener: true}
	second.listener = &countingListener{name: "second", log: &log}

	loader := newFakeWorld(map[string]*fakePlugin{
		"first.so":  first,
		"second.so": second,
	})
	reg := registry.New("")
	m := NewManagerWithLoader(reg, loader)
	for _, path := range []string{"first.so", "second.so"} {
		if err := m.Load(path, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	controller := engine.NewController()
	collector := engine.NewCollector()
	controller.AddListener(collector)
	m.AddListeners(controller)

	reg.MakeTest().Run(controller)

	// each plug-in contributed one failing test; both listeners see
	// both failures, in module-load order
	if first.listener.failures != 2 || second.listener.failures != 2 {
		t.Errorf("listeners saw %d/%d failures, want 2/2",
			first.listener.failures, second.listener.failures)
	}
	for i := 0; i+1 < len(log); i += 2 {
		if log[i] != "first" || log[i+1] != "second" {
			t.Fatalf("listeners notified out of module-load order: %v", log)
		}
	}

	m.RemoveListeners(controller)
	collector.Reset()
	controller.Reset()
	reg.MakeTest().Run(controller)
	if first.listener.failures != 2 {
		t.Error("detached listener still receiving events")
	}
}

func TestManager_XMLHookWindow(t *testing.T) {
	plug := &fakePlugin{name: "hooked", withHook: true, hook: &report.BaseXMLHook{}}
	loader := newFakeWorld(map[string]*fakePlugin{"hooked.so": plug})
	m := NewManagerWithLoader(registry.New(""), loader)
	if err := m.Load("hooked.so", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outputter := report.NewXMLOutputter(engine.NewCollector(), nil, "")
	m.AddXMLHooks(outputter)

	// teardown inside the attach window violates the precondition
	if err := m.Close(); !errors.Is(err, ErrContributionsAttached) {
		t.Errorf("expected ErrContributionsAttached, got %v", err)
	}
	if m.Count() != 1 {
		t.Error("rejected Close must leave manager state untouched")
	}

	m.RemoveXMLHooks(outputter)
	if err := m.Close(); err != nil {
		t.Errorf("Close after detaching hooks failed: %v", err)
	}
}

func TestManager_CloseOrdering(t *testing.T) {
	first := &fakePlugin{name: "first", withListener: true}
	first.listener = &countingListener{name: "first"}
	loader := newFakeWorld(map[string]*fakePlugin{"first.so": first})
	m := NewManagerWithLoader(registry.New(""), loader)
	if err := m.Load("first.so", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	controller := engine.NewController()
	m.AddListeners(controller)

	if err := m.Close(); !errors.Is(err, ErrContributionsAttached) {
		t.Fatalf("Close with live listeners must be rejected, got %v", err)
	}
	if first.uninitialized {
		t.Error("plug-in uninitialized while its contributions were live")
	}

	m.RemoveListeners(controller)
	if err := m.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.uninitialized {
		t.Error("plug-in not uninitialized during teardown")
	}
	if m.Count() != 0 {
		t.Errorf("handles not dropped: %d modules", m.Count())
	}

	// Close is idempotent
	if err := m.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
