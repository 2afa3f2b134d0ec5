package plugin

import goplugin "plugin"

// Module is one opened plug-in module.
type Module interface {
	// Lookup resolves an exported symbol by name.
	Lookup(name string) (any, error)
}

// Loader opens plug-in modules. The production loader wraps the
// runtime's plugin package; tests substitute a fake.
type Loader interface {
	Open(path string) (Module, error)
}

type soLoader struct{}

func (soLoader) Open(path string) (Module, error) {
	p, err := goplugin.Open(path)
	if err != nil {
		return nil, err
	}
	return soModule{p: p}, nil
}

type soModule struct {
	p *goplugin.Plugin
}

func (m soModule) Lookup(name string) (any, error) {
	return m.p.Lookup(name)
}
