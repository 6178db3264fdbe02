package env

import (
	"sort"
	"strings"

	jerrors "jdkswitch/internal/errors"
)

// PathVar is the name of the executable search path variable.
const PathVar = "Path"

// Store is a persistent, case-insensitive map of environment variables.
// Values are returned exactly as stored: references such as %JAVA_HOME%
// are not expanded.
type Store interface {
	// Get returns the raw value of name. A missing variable yields an
	// error matching errors.ErrNotFound.
	Get(name string) (string, error)
	Set(name, value string) error
}

// Notifier is implemented by stores whose writes must be announced to
// running processes.
type Notifier interface {
	Notify()
}

type memVar struct {
	name  string
	value string
}

// Memory is a Store held in memory.
type Memory struct {
	vars map[string]memVar
}

// NewMemory returns a Memory store seeded with vars.
func NewMemory(vars map[string]string) *Memory {
	m := &Memory{vars: make(map[string]memVar, len(vars))}
	for name, value := range vars {
		_ = m.Set(name, value)
	}
	return m
}

func foldKey(name string) string {
	return strings.ToUpper(name)
}

func (m *Memory) Get(name string) (string, error) {
	v, ok := m.vars[foldKey(name)]
	if !ok {
		return "", jerrors.NotFoundf("variable %s is not set", name)
	}
	return v.value, nil
}

// Set stores value under name. An existing variable keeps the spelling it
// was first stored with.
func (m *Memory) Set(name, value string) error {
	key := foldKey(name)
	if existing, ok := m.vars[key]; ok {
		name = existing.name
	}
	m.vars[key] = memVar{name: name, value: value}
	return nil
}

// Delete removes name.
func (m *Memory) Delete(name string) {
	delete(m.vars, foldKey(name))
}

// Names returns the stored names in sorted order.
func (m *Memory) Names() []string {
	names := make([]string, 0, len(m.vars))
	for _, v := range m.vars {
		names = append(names, v.name)
	}
	sort.Strings(names)
	return names
}

// Change is one write captured by an Overlay.
type Change struct {
	Name  string
	Value string
}

// Overlay reads through to a base store and keeps writes in memory. It
// lets a switch run end to end without touching the real environment.
type Overlay struct {
	base   Store
	writes *Memory
	order  []string
}

// NewOverlay wraps base.
func NewOverlay(base Store) *Overlay {
	return &Overlay{base: base, writes: NewMemory(nil)}
}

func (o *Overlay) Get(name string) (string, error) {
	if v, err := o.writes.Get(name); err == nil {
		return v, nil
	}
	return o.base.Get(name)
}

func (o *Overlay) Set(name, value string) error {
	if _, err := o.writes.Get(name); err != nil {
		o.order = append(o.order, name)
	}
	return o.writes.Set(name, value)
}

// Changes lists the captured writes in the order variables were first set.
func (o *Overlay) Changes() []Change {
	changes := make([]Change, 0, len(o.order))
	for _, name := range o.order {
		v, _ := o.writes.Get(name)
		changes = append(changes, Change{Name: name, Value: v})
	}
	return changes
}
