package catalog

import (
	"fmt"
	"sync"

	"github.com/clinassist/decision-worker/internal/tree"
)

// Input describes one named input of a catalog entry, in the shape callers
// use to build request schemas.
type Input struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// Entry is one named, schema-described decision tree.
type Entry struct {
	Name        string
	Description string
	Inputs      []Input
	Tree        *tree.Tree

	// Derive, when set, computes derived inputs from the supplied ones
	// before evaluation (e.g. hemodynamic stability from raw vitals). It
	// must not mutate its argument. A returned error is attributable to the
	// caller's inputs.
	Derive func(tree.Inputs) (tree.Inputs, error)
}

// MissingInputs lists required inputs absent from the supplied set.
func (e *Entry) MissingInputs(inputs tree.Inputs) []string {
	var missing []string
	for _, in := range e.Inputs {
		if !in.Required {
			continue
		}
		if _, ok := inputs[in.Name]; !ok {
			missing = append(missing, in.Name)
		}
	}
	return missing
}

// Prepare applies the entry's derivation hook, if any.
func (e *Entry) Prepare(inputs tree.Inputs) (tree.Inputs, error) {
	if e.Derive == nil {
		return inputs, nil
	}
	return e.Derive(inputs)
}

// Catalog is the named set of evaluable trees. Populate it fully before
// serving begins; lookups afterwards are read-only.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]*Entry)}
}

// Register adds an entry. Duplicate names and entries without a tree are
// rejected.
func (c *Catalog) Register(e *Entry) error {
	if e == nil || e.Name == "" {
		return fmt.Errorf("catalog entry must have a name")
	}
	if e.Tree == nil || e.Tree.Root == nil {
		return fmt.Errorf("catalog entry %q has no tree", e.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[e.Name]; exists {
		return fmt.Errorf("catalog entry %q already registered", e.Name)
	}
	c.entries[e.Name] = e
	c.order = append(c.order, e.Name)
	return nil
}

// Get looks up an entry by name.
func (c *Catalog) Get(name string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// Names returns entry names in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of registered entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Builtin returns a catalog holding the built-in domain trees.
func Builtin() *Catalog {
	c := New()
	for _, e := range builtinEntries() {
		if err := c.Register(e); err != nil {
			// Built-in entries are compile-time data; a clash is a defect.
			panic(err)
		}
	}
	return c
}

func builtinEntries() []*Entry {
	var entries []*Entry
	entries = append(entries, loanEntries()...)
	entries = append(entries, cardiologyEntries()...)
	return entries
}
