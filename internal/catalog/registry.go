package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// The function registry maps persisted catalog rows (which carry a function
// name, not code) to executable MasterFuncs. The built-in feature library
// registers itself here at init time; callers embedding their own masters
// register before loading a catalog.

var (
	registryMu sync.RWMutex
	registry   = make(map[string]MasterFunc)
)

// Register binds fn to name. Registering the same name twice panics: the
// catalog must never silently swap the code behind a persisted row.
func Register(name string, fn MasterFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("catalog: duplicate master function %q", name))
	}
	registry[name] = fn
}

// LookupFunc returns the registered function for name.
func LookupFunc(name string) (MasterFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}

// RegisteredNames returns all registered function names, sorted.
func RegisteredNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
