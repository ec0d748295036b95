// Package registry records which runtime versions are loaded in the process.
//
// Every runtime copy registers its version tag at init. More than one tag
// means two copies of the runtime are linked into the same binary, and
// components from one will not schedule with the other.
package registry

import (
	"sort"
	"sync"
)

var (
	mu       sync.Mutex
	versions = make(map[string]struct{})
)

// Register records version. Registering the same tag again has no effect.
func Register(version string) {
	if version == "" {
		return
	}
	mu.Lock()
	versions[version] = struct{}{}
	mu.Unlock()
}

// Versions returns the registered tags in sorted order.
func Versions() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Multiple reports whether more than one version tag is registered.
func Multiple() bool {
	mu.Lock()
	defer mu.Unlock()
	return len(versions) > 1
}

// reset clears the registry for tests.
func reset() {
	mu.Lock()
	versions = make(map[string]struct{})
	mu.Unlock()
}
