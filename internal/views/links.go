package views

import "sync"

// Links resolves a route name to its path. The route table implements it.
type Links interface {
	PathFor(name string) (string, bool)
}

var (
	linksMu sync.RWMutex
	links   Links
)

// UseLinks installs the route table used for navigation.
func UseLinks(l Links) {
	linksMu.Lock()
	defer linksMu.Unlock()
	links = l
}

func pathFor(name string) string {
	linksMu.RLock()
	l := links
	linksMu.RUnlock()

	if l != nil {
		if p, ok := l.PathFor(name); ok {
			return p
		}
	}
	return "/"
}
