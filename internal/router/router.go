// Package router holds the static route table of the web front end: a
// one-to-one mapping between URL paths, route names and view components.
//
// The table is validated once when it is built and never changes afterwards,
// so lookups need no locking. There are no path parameters, guards or
// redirects; a path either resolves to exactly one route or to nothing, in
// which case the host application decides what "not found" looks like.
package router

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrInvalidPath   = errors.New("invalid route path")
	ErrInvalidName   = errors.New("invalid route name")
	ErrNilComponent  = errors.New("nil route component")
	ErrDuplicatePath = errors.New("duplicate route path")
	ErrDuplicateName = errors.New("duplicate route name")
)

// Route binds a path and a name to a view component. C is whatever the host
// uses to build a view, e.g. a go-app component factory.
type Route[C any] struct {
	Path      string
	Name      string
	Component C
}

// Table is an immutable route registry.
type Table[C any] struct {
	routes []Route[C]
	byPath map[string]int
	byName map[string]int
}

// New validates routes and builds the table. Declaration order is kept.
func New[C any](routes ...Route[C]) (*Table[C], error) {
	t := &Table[C]{
		routes: make([]Route[C], 0, len(routes)),
		byPath: make(map[string]int, len(routes)),
		byName: make(map[string]int, len(routes)),
	}

	for _, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, r.Path)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: path %q has no name", ErrInvalidName, r.Path)
		}
		if isNil(r.Component) {
			return nil, fmt.Errorf("%w: %q", ErrNilComponent, r.Name)
		}

		path := normalize(r.Path)
		if _, ok := t.byPath[path]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, path)
		}
		if _, ok := t.byName[r.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, r.Name)
		}

		r.Path = path
		t.byPath[path] = len(t.routes)
		t.byName[r.Name] = len(t.routes)
		t.routes = append(t.routes, r)
	}

	return t, nil
}

// MustNew is New for tables declared in code; it panics on a bad table.
func MustNew[C any](routes ...Route[C]) *Table[C] {
	t, err := New(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the route registered for path. Query strings, fragments
// and a single trailing slash are ignored.
func (t *Table[C]) Resolve(path string) (Route[C], bool) {
	i, ok := t.byPath[normalize(path)]
	if !ok {
		return Route[C]{}, false
	}
	return t.routes[i], true
}

// ByName returns the route registered under name.
func (t *Table[C]) ByName(name string) (Route[C], bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route[C]{}, false
	}
	return t.routes[i], true
}

// PathFor returns the path of the named route, for building links.
func (t *Table[C]) PathFor(name string) (string, bool) {
	r, ok := t.ByName(name)
	return r.Path, ok
}

// Routes returns a copy of the table in declaration order.
func (t *Table[C]) Routes() []Route[C] {
	out := make([]Route[C], len(t.routes))
	copy(out, t.routes)
	return out
}

func (t *Table[C]) Len() int {
	return len(t.routes)
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	if path == "" {
		path = "/"
	}
	return path
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
