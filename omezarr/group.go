package omezarr

import (
	"fmt"
)

// Group is a zarr group within a hierarchy.
type Group struct {
	store Store
	path  string
	attrs *groupAttrs
}

// openGroup opens the group at path, reading its attributes if present.
func openGroup(store Store, path string) (*Group, error) {
	marked := store.Exists(joinKey(path, zgroupKey)) || store.Exists(joinKey(path, zattrsKey))
	if !marked {
		if store.Exists(joinKey(path, zarrayKey)) {
			return nil, fmt.Errorf("%w: %s", ErrNotGroup, path)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotZarr, path)
	}

	g := &Group{store: store, path: path, attrs: &groupAttrs{}}

	data, err := store.Get(joinKey(path, zattrsKey))
	switch {
	case notFound(err):
		// A group without attributes is legal.
	case err != nil:
		return nil, err
	default:
		attrs, err := parseGroupAttrs(data)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", path, err)
		}
		g.attrs = attrs
	}

	return g, nil
}

// Path returns the group's hierarchy path ("" for the root).
func (g *Group) Path() string {
	return g.path
}

// Name returns the last component of the group's path.
func (g *Group) Name() string {
	return baseName(g.path)
}

// HasGroup reports whether a child group with the given name exists.
func (g *Group) HasGroup(name string) bool {
	child := joinKey(g.path, name)
	return g.store.Exists(joinKey(child, zgroupKey)) || g.store.Exists(joinKey(child, zattrsKey))
}

// OpenGroup opens a child group by name.
func (g *Group) OpenGroup(name string) (*Group, error) {
	return openGroup(g.store, joinKey(g.path, normalizePath(name)))
}

// OpenArray opens a child array by relative path.
func (g *Group) OpenArray(relativePath string) (*Array, error) {
	return openArray(g.store, joinKey(g.path, normalizePath(relativePath)))
}

// multiscale returns the group's first multiscale document, or nil.
// Deeper multiscale entries are ignored by design.
func (g *Group) multiscale() *rawMultiscale {
	if len(g.attrs.Multiscales) == 0 {
		return nil
	}
	return &g.attrs.Multiscales[0]
}
