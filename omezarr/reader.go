package omezarr

import (
	"fmt"
)

// Node is one image in a hierarchy: an ordered sequence of multiscale
// array levels (level 0 = highest resolution) plus typed metadata.
// A node without multiscale data has an empty Data slice.
type Node struct {
	path     string
	label    bool
	Data     []*Array
	Metadata NodeMetadata
}

// Path returns the node's hierarchy path ("" for the root image).
func (n *Node) Path() string {
	return n.path
}

// IsLabel reports whether the node is a label image rather than an
// intensity image. The classification is decided once, at read time.
func (n *Node) IsLabel() bool {
	return n.label
}

// Reader walks a resolved hierarchy and produces its nodes: the root
// multiscale image first, then any label images under "labels/".
type Reader struct {
	loc *Location
}

// NewReader creates a reader over a resolved location.
func NewReader(loc *Location) *Reader {
	return &Reader{loc: loc}
}

// Nodes returns an iterator over the hierarchy's nodes. The iterator
// walks lazily and is consumed exactly once.
func (r *Reader) Nodes() *NodeIterator {
	return &NodeIterator{loc: r.loc}
}

// NewNode constructs a node directly. Hosts normally obtain nodes from
// a Reader; direct construction serves adapters and tests.
func NewNode(path string, label bool, data []*Array, metadata NodeMetadata) *Node {
	return &Node{path: path, label: label, Data: data, Metadata: metadata}
}

// NodesFrom returns an iterator over an already-built node sequence.
func NodesFrom(nodes ...*Node) *NodeIterator {
	return &NodeIterator{started: true, ready: nodes}
}

// nodeRef is a node the iterator has discovered but not yet built.
type nodeRef struct {
	path  string
	label bool
}

// NodeIterator iterates hierarchy nodes in discovery order. Usage
// follows the scanner pattern:
//
//	it := reader.Nodes()
//	for it.Next() {
//	    node := it.Node()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type NodeIterator struct {
	loc     *Location
	queue   []nodeRef
	ready   []*Node
	started bool
	cur     *Node
	err     error
}

// Next advances to the next node. It returns false when the hierarchy
// is exhausted or an error occurred.
func (it *NodeIterator) Next() bool {
	if it.err != nil {
		return false
	}

	if !it.started {
		it.started = true
		it.queue = []nodeRef{{path: ""}}
	}

	if len(it.ready) > 0 {
		it.cur = it.ready[0]
		it.ready = it.ready[1:]
		return true
	}

	if len(it.queue) == 0 {
		it.cur = nil
		return false
	}

	ref := it.queue[0]
	it.queue = it.queue[1:]

	node, err := it.buildNode(ref)
	if err != nil {
		it.err = err
		return false
	}

	if ref.path == "" {
		it.discoverLabels()
		if it.err != nil {
			return false
		}
	}

	it.cur = node
	return true
}

// Node returns the current node. Valid only after Next returned true.
func (it *NodeIterator) Node() *Node {
	return it.cur
}

// Err returns the first error encountered while walking.
func (it *NodeIterator) Err() error {
	return it.err
}

// buildNode opens the group at ref and assembles its node.
func (it *NodeIterator) buildNode(ref nodeRef) (*Node, error) {
	g, err := it.loc.OpenGroup(ref.path)
	if err != nil {
		return nil, fmt.Errorf("opening group %q: %w", ref.path, err)
	}

	node := &Node{path: ref.path, label: ref.label}

	// A group carrying image-label metadata is a label image even when
	// reached directly.
	if g.attrs.ImageLabel != nil {
		node.label = true
	}

	ms := g.multiscale()
	if ms == nil {
		return node, nil
	}

	if len(ms.Axes) > 0 {
		axes, err := decodeAxes(ms.Axes)
		if err != nil {
			node.Metadata.AxesErr = err
		} else {
			node.Metadata.Axes = axes
		}
	}

	for _, ds := range ms.Datasets {
		arr, err := g.OpenArray(ds.Path)
		if err != nil {
			return nil, fmt.Errorf("opening level %q of %q: %w", ds.Path, ref.path, err)
		}
		node.Data = append(node.Data, arr)
		node.Metadata.Transformations = append(node.Metadata.Transformations, ds.transforms())
	}

	if node.label {
		if node.Metadata.Name == nil && g.Name() != "" {
			node.Metadata.Name = []string{g.Name()}
		}
		if err := labelMetadata(g.attrs.ImageLabel, &node.Metadata); err != nil {
			return nil, fmt.Errorf("label %q: %w", ref.path, err)
		}
	} else {
		channelMetadata(g.attrs.Omero, &node.Metadata)
	}

	return node, nil
}

// discoverLabels queues the label images listed by the root's "labels"
// group, if any.
func (it *NodeIterator) discoverLabels() {
	root, err := it.loc.OpenGroup("")
	if err != nil {
		it.err = err
		return
	}
	if !root.HasGroup("labels") {
		return
	}

	labels, err := root.OpenGroup("labels")
	if err != nil {
		it.err = fmt.Errorf("opening labels group: %w", err)
		return
	}

	for _, name := range labels.attrs.Labels {
		it.queue = append(it.queue, nodeRef{
			path:  joinKey(labels.path, normalizePath(name)),
			label: true,
		})
	}
}
