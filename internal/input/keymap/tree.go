package keymap

import (
	"github.com/dshills/cmdbar/internal/input/key"
)

// PrefixTree maps key sequences to actions and answers prefix queries.
type PrefixTree struct {
	root *prefixNode
	size int
}

type prefixNode struct {
	children map[key.Key]*prefixNode
	action   string
	bound    bool
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Key]*prefixNode)}
}

// NewPrefixTree creates an empty prefix tree.
func NewPrefixTree() *PrefixTree {
	return &PrefixTree{root: newPrefixNode()}
}

// Len returns the number of bound sequences.
func (t *PrefixTree) Len() int {
	return t.size
}

// Insert binds seq to action, replacing any previous action.
func (t *PrefixTree) Insert(seq key.Sequence, action string) {
	node := t.root

	// Navigate/create path for each key in sequence
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			child = newPrefixNode()
			node.children[k] = child
		}
		node = child
	}

	if !node.bound {
		t.size++
	}
	node.action = action
	node.bound = true
}

// Remove unbinds seq. It returns false if seq was not bound.
func (t *PrefixTree) Remove(seq key.Sequence) bool {
	if len(seq) == 0 {
		return false
	}

	// Track path for pruning
	path := make([]*prefixNode, 0, len(seq)+1)
	path = append(path, t.root)

	node := t.root
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			return false
		}
		path = append(path, child)
		node = child
	}

	if !node.bound {
		return false
	}
	node.bound = false
	node.action = ""
	t.size--

	// Prune empty nodes from leaf to root
	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if current.bound || len(current.children) > 0 {
			break
		}
		delete(path[i-1].children, seq[i-1])
	}
	return true
}

// Lookup returns the action bound to exactly seq.
func (t *PrefixTree) Lookup(seq key.Sequence) (string, bool) {
	node := t.find(seq)
	if node == nil || !node.bound {
		return "", false
	}
	return node.action, true
}

// HasStrictPrefix reports whether some bound sequence is strictly longer
// than seq and starts with it.
func (t *PrefixTree) HasStrictPrefix(seq key.Sequence) bool {
	node := t.find(seq)
	return node != nil && len(node.children) > 0
}

// Walk calls fn for every bound sequence.
func (t *PrefixTree) Walk(fn func(seq key.Sequence, action string)) {
	walkNode(t.root, nil, fn)
}

func walkNode(node *prefixNode, prefix key.Sequence, fn func(key.Sequence, string)) {
	if node.bound {
		fn(prefix.Clone(), node.action)
	}
	for k, child := range node.children {
		walkNode(child, append(prefix, k), fn)
	}
}

func (t *PrefixTree) find(seq key.Sequence) *prefixNode {
	node := t.root
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}
