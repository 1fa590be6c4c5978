// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package forest

// Forest represents an ordered sequence of (multi-way) trees.  In a bidding
// system, the roots of the forest are the opening bids and the children of a
// node are the possible responses to it.  The order of nodes amongst their
// siblings is significant.
type Forest[T any] []*Node[T]

// Node represents a single node within a forest, which holds a value and an
// ordered sequence of children.
type Node[T any] struct {
	Value    T
	Children Forest[T]
}

// Leaf constructs a node with no children.
func Leaf[T any](value T) *Node[T] {
	return &Node[T]{value, nil}
}

// Branch constructs a node with a given set of children.
func Branch[T any](value T, children ...*Node[T]) *Node[T] {
	return &Node[T]{value, children}
}

// IsLeaf checks whether this node has no children.
func (n *Node[T]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Values returns the values of the roots of this forest, in order.
func (f Forest[T]) Values() []T {
	values := make([]T, len(f))
	//
	for i, n := range f {
		values[i] = n.Value
	}
	//
	return values
}

// Size returns the total number of nodes in this forest.
func (f Forest[T]) Size() uint {
	var n uint
	//
	for _, node := range f {
		n += 1 + node.Children.Size()
	}
	//
	return n
}

// Path represents a root-to-leaf (or root-to-node) sequence of values.  When
// the path ends at a leaf, it corresponds to one complete auction.
type Path[T any] []T

// Prefix returns the first n elements of this path.
func (p Path[T]) Prefix(n int) Path[T] {
	return p[:n]
}

// Step represents one level along a walk through a forest.  It retains the
// complete ordered list of siblings at that level, along with the index of the
// sibling which the walk passes through.
type Step[T any] struct {
	Siblings []T
	Index    int
}

// Value returns the value at this step of the walk.
func (s Step[T]) Value() T {
	return s.Siblings[s.Index]
}

// Prior returns the siblings strictly before this step's value.
func (s Step[T]) Prior() []T {
	return s.Siblings[:s.Index]
}

// Walk represents a root-to-leaf traversal of a forest, where each step
// additionally records the siblings encountered at that depth.  This gives
// enough context to resolve references between sibling nodes.
type Walk[T any] []Step[T]

// Path returns the path of values visited by this walk.
func (w Walk[T]) Path() Path[T] {
	path := make(Path[T], len(w))
	//
	for i, s := range w {
		path[i] = s.Value()
	}
	//
	return path
}

// Walks returns every root-to-leaf walk through this forest, in depth-first
// order.
func (f Forest[T]) Walks() []Walk[T] {
	var walks []Walk[T]
	//
	f.walk(nil, func(w Walk[T]) {
		walks = append(walks, w)
	})
	//
	return walks
}

// Paths returns every root-to-leaf path through this forest, in depth-first
// order.
func (f Forest[T]) Paths() []Path[T] {
	var paths []Path[T]
	//
	f.walk(nil, func(w Walk[T]) {
		paths = append(paths, w.Path())
	})
	//
	return paths
}

func (f Forest[T]) walk(prefix Walk[T], visit func(Walk[T])) {
	values := f.Values()
	//
	for i, n := range f {
		// Copy the prefix so that walks never share backing arrays.
		next := make(Walk[T], len(prefix)+1)
		copy(next, prefix)
		next[len(prefix)] = Step[T]{values, i}
		//
		if n.IsLeaf() {
			visit(next)
		} else {
			n.Children.walk(next, visit)
		}
	}
}

// Map constructs a new forest with the same structure as this forest, where
// each value is transformed by a given function.
func Map[S any, T any](f Forest[S], fn func(S) T) Forest[T] {
	nf := make(Forest[T], len(f))
	//
	for i, n := range f {
		nf[i] = &Node[T]{fn(n.Value), Map(n.Children, fn)}
	}
	//
	return nf
}

// FromPaths reassembles a forest from a set of root-to-leaf paths by sharing
// common prefixes.  Two path elements are shared when they have the same key
// at the same depth and their parents are shared.  The first occurrence of a
// value determines its position amongst its siblings.
func FromPaths[T any, K comparable](paths []Path[T], key func(T) K) Forest[T] {
	var roots Forest[T]
	//
	for _, path := range paths {
		roots = insertPath(roots, path, key)
	}
	//
	return roots
}

func insertPath[T any, K comparable](f Forest[T], path Path[T], key func(T) K) Forest[T] {
	if len(path) == 0 {
		return f
	}
	//
	head := key(path[0])
	//
	for _, n := range f {
		if key(n.Value) == head {
			n.Children = insertPath(n.Children, path[1:], key)
			return f
		}
	}
	//
	n := Leaf(path[0])
	n.Children = insertPath(nil, path[1:], key)
	//
	return append(f, n)
}
