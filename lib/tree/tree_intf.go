package tree

import (
	"errors"
	"io"

	"github.com/benz9527/xtree/lib/infra"
)

// ErrPreconditionViolation is returned when a caller breaks an operation
// contract, e.g. asking an empty tree for its minimum.
var ErrPreconditionViolation = errors.New("precondition violation")

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	default:
	}
	return "unknown"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// OrderedSet is the uniform collection contract shared by the AVL and the
// red-black tree. Keys are unique; Insert and Remove report whether the set
// changed.
type OrderedSet[K infra.OrderedKey] interface {
	Len() int64
	Insert(key K) bool
	Remove(key K) bool
	Find(key K) bool
	// Minimum returns the leftmost key. An empty tree yields an error
	// wrapping ErrPreconditionViolation.
	Minimum() (K, error)
	// Foreach visits keys in order until action returns false.
	Foreach(action func(idx int64, key K) bool)
	// PrintOut writes one diagnostic line per node in pre-order.
	PrintOut(w io.Writer) error
	// Validate checks every structural invariant and reports all violations.
	Validate() error
	Release()
}

type AVLNode[K infra.OrderedKey] interface {
	Key() K
	Height() int
	Left() AVLNode[K]
	Right() AVLNode[K]
	Parent() AVLNode[K]
}

type AVLTree[K infra.OrderedKey] interface {
	OrderedSet[K]
	Root() AVLNode[K]
}

type RBNode[K infra.OrderedKey] interface {
	Key() K
	Color() RBColor
	Left() RBNode[K]
	Right() RBNode[K]
	Parent() RBNode[K]
}

type RBTree[K infra.OrderedKey] interface {
	OrderedSet[K]
	Root() RBNode[K]
}
