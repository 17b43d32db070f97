package bench

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/benz9527/xtree/lib/tree"
)

// Collection is the uniform surface every contender exposes to the workloads.
type Collection interface {
	Insert(item int)
	Remove(item int)
	Find(item int) bool
	Len() int
}

type Factory struct {
	Name string
	New  func() Collection
}

type orderedSetCollection struct {
	set tree.OrderedSet[int]
}

func (c *orderedSetCollection) Insert(item int)    { c.set.Insert(item) }
func (c *orderedSetCollection) Remove(item int)    { c.set.Remove(item) }
func (c *orderedSetCollection) Find(item int) bool { return c.set.Find(item) }
func (c *orderedSetCollection) Len() int           { return int(c.set.Len()) }

// The baseline is a plain red-black tree set from gods.
type treeSetCollection struct {
	set *treeset.Set
}

func (c *treeSetCollection) Insert(item int)    { c.set.Add(item) }
func (c *treeSetCollection) Remove(item int)    { c.set.Remove(item) }
func (c *treeSetCollection) Find(item int) bool { return c.set.Contains(item) }
func (c *treeSetCollection) Len() int           { return c.set.Size() }

func AVLFactory() Factory {
	return Factory{
		Name: "Avl Tree",
		New: func() Collection {
			return &orderedSetCollection{set: tree.NewAVLTree[int]()}
		},
	}
}

func RBFactory() Factory {
	return Factory{
		Name: "Red Black Tree",
		New: func() Collection {
			return &orderedSetCollection{set: tree.NewRBTree[int]()}
		},
	}
}

func BaselineFactory() Factory {
	return Factory{
		Name: "gods treeset",
		New: func() Collection {
			return &treeSetCollection{set: treeset.NewWithIntComparator()}
		},
	}
}

func DefaultFactories() []Factory {
	return []Factory{
		AVLFactory(),
		RBFactory(),
		BaselineFactory(),
	}
}
