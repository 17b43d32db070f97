package tree

import (
	"errors"
	"fmt"

	"github.com/benz9527/xtree/lib/infra"
)

type keyedNode[K infra.OrderedKey, N any] interface {
	linkedNode[N]
	nodeKey() K
}

type boundedNode[K infra.OrderedKey, N any] struct {
	node         N
	lower, upper K
	hasLo, hasHi bool
}

// Range-bound check over the whole tree, lower < key < upper under cmp.
func orderViolationValidate[K infra.OrderedKey, N keyedNode[K, N]](root N, cmp infra.OrderedKeyComparator[K]) error {
	if isNilNode(root) {
		return nil
	}

	nodes := []boundedNode[K, N]{{node: root}}
	for l := len(nodes); l > 0; l = len(nodes) {
		aux := nodes[l-1]
		nodes = nodes[:l-1]
		key := aux.node.nodeKey()
		if (aux.hasLo && cmp(key, aux.lower) <= 0) || (aux.hasHi && cmp(key, aux.upper) >= 0) {
			return fmt.Errorf("[xtree] order violation, key %v out of its subtree bounds", key)
		}
		if lc := aux.node.leftChild(); !isNilNode(lc) {
			nodes = append(nodes, boundedNode[K, N]{
				node: lc, lower: aux.lower, hasLo: aux.hasLo, upper: key, hasHi: true,
			})
		}
		if rc := aux.node.rightChild(); !isNilNode(rc) {
			nodes = append(nodes, boundedNode[K, N]{
				node: rc, lower: key, hasLo: true, upper: aux.upper, hasHi: aux.hasHi,
			})
		}
	}
	return nil
}

func parentViolationValidate[N linkedNode[N]](root N) error {
	if isNilNode(root) {
		return nil
	}
	if !isNilNode(root.parentNode()) {
		return errors.New("[xtree] parent violation, root has a parent")
	}

	nodes := []N{root}
	for l := len(nodes); l > 0; l = len(nodes) {
		aux := nodes[l-1]
		nodes = nodes[:l-1]
		for _, c := range [2]N{aux.leftChild(), aux.rightChild()} {
			if isNilNode(c) {
				continue
			}
			if c.parentNode() != aux {
				return errors.New("[xtree] parent violation, child does not point back to its parent")
			}
			nodes = append(nodes, c)
		}
	}
	return nil
}

func sizeViolationValidate[N linkedNode[N]](root N, count int64) error {
	reachable := int64(0)
	if !isNilNode(root) {
		nodes := []N{root}
		for l := len(nodes); l > 0; l = len(nodes) {
			aux := nodes[l-1]
			nodes = nodes[:l-1]
			reachable++
			if lc := aux.leftChild(); !isNilNode(lc) {
				nodes = append(nodes, lc)
			}
			if rc := aux.rightChild(); !isNilNode(rc) {
				nodes = append(nodes, rc)
			}
		}
	}
	if reachable != count {
		return fmt.Errorf("[xtree] size violation, count %d but %d nodes reachable", count, reachable)
	}
	return nil
}

// avl tree rule validation utilities.

// HeightViolationValidate recomputes every subtree height bottom-up and
// checks both the stored heights and the balance factors.
func HeightViolationValidate[K infra.OrderedKey](tree AVLTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}

	// Reverse postorder: parents are pushed before their children, so
	// walking the slice backwards visits children first.
	order := make([]AVLNode[K], 0, tree.Len())
	nodes := []AVLNode[K]{root}
	for l := len(nodes); l > 0; l = len(nodes) {
		aux := nodes[l-1]
		nodes = nodes[:l-1]
		order = append(order, aux)
		if lc := aux.Left(); lc != nil {
			nodes = append(nodes, lc)
		}
		if rc := aux.Right(); rc != nil {
			nodes = append(nodes, rc)
		}
	}

	heights := make(map[AVLNode[K]]int, len(order))
	heightOf := func(n AVLNode[K]) int {
		if n == nil {
			return -1
		}
		return heights[n]
	}
	for i := len(order) - 1; i >= 0; i-- {
		aux := order[i]
		lh, rh := heightOf(aux.Left()), heightOf(aux.Right())
		h := 1 + max(lh, rh)
		if h != aux.Height() {
			return fmt.Errorf("[avltree] height violation, key %v stores height %d, expected %d", aux.Key(), aux.Height(), h)
		}
		if bf := lh - rh; bf > 1 || bf < -1 {
			return fmt.Errorf("[avltree] balance violation, key %v has balance factor %d", aux.Key(), bf)
		}
		heights[aux] = h
	}
	return nil
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func isRedNode[K infra.OrderedKey](node RBNode[K]) bool {
	return node != nil && node.Color() == Red
}

func isBlackNode[K infra.OrderedKey](node RBNode[K]) bool {
	return node == nil || node.Color() == Black
}

func blackDepthTo[K infra.OrderedKey](target, to RBNode[K]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if isBlackNode[K](aux) {
			depth++
		}
	}
	return depth
}

// Inorder traversal to validate the root color and that no red node has a
// red child.
func RedViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	aux := tree.Root()
	if aux == nil {
		return nil
	}
	if isRedNode[K](aux) {
		return errors.New("[rbtree] red violation, root is red")
	}

	stack := make([]RBNode[K], 0, tree.Len()>>1+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; isRedNode[K](aux) {
			if isRedNode[K](aux.Left()) || isRedNode[K](aux.Right()) {
				return fmt.Errorf("[rbtree] red violation, red key %v has a red child", aux.Key())
			}
		}

		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes owning at least one nil leaf.
func bfsLeaves[K infra.OrderedKey](tree RBTree[K]) []RBNode[K] {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	leaves := make([]RBNode[K], 0, tree.Len()>>1+1)
	queue := make([]RBNode[K], 0, tree.Len()>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
	        /  \
	     <8>    [15]
	     / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            <16>

Each nil leaf position sits at the same black depth from the root.
*/
func BlackViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	leaves := bfsLeaves[K](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K](leaves[0], nil)
	for i := 1; i < len(leaves); i++ {
		if d := blackDepthTo[K](leaves[i], nil); d != blackDepth {
			return fmt.Errorf("[rbtree] black violation, key %v black depth %d, expected %d", leaves[i].Key(), d, blackDepth)
		}
	}
	return nil
}
