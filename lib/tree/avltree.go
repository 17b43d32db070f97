package tree

import (
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

type avlNode[K infra.OrderedKey] struct {
	parent *avlNode[K]
	left   *avlNode[K]
	right  *avlNode[K]
	key    K
	// Distance to the farthest nil leaf below, a leaf is 0 and nil is -1.
	height int
}

func (node *avlNode[K]) Key() K {
	return node.key
}

func (node *avlNode[K]) Height() int {
	return avlHeight(node)
}

func (node *avlNode[K]) Left() AVLNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *avlNode[K]) Right() AVLNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *avlNode[K]) Parent() AVLNode[K] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *avlNode[K]) nodeKey() K                  { return node.key }
func (node *avlNode[K]) parentNode() *avlNode[K]     { return node.parent }
func (node *avlNode[K]) leftChild() *avlNode[K]      { return node.left }
func (node *avlNode[K]) rightChild() *avlNode[K]     { return node.right }
func (node *avlNode[K]) setParentNode(p *avlNode[K]) { node.parent = p }
func (node *avlNode[K]) setLeftChild(l *avlNode[K])  { node.left = l }
func (node *avlNode[K]) setRightChild(r *avlNode[K]) { node.right = r }

func avlHeight[K infra.OrderedKey](node *avlNode[K]) int {
	if node == nil {
		return -1
	}
	return node.height
}

// The children must already carry correct heights.
func (node *avlNode[K]) updateHeight() {
	node.height = 1 + max(avlHeight(node.left), avlHeight(node.right))
}

// Positive when the left subtree is taller.
func (node *avlNode[K]) balanceFactor() int {
	return avlHeight(node.left) - avlHeight(node.right)
}

type avlTree[K infra.OrderedKey] struct {
	root    *avlNode[K]
	count   int64
	compare infra.OrderedKeyComparator[K]
}

func (tree *avlTree[K]) Len() int64 {
	return tree.count
}

func (tree *avlTree[K]) Root() AVLNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// AVL properties:
// https://en.wikipedia.org/wiki/AVL_tree
// p1. For every node, the heights of the two child subtrees differ by at most one.
// p2. A nil child has height -1, so a leaf has height 0.
// An insertion unbalances at most one ancestor, one (single or double)
// rotation there restores the previous subtree height, so the walk stops.
// A deletion may shrink the rotated subtree, so the walk continues to the root.

// Heights of the two moved nodes are refreshed, lower one first.
func (tree *avlTree[K]) leftRotate(x *avlNode[K]) *avlNode[K] {
	y := leftRotate(&tree.root, x)
	x.updateHeight()
	y.updateHeight()
	return y
}

func (tree *avlTree[K]) rightRotate(x *avlNode[K]) *avlNode[K] {
	y := rightRotate(&tree.root, x)
	x.updateHeight()
	y.updateHeight()
	return y
}

/*
bf = height(left) - height(right)

r1 (bf > 1, left child bf >= 0): rightRotate(X)

	    X                L
	   /                / \
	  L      ====>    Ll   X
	 /
	Ll

r2 (bf > 1, left child bf < 0, zig-zag): leftRotate(L) then rightRotate(X)

	  X              X              Lr
	 /              /              /  \
	L     ====>   Lr     ====>    L    X
	 \            /
	 Lr          L

r3, r4 mirror r1, r2 for the right side.
*/
func (tree *avlTree[K]) rebalance(x *avlNode[K], onlyRotateOnce bool) {
	for ; x != nil; x = x.parent {
		bf := x.balanceFactor()
		if bf >= -1 && bf <= 1 {
			x.updateHeight()
			continue
		}

		if /* r1, r2 */ bf > 1 {
			if /* r2 */ x.left.balanceFactor() < 0 {
				tree.leftRotate(x.left)
			}
			x = tree.rightRotate(x)
		} else /* r3, r4 */ {
			if /* r4 */ x.right.balanceFactor() > 0 {
				tree.rightRotate(x.right)
			}
			x = tree.leftRotate(x)
		}

		if onlyRotateOnce {
			return
		}
	}
}

func (tree *avlTree[K]) search(key K) *avlNode[K] {
	for aux := tree.root; aux != nil; {
		res := tree.compare(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *avlTree[K]) Insert(key K) bool {
	if tree.root == nil {
		tree.root = &avlNode[K]{key: key}
		tree.count++
		return true
	}

	var x, y = tree.root, (*avlNode[K])(nil)
	res := int64(0)
	for x != nil {
		y = x
		if res = tree.compare(key, x.key); /* equal */ res == 0 {
			return false
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := &avlNode[K]{key: key, parent: y}
	if res < 0 {
		y.left = z
	} else {
		y.right = z
	}
	tree.count++

	// The new leaf is balanced, the walk starts from its parent.
	tree.rebalance(y, true)
	return true
}

// Two children: borrow from the taller subtree, the predecessor when the
// left one is at least as tall, otherwise the successor.
func (tree *avlTree[K]) removalCandidate(z *avlNode[K]) *avlNode[K] {
	if z.left == nil || z.right == nil {
		return z
	}
	if z.balanceFactor() >= 0 {
		return maximumOf(z.left)
	}
	return minimumOf(z.right)
}

func (tree *avlTree[K]) Remove(key K) bool {
	z := tree.search(key)
	if z == nil {
		return false
	}

	y := tree.removalCandidate(z)
	if y != z {
		z.key = y.key
	}

	// At most one child left.
	movingUp := y.left
	if movingUp == nil {
		movingUp = y.right
	}
	p := y.parent
	transferOwnership(&tree.root, y, movingUp)
	y.parent, y.left, y.right = nil, nil, nil
	tree.count--

	tree.rebalance(p, false)
	return true
}

func (tree *avlTree[K]) Find(key K) bool {
	return tree.search(key) != nil
}

func (tree *avlTree[K]) Minimum() (K, error) {
	if tree.root == nil {
		var zero K
		return zero, fmt.Errorf("[avltree] minimum of an empty tree: %w", ErrPreconditionViolation)
	}
	return minimumOf(tree.root).key, nil
}

func (tree *avlTree[K]) Foreach(action func(idx int64, key K) bool) {
	foreachInorder(tree.root, tree.count, func(idx int64, n *avlNode[K]) bool {
		return action(idx, n.key)
	})
}

func (tree *avlTree[K]) PrintOut(w io.Writer) error {
	label := func(n *avlNode[K]) string {
		return nodeLabel(n, (*avlNode[K]).nodeKey)
	}
	return printPreorder(w, tree.root, func(n *avlNode[K]) string {
		return fmt.Sprintf("%v height %d and goes to: %s and %s. Parent: %s.\n",
			n.key, n.height, label(n.left), label(n.right), label(n.parent),
		)
	})
}

func (tree *avlTree[K]) Validate() error {
	return multierr.Combine(
		orderViolationValidate[K](tree.root, tree.compare),
		parentViolationValidate(tree.root),
		sizeViolationValidate(tree.root, tree.count),
		HeightViolationValidate[K](tree),
	)
}

func (tree *avlTree[K]) Release() {
	root := tree.root
	tree.root = nil
	releaseAll(root, tree.count)
	tree.count = 0
}

type AVLTreeOpt[K infra.OrderedKey] func(*avlTree[K])

func WithAVLTreeDesc[K infra.OrderedKey]() AVLTreeOpt[K] {
	return func(tree *avlTree[K]) {
		tree.compare = infra.DescComparator[K]
	}
}

func NewAVLTree[K infra.OrderedKey](opts ...AVLTreeOpt[K]) AVLTree[K] {
	tree := &avlTree[K]{
		compare: infra.AscComparator[K],
	}

	for _, o := range opts {
		o(tree)
	}
	return tree
}
