package tree

import (
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

type rbNode[K infra.OrderedKey] struct {
	parent *rbNode[K]
	left   *rbNode[K]
	right  *rbNode[K]
	key    K
	color  RBColor
}

func (node *rbNode[K]) Color() RBColor {
	return node.color
}

func (node *rbNode[K]) Key() K {
	return node.key
}

func (node *rbNode[K]) Left() RBNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K]) Parent() RBNode[K] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[K]) Right() RBNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K]) nodeKey() K                 { return node.key }
func (node *rbNode[K]) parentNode() *rbNode[K]     { return node.parent }
func (node *rbNode[K]) leftChild() *rbNode[K]      { return node.left }
func (node *rbNode[K]) rightChild() *rbNode[K]     { return node.right }
func (node *rbNode[K]) setParentNode(p *rbNode[K]) { node.parent = p }
func (node *rbNode[K]) setLeftChild(l *rbNode[K])  { node.left = l }
func (node *rbNode[K]) setRightChild(r *rbNode[K]) { node.right = r }

// A nil leaf is black.
func (node *rbNode[K]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K]) isRoot() bool {
	return node != nil && node.parent == nil
}

type rbRemoveBorrow uint8

const (
	// Prefer the pred when it or its left child is red, fall back to succ.
	rbBorrowRedFirst rbRemoveBorrow = iota
	rbBorrowPred
	rbBorrowSucc
)

type rbTree[K infra.OrderedKey] struct {
	root    *rbNode[K]
	count   int64
	compare infra.OrderedKeyComparator[K]
	borrow  rbRemoveBorrow
}

func (tree *rbTree[K]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K]) Root() RBNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// The longest path nodes' number is 2 * shortest path nodes' number.

func (tree *rbTree[K]) leftRotate(x *rbNode[K]) *rbNode[K] {
	return leftRotate(&tree.root, x)
}

func (tree *rbTree[K]) rightRotate(x *rbNode[K]) *rbNode[K] {
	return rightRotate(&tree.root, x)
}

func (tree *rbTree[K]) search(key K) *rbNode[K] {
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

// i1: Empty rbtree, insert directly, the root node is painted black.
func (tree *rbTree[K]) Insert(key K) bool {
	if /* i1 */ tree.root == nil {
		tree.root = &rbNode[K]{
			key:   key,
			color: Black,
		}
		tree.count++
		return true
	}

	var x, y = tree.root, (*rbNode[K])(nil)
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

	z := &rbNode[K]{
		key:    key,
		color:  Red,
		parent: y,
	}
	if res < 0 {
		y.left = z
	} else {
		y.right = z
	}
	tree.count++
	tree.insertRebalance(z)
	return true
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: X or its parent P is black, nothing to fix. A red P is never the root,
so the grandpa G exists.

im2: Both the parent P and the uncle U are red, G is black. (red-violation)
Repaint P and U into black. G is repainted into red unless it is the root,
then G may be red-violation with its own parent, continue from G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: P is red but U is black. X is the inner grandchild (zig-zag).
Rotate P to straighten the line, then enter im4 with P as the lower node.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im4: Rotate G away from the red line, the top of the three is painted
black and its two children red.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]
*/
func (tree *rbTree[K]) insertRebalance(x *rbNode[K]) {
	for {
		p := x.parent
		if /* im1 */ x.isBlack() || p.isBlack() {
			return
		}

		gp := p.parent
		if uncle := siblingOf(p); /* im2 */ uncle.isRed() {
			p.color, uncle.color = Black, Black
			if gp.isRoot() {
				return
			}
			gp.color = Red
			x = gp
			continue
		}

		switch p.Direction() {
		case Left:
			if /* im3 */ x == p.right {
				tree.leftRotate(p)
			}
			/* im4 */ tree.rightRotate(gp)
		case Right:
			if /* im3 */ x == p.left {
				tree.rightRotate(p)
			}
			/* im4 */ tree.leftRotate(gp)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert violate (im3), red parent is the root")
		}

		top := gp.parent
		top.color = Black
		top.left.color, top.right.color = Red, Red
		return
	}
}

func (node *rbNode[K]) Direction() RBDirection {
	return directionOf(node)
}

// Only a node with two children borrows from pred or succ. The default
// policy prefers the pred when it (or its only possible child, the left one)
// is red, so that the removal is absorbed by a repaint.
func (tree *rbTree[K]) removalCandidate(z *rbNode[K]) *rbNode[K] {
	if z.left == nil || z.right == nil {
		return z
	}

	switch tree.borrow {
	case rbBorrowPred:
		return maximumOf(z.left)
	case rbBorrowSucc:
		return minimumOf(z.right)
	default:
	}

	pred := maximumOf(z.left)
	if pred.isRed() || pred.left.isRed() {
		return pred
	}
	return minimumOf(z.right)
}

/*
r1: Target node Z has two children. Copy the pred (or succ) key into Z and
remove the pred (or succ) node Y instead, Y has at most one child.

r2: The child of Y (or a black placeholder if Y has none) moves up into
Y's slot. If Y or the moving up node is red, paint the moving up node black
and the black depth is restored.

r3: Otherwise the moving up node carries an extra black (double-black),
see removeRebalance. The placeholder is unlinked afterwards.
*/
func (tree *rbTree[K]) Remove(key K) bool {
	z := tree.search(key)
	if z == nil {
		return false
	}

	y := /* r1 */ tree.removalCandidate(z)
	if y != z {
		z.key = y.key
	}

	movingUp := y.left
	if movingUp == nil {
		movingUp = y.right
	}
	placeholder := movingUp == nil
	if placeholder {
		movingUp = &rbNode[K]{
			color:  Black,
			parent: y,
		}
	}

	transferOwnership(&tree.root, y, movingUp)
	if /* r2 */ movingUp.isRed() || y.isRed() {
		movingUp.color = Black
	} else /* r3 */ {
		tree.removeRebalance(movingUp)
	}

	if placeholder {
		transferOwnership(&tree.root, movingUp, nil)
		movingUp.parent = nil
	}
	y.parent, y.left, y.right = nil, nil, nil
	tree.count--
	return true
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X is the double-black node. Sc is the sibling's child on X's side,
Sd is the sibling's child on the opposite side.

rm1: X is the root, the extra black is dropped.

rm2: X's sibling S is red, so P, Sc and Sd must be black.
Rotate P toward X, repaint S into black and P into red.
X keeps its extra black but now has a black sibling (Sc).

	  [P]                   [S]
	  / \    l-rotate(P)    / \
	[X] <S>  ==========>  <P> [Sd]
	    / \               / \
	 [Sc] [Sd]          [X] [Sc]

rm3: S is black with at least one red child. If Sd is black (so Sc is red)
rotate S away from X first, which brings a red node to the far side.
Rotate P toward X, the new top takes P's color and both of its children
are painted black.

	  {P}                   {S}
	  / \    l-rotate(P)    / \
	[X] [S]  ==========>  [P] [Sd]
	    / \               / \
	  {Sc} <Sd>         [X] {Sc}

rm4: S, Sc and Sd are black. Repaint S into red, the deficit moves up to P.
A red P absorbs it by turning black, a black P continues as the new X.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]
*/
func (tree *rbTree[K]) removeRebalance(x *rbNode[K]) {
	for /* rm1 */ !x.isRoot() {
		p, s := x.parent, siblingOf(x)
		dir := x.Direction()

		if /* rm2 */ s.isRed() {
			switch dir {
			case Left:
				tree.leftRotate(p)
			case Right:
				tree.rightRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm2)")
			}
			s.color = Black
			p.color = Red
			continue
		}

		if /* rm3 */ s.left.isRed() || s.right.isRed() {
			switch dir {
			case Left:
				if s.right.isBlack() {
					tree.rightRotate(s)
				}
				tree.leftRotate(p)
			case Right:
				if s.left.isBlack() {
					tree.leftRotate(s)
				}
				tree.rightRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm3)")
			}
			top := p.parent
			top.color = p.color
			top.left.color, top.right.color = Black, Black
			return
		}

		/* rm4 */
		s.color = Red
		if p.isRed() {
			p.color = Black
			return
		}
		x = p
	}
}

func (tree *rbTree[K]) Find(key K) bool {
	return tree.search(key) != nil
}

func (tree *rbTree[K]) Minimum() (K, error) {
	if tree.root == nil {
		var zero K
		return zero, fmt.Errorf("[rbtree] minimum of an empty tree: %w", ErrPreconditionViolation)
	}
	return minimumOf(tree.root).key, nil
}

func (tree *rbTree[K]) Foreach(action func(idx int64, key K) bool) {
	foreachInorder(tree.root, tree.count, func(idx int64, n *rbNode[K]) bool {
		return action(idx, n.key)
	})
}

func (tree *rbTree[K]) PrintOut(w io.Writer) error {
	label := func(n *rbNode[K]) string {
		return nodeLabel(n, (*rbNode[K]).nodeKey)
	}
	return printPreorder(w, tree.root, func(n *rbNode[K]) string {
		return fmt.Sprintf("%v is %s and goes to: %s and %s. Parent: %s.\n",
			n.key, n.color, label(n.left), label(n.right), label(n.parent),
		)
	})
}

func (tree *rbTree[K]) Validate() error {
	return multierr.Combine(
		orderViolationValidate[K](tree.root, tree.compare),
		parentViolationValidate(tree.root),
		sizeViolationValidate(tree.root, tree.count),
		RedViolationValidate[K](tree),
		BlackViolationValidate[K](tree),
	)
}

func (tree *rbTree[K]) Release() {
	root := tree.root
	tree.root = nil
	releaseAll(root, tree.count)
	tree.count = 0
}

type RBTreeOpt[K infra.OrderedKey] func(*rbTree[K])

func WithRBTreeDesc[K infra.OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.compare = infra.DescComparator[K]
	}
}

func WithRBTreeRemoveBorrowPred[K infra.OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.borrow = rbBorrowPred
	}
}

func WithRBTreeRemoveBorrowSucc[K infra.OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.borrow = rbBorrowSucc
	}
}

func NewRBTree[K infra.OrderedKey](opts ...RBTreeOpt[K]) RBTree[K] {
	tree := &rbTree[K]{
		compare: infra.AscComparator[K],
		borrow:  rbBorrowRedFirst,
	}

	for _, o := range opts {
		o(tree)
	}
	return tree
}
