package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

func newRBTestTree(root *rbNode[int], count int64) *rbTree[int] {
	return &rbTree[int]{
		root:    root,
		count:   count,
		compare: infra.AscComparator[int],
	}
}

func TestLeftAndRightRotate(t *testing.T) {
	tree := NewAVLTree[int]().(*avlTree[int])
	for _, k := range []int{2, 1, 4, 3, 5} {
		tree.Insert(k)
	}
	x := tree.root

	y := leftRotate(&tree.root, x)
	require.Equal(t, 4, y.key)
	require.Equal(t, y, tree.root)
	require.Nil(t, y.parent)
	require.Equal(t, 2, y.left.key)
	require.Equal(t, 3, x.right.key)
	require.Equal(t, x, x.right.parent)
	require.NoError(t, parentViolationValidate(tree.root))
	require.NoError(t, orderViolationValidate[int](tree.root, tree.compare))

	y = rightRotate(&tree.root, y)
	require.Equal(t, 2, y.key)
	require.Equal(t, y, tree.root)
	require.Equal(t, 4, y.right.key)
	require.Equal(t, 3, y.right.left.key)
	require.NoError(t, parentViolationValidate(tree.root))
	require.NoError(t, orderViolationValidate[int](tree.root, tree.compare))
}

func TestRotateNilChildPanics(t *testing.T) {
	var root *rbNode[int]
	leaf := &rbNode[int]{key: 1}
	root = leaf
	require.Panics(t, func() {
		leftRotate(&root, leaf)
	})
	require.Panics(t, func() {
		rightRotate(&root, leaf)
	})
}

func TestOrderViolationValidate(t *testing.T) {
	root := &rbNode[int]{key: 10, color: Black}
	l := &rbNode[int]{key: 5, color: Black, parent: root}
	r := &rbNode[int]{key: 20, color: Black, parent: root}
	root.left, root.right = l, r
	// 12 sits in the left subtree of 10.
	lr := &rbNode[int]{key: 12, color: Red, parent: l}
	l.right = lr

	tree := newRBTestTree(root, 4)
	require.NoError(t, parentViolationValidate(tree.root))
	err := tree.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "order violation")
}

func TestParentAndSizeViolationValidate(t *testing.T) {
	root := &rbNode[int]{key: 10, color: Black}
	l := &rbNode[int]{key: 5, color: Black}
	root.left = l

	tree := newRBTestTree(root, 3)
	errs := multierr.Errors(tree.Validate())
	require.Len(t, errs, 2)
	require.Contains(t, errs[0].Error(), "parent violation")
	require.Contains(t, errs[1].Error(), "size violation")
}

func TestRedViolationValidate(t *testing.T) {
	t.Run("red root", func(tt *testing.T) {
		tree := newRBTestTree(&rbNode[int]{key: 1, color: Red}, 1)
		require.Error(tt, RedViolationValidate[int](tree))
	})
	t.Run("red red", func(tt *testing.T) {
		root := &rbNode[int]{key: 10, color: Black}
		l := &rbNode[int]{key: 5, color: Red, parent: root}
		ll := &rbNode[int]{key: 1, color: Red, parent: l}
		r := &rbNode[int]{key: 20, color: Red, parent: root}
		root.left, root.right, l.left = l, r, ll

		tree := newRBTestTree(root, 4)
		require.Error(tt, RedViolationValidate[int](tree))
		require.NoError(tt, BlackViolationValidate[int](tree))
	})
}

func TestBlackViolationValidate(t *testing.T) {
	root := &rbNode[int]{key: 10, color: Black}
	l := &rbNode[int]{key: 5, color: Black, parent: root}
	root.left = l

	tree := newRBTestTree(root, 2)
	require.NoError(t, RedViolationValidate[int](tree))
	require.Error(t, BlackViolationValidate[int](tree))
	require.Error(t, tree.Validate())
}

func TestHeightViolationValidate(t *testing.T) {
	t.Run("stale height", func(tt *testing.T) {
		tree := NewAVLTree[int]().(*avlTree[int])
		for _, k := range []int{2, 1, 3} {
			tree.Insert(k)
		}
		tree.root.height = 5
		require.ErrorContains(tt, HeightViolationValidate[int](tree), "height violation")
	})
	t.Run("unbalanced", func(tt *testing.T) {
		root := &avlNode[int]{key: 3, height: 2}
		l := &avlNode[int]{key: 2, height: 1, parent: root}
		ll := &avlNode[int]{key: 1, height: 0, parent: l}
		root.left, l.left = l, ll
		tree := &avlTree[int]{root: root, count: 3, compare: infra.AscComparator[int]}
		require.ErrorContains(tt, HeightViolationValidate[int](tree), "balance violation")
		require.Error(tt, tree.Validate())
	})
}

func TestReleaseAll(t *testing.T) {
	tree := NewRBTree[int]().(*rbTree[int])
	for i := 0; i < 32; i++ {
		tree.Insert(i)
	}
	root := tree.root
	require.Equal(t, int64(32), releaseAll(root, tree.count))
	require.Nil(t, root.left)
	require.Nil(t, root.right)
}
