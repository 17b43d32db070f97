package tree

import (
	"bytes"
	"errors"
	"math"
	randv2 "math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type colorKey struct {
	Color RBColor
	Key   int
}

func rbColorKeys(tree RBTree[int]) []colorKey {
	res := make([]colorKey, 0, tree.Len())
	foreachInorder(tree.(*rbTree[int]).root, tree.Len(), func(idx int64, n *rbNode[int]) bool {
		res = append(res, colorKey{n.color, n.key})
		return true
	})
	return res
}

func rbDepth[K int | uint64](node RBNode[K]) int {
	if node == nil {
		return 0
	}
	return 1 + max(rbDepth(node.Left()), rbDepth(node.Right()))
}

func TestRBNilRoot(t *testing.T) {
	var nilNode RBNode[int] = nil
	require.True(t, nilNode == nil)

	tree := NewRBTree[int]()
	require.Nil(t, tree.Root())
	require.NoError(t, tree.Validate())
	require.False(t, tree.Remove(1))

	_, err := tree.Minimum()
	require.True(t, errors.Is(err, ErrPreconditionViolation))
}

func TestRBTree_UncleRecolor(t *testing.T) {
	tree := NewRBTree[int]()
	for _, k := range []int{5, 3, 6, 2} {
		require.True(t, tree.Insert(k))
		require.NoError(t, tree.Validate())
	}

	expected := []colorKey{
		{Red, 2}, {Black, 3}, {Black, 5}, {Black, 6},
	}
	require.Empty(t, cmp.Diff(expected, rbColorKeys(tree)))
	require.Equal(t, 5, tree.Root().Key())
	require.Equal(t, Black, tree.Root().Color())
}

func TestRBTree_RotateOnLine(t *testing.T) {
	tree := NewRBTree[int]()
	for _, k := range []int{52, 47, 3} {
		require.True(t, tree.Insert(k))
	}
	require.NoError(t, tree.Validate())
	expected := []colorKey{
		{Red, 3}, {Black, 47}, {Red, 52},
	}
	require.Empty(t, cmp.Diff(expected, rbColorKeys(tree)))

	require.True(t, tree.Insert(35))
	require.NoError(t, tree.Validate())
	expected = []colorKey{
		{Black, 3}, {Red, 35}, {Black, 47}, {Black, 52},
	}
	require.Empty(t, cmp.Diff(expected, rbColorKeys(tree)))
}

func TestRBTree_RotateOnZigZag(t *testing.T) {
	tree := NewRBTree[int]()
	for _, k := range []int{10, 20, 15} {
		require.True(t, tree.Insert(k))
	}
	require.NoError(t, tree.Validate())
	require.Equal(t, 15, tree.Root().Key())
	expected := []colorKey{
		{Red, 10}, {Black, 15}, {Red, 20},
	}
	require.Empty(t, cmp.Diff(expected, rbColorKeys(tree)))
}

func TestRBTree_RemoveRedSibling(t *testing.T) {
	tree := NewRBTree[int]()
	for _, k := range []int{10, 5, 20, 15, 25, 30} {
		require.True(t, tree.Insert(k))
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, Red, tree.Root().Right().Color())

	require.True(t, tree.Remove(5))
	require.NoError(t, tree.Validate())
	require.Equal(t, 20, tree.Root().Key())
	expected := []colorKey{
		{Black, 10}, {Red, 15}, {Black, 20}, {Black, 25}, {Red, 30},
	}
	require.Empty(t, cmp.Diff(expected, rbColorKeys(tree)))
}

func TestRBTree_RemoveBorrowPolicy(t *testing.T) {
	type testcase struct {
		name     string
		opts     []RBTreeOpt[int]
		removed  int
		root     int
		expected []colorKey
	}
	testcases := []testcase{
		{
			name:    "heuristic takes red pred",
			removed: 20,
			root:    10,
			expected: []colorKey{
				{Black, 5}, {Black, 10}, {Black, 15}, {Red, 25},
			},
		},
		{
			name:    "heuristic falls back to succ",
			removed: 10,
			root:    15,
			expected: []colorKey{
				{Black, 5}, {Black, 15}, {Black, 20}, {Red, 25},
			},
		},
		{
			name:    "forced succ",
			opts:    []RBTreeOpt[int]{WithRBTreeRemoveBorrowSucc[int]()},
			removed: 20,
			root:    10,
			expected: []colorKey{
				{Black, 5}, {Black, 10}, {Red, 15}, {Black, 25},
			},
		},
		{
			name:    "forced pred",
			opts:    []RBTreeOpt[int]{WithRBTreeRemoveBorrowPred[int]()},
			removed: 10,
			root:    20,
			expected: []colorKey{
				{Black, 5}, {Red, 15}, {Black, 20}, {Black, 25},
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewRBTree[int](tc.opts...)
			for _, k := range []int{10, 5, 20, 15, 25} {
				require.True(tt, tree.Insert(k))
			}
			require.NoError(tt, tree.Validate())

			require.True(tt, tree.Remove(tc.removed))
			require.NoError(tt, tree.Validate())
			require.Equal(tt, tc.root, tree.Root().Key())
			require.Empty(tt, cmp.Diff(tc.expected, rbColorKeys(tree)))
		})
	}
}

func TestRBTree_PrintOut(t *testing.T) {
	tree := NewRBTree[int]()
	for _, k := range []int{5, 3, 6, 2} {
		tree.Insert(k)
	}
	var buf bytes.Buffer
	require.NoError(t, tree.PrintOut(&buf))
	expected := "5 is black and goes to: 3 and 6. Parent: nil.\n" +
		"3 is black and goes to: 2 and nil. Parent: 5.\n" +
		"2 is red and goes to: nil and nil. Parent: 3.\n" +
		"6 is black and goes to: nil and nil. Parent: 5.\n"
	require.Equal(t, expected, buf.String())
}

func TestRBTree_RemoveAllThenReuse(t *testing.T) {
	tree := NewRBTree[int]()
	for i := 0; i < 64; i++ {
		tree.Insert(i)
	}
	for i := 63; i >= 0; i-- {
		require.True(t, tree.Remove(i))
		require.NoError(t, tree.Validate())
	}
	require.Nil(t, tree.Root())
	require.Equal(t, int64(0), tree.Len())

	require.True(t, tree.Insert(1))
	require.Equal(t, Black, tree.Root().Color())
	require.NoError(t, tree.Validate())
}

func rbtreeSequentialRunCore(t *testing.T, opts ...RBTreeOpt[int]) {
	total := 1000
	insertTotal := int(float64(total) * 0.8)

	tree := NewRBTree[int](opts...)
	for i := 0; i < total; i++ {
		require.True(t, tree.Insert(i))
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, lo.Range(total), collectKeys[int](tree))

	for i := insertTotal; i < total; i++ {
		require.True(t, tree.Remove(i))
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, lo.Range(insertTotal), collectKeys[int](tree))

	n := float64(tree.Len())
	require.LessOrEqual(t, float64(rbDepth(tree.Root())), 2*math.Log2(n+1))
}

func TestRBTreeInsertAndRemove_SequentialNumber(t *testing.T) {
	type testcase struct {
		name string
		opts []RBTreeOpt[int]
	}
	testcases := []testcase{
		{
			name: "rm by heuristic",
		},
		{
			name: "rm by pred",
			opts: []RBTreeOpt[int]{WithRBTreeRemoveBorrowPred[int]()},
		},
		{
			name: "rm by succ",
			opts: []RBTreeOpt[int]{WithRBTreeRemoveBorrowSucc[int]()},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeSequentialRunCore(tt, tc.opts...)
		})
	}
}

func TestRBTreeInsertAndRemove_ReverseSequentialNumber(t *testing.T) {
	total := 4096
	tree := NewRBTree[int](WithRBTreeDesc[int]())
	for i := 0; i < total; i++ {
		require.True(t, tree.Insert(i))
	}
	require.NoError(t, tree.Validate())
	require.Equal(t, lo.Reverse(lo.Range(total)), collectKeys[int](tree))

	maxKey, err := tree.Minimum()
	require.NoError(t, err)
	require.Equal(t, total-1, maxKey)

	n := float64(tree.Len())
	require.LessOrEqual(t, float64(rbDepth(tree.Root())), 2*math.Log2(n+1))
}

func rbtreeRandomRunCore(t *testing.T, total int, opts ...RBTreeOpt[uint64]) {
	tree := NewRBTree[uint64](opts...)
	seen := make(map[uint64]struct{}, total)

	for i := 0; i < total; i++ {
		k := randv2.Uint64N(uint64(total) * 4)
		_, dup := seen[k]
		require.Equal(t, !dup, tree.Insert(k))
		seen[k] = struct{}{}
		if i%50 == 0 {
			require.NoError(t, tree.Validate())
		}
	}
	require.NoError(t, tree.Validate())

	expected := lo.Keys(seen)
	slices.Sort(expected)
	require.Empty(t, cmp.Diff(expected, collectKeys[uint64](tree)))

	for i, k := range lo.Shuffle(lo.Keys(seen)) {
		if i%3 == 0 {
			continue
		}
		require.True(t, tree.Remove(k))
		require.False(t, tree.Find(k))
		delete(seen, k)
		if i%25 == 0 {
			require.NoError(t, tree.Validate())
		}
	}
	require.NoError(t, tree.Validate())
	require.Equal(t, int64(len(seen)), tree.Len())
	n := float64(tree.Len())
	require.LessOrEqual(t, float64(rbDepth(tree.Root())), 2*math.Log2(n+1))

	tree.Release()
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, tree.Root())
}

func TestRBTreeInsertAndRemove_RandomNumber(t *testing.T) {
	type testcase struct {
		name  string
		total int
		opts  []RBTreeOpt[uint64]
	}
	testcases := []testcase{
		{
			name:  "rm by heuristic 2000",
			total: 2000,
		},
		{
			name:  "rm by pred 2000",
			total: 2000,
			opts:  []RBTreeOpt[uint64]{WithRBTreeRemoveBorrowPred[uint64]()},
		},
		{
			name:  "rm by succ 2000",
			total: 2000,
			opts:  []RBTreeOpt[uint64]{WithRBTreeRemoveBorrowSucc[uint64]()},
		},
	}
	t.Parallel()
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomRunCore(tt, tc.total, tc.opts...)
		})
	}
}

func BenchmarkRBTree_Random(b *testing.B) {
	b.StopTimer()
	tree := NewRBTree[int]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(rngArr[i])
	}
}

func BenchmarkRBTree_Serial(b *testing.B) {
	b.StopTimer()
	tree := NewRBTree[int]()

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(i)
	}
}
