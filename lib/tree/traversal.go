package tree

import (
	"fmt"
	"io"

	"github.com/golang-collections/collections/stack"
)

// Inorder traversal to implement the DFS.
func foreachInorder[N linkedNode[N]](root N, size int64, action func(idx int64, n N) bool) {
	if size <= 0 || isNilNode(root) {
		return
	}

	nodes := make([]N, 0, size>>1+1)
	defer func() {
		clear(nodes)
	}()

	aux := root
	for ; !isNilNode(aux); aux = aux.leftChild() {
		nodes = append(nodes, aux)
	}

	idx := int64(0)
	for l := len(nodes); l > 0; l = len(nodes) {
		if aux = nodes[l-1]; !action(idx, aux) {
			return
		}
		idx++
		nodes = nodes[:l-1]
		for aux = aux.rightChild(); !isNilNode(aux); aux = aux.leftChild() {
			nodes = append(nodes, aux)
		}
	}
}

func nodeLabel[N comparable, K any](n N, key func(N) K) string {
	if isNilNode(n) {
		return "nil"
	}
	return fmt.Sprint(key(n))
}

// Preorder traversal driven by an explicit stack, the right child is pushed
// first so the left subtree is written out first.
func printPreorder[N linkedNode[N]](w io.Writer, root N, line func(N) string) error {
	if isNilNode(root) {
		return nil
	}

	s := stack.New()
	s.Push(root)
	for s.Len() > 0 {
		n := s.Pop().(N)
		if _, err := io.WriteString(w, line(n)); err != nil {
			return err
		}
		if r := n.rightChild(); !isNilNode(r) {
			s.Push(r)
		}
		if l := n.leftChild(); !isNilNode(l) {
			s.Push(l)
		}
	}
	return nil
}

// releaseAll drops every link of the subtree so no node keeps another alive.
func releaseAll[N linkedNode[N]](root N, size int64) int64 {
	if isNilNode(root) {
		return 0
	}

	var zero N
	released := int64(0)
	nodes := make([]N, 0, size>>1+1)
	defer func() {
		clear(nodes)
	}()

	nodes = append(nodes, root)
	for l := len(nodes); l > 0; l = len(nodes) {
		aux := nodes[l-1]
		nodes = nodes[:l-1]
		if r := aux.rightChild(); !isNilNode(r) {
			nodes = append(nodes, r)
		}
		if lc := aux.leftChild(); !isNilNode(lc) {
			nodes = append(nodes, lc)
		}
		aux.setLeftChild(zero)
		aux.setRightChild(zero)
		aux.setParentNode(zero)
		released++
	}
	return released
}
