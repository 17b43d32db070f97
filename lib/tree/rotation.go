package tree

// linkedNode is the parent/left/right link surface shared by the AVL and the
// red-black nodes. N is the node pointer type itself, so the rotation and
// traversal helpers below stay free functions instead of a base type.
type linkedNode[N any] interface {
	comparable
	parentNode() N
	leftChild() N
	rightChild() N
	setParentNode(N)
	setLeftChild(N)
	setRightChild(N)
}

func isNilNode[N comparable](n N) bool {
	var zero N
	return n == zero
}

func attachLeft[N linkedNode[N]](parent, child N) {
	if !isNilNode(child) {
		child.setParentNode(parent)
	}
	parent.setLeftChild(child)
}

func attachRight[N linkedNode[N]](parent, child N) {
	if !isNilNode(child) {
		child.setParentNode(parent)
	}
	parent.setRightChild(child)
}

func directionOf[N linkedNode[N]](n N) RBDirection {
	p := n.parentNode()
	if isNilNode(p) {
		return Root
	}
	if p.leftChild() == n {
		return Left
	}
	return Right
}

// transferOwnership rewires whichever link referenced oldRoot (the parent's
// slot, or the tree root) to newRoot. newRoot may be nil, oldRoot must not.
// oldRoot's own links are left untouched.
func transferOwnership[N linkedNode[N]](root *N, oldRoot, newRoot N) {
	if isNilNode(oldRoot) {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] transfer ownership from a nil subtree root")
	}

	switch p := oldRoot.parentNode(); directionOf(oldRoot) {
	case Root:
		*root = newRoot
		if !isNilNode(newRoot) {
			var zero N
			newRoot.setParentNode(zero)
		}
	case Left:
		attachLeft(p, newRoot)
	case Right:
		attachRight(p, newRoot)
	default:
	}
}

/*
	     |                         |
	     X                         S
	    / \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
	      / \                   / \
	    Sc   Sd                L   Sc
*/
func leftRotate[N linkedNode[N]](root *N, x N) N {
	if isNilNode(x) || isNilNode(x.rightChild()) {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] left rotate node x is nil or x.right is nil")
	}

	y := x.rightChild()
	transferOwnership(root, x, y)
	attachRight(x, y.leftChild())
	attachLeft(y, x)
	return y
}

/*
	     |                         |
	     X                         L
	    / \     rightRotate(X)    / \
	   L   S    ============>   Ld   X
	  / \                           / \
	Ld   Lc                       Lc   S
*/
func rightRotate[N linkedNode[N]](root *N, x N) N {
	if isNilNode(x) || isNilNode(x.leftChild()) {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] right rotate node x is nil or x.left is nil")
	}

	y := x.leftChild()
	transferOwnership(root, x, y)
	attachLeft(x, y.rightChild())
	attachRight(y, x)
	return y
}

func minimumOf[N linkedNode[N]](n N) N {
	aux := n
	for !isNilNode(aux) && !isNilNode(aux.leftChild()) {
		aux = aux.leftChild()
	}
	return aux
}

func maximumOf[N linkedNode[N]](n N) N {
	aux := n
	for !isNilNode(aux) && !isNilNode(aux.rightChild()) {
		aux = aux.rightChild()
	}
	return aux
}

func siblingOf[N linkedNode[N]](n N) N {
	switch directionOf(n) {
	case Left:
		return n.parentNode().rightChild()
	case Right:
		return n.parentNode().leftChild()
	default:
	}
	var zero N
	return zero
}
