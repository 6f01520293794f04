package coll

// node is a cell of a singly-linked ring.
type node[E any] struct {
	value E
	next  *node[E]
}

// bidiNode is a cell of a doubly-linked ring.
type bidiNode[E any] struct {
	prev  *bidiNode[E]
	value E
	next  *bidiNode[E]
}
