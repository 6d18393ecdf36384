package ast

// Inspect traverses the tree rooted at n in depth-first order, calling fn
// for each node. If fn returns false for a node, its children are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Sequence:
		for _, e := range n.Elements {
			Inspect(e, fn)
		}
	case *Alternation:
		for _, e := range n.Elements {
			Inspect(e, fn)
		}
	case *Optional:
		Inspect(n.Element, fn)
	case *Repetition:
		Inspect(n.Element, fn)
	}
}
