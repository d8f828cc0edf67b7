package markdown

// OutlineNode is one heading in the document tree.
type OutlineNode struct {
	Heading  Heading
	Children []*OutlineNode
}

// GenerateOutline builds a tree from the flat heading list: each
// heading becomes a child of the most recently seen heading with a
// strictly lower level, never a sibling of a higher-or-equal-level
// heading still on the stack.
func GenerateOutline(headings []Heading) []*OutlineNode {
	var roots []*OutlineNode
	var stack []*OutlineNode

	for _, h := range headings {
		node := &OutlineNode{Heading: h}

		for len(stack) > 0 && stack[len(stack)-1].Heading.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, node)
	}

	return roots
}
