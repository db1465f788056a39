package template

// Node is one element of a parsed template tree. Trees are pure functions of
// the template text: built once, cached, and shared read-only across renders.
type Node interface {
	node()
}

// TextNode is a run of literal template text emitted verbatim.
type TextNode struct {
	Text string
}

// VarNode is a {{ path|filter|filter }} value expansion.
type VarNode struct {
	// Path is the dotted attribute path, split on '.'.
	Path []string
	// Filters are applied left to right after the path resolves.
	Filters []string
	Line    int
}

// TagNode is a non-block statement tag such as call_template or literal.
type TagNode struct {
	Name string
	Args []string
	Line int
}

// BlockNode is a block tag with a body, and for "if" an optional else branch.
type BlockNode struct {
	Name string
	Args []string
	Body []Node
	Else []Node
	Line int
}

func (*TextNode) node()  {}
func (*VarNode) node()   {}
func (*TagNode) node()   {}
func (*BlockNode) node() {}

// Tree is a fully parsed template.
type Tree struct {
	// Name is the template's load name, echoed in error messages.
	Name  string
	Nodes []Node
}
