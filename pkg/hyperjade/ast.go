package hyperjade

// NodeType identifies the kind of a template node.
type NodeType int

const (
	NodeTag NodeType = iota
	NodeText
	NodeCode
	NodeConditional
	NodeCase
	NodeEach
	NodeWhile
	NodeMixinDecl
	NodeMixinCall
	NodeBlock
)

func (t NodeType) String() string {
	switch t {
	case NodeTag:
		return "tag"
	case NodeText:
		return "text"
	case NodeCode:
		return "code"
	case NodeConditional:
		return "conditional"
	case NodeCase:
		return "case"
	case NodeEach:
		return "each"
	case NodeWhile:
		return "while"
	case NodeMixinDecl:
		return "mixin"
	case NodeMixinCall:
		return "call"
	case NodeBlock:
		return "block"
	}
	return "unknown"
}

// Node is one node of the parsed template tree. Trees are produced by an
// external template-syntax parser (see DecodeTree for the interchange
// format); the compiler never sees raw template text.
type Node interface {
	Type() NodeType
}

// Attr is a single attribute on a Tag or MixinCall, in source order.
// Dynamic values are raw expression fragments spliced verbatim into the
// output; the compiler never parses or evaluates them.
type Attr struct {
	Name      string
	Value     string
	Dynamic   bool
	Boolean   bool
	Unescaped bool
}

// Tag is an element node compiling to one hyperscript call.
type Tag struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

func (Tag) Type() NodeType { return NodeTag }

// Text is a text run. Value may embed #{expr} interpolation spans, which
// compile to render-time concatenation terms.
type Text struct {
	Value string
}

func (Text) Type() NodeType { return NodeText }

// Code is a raw statement spliced verbatim at its position, so its
// declarations are visible to later siblings. It contributes no child value.
type Code struct {
	Source string
}

func (Code) Type() NodeType { return NodeCode }

// Branch is one arm of a Conditional. Cond is empty on a trailing else.
type Branch struct {
	Cond string
	Body []Node
}

// Conditional is an if / else-if / else chain, in source order.
type Conditional struct {
	Branches []Branch
}

func (Conditional) Type() NodeType { return NodeConditional }

// When is one arm of a Case. Default marks the default arm.
type When struct {
	Expr    string
	Default bool
	Body    []Node
}

// Case is a multi-way branch over a render-time expression.
type Case struct {
	Expr  string
	Whens []When
}

func (Case) Type() NodeType { return NodeCase }

// Each iterates a collection expression, binding Value (and Index, when
// named) inside the body scope.
type Each struct {
	Collection string
	Value      string
	Index      string
	Body       []Node
}

func (Each) Type() NodeType { return NodeEach }

// While loops on a render-time condition, accumulating body children.
type While struct {
	Cond string
	Body []Node
}

func (While) Type() NodeType { return NodeWhile }

// MixinDecl declares a named, parameterized template fragment. Rest names
// an optional trailing rest parameter collecting extra call arguments.
type MixinDecl struct {
	Name   string
	Params []string
	Rest   string
	Body   []Node
}

func (MixinDecl) Type() NodeType { return NodeMixinDecl }

// MixinCall invokes a declared mixin. Args are raw expression fragments.
// Block, when non-nil, is child content the mixin body can inject via a
// Block node.
type MixinCall struct {
	Name  string
	Args  []string
	Attrs []Attr
	Block []Node
}

func (MixinCall) Type() NodeType { return NodeMixinCall }

// Block is the injection point inside a mixin body for the caller's block.
type Block struct{}

func (Block) Type() NodeType { return NodeBlock }
