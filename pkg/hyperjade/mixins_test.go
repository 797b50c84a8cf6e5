package hyperjade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixinCallPositionalArgs(t *testing.T) {
	tree := []Node{
		MixinDecl{Name: "item", Params: []string{"n"}, Body: []Node{
			Tag{Name: "li", Children: []Node{Text{Value: "#{n}"}}},
		}},
		Tag{Name: "ul", Children: []Node{
			MixinCall{Name: "item", Args: []string{"5"}},
		}},
	}

	src, err := Compile(tree, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, src, `mixins["item"].call({}, 5)`)

	vm := renderVM(t, src, "")
	assert.Equal(t, "li", jsEval(t, vm, "$tree.children[0].tag").String())
	assert.Equal(t, "5", jsEval(t, vm, "$tree.children[0].children[0]").String())
}

func TestMixinForwardReference(t *testing.T) {
	// the call site precedes the declaration in document order
	tree := []Node{
		Tag{Name: "div", Children: []Node{
			MixinCall{Name: "late"},
		}},
		MixinDecl{Name: "late", Body: []Node{Text{Value: "declared below"}}},
	}

	src, err := Compile(tree, DefaultOptions())
	require.NoError(t, err)

	vm := renderVM(t, src, "")
	assert.Equal(t, "declared below", jsEval(t, vm, "$tree.children[0]").String())
}

func TestMixinDuplicate(t *testing.T) {
	tree := []Node{
		MixinDecl{Name: "twice", Body: []Node{Text{Value: "a"}}},
		Tag{Name: "div", Children: []Node{
			MixinDecl{Name: "twice", Body: []Node{Text{Value: "b"}}},
		}},
	}

	src, err := Compile(tree, DefaultOptions())
	var dup *DuplicateMixinError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "twice", dup.Name)
	assert.Empty(t, src)
}

func TestMixinUnknown(t *testing.T) {
	tree := []Node{
		Tag{Name: "div", Children: []Node{MixinCall{Name: "ghost"}}},
	}

	src, err := Compile(tree, DefaultOptions())
	var unknown *UnknownMixinError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
	assert.Empty(t, src)
}

func TestMixinBlock(t *testing.T) {
	tree := []Node{
		MixinDecl{Name: "card", Body: []Node{
			Tag{Name: "div", Children: []Node{Block{}}},
		}},
		Tag{Name: "main", Children: []Node{
			MixinCall{Name: "card", Block: []Node{Text{Value: "inner content"}}},
		}},
	}

	src, err := Compile(tree, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, src, "block:", "a supplied block rides the call context")

	vm := renderVM(t, src, "")
	assert.Equal(t, "inner content", jsEval(t, vm, "$tree.children[0].children[0]").String())
}

func TestMixinBlockAbsent(t *testing.T) {
	tree := []Node{
		MixinDecl{Name: "card", Body: []Node{
			Tag{Name: "div", Children: []Node{Block{}}},
		}},
		Tag{Name: "main", Children: []Node{
			MixinCall{Name: "card"},
		}},
	}

	src, err := Compile(tree, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, src, `mixins["card"].call({})`)

	vm := renderVM(t, src, "")
	assert.True(t, jsEval(t, vm, "$tree.children[0].children[0] === undefined").ToBoolean())
}

func TestMixinAttributes(t *testing.T) {
	tree := []Node{
		MixinDecl{Name: "badge", Body: []Node{
			Tag{Name: "span", Attrs: []Attr{{Name: "class", Value: "this.attributes.className", Dynamic: true}}},
		}},
		Tag{Name: "div", Children: []Node{
			MixinCall{Name: "badge", Attrs: []Attr{
				{Name: "class", Value: "shiny"},
				{Name: "data-kind", Value: "badge"},
			}},
		}},
	}

	src, err := Compile(tree, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, src, "attributes:", "supplied attributes ride the call context")
	assert.Contains(t, src, `className: "shiny"`, "context attributes are normalized")

	vm := renderVM(t, src, "")
	assert.Equal(t, "shiny", jsEval(t, vm, "$tree.children[0].attrs.className").String())
}

func TestMixinRestParameter(t *testing.T) {
	tree := []Node{
		MixinDecl{Name: "list", Params: []string{"head"}, Rest: "tail", Body: []Node{
			Text{Value: "#{head}+#{tail.length}"},
		}},
		Tag{Name: "div", Children: []Node{
			MixinCall{Name: "list", Args: []string{`"a"`, `"b"`, `"c"`}},
		}},
	}

	src, err := Compile(tree, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, src, "Array.prototype.slice.call(arguments, 1)")

	vm := renderVM(t, src, "")
	assert.Equal(t, "a+2", jsEval(t, vm, "$tree.children[0]").String())
}

func TestMixinMultiChildBody(t *testing.T) {
	tree := []Node{
		MixinDecl{Name: "pair", Body: []Node{
			Tag{Name: "dt", Children: []Node{Text{Value: "k"}}},
			Tag{Name: "dd", Children: []Node{Text{Value: "v"}}},
		}},
		Tag{Name: "dl", Children: []Node{
			MixinCall{Name: "pair"},
		}},
	}

	src, err := Compile(tree, DefaultOptions())
	require.NoError(t, err)

	vm := renderVM(t, src, "")
	assert.Equal(t, int64(2), jsEval(t, vm, "$tree.children[0].length").ToInteger(),
		"a multi-child mixin body returns its child array")
	assert.Equal(t, "dd", jsEval(t, vm, "$tree.children[0][1].tag").String())
}
