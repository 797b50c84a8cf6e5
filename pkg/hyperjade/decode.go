package hyperjade

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

// DecodeTree reads the node-tree interchange format produced by the
// external template-syntax parser: either a JSON array of nodes or an
// object with a "nodes" array. Node objects are tagged unions selected by
// their "kind" field; an unknown kind is an UnsupportedNodeError.
func DecodeTree(r io.Reader) ([]Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read tree")
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		var doc struct {
			Nodes []json.RawMessage `json:"nodes"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decode tree")
		}
		raws = doc.Nodes
	}
	return decodeNodes(raws)
}

// rawNode is the union of every node kind's fields. Which fields are
// meaningful depends on Kind.
type rawNode struct {
	Kind       string            `json:"kind"`
	Name       string            `json:"name"`
	Value      string            `json:"value"`
	Source     string            `json:"source"`
	Expr       string            `json:"expr"`
	Cond       string            `json:"cond"`
	Collection string            `json:"collection"`
	Index      string            `json:"index"`
	Rest       string            `json:"rest"`
	Params     []string          `json:"params"`
	Args       []string          `json:"args"`
	Attrs      []rawAttr         `json:"attrs"`
	Branches   []rawBranch       `json:"branches"`
	Whens      []rawWhen         `json:"whens"`
	Children   []json.RawMessage `json:"children"`
	Body       []json.RawMessage `json:"body"`
	Block      []json.RawMessage `json:"block"`
}

type rawAttr struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Dynamic   bool   `json:"dynamic"`
	Boolean   bool   `json:"boolean"`
	Unescaped bool   `json:"unescaped"`
}

type rawBranch struct {
	Cond string            `json:"cond"`
	Body []json.RawMessage `json:"body"`
}

type rawWhen struct {
	Expr    string            `json:"expr"`
	Default bool              `json:"default"`
	Body    []json.RawMessage `json:"body"`
}

func decodeNodes(raws []json.RawMessage) ([]Node, error) {
	if raws == nil {
		return nil, nil
	}
	nodes := make([]Node, 0, len(raws))
	for _, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeNode(raw json.RawMessage) (Node, error) {
	var rn rawNode
	if err := json.Unmarshal(raw, &rn); err != nil {
		return nil, errors.Wrap(err, "decode node")
	}

	switch rn.Kind {
	case "tag":
		children, err := decodeNodes(rn.Children)
		if err != nil {
			return nil, err
		}
		return Tag{Name: rn.Name, Attrs: decodeAttrs(rn.Attrs), Children: children}, nil
	case "text":
		return Text{Value: rn.Value}, nil
	case "code":
		return Code{Source: rn.Source}, nil
	case "conditional":
		var branches []Branch
		for _, rb := range rn.Branches {
			body, err := decodeNodes(rb.Body)
			if err != nil {
				return nil, err
			}
			branches = append(branches, Branch{Cond: rb.Cond, Body: body})
		}
		return Conditional{Branches: branches}, nil
	case "case":
		var whens []When
		for _, rw := range rn.Whens {
			body, err := decodeNodes(rw.Body)
			if err != nil {
				return nil, err
			}
			whens = append(whens, When{Expr: rw.Expr, Default: rw.Default, Body: body})
		}
		return Case{Expr: rn.Expr, Whens: whens}, nil
	case "each":
		body, err := decodeNodes(rn.Body)
		if err != nil {
			return nil, err
		}
		return Each{Collection: rn.Collection, Value: rn.Value, Index: rn.Index, Body: body}, nil
	case "while":
		body, err := decodeNodes(rn.Body)
		if err != nil {
			return nil, err
		}
		return While{Cond: rn.Cond, Body: body}, nil
	case "mixin":
		body, err := decodeNodes(rn.Body)
		if err != nil {
			return nil, err
		}
		return MixinDecl{Name: rn.Name, Params: rn.Params, Rest: rn.Rest, Body: body}, nil
	case "call":
		block, err := decodeNodes(rn.Block)
		if err != nil {
			return nil, err
		}
		if rn.Block != nil && block == nil {
			block = []Node{} // an empty block is still a block
		}
		return MixinCall{Name: rn.Name, Args: rn.Args, Attrs: decodeAttrs(rn.Attrs), Block: block}, nil
	case "block":
		return Block{}, nil
	default:
		return nil, &UnsupportedNodeError{Kind: rn.Kind}
	}
}

func decodeAttrs(raws []rawAttr) []Attr {
	if raws == nil {
		return nil
	}
	attrs := make([]Attr, 0, len(raws))
	for _, ra := range raws {
		attrs = append(attrs, Attr(ra))
	}
	return attrs
}
