// Package hyperjade compiles parsed template node trees into JavaScript
// render functions that build a virtual-DOM tree through hyperscript calls.
//
// The compiler is a single synchronous pass (plus a mixin pre-pass) over an
// externally parsed tree. It holds no state across invocations, performs no
// I/O, and splices embedded expression fragments verbatim: template
// expressions are trusted input, evaluated only at render time by the
// generated code.
package hyperjade

import (
	"fmt"
	"strings"
)

// Options is the configuration surface of Compile. The zero value disables
// everything; use DefaultOptions for the documented defaults.
type Options struct {
	// Pretty routes the generated source through Formatter before returning.
	Pretty bool
	// Runtime prepends the virtual-dom binding boilerplate.
	Runtime bool
	// MarshalDataset rewrites data-* attributes into a nested dataset object.
	MarshalDataset bool
	// CapitalConstructors emits capitalized tag names as Name.tagName
	// constructor references instead of string literals.
	CapitalConstructors bool
	// Formatter is the injected beautifier collaborator, consulted only when
	// Pretty is set. The unformatted output is valid on its own.
	Formatter func(string) (string, error)
}

// DefaultOptions returns the documented defaults: runtime boilerplate on,
// dataset marshalling on, everything else off.
func DefaultOptions() Options {
	return Options{Runtime: true, MarshalDataset: true}
}

const runtimeHeader = `var VNode = require("virtual-dom/vnode/vnode");
var VText = require("virtual-dom/vnode/vtext");
var h = require("virtual-dom/h");`

// Compile translates a template node tree into a self-contained JavaScript
// source unit exporting a render(locals) function. It is all-or-nothing:
// any error aborts with no partial output.
func Compile(tree []Node, opts Options) (string, error) {
	root, err := rootTag(tree)
	if err != nil {
		return "", err
	}

	c := &compiler{opts: opts, mixins: newMixinRegistry()}
	// Declarations register before any emission so calls may precede their
	// declarations in document order.
	if err := c.mixins.collect(tree); err != nil {
		return "", err
	}

	em := newEmitter()
	if opts.Runtime {
		em.line("%s", runtimeHeader)
	}
	em.line("module.exports = function render(locals) {")
	em.push()
	em.line("with (locals || {}) {")
	em.push()
	if len(c.mixins.order) > 0 {
		em.line("var mixins = {};")
		for _, def := range c.mixins.order {
			if err := c.mixinDecl(em, def); err != nil {
				return "", err
			}
		}
	}
	rootExpr, err := c.tagExpr(root)
	if err != nil {
		return "", err
	}
	em.line("return %s;", rootExpr)
	em.pop()
	em.line("}")
	em.pop()
	em.line("};")

	src := em.String()
	if opts.Pretty && opts.Formatter != nil {
		return opts.Formatter(src)
	}
	return src, nil
}

// rootTag enforces the compile-unit invariant: exactly one top-level tag,
// with mixin declarations as the only permitted company.
func rootTag(tree []Node) (Tag, error) {
	var root Tag
	tags := 0
	for _, n := range tree {
		switch t := n.(type) {
		case Tag:
			root = t
			tags++
		case MixinDecl:
			// declarations emit into the render prelude, not the tree
		default:
			return Tag{}, &RootCountError{Tags: tags, Stray: n.Type().String()}
		}
	}
	if tags != 1 {
		return Tag{}, &RootCountError{Tags: tags}
	}
	return root, nil
}

type compiler struct {
	opts   Options
	mixins *mixinRegistry
}

// tagExpr compiles one tag to a hyperscript call.
func (c *compiler) tagExpr(t Tag) (string, error) {
	kids, err := c.children(t.Children)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("h(%s, %s, %s)", c.tagName(t.Name), c.attrsObject(t.Attrs), kids), nil
}

func (c *compiler) tagName(name string) string {
	if c.opts.CapitalConstructors && name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		return name + ".tagName"
	}
	return quoteJS(name)
}

// children compiles a sibling sequence into one child-array expression.
// Adjacent text runs merge into a single concatenation entry. When a raw
// code statement is present the array is built inside an IIFE, so the
// statement splices at its position and its declarations bind for later
// siblings; otherwise a plain array literal suffices.
func (c *compiler) children(nodes []Node) (string, error) {
	type entry struct {
		expr string // empty for raw statements
		stmt string
	}
	var entries []entry
	hasStmt := false

	for i := 0; i < len(nodes); i++ {
		switch n := nodes[i].(type) {
		case Text:
			// merge the whole adjacent text run
			val := n.Value
			for i+1 < len(nodes) {
				next, ok := nodes[i+1].(Text)
				if !ok {
					break
				}
				val += next.Value
				i++
			}
			entries = append(entries, entry{expr: textExpr(val)})
		case Code:
			entries = append(entries, entry{stmt: n.Source})
			hasStmt = true
		case MixinDecl:
			// already registered and emitted in the prelude
		default:
			expr, err := c.nodeExpr(nodes[i])
			if err != nil {
				return "", err
			}
			entries = append(entries, entry{expr: expr})
		}
	}

	if !hasStmt {
		exprs := make([]string, 0, len(entries))
		for _, e := range entries {
			exprs = append(exprs, e.expr)
		}
		return "[" + strings.Join(exprs, ", ") + "]", nil
	}

	var b strings.Builder
	b.WriteString("(function () {\nvar $c = [];\n")
	for _, e := range entries {
		if e.stmt != "" {
			b.WriteString(e.stmt)
			b.WriteByte('\n')
			continue
		}
		b.WriteString("$c.push(" + e.expr + ");\n")
	}
	b.WriteString("return $c;\n}).call(this)")
	return b.String(), nil
}

// bodyExpr compiles a branch or loop body to a single expression: the lone
// child's expression when there is exactly one, a child array otherwise.
func (c *compiler) bodyExpr(nodes []Node) (string, error) {
	if len(nodes) == 1 {
		switch nodes[0].(type) {
		case Code, MixinDecl:
		default:
			return c.nodeExpr(nodes[0])
		}
	}
	return c.children(nodes)
}

// nodeExpr dispatches one node to its expression form. Text and Code never
// reach here; children handles both so runs merge and statements splice.
func (c *compiler) nodeExpr(n Node) (string, error) {
	switch t := n.(type) {
	case Tag:
		return c.tagExpr(t)
	case Text:
		return textExpr(t.Value), nil
	case Conditional:
		return c.conditionalExpr(t)
	case Case:
		return c.caseExpr(t)
	case Each:
		return c.eachExpr(t)
	case While:
		return c.whileExpr(t)
	case MixinCall:
		return c.mixinCall(t)
	case Block:
		return "(this.block ? this.block() : undefined)", nil
	default:
		return "", &UnsupportedNodeError{Kind: fmt.Sprintf("%T", n)}
	}
}

// conditionalExpr emits a ternary chain mirroring branch order, with
// undefined as the final alternative when no else branch exists.
func (c *compiler) conditionalExpr(cond Conditional) (string, error) {
	var b strings.Builder
	closed := false
	for _, br := range cond.Branches {
		body, err := c.bodyExpr(br.Body)
		if err != nil {
			return "", err
		}
		if br.Cond == "" {
			b.WriteString(body)
			closed = true
			break
		}
		fmt.Fprintf(&b, "(%s) ? %s : ", br.Cond, body)
	}
	if !closed {
		b.WriteString("undefined")
	}
	return "(" + b.String() + ")", nil
}

// caseExpr emits a value-producing IIFE around a native switch. Branch
// order mirrors the source exactly, so which arm fires at render time
// matches the source template.
func (c *compiler) caseExpr(cs Case) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "(function () {\nswitch (%s) {\n", cs.Expr)
	hasDefault := false
	for _, w := range cs.Whens {
		body, err := c.bodyExpr(w.Body)
		if err != nil {
			return "", err
		}
		if w.Default {
			fmt.Fprintf(&b, "default: return %s;\n", body)
			hasDefault = true
		} else {
			fmt.Fprintf(&b, "case %s: return %s;\n", w.Expr, body)
		}
	}
	b.WriteString("}\n")
	if !hasDefault {
		b.WriteString("return undefined;\n")
	}
	b.WriteString("}).call(this)")
	return b.String(), nil
}

// eachExpr maps the render-time collection to an array of per-iteration
// children. The index parameter appears only when the template names one.
func (c *compiler) eachExpr(e Each) (string, error) {
	body, err := c.bodyExpr(e.Body)
	if err != nil {
		return "", err
	}
	params := e.Value
	if e.Index != "" {
		params += ", " + e.Index
	}
	return fmt.Sprintf("(%s).map(function (%s) {\nreturn %s;\n}, this)", e.Collection, params, body), nil
}

func (c *compiler) whileExpr(w While) (string, error) {
	body, err := c.bodyExpr(w.Body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(function () {\nvar $w = [];\nwhile (%s) {\n$w.push(%s);\n}\nreturn $w;\n}).call(this)", w.Cond, body), nil
}

// textExpr compiles a text run to a string literal, or a concatenation when
// the run embeds #{expr} interpolation spans. Fragments splice verbatim,
// parenthesized; evaluation happens in the generated code's scope at render
// time, never here. \#{ escapes a literal span opener.
func textExpr(val string) string {
	var terms []string
	var lit strings.Builder
	for i := 0; i < len(val); i++ {
		if val[i] == '\\' && strings.HasPrefix(val[i+1:], "#{") {
			lit.WriteString("#{")
			i += 2
			continue
		}
		if val[i] == '#' && strings.HasPrefix(val[i+1:], "{") {
			if end := matchBrace(val, i+1); end >= 0 {
				if lit.Len() > 0 {
					terms = append(terms, quoteJS(lit.String()))
					lit.Reset()
				}
				terms = append(terms, "("+val[i+2:end]+")")
				i = end
				continue
			}
		}
		lit.WriteByte(val[i])
	}
	if lit.Len() > 0 || len(terms) == 0 {
		terms = append(terms, quoteJS(lit.String()))
	}
	if strings.HasPrefix(terms[0], "(") {
		terms = append([]string{`""`}, terms...)
	}
	return strings.Join(terms, " + ")
}

// matchBrace returns the index of the brace closing val[open], honoring
// nesting, or -1 when unbalanced (the run then stays literal text).
func matchBrace(val string, open int) int {
	depth := 0
	for i := open; i < len(val); i++ {
		switch val[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
