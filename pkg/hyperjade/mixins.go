package hyperjade

import (
	"fmt"
	"strings"
)

// mixinRegistry records every mixin declaration in the tree before codegen
// starts, so calls resolve regardless of declaration order. It lives for
// one Compile invocation.
type mixinRegistry struct {
	order  []MixinDecl
	byName map[string]MixinDecl
}

func newMixinRegistry() *mixinRegistry {
	return &mixinRegistry{byName: make(map[string]MixinDecl)}
}

// collect walks the whole tree registering declarations in document order.
func (r *mixinRegistry) collect(nodes []Node) error {
	for _, n := range nodes {
		var err error
		switch t := n.(type) {
		case MixinDecl:
			if _, dup := r.byName[t.Name]; dup {
				return &DuplicateMixinError{Name: t.Name}
			}
			r.byName[t.Name] = t
			r.order = append(r.order, t)
			err = r.collect(t.Body)
		case Tag:
			err = r.collect(t.Children)
		case Conditional:
			for _, b := range t.Branches {
				if err = r.collect(b.Body); err != nil {
					break
				}
			}
		case Case:
			for _, w := range t.Whens {
				if err = r.collect(w.Body); err != nil {
					break
				}
			}
		case Each:
			err = r.collect(t.Body)
		case While:
			err = r.collect(t.Body)
		case MixinCall:
			err = r.collect(t.Block)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *mixinRegistry) lookup(name string) (MixinDecl, error) {
	d, ok := r.byName[name]
	if !ok {
		return MixinDecl{}, &UnknownMixinError{Name: name}
	}
	return d, nil
}

// mixinDecl emits one registry entry: a named function whose return value
// is the compiled body. Parameters bind by position; a rest parameter
// collects the trailing call arguments ES5-style.
func (c *compiler) mixinDecl(em *emitter, d MixinDecl) error {
	em.line("mixins[%s] = function (%s) {", quoteJS(d.Name), strings.Join(d.Params, ", "))
	em.push()
	if d.Rest != "" {
		em.line("var %s = Array.prototype.slice.call(arguments, %d);", d.Rest, len(d.Params))
	}
	body, err := c.bodyExpr(d.Body)
	if err != nil {
		return err
	}
	em.line("return %s;", body)
	em.pop()
	em.line("};")
	return nil
}

// mixinCall emits an invocation with explicit call-context binding. The
// context carries a block closure when the call supplies child content and
// the normalized attribute object when it supplies attributes; positional
// and rest arguments pass through unchanged after it.
func (c *compiler) mixinCall(call MixinCall) (string, error) {
	if _, err := c.mixins.lookup(call.Name); err != nil {
		return "", err
	}

	var parts []string
	if call.Block != nil {
		body, err := c.bodyExpr(call.Block)
		if err != nil {
			return "", err
		}
		// bound so a Block node inside the supplied content still resolves
		// against the enclosing scope when mixins nest
		parts = append(parts, fmt.Sprintf("block: (function () {\nreturn %s;\n}).bind(this)", body))
	}
	if len(call.Attrs) > 0 {
		parts = append(parts, "attributes: "+c.attrsObject(call.Attrs))
	}
	ctx := "{}"
	if len(parts) > 0 {
		ctx = "{ " + strings.Join(parts, ", ") + " }"
	}

	args := append([]string{ctx}, call.Args...)
	return fmt.Sprintf("mixins[%s].call(%s)", quoteJS(call.Name), strings.Join(args, ", ")), nil
}
