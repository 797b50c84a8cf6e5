package hyperjade

import "strings"

// attrsObject builds the attributes-object literal for one hyperscript
// call. Entries keep source order and duplicates survive as written:
// last-writer-wins is the emitted object literal's own semantics, not
// something resolved here. Insertion order alone drives emission, so
// identical input always yields identical output.
func (c *compiler) attrsObject(attrs []Attr) string {
	type pair struct{ key, val string }
	var entries []pair
	var dataset []pair
	datasetAt := -1

	for _, a := range attrs {
		val := attrValue(a)
		switch {
		case a.Name == "class":
			entries = append(entries, pair{"className", val})
		case c.opts.MarshalDataset && strings.HasPrefix(a.Name, "data-"):
			// all data-* attrs fold into one dataset object, placed where
			// the first of them appeared
			if datasetAt < 0 {
				datasetAt = len(entries)
				entries = append(entries, pair{"dataset", ""})
			}
			dataset = append(dataset, pair{strings.TrimPrefix(a.Name, "data-"), val})
		default:
			entries = append(entries, pair{a.Name, val})
		}
	}

	object := func(pairs []pair) string {
		if len(pairs) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(pairs))
		for _, p := range pairs {
			parts = append(parts, jsKey(p.key)+": "+p.val)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}

	if datasetAt >= 0 {
		entries[datasetAt].val = object(dataset)
	}
	return object(entries)
}

// attrValue renders one attribute value. Static values become string
// literals; dynamic and boolean values splice their raw fragment so
// render-time evaluation (including truthiness of boolean attributes)
// happens in the generated code's own scope.
func attrValue(a Attr) string {
	if a.Boolean && a.Value == "" {
		return "true"
	}
	if a.Dynamic || a.Boolean {
		return "(" + a.Value + ")"
	}
	return quoteJS(a.Value)
}
