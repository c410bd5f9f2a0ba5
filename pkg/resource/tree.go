package resource

import (
	"maps"
	"strings"
)

// Tree is a nested mapping of message keys to leaf values or further trees.
// Leaf values are strings (raw message sources) or any non-map value supplied
// by the caller, such as a precompiled message.
type Tree map[string]any

// Normalize converts arbitrary map-based input into a Tree, expanding dotted
// keys ("a.b.c") into nested form so flat and nested insertion styles produce
// the same structure.
func Normalize(data map[string]any) Tree {
	out := make(Tree, len(data))
	for key, value := range data {
		insert(out, key, normalizeValue(value))
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return Normalize(v)
	case Tree:
		return Normalize(map[string]any(v))
	case map[string]string:
		sub := make(Tree, len(v))
		for k, s := range v {
			insert(sub, k, s)
		}
		return sub
	default:
		return value
	}
}

// insert places value at the dotted path, creating intermediate trees.
// A later write wins over whatever occupied the path before.
func insert(t Tree, path string, value any) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		if sub, ok := asTree(value); ok {
			if existing, ok := asTree(t[head]); ok {
				t[head] = merge(existing, sub)
				return
			}
		}
		t[head] = value
		return
	}

	child, ok := asTree(t[head])
	if !ok {
		child = make(Tree)
		t[head] = child
	}
	insert(child, rest, value)
}

// Expand converts a flat dotted-key map into nested form.
// Expand(Flatten(t)) reproduces t for any tree with string leaves.
func Expand(flat map[string]any) Tree {
	return Normalize(flat)
}

// Flatten converts a Tree into a flat map keyed by dotted paths.
func Flatten(t Tree) map[string]any {
	out := make(map[string]any)
	flattenInto(out, t, "")
	return out
}

func flattenInto(out map[string]any, t Tree, prefix string) {
	for key, value := range t {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if sub, ok := asTree(value); ok {
			flattenInto(out, sub, full)
			continue
		}
		out[full] = value
	}
}

// DeepMerge merges src into dst and returns dst. Nested trees union their
// keys recursively; leaf conflicts resolve to the most recent write. Merging
// a leaf over a subtree (or the reverse) replaces the previous value.
func DeepMerge(dst, src Tree) Tree {
	if dst == nil {
		dst = make(Tree, len(src))
	}
	return merge(dst, src)
}

func merge(dst, src Tree) Tree {
	for key, value := range src {
		sv, srcIsTree := asTree(value)
		if !srcIsTree {
			dst[key] = value
			continue
		}
		dv, dstIsTree := asTree(dst[key])
		if !dstIsTree {
			dst[key] = clone(sv)
			continue
		}
		dst[key] = merge(dv, sv)
	}
	return dst
}

// Lookup resolves a dotted path against the nested view. It reports the value
// found and whether the full path matched. A path that lands on a subtree
// returns that subtree with ok=true; callers that need a leaf must check the
// value type themselves.
func Lookup(t Tree, path string) (any, bool) {
	if t == nil || path == "" {
		return nil, false
	}

	current := t
	rest := path
	for {
		head, tail, nested := strings.Cut(rest, ".")
		value, ok := current[head]
		if !ok {
			return nil, false
		}
		if !nested {
			return value, true
		}
		sub, ok := asTree(value)
		if !ok {
			return nil, false
		}
		current = sub
		rest = tail
	}
}

// IsLeaf reports whether a Lookup result is a translatable leaf rather than
// a subtree node.
func IsLeaf(value any) bool {
	_, isTree := asTree(value)
	return !isTree
}

func asTree(value any) (Tree, bool) {
	switch v := value.(type) {
	case Tree:
		return v, true
	case map[string]any:
		return Tree(v), true
	default:
		return nil, false
	}
}

func clone(t Tree) Tree {
	out := make(Tree, len(t))
	for key, value := range t {
		if sub, ok := asTree(value); ok {
			out[key] = clone(sub)
			continue
		}
		out[key] = value
	}
	return out
}

// Clone returns a deep copy of the tree. Leaf values are shared; only the
// map structure is copied.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	return clone(t)
}

// Copy returns a shallow copy of the top level, used when handing internal
// state to callers that must not mutate it in place.
func Copy(t Tree) Tree {
	out := make(Tree, len(t))
	maps.Copy(out, t)
	return out
}
