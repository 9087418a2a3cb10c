package diagram

import (
	"fmt"
	"strings"
)

// Rendered elements carry stable identifiers so the scene index can correlate
// edges with their endpoint nodes after a render:
//
//	node-<class>          node group
//	edge-<from>-<to>-<n>  edge path, n disambiguates parallel edges
//	label-<n>             edge label text
//
// Class names are word characters only, so the dashes are unambiguous.

// NodeID returns the element identifier for a class node.
func NodeID(class string) string {
	return "node-" + class
}

// ParseNodeID extracts the class name from a node element identifier.
func ParseNodeID(id string) (string, bool) {
	name, ok := strings.CutPrefix(id, "node-")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// EdgeID returns the element identifier for the n-th edge from one class to
// another.
func EdgeID(from, to string, n int) string {
	return fmt.Sprintf("edge-%s-%s-%d", from, to, n)
}

// ParseEdgeID extracts the source and target class names from an edge element
// identifier.
func ParseEdgeID(id string) (from, to string, ok bool) {
	rest, ok := strings.CutPrefix(id, "edge-")
	if !ok {
		return "", "", false
	}
	// Trim the trailing ordinal.
	i := strings.LastIndex(rest, "-")
	if i <= 0 {
		return "", "", false
	}
	rest = rest[:i]

	parts := strings.Split(rest, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// LabelID returns the element identifier for the n-th edge label.
func LabelID(n int) string {
	return fmt.Sprintf("label-%d", n)
}
