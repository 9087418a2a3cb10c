// Package render turns a class-diagram description into an SVG document:
// a minimal parser, a layered column layout and themed SVG emission.
package render

import (
	"errors"
	"regexp"
	"strings"

	"classview/diagram"
)

// ErrNotClassDiagram is returned when the description does not start with the
// classDiagram keyword. The message is suitable for inline display.
var ErrNotClassDiagram = errors.New("diagram description must start with \"classDiagram\"")

// Keyword is the required first token of a class-diagram description.
const Keyword = "classDiagram"

var relationRe = regexp.MustCompile(`^(\w+)\s*(<\|--|--\|>|\.\.>|-->|--)\s*(\w+)\s*(?::\s*(.+))?$`)

// Parse reads a class-diagram description into a Diagram. Beyond the keyword
// prefix there is no syntax validation: lines that are neither class blocks
// nor relations are ignored.
func Parse(text string) (*diagram.Diagram, error) {
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[i]), Keyword) {
		return nil, ErrNotClassDiagram
	}
	i++

	d := &diagram.Diagram{}
	seen := make(map[string]int) // class name -> index in d.Nodes

	ensure := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = len(d.Nodes)
		d.Nodes = append(d.Nodes, diagram.Node{ID: name, Lines: []string{name}})
	}

	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if name, ok := parseClassHeader(line); ok {
			ensure(name)
			if strings.HasSuffix(line, "{") {
				for i++; i < len(lines); i++ {
					member := strings.TrimSpace(lines[i])
					if member == "}" {
						break
					}
					if member != "" {
						idx := seen[name]
						d.Nodes[idx].Lines = append(d.Nodes[idx].Lines, member)
					}
				}
			}
			continue
		}

		if m := relationRe.FindStringSubmatch(line); m != nil {
			left, op, right, label := m[1], m[2], m[3], m[4]
			ensure(left)
			ensure(right)
			d.Relations = append(d.Relations, makeRelation(left, op, right, label))
		}
	}

	return d, nil
}

func parseClassHeader(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "class ")
	if !ok {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "{"))
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", false
	}
	return name, true
}

func makeRelation(left, op, right, label string) diagram.Relation {
	switch op {
	case "<|--":
		// "Base <|-- Derived" reads right to left.
		return diagram.Relation{From: right, To: left, Kind: diagram.Inheritance, Label: label}
	case "--|>":
		return diagram.Relation{From: left, To: right, Kind: diagram.Inheritance, Label: label}
	case "..>":
		return diagram.Relation{From: left, To: right, Kind: diagram.Dependency, Label: label}
	case "--":
		return diagram.Relation{From: left, To: right, Kind: diagram.Link, Label: label}
	default:
		return diagram.Relation{From: left, To: right, Kind: diagram.Association, Label: label}
	}
}
