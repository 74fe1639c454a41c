// Package template turns parsed content and resolved style into a layout
// node tree that the compositor renders to SVG.
//
// Templates are Go functions registered by ID. A preset names the template
// it renders with; the [Adapter] looks it up, inlines icon props, invokes
// it, and normalizes the resulting tree (utility-class resolution, flex
// defaults) so the compositor only ever sees explicit style properties.
package template

// Node is one element in the layout tree. Tag is "div" for containers and
// "span" for text runs. Classes hold utility-class shorthand that
// [Normalize] resolves into Style; after normalization Classes is empty.
type Node struct {
	Tag      string            `json:"tag"`
	Classes  []string          `json:"classes,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []*Node           `json:"children,omitempty"`
	Text     string            `json:"text,omitempty"`
}

// Div creates a container node with the given utility classes.
func Div(classes ...string) *Node {
	return &Node{Tag: "div", Classes: classes}
}

// Span creates a text node.
func Span(text string) *Node {
	return &Node{Tag: "span", Text: text}
}

// Set assigns one style property and returns the node for chaining.
func (n *Node) Set(prop, value string) *Node {
	if value == "" {
		return n
	}
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[prop] = value
	return n
}

// Class appends utility classes and returns the node for chaining.
func (n *Node) Class(classes ...string) *Node {
	n.Classes = append(n.Classes, classes...)
	return n
}

// Add appends child nodes and returns the node for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}
