package appium

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// Node is one element of a page source hierarchy.
// Handles both iOS and Android formats.
type Node struct {
	Bounds    core.Bounds
	Displayed bool
	Depth     int

	// Android
	Class       string
	Text        string
	ResourceID  string
	ContentDesc string

	// iOS
	Type  string // XCUIElementType
	Name  string // accessibility identifier
	Label string
	Value string
}

// Identifiers returns the non-empty identifying attributes as key=value
// pairs, in the order a locator would use them.
func (n *Node) Identifiers() []string {
	var out []string
	add := func(k, v string) {
		if v != "" {
			out = append(out, k+"="+strconv.Quote(v))
		}
	}
	add("resource-id", n.ResourceID)
	add("content-desc", n.ContentDesc)
	add("text", n.Text)
	add("name", n.Name)
	add("label", n.Label)
	add("value", n.Value)
	return out
}

// Kind returns the widget class (Android) or element type (iOS).
func (n *Node) Kind() string {
	if n.Type != "" {
		return n.Type
	}
	return n.Class
}

// ParseHierarchy parses page source XML into a flat, document-ordered list
// of nodes. The platform is detected from the markup.
func ParseHierarchy(source string) ([]*Node, string, error) {
	isIOS := strings.Contains(source, "XCUIElementType") || strings.Contains(source, "AppiumAUT")

	decoder := xml.NewDecoder(strings.NewReader(source))
	var nodes []*Node
	depth := 0
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(nodes) == 0 {
				return nil, "", fmt.Errorf("invalid page source: %w", err)
			}
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "hierarchy" || t.Name.Local == "AppiumAUT" {
				continue
			}
			var n *Node
			if isIOS {
				n = iosNode(t)
			} else {
				n = androidNode(t)
			}
			n.Depth = depth
			nodes = append(nodes, n)
			depth++
		case xml.EndElement:
			if t.Name.Local == "hierarchy" || t.Name.Local == "AppiumAUT" {
				continue
			}
			depth--
		}
	}

	if len(nodes) == 0 {
		return nil, "", fmt.Errorf("no elements found in page source")
	}
	if isIOS {
		return nodes, "ios", nil
	}
	return nodes, "android", nil
}

func androidNode(t xml.StartElement) *Node {
	n := &Node{Class: t.Name.Local, Displayed: true}
	for _, attr := range t.Attr {
		switch attr.Name.Local {
		case "text":
			n.Text = attr.Value
		case "resource-id":
			n.ResourceID = attr.Value
		case "content-desc":
			n.ContentDesc = attr.Value
		case "class":
			n.Class = attr.Value
		case "bounds":
			n.Bounds = parseBounds(attr.Value)
		case "displayed":
			n.Displayed = attr.Value != "false"
		}
	}
	return n
}

func iosNode(t xml.StartElement) *Node {
	n := &Node{Type: t.Name.Local, Displayed: true}
	for _, attr := range t.Attr {
		switch attr.Name.Local {
		case "type":
			n.Type = attr.Value
		case "name":
			n.Name = attr.Value
		case "label":
			n.Label = attr.Value
		case "value":
			n.Value = attr.Value
		case "visible":
			n.Displayed = attr.Value == "true"
		case "x":
			n.Bounds.X, _ = strconv.Atoi(attr.Value)
		case "y":
			n.Bounds.Y, _ = strconv.Atoi(attr.Value)
		case "width":
			n.Bounds.Width, _ = strconv.Atoi(attr.Value)
		case "height":
			n.Bounds.Height, _ = strconv.Atoi(attr.Value)
		}
	}
	return n
}

// parseBounds parses Android bounds string "[x1,y1][x2,y2]".
func parseBounds(s string) core.Bounds {
	s = strings.ReplaceAll(s, "][", ",")
	s = strings.Trim(s, "[]")
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return core.Bounds{}
	}

	x1, _ := strconv.Atoi(parts[0])
	y1, _ := strconv.Atoi(parts[1])
	x2, _ := strconv.Atoi(parts[2])
	y2, _ := strconv.Atoi(parts[3])

	return core.Bounds{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

// Labeled returns the displayed nodes that carry at least one identifier.
func Labeled(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Displayed && len(n.Identifiers()) > 0 {
			out = append(out, n)
		}
	}
	return out
}
