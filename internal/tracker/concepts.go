// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"strings"

	"golang.org/x/net/html"
)

// Heading is one entry of a lesson's section outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

// Concept is a key term mined from lesson markup.
type Concept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ExtractOutline parses lesson HTML and returns its h1-h6 headings in
// document order. It is a pure function over the markup string; no
// live document tree is involved.
func ExtractOutline(content string) []Heading {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}
	var out []Heading
	walk(root, func(node *html.Node) {
		level := headingLevel(node)
		if level == 0 {
			return
		}
		text := strings.TrimSpace(nodeText(node))
		if text == "" {
			return
		}
		out = append(out, Heading{
			Level: level,
			Text:  text,
			ID:    attr(node, "id"),
		})
	})
	return out
}

// ExtractKeyConcepts mines {term, definition} pairs from lesson HTML.
// Two markup shapes are recognized: definition lists (dt/dd pairs) and
// paragraphs opening with a <strong> term followed by its definition.
func ExtractKeyConcepts(content string) []Concept {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}
	var out []Concept
	walk(root, func(node *html.Node) {
		if node.Type != html.ElementNode {
			return
		}
		switch node.Data {
		case "dl":
			out = append(out, conceptsFromDefinitionList(node)...)
		case "p":
			if c, ok := conceptFromParagraph(node); ok {
				out = append(out, c)
			}
		}
	})
	return out
}

func conceptsFromDefinitionList(dl *html.Node) []Concept {
	var out []Concept
	var term string
	for child := dl.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "dt":
			term = strings.TrimSpace(nodeText(child))
		case "dd":
			definition := strings.TrimSpace(nodeText(child))
			if term != "" && definition != "" {
				out = append(out, Concept{Term: term, Definition: definition})
			}
			term = ""
		}
	}
	return out
}

func conceptFromParagraph(p *html.Node) (Concept, bool) {
	first := p.FirstChild
	// Skip leading whitespace-only text.
	for first != nil && first.Type == html.TextNode && strings.TrimSpace(first.Data) == "" {
		first = first.NextSibling
	}
	if first == nil || first.Type != html.ElementNode || (first.Data != "strong" && first.Data != "b") {
		return Concept{}, false
	}
	term := strings.TrimSpace(nodeText(first))
	if term == "" {
		return Concept{}, false
	}
	var rest strings.Builder
	for sibling := first.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		rest.WriteString(nodeText(sibling))
	}
	definition := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(rest.String()), ":–-—"))
	if definition == "" {
		return Concept{}, false
	}
	return Concept{Term: strings.TrimSuffix(term, ":"), Definition: definition}, true
}

func headingLevel(node *html.Node) int {
	if node.Type != html.ElementNode || len(node.Data) != 2 || node.Data[0] != 'h' {
		return 0
	}
	if node.Data[1] < '1' || node.Data[1] > '6' {
		return 0
	}
	return int(node.Data[1] - '0')
}

func attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(node *html.Node) string {
	if node.Type == html.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(nodeText(child))
	}
	return b.String()
}

func walk(node *html.Node, visit func(*html.Node)) {
	visit(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}
