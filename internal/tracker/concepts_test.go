// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOutline(t *testing.T) {
	content := `
		<h1 id="intro">Introduction</h1>
		<p>Some text</p>
		<h2 id="state">Objects and State</h2>
		<div><h3>Nested <em>heading</em></h3></div>
		<h2></h2>`

	outline := ExtractOutline(content)
	require.Len(t, outline, 3)
	assert.Equal(t, Heading{Level: 1, Text: "Introduction", ID: "intro"}, outline[0])
	assert.Equal(t, Heading{Level: 2, Text: "Objects and State", ID: "state"}, outline[1])
	assert.Equal(t, 3, outline[2].Level)
	assert.Equal(t, "Nested heading", outline[2].Text)
}

func TestExtractOutlineEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractOutline(""))
	assert.Empty(t, ExtractOutline("plain text, no markup"))
}

func TestExtractKeyConceptsFromDefinitionList(t *testing.T) {
	content := `<dl>
		<dt>Encapsulation</dt><dd>Bundling state with behavior.</dd>
		<dt>Polymorphism</dt><dd>One interface, many forms.</dd>
		<dt>Orphan term</dt>
	</dl>`

	concepts := ExtractKeyConcepts(content)
	require.Len(t, concepts, 2)
	assert.Equal(t, Concept{Term: "Encapsulation", Definition: "Bundling state with behavior."}, concepts[0])
	assert.Equal(t, "Polymorphism", concepts[1].Term)
}

func TestExtractKeyConceptsFromStrongParagraphs(t *testing.T) {
	content := `
		<p><strong>Abstraction:</strong> hiding detail behind an interface.</p>
		<p><b>Coupling</b> — how entangled two modules are.</p>
		<p>No leading term here.</p>
		<p><strong>Dangling term</strong></p>`

	concepts := ExtractKeyConcepts(content)
	require.Len(t, concepts, 2)
	assert.Equal(t, Concept{Term: "Abstraction", Definition: "hiding detail behind an interface."}, concepts[0])
	assert.Equal(t, Concept{Term: "Coupling", Definition: "how entangled two modules are."}, concepts[1])
}

func TestExtractKeyConceptsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeyConcepts(""))
}
