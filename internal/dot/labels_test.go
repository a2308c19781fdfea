package dot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/persistorai/dotwalk/internal/dot"
	"github.com/persistorai/dotwalk/internal/models"
)

func TestLabeler_LabelFor(t *testing.T) {
	g := dot.Parse(`
"A" [label="Alpha"]
"0000042" [label="Mistral 7B"]
"0000042" -> "0000007"
"A" -> "B"
`)
	l := dot.NewLabeler(g)

	tests := []struct {
		name   string
		id     models.NodeID
		want   string
		wantOK bool
	}{
		{name: "label table", id: "A", want: "Alpha", wantOK: true},
		{name: "padded numeric via edge line", id: "42", want: "Mistral 7B", wantOK: true},
		{name: "numeric without label", id: "7", wantOK: false},
		{name: "unlabeled", id: "B", wantOK: false},
		{name: "unknown", id: "nope", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := l.LabelFor(tc.id)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLabeler_ScansRawDeclarations(t *testing.T) {
	g := &models.Graph{
		Labels: models.LabelTable{},
		Lines:  []string{`  "gpt.2" [shape=box, label="GPT-2"]`},
	}

	got, ok := dot.NewLabeler(g).LabelFor("gpt.2")
	assert.True(t, ok)
	assert.Equal(t, "GPT-2", got)

	_, ok = dot.NewLabeler(g).LabelFor("gptx2")
	assert.False(t, ok, "id must be matched literally, not as a pattern")
}

func TestDisplayName(t *testing.T) {
	g := dot.Parse(`"A" [label="Alpha"]`)

	assert.Equal(t, "Alpha", dot.DisplayName(dot.NewLabeler(g), "A"))
	assert.Equal(t, "Z", dot.DisplayName(dot.NewLabeler(g), "Z"))
	assert.Equal(t, "Z", dot.DisplayName(nil, "Z"))
}
