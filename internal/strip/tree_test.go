package strip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_ErrorSites(t *testing.T) {
	src := "int x;\n@@ ;\nint y\n"
	b := newTreeBuilder([]byte(src), "translation_unit")
	b.add(0, Node{Kind: "declaration", Start: 0, End: 6, Named: true})
	b.addError(0, 7, 9)
	b.add(0, Node{Kind: ";", Start: len(src) - 1, End: len(src) - 1, Missing: true})

	assert.Equal(t, []Position{{Line: 2, Column: 1}, {Line: 3, Column: 6}}, b.tree.ErrorSites(5))
	assert.Equal(t, []Position{{Line: 2, Column: 1}}, b.tree.ErrorSites(1))
}

func TestTree_ErrorSitesWithoutErrorNodes(t *testing.T) {
	tree := &Tree{
		Source:     []byte("x"),
		Nodes:      []Node{{Kind: "source_file", End: 1, Parent: -1}},
		HasError:   true,
		errorHints: []Position{{Line: 1, Column: 1}},
	}
	assert.Equal(t, []Position{{Line: 1, Column: 1}}, tree.ErrorSites(5))

	tree.HasError = false
	assert.Empty(t, tree.ErrorSites(5))
}

func TestStrip_WarningsAlwaysCarrySites(t *testing.T) {
	s := New(nil, DefaultOptions())
	inputs := map[Language]string{
		LangGo:     "package p\n\nvar x = 1 /* a\n */ var y = 2\n",
		LangC:      "int x;\n/* never closed\nint y;\n",
		LangPython: "def f(:\n    pass\n",
	}
	for lang, src := range inputs {
		res, err := s.Strip(context.Background(), lang, []byte(src))
		require.NoError(t, err, lang)
		for _, d := range res.Diagnostics {
			assert.NotEmpty(t, d.Sites, "%s: %s", lang, d.Message)
			assert.Contains(t, d.String(), "near", lang)
		}
	}
}
