package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestExtractTextStripsBoilerplate(t *testing.T) {
	doc := parse(t, `<html><head>
		<script>var tracking = true;</script>
		<style>body { color: red }</style>
	</head><body>
		<nav>Home About Contact</nav>
		<article><p>Machine learning is a field of study.</p></article>
		<footer>Copyright notice</footer>
	</body></html>`)

	text := extractText(doc)
	assert.Equal(t, "Machine learning is a field of study.", text)
}

func TestExtractTextBlockBoundaries(t *testing.T) {
	doc := parse(t, `<p>first paragraph</p><p>second paragraph</p>`)
	text := extractText(doc)
	assert.Equal(t, "first paragraph second paragraph", text)
}

func TestExtractTextCollapsesWhitespace(t *testing.T) {
	doc := parse(t, "<p>  spaced \n\n  out \t text  </p>")
	assert.Equal(t, "spaced out text", extractText(doc))
}

func TestExtractTextEmptyDocument(t *testing.T) {
	doc := parse(t, "<html><body></body></html>")
	assert.Empty(t, extractText(doc))
}
