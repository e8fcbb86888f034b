package runtime

import (
	"strings"

	"github.com/matzehuels/spritetower/pkg/render"
)

// Bundle returns a self-contained module: it injects css into the document
// head when loaded and then evaluates the runtime module source js. The
// stylesheet travels URI-encoded so any character survives the string literal.
func Bundle(css, js string) string {
	var b strings.Builder
	b.WriteString("/* initialize css */\n")
	b.WriteString("var element = document.createElement(\"style\");\n")
	b.WriteString("element.innerText = decodeURIComponent(" + render.Quote(EncodeURIComponent(css)) + ");\n")
	b.WriteString("document.head.append(element);\n")
	b.WriteString("\n")
	b.WriteString("/* initialize typescript objects */\n")
	b.WriteString(js)
	return b.String()
}
