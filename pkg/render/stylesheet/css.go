// Package stylesheet renders CSS rules that crop single icons out of the
// composite atlas.
//
// Every [Rule] produces one base rule for its selector and one rule per icon:
//
//	.icon{display:inline-block;background:url("/sprite.svg") no-repeat;background-size:48px 80px;height:24px;width:24px}
//	.icon.client-add{background-position:0 0}
//	.icon.client-big{background-position:0 -48px;background-size:48px 80px;width:32px;height:32px}
//
// The base rule is sized for the canonical (most frequent) icon size. Icons
// of any other size carry their own width and height overrides.
package stylesheet

import (
	"fmt"
	"strings"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/render"
)

// Render returns the stylesheet for rules, concatenated in rule order.
func Render(a *atlas.Atlas, classPrefix, atlasURL string, rules ...Rule) string {
	var b strings.Builder
	for _, r := range rules {
		writeRule(&b, a, classPrefix, atlasURL, r)
	}
	return b.String()
}

func writeRule(b *strings.Builder, a *atlas.Atlas, classPrefix, atlasURL string, r Rule) {
	g := Resolve(a, r)
	u := string(g.Unit)
	length := func(v float64) string { return render.Length(v, u) }
	bgSize := length(g.X(a.Width)) + " " + length(g.Y(a.Height))

	fmt.Fprintf(b, "%s{display:inline-block;background:url(%s) no-repeat;background-size:%s;height:%s;width:%s}",
		r.Selector, render.CSSString(atlasURL), bgSize, length(g.Y(g.Canonical.H)), length(g.X(g.Canonical.W)))

	for _, ic := range a.Icons {
		fmt.Fprintf(b, "%s.%s%s{background-position:%s %s", r.Selector, classPrefix, ic.Name, length(-g.X(ic.X)), length(-g.Y(ic.Y)))
		if ic.Size() != g.Canonical {
			fmt.Fprintf(b, ";background-size:%s;width:%s;height:%s", bgSize, length(g.X(ic.Width())), length(g.Y(ic.Height())))
		}
		b.WriteByte('}')
	}
}
