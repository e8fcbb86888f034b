package stylesheet_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/render/stylesheet"
)

func ExampleRender() {
	a, _, _ := atlas.Generate(context.Background(), []atlas.SourceFile{
		{Name: "add.svg", Data: []byte(`<svg viewBox="0 0 16 16"/>`)},
		{Name: "remove.svg", Data: []byte(`<svg viewBox="0 0 16 16"/>`)},
	})

	fmt.Println(stylesheet.Render(a, "i-", "/s.svg", stylesheet.Rule{Selector: ".icon", Scale: 1, Unit: stylesheet.UnitPx}))
	// Output:
	// .icon{display:inline-block;background:url("/s.svg") no-repeat;background-size:16px 32px;height:16px;width:16px}.icon.i-add{background-position:0 0}.icon.i-remove{background-position:0 -16px}
}

func ExampleResolve() {
	a, _, _ := atlas.Generate(context.Background(), []atlas.SourceFile{
		{Name: "a.svg", Data: []byte(`<svg viewBox="0 0 20 10"/>`)},
	})

	g := stylesheet.Resolve(a, stylesheet.Rule{Selector: ".i", Scale: 2, Unit: stylesheet.UnitEm})
	fmt.Println(g.Canonical.W, g.Canonical.H, g.ScaleX, g.ScaleY)
	// Output:
	// 20 10 0.1 0.2
}
