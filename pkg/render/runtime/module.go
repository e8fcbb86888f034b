// Package runtime renders the CommonJS module that exposes the atlas to
// application code.
//
// The module exports a frozen two-way enum (identifier to class name and back),
// one frozen record per icon, the atlas URL, the class list and the atlas
// size:
//
//	const { Icons, spriteUrl, spriteEntries } = require("svg-sprites/client");
//	el.className = "icon " + Icons.ArrowDown;
package runtime

import (
	"fmt"
	"strings"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/naming"
	"github.com/matzehuels/spritetower/pkg/render"
)

// DefaultEnumName is used when Options.EnumName is empty.
const DefaultEnumName = "SpriteEnum"

// Options controls the names used in the generated module.
type Options struct {
	EnumName    string
	ClassPrefix string
}

// Member is one enum entry: an identifier and the class it stands for.
type Member struct {
	Identifier string
	Class      string
}

// Members returns the enum entries of a in atlas order.
func Members(a *atlas.Atlas, classPrefix string) []Member {
	members := make([]Member, len(a.Icons))
	for i, ic := range a.Icons {
		members[i] = Member{Identifier: naming.Identifier(ic.Name), Class: classPrefix + ic.Name}
	}
	return members
}

// Render returns the module source for a. The atlas URL is embedded
// percent-encoded and decoded when the module loads.
func Render(a *atlas.Atlas, opts Options, atlasURL string) string {
	enumName := opts.EnumName
	if enumName == "" {
		enumName = DefaultEnumName
	}
	q := render.Quote

	var lines []string
	add := func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	add("let EnumClassList = {};")
	for _, m := range Members(a, opts.ClassPrefix) {
		add("EnumClassList[EnumClassList[%s] = %s] = %s;", q(m.Identifier), q(m.Class), q(m.Identifier))
	}

	add("")
	add("let SpriteEntries = [")
	for _, ic := range a.Icons {
		add("  Object.freeze({")
		add("    id: %s,", q(ic.Name))
		add("    className: %s,", q(opts.ClassPrefix+ic.Name))
		add("    width: %s,", render.Num(ic.Width()))
		add("    height: %s,", render.Num(ic.Height()))
		add("    xOffset: %s,", render.Num(ic.X))
		add("    yOffset: %s,", render.Num(ic.Y))
		add("  }),")
	}
	add("];")

	add("")
	add("let SpriteUrl = decodeURIComponent(%s);", q(EncodeURIComponent(atlasURL)))

	classes := make([]string, len(a.Icons))
	for i, ic := range a.Icons {
		classes[i] = q(opts.ClassPrefix + ic.Name)
	}
	add("")
	add("let ClassList = [%s];", strings.Join(classes, ", "))

	add("")
	add(`Object.defineProperty(exports, "__esModule", { value: true });`)
	add("exports.%s = Object.freeze(EnumClassList);", enumName)
	add("exports.spriteUrl = SpriteUrl;")
	add("exports.classList = Object.freeze(ClassList);")
	add("exports.spriteEntries = Object.freeze(SpriteEntries);")
	add("exports.spriteWidth = %s;", render.Num(a.Width))
	add("exports.spriteHeight = %s;", render.Num(a.Height))

	return strings.Join(lines, "\n") + "\n"
}
