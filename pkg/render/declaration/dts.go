// Package declaration renders TypeScript declarations for the runtime module.
//
// The declarations describe the same icon set as the stylesheet and the
// runtime table: a string-literal union of every class, an enum keyed by
// normalized identifier, and the ambient types of the remaining exports.
// With Options.Module set the whole body is wrapped in
// declare module "<ModulePrefix><name>" { ... } so a single .d.ts file can
// describe a module that only exists at build time.
package declaration

import (
	"fmt"
	"strings"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/render"
	"github.com/matzehuels/spritetower/pkg/render/runtime"
)

// Defaults for empty Options fields.
const (
	DefaultClassUnionName = "SpriteCssClass"
	DefaultModulePrefix   = "svg-sprites/"
)

// Options controls the generated declaration names.
type Options struct {
	EnumName       string
	ClassUnionName string
	Module         bool
	ModulePrefix   string
	ClassPrefix    string
}

// Render returns the declaration text for a. moduleName is the configuration
// name used for the module block; sourceDirLabel only appears in the header.
func Render(a *atlas.Atlas, opts Options, moduleName, sourceDirLabel string) string {
	opts = withDefaults(opts)

	var b strings.Builder
	b.WriteString("/*\n")
	b.WriteString(" * DO NOT MODIFY THIS FILE!\n")
	b.WriteString(" *\n")
	b.WriteString(" * This file has been auto generated by spritetower.\n")
	fmt.Fprintf(&b, " * Sprite source directory: %s\n", sourceDirLabel)
	fmt.Fprintf(&b, " * Sprite count: %d\n", a.Len())
	b.WriteString(" */\n")

	body := bodyLines(a, opts)
	if !opts.Module {
		b.WriteString(strings.Join(body, "\n"))
		b.WriteByte('\n')
		return b.String()
	}

	fmt.Fprintf(&b, "declare module %s {\n", render.Quote(opts.ModulePrefix+moduleName))
	for _, line := range body {
		if line != "" {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

func withDefaults(opts Options) Options {
	if opts.EnumName == "" {
		opts.EnumName = runtime.DefaultEnumName
	}
	if opts.ClassUnionName == "" {
		opts.ClassUnionName = DefaultClassUnionName
	}
	if opts.ModulePrefix == "" {
		opts.ModulePrefix = DefaultModulePrefix
	}
	return opts
}

func bodyLines(a *atlas.Atlas, opts Options) []string {
	members := runtime.Members(a, opts.ClassPrefix)

	union := "never"
	if len(members) > 0 {
		literals := make([]string, len(members))
		for i, m := range members {
			literals[i] = render.Quote(m.Class)
		}
		union = strings.Join(literals, " | ")
	}

	lines := []string{
		fmt.Sprintf("export type %s = %s;", opts.ClassUnionName, union),
		"",
		fmt.Sprintf("export enum %s {", opts.EnumName),
	}
	for _, m := range members {
		lines = append(lines, fmt.Sprintf("  %s = %s,", m.Identifier, render.Quote(m.Class)))
	}
	return append(lines,
		"}",
		"",
		"export const spriteEntries: {",
		"  id: string;",
		"  className: string;",
		"  width: number;",
		"  height: number;",
		"  xOffset: number;",
		"  yOffset: number;",
		"}[];",
		"",
		"export const spriteUrl: string;",
		"export const classList: string[];",
		"",
		"export const spriteWidth: number;",
		"export const spriteHeight: number;",
	)
}
