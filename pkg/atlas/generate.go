package atlas

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritetower/pkg/errors"
	"github.com/matzehuels/spritetower/pkg/naming"
	"github.com/matzehuels/spritetower/pkg/pack"
	"github.com/matzehuels/spritetower/pkg/svgdoc"
)

// DuplicatePolicy decides what happens when two files yield the same icon name.
type DuplicatePolicy string

const (
	// DuplicateReplace lets the later file replace the earlier one. The icon
	// keeps the slot of the first file and a DUPLICATE_NAME diagnostic is recorded.
	DuplicateReplace DuplicatePolicy = "replace"

	// DuplicateFail aborts generation with DUPLICATE_NAME.
	DuplicateFail DuplicatePolicy = "fail"
)

// ParseDuplicatePolicy parses a policy name. An empty name selects DuplicateReplace.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DuplicateReplace:
		return DuplicateReplace, nil
	case DuplicateFail:
		return DuplicateFail, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid duplicate policy %q (must be replace or fail)", s)
}

// Option configures Generate.
type Option func(*generator)

type generator struct {
	packer      pack.Packer
	duplicates  DuplicatePolicy
	concurrency int
}

// WithPacker sets the packing strategy (default pack.Skyline).
func WithPacker(p pack.Packer) Option {
	return func(g *generator) {
		if p != nil {
			g.packer = p
		}
	}
}

// WithDuplicatePolicy sets how duplicate icon names are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(g *generator) { g.duplicates = p }
}

// WithConcurrency bounds the number of documents parsed at once.
// Values below 1 select GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(g *generator) { g.concurrency = n }
}

func newGenerator(opts ...Option) generator {
	g := generator{
		packer:     pack.Skyline{},
		duplicates: DuplicateReplace,
	}
	for _, opt := range opts {
		opt(&g)
	}
	if g.concurrency < 1 {
		g.concurrency = runtime.GOMAXPROCS(0)
	}
	return g
}

// Generate loads every source file, packs the usable ones and returns the
// atlas together with one diagnostic per skipped or replaced file.
//
// Unusable documents never abort generation. The returned error is non-nil
// only when the context is cancelled, when duplicates are configured to fail,
// when two icon names normalize to the same identifier, or when the packer
// violates its invariants.
func Generate(ctx context.Context, files []SourceFile, opts ...Option) (*Atlas, []Diagnostic, error) {
	docs, diags, err := Load(ctx, files, opts...)
	if err != nil {
		return nil, nil, err
	}
	a, err := Pack(docs, opts...)
	if err != nil {
		return nil, nil, err
	}
	return a, diags, nil
}

// Load parses files and resolves duplicate names. The returned documents are
// in input order, one per distinct icon name.
func Load(ctx context.Context, files []SourceFile, opts ...Option) ([]*svgdoc.Document, []Diagnostic, error) {
	g := newGenerator(opts...)

	docs, loadErrs, err := g.load(ctx, files)
	if err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic
	var kept []*svgdoc.Document
	slot := make(map[string]int)

	for i, f := range files {
		if loadErrs[i] != nil {
			if !errors.IsSkip(loadErrs[i]) {
				return nil, nil, loadErrs[i]
			}
			diags = append(diags, diagnosticFor(f.Name, loadErrs[i]))
			continue
		}

		doc := docs[i]
		idx, dup := slot[doc.Name]
		if !dup {
			slot[doc.Name] = len(kept)
			kept = append(kept, doc)
			continue
		}
		if g.duplicates == DuplicateFail {
			return nil, nil, errors.New(errors.ErrCodeDuplicateName, "icon %q is defined by more than one file (%s)", doc.Name, f.Name)
		}
		kept[idx] = doc
		diags = append(diags, Diagnostic{
			File:    f.Name,
			Code:    errors.ErrCodeDuplicateName,
			Message: fmt.Sprintf("icon %q replaces an earlier file with the same name", doc.Name),
		})
	}
	return kept, diags, nil
}

// Pack places docs with the configured packer. Icon names must map to
// distinct identifiers.
func Pack(docs []*svgdoc.Document, opts ...Option) (*Atlas, error) {
	g := newGenerator(opts...)

	if err := checkIdentifiers(docs); err != nil {
		return nil, err
	}

	boxes := make([]pack.Box, len(docs))
	for i, d := range docs {
		boxes[i] = pack.Box{W: d.Width(), H: d.Height()}
	}
	res := g.packer.Pack(boxes)
	if err := pack.Validate(boxes, res); err != nil {
		return nil, fmt.Errorf("%s packer: %w", g.packer.Name(), err)
	}

	a := &Atlas{
		Icons:  make([]PlacedIcon, len(docs)),
		Width:  res.Width,
		Height: res.Height,
		Packer: g.packer.Name(),
	}
	for i, d := range docs {
		a.Icons[i] = PlacedIcon{Document: d, X: res.Positions[i].X, Y: res.Positions[i].Y}
	}
	return a, nil
}

// load parses files concurrently. Results are stored by index so the order of
// the input is preserved regardless of scheduling.
func (g generator) load(ctx context.Context, files []SourceFile) ([]*svgdoc.Document, []error, error) {
	docs := make([]*svgdoc.Document, len(files))
	errs := make([]error, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, f := range files {
		i, f := i, f
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			docs[i], errs[i] = svgdoc.Load(f.Name, f.Data)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return docs, errs, nil
}

func checkIdentifiers(docs []*svgdoc.Document) error {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	collisions := naming.Collisions(names)
	if len(collisions) == 0 {
		return nil
	}

	parts := make([]string, 0, len(collisions))
	for _, id := range naming.SortedKeys(collisions) {
		parts = append(parts, fmt.Sprintf("%s <- %s", id, strings.Join(collisions[id], ", ")))
	}
	return errors.New(errors.ErrCodeNameCollision, "icon names map to the same identifier: %s", strings.Join(parts, "; "))
}
