package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/spritetower/pkg/pipeline"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		stats  pipeline.Stats
		cached bool
		want   []string
		absent []string
	}{
		{
			name:   "fresh",
			stats:  pipeline.Stats{Icons: 3, Width: 48, Height: 40, Fill: 0.8, Packer: "skyline"},
			want:   []string{"3 icons", "48×40", "80% fill", "skyline", iconFresh},
			absent: []string{"skipped"},
		},
		{
			name:   "cached with skipped files",
			stats:  pipeline.Stats{Icons: 2, Skipped: 1, Width: 24, Height: 48, Fill: 1, Packer: "potpack"},
			cached: true,
			want:   []string{"2 icons", "1 skipped", "100% fill", iconCached},
		},
		{
			name:   "empty",
			stats:  pipeline.Stats{},
			want:   []string{"0 icons", iconFresh},
			absent: []string{"fill", "×"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.stats, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Errorf("statsLine() = %q, missing %q", line, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(line, a) {
					t.Errorf("statsLine() = %q, should not contain %q", line, a)
				}
			}
		})
	}
}
