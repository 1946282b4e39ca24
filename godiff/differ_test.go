package godiff_test

import (
	"testing"

	"github.com/fwojciec/themecheck/godiff"
	"github.com/stretchr/testify/assert"
)

func TestDiffer_Diff(t *testing.T) {
	t.Parallel()

	d := godiff.NewDiffer()

	tests := []struct {
		name     string
		old      string
		new      string
		expected string
	}{
		{
			name:     "equal texts produce no output",
			old:      "a\nb\n",
			new:      "a\nb\n",
			expected: "",
		},
		{
			name:     "changed line",
			old:      "a\nb\nc\n",
			new:      "a\nB\nc\n",
			expected: "@@ line 2 @@\n-b\n+B\n",
		},
		{
			name:     "separate changes get separate headers",
			old:      "1\n2\n3\n4\n5\n",
			new:      "1\nX\n3\n4\nY\n",
			expected: "@@ line 2 @@\n-2\n+X\n@@ line 5 @@\n-5\n+Y\n",
		},
		{
			name:     "added lines",
			old:      "a\n",
			new:      "a\nb\nc\n",
			expected: "@@ line 2 @@\n+b\n+c\n",
		},
		{
			name:     "removed lines",
			old:      "a\nb\nc\n",
			new:      "a\n",
			expected: "@@ line 2 @@\n-b\n-c\n",
		},
		{
			name:     "missing final newline",
			old:      "a\nb",
			new:      "a\nc",
			expected: "@@ line 2 @@\n-b\n+c\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, d.Diff(tt.old, tt.new))
		})
	}
}
