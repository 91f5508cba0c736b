package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFileScoped(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Facts
	}{
		{
			name: "save confirmation",
			raw:  "Saved 1 file(s)\n",
			want: Facts{Repaired: true},
		},
		{
			name: "save confirmation with path",
			raw:  "Saved '/etc/hosts'\n",
			want: Facts{Repaired: true},
		},
		{
			name: "clean error listing",
			raw:  "  (no errors)\n",
			want: Facts{Kept: true},
		},
		{
			name: "error line",
			raw:  "error: invalid path\n",
			want: Facts{Error: true},
		},
		{
			name: "error line mid-output",
			raw:  "loading lenses\nerror: lens not found\n",
			want: Facts{Error: true},
		},
		{
			name: "save followed by error keeps both facts",
			raw:  "Saved '/etc/hosts'\nerror: lens validation\n",
			want: Facts{Repaired: true, Error: true},
		},
		{
			name: "unrecognized output trips the failsafe",
			raw:  "garbage unrecognized text",
			want: Facts{Error: true},
		},
		{
			name: "empty output trips the failsafe when a listing was requested",
			raw:  "",
			want: Facts{Error: true},
		},
		{
			name: "whitespace output trips the failsafe when a listing was requested",
			raw:  " \n",
			want: Facts{Error: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Output([]byte(tt.raw), true))
		})
	}
}

func TestOutputPathOnly(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Facts
	}{
		{
			name: "empty output means nothing went wrong",
			raw:  "",
			want: Facts{Kept: true},
		},
		{
			name: "whitespace-only output means nothing went wrong",
			raw:  " ",
			want: Facts{Kept: true},
		},
		{
			name: "save confirmation",
			raw:  "Saved 1 file(s)\n",
			want: Facts{Repaired: true},
		},
		{
			name: "error line",
			raw:  "error: invalid path\n",
			want: Facts{Error: true},
		},
		{
			name: "no-errors marker is not a path-only signal",
			raw:  "  (no errors)\n",
			want: Facts{Error: true},
		},
		{
			name: "unrecognized output trips the failsafe",
			raw:  "something unexpected",
			want: Facts{Error: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Output([]byte(tt.raw), false))
		})
	}
}

// Totality: every input yields at least one fact, and the failsafe sets
// Error whenever neither Kept nor Repaired matched.
func TestOutputIsTotal(t *testing.T) {
	inputs := []string{
		"", " ", "\n\t\n", "Saved", "saved lowercase is not a save",
		"(no errors)", "error:", "error: x", "\x00binary\xff", "多字节输出",
	}
	for _, raw := range inputs {
		for _, scoped := range []bool{true, false} {
			f := Output([]byte(raw), scoped)
			if !f.Kept && !f.Repaired {
				assert.True(t, f.Error,
					"failsafe must fire for %q (fileScoped=%v)", raw, scoped)
			}
			assert.True(t, f.Kept || f.Repaired || f.Error,
				"fact set must be non-empty for %q (fileScoped=%v)", raw, scoped)
		}
	}
}
