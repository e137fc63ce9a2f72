package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // table driven test
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "positional file",
			args: []string{"prog", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Hz: emulator.DefaultHz},
			},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Hz: emulator.DefaultHz},
			},
		},
		{
			name: "all flags",
			args: []string{"prog", "-hz", "1200", "-cycles", "500", "-headless", "-strict",
				"-legacy-vf", "-trace", "-debug", "-q", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags: options.Flags{
					Hz:       1200,
					Cycles:   500,
					Headless: true,
					Debug:    true,
					Quiet:    true,
				},
				EmulationFlags: options.EmulationFlags{
					Strict:   true,
					LegacyVF: true,
					Trace:    true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no file", []string{"prog"}, "no ROM file given"},
		{"unknown flag", []string{"prog", "-unknown", "pong.ch8"}, "invalid arguments"},
		{"flag after file", []string{"prog", "pong.ch8", "-debug"}, "found after ROM file"},
		{"two files", []string{"prog", "a.ch8", "b.ch8"}, "only one ROM file"},
		{"file twice", []string{"prog", "-i", "a.ch8", "b.ch8"}, "both with -i and as argument"},
		{"headless without limit", []string{"prog", "-headless", "a.ch8"}, "requires -cycles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestParseFlagsInvalidRate(t *testing.T) {
	for _, hz := range []string{"0", "100", "1000"} {
		_, err := ParseFlags([]string{"prog", "-hz", hz, "pong.ch8"})
		assert.True(t, errors.Is(err, timer.ErrInvalidRate), "hz %s", hz)
	}
}

func TestParseDisasmFlags(t *testing.T) {
	got, err := ParseDisasmFlags([]string{"prog", "-o", "pong.asm", "-q", "pong.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, options.Disassembler{Input: "pong.ch8", Output: "pong.asm", Quiet: true}, got)

	_, err = ParseDisasmFlags([]string{"prog"})
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}
