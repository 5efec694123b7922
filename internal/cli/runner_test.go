package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// memOpts keeps one-shot commands off the filesystem.
var memOpts = Options{StoreKind: "mem", Theme: "mono"}

func TestRun_Usage(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"unknown subcommand", []string{"bogus"}},
		{"add without title", []string{"add"}},
		{"done without index", []string{"done"}},
		{"done non-numeric", []string{"done", "two"}},
		{"rm extra args", []string{"rm", "1", "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 2, Run(tc.args, memOpts))
		})
	}
}

func TestRun_Help(t *testing.T) {
	assert.Equal(t, 0, Run([]string{"help"}, memOpts))
}

func TestRun_OneShotsAgainstMemStore(t *testing.T) {
	// Each one-shot gets a fresh volatile store, so mutating commands
	// that reference prior state report out-of-range.
	assert.Equal(t, 0, Run([]string{"add", "Buy", "milk"}, memOpts))
	assert.Equal(t, 0, Run([]string{"ls"}, memOpts))
	assert.Equal(t, 2, Run([]string{"done", "1"}, memOpts), "volatile store is empty again")
	assert.Equal(t, 2, Run([]string{"rm", "99"}, memOpts))
}

func TestRun_AddRejectsWhitespaceTitle(t *testing.T) {
	assert.Equal(t, 2, Run([]string{"add", "   "}, memOpts))
}
