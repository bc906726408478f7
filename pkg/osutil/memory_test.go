package osutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemoryLimit(t *testing.T) {
	for _, tc := range []struct {
		contents string
		limit    uint64
		ok       bool
	}{
		{"1073741824\n", 1073741824, true},
		{"max\n", 0, false},
		{"9223372036854771712", 0, false},
		{"0", 0, false},
		{"garbage", 0, false},
	} {
		limit, ok := parseMemoryLimit(tc.contents)
		assert.Equal(t, tc.ok, ok, tc.contents)
		assert.Equal(t, tc.limit, limit, tc.contents)
	}
}

func TestGetTotalMemory_CgroupLimit(t *testing.T) {
	dir := t.TempDir()

	limited := filepath.Join(dir, "limited")
	require.NoError(t, os.WriteFile(limited, []byte("1024\n"), 0o600))

	unlimited := filepath.Join(dir, "unlimited")
	require.NoError(t, os.WriteFile(unlimited, []byte("max\n"), 0o600))

	missing := filepath.Join(dir, "missing")

	assert.EqualValues(t, 1024, getTotalMemory(4096, []string{missing, limited}))
	assert.EqualValues(t, 4096, getTotalMemory(4096, []string{unlimited, limited}))
	assert.EqualValues(t, 4096, getTotalMemory(4096, []string{missing}))
	assert.EqualValues(t, 512, getTotalMemory(512, []string{limited}))

	assert.NotZero(t, GetTotalMemory())
}
