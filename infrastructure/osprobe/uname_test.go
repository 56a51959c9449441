//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package osprobe

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnameProbe(t *testing.T) {
	info, err := NewUnameProbe().Probe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Label(runtime.GOOS), info.Label)
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, info.Version, info.Kernel)
	assert.NotContains(t, info.Version, "\x00")
	assert.Equal(t, sourceUname, info.Source)
}

func TestUnameProbe_Deterministic(t *testing.T) {
	p := NewUnameProbe()
	first, err := p.Probe(context.Background())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := p.Probe(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
