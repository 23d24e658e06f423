package responder

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyBuilderAllocatesFreshFrames(t *testing.T) {
	echo := []byte("original packet bytes")
	b := newReply(tunPrefix).
		From(netip.MustParseAddr("fd00::1")).
		To(netip.MustParseAddr("fd00::2")).
		Echo(echo)

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	first[len(first)-1] ^= 0xff
	assert.NotEqual(t, first, second)
	assert.Equal(t, []byte("original packet bytes"), echo)
}

func TestReplyBuilderCheckPanicsOnSizingBugs(t *testing.T) {
	b := newReply(tunPrefix).Echo(make([]byte, 10))
	assert.Panics(t, func() { b.check(make([]byte, MinFrameLen+icmpFixedLen+9)) })
}
