//go:build linux

package frameio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenUnknownDriver(t *testing.T) {
	dev, err := Open("pcap", "ghost0")
	assert.Nil(t, dev)
	assert.EqualError(t, err, `unknown driver "pcap"`)
}

func TestWaterSendNeedsPrefix(t *testing.T) {
	w := &Water{}
	assert.Error(t, w.Send([]byte{0, 0}))
}
