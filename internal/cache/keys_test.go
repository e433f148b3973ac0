package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySearchUppercases(t *testing.T) {
	assert.Equal(t, "search:NDLS:BPL", KeySearch("ndls", "bpl"))
	assert.Equal(t, "search:NDLS:BPL", KeySearch("NDLS", "BPL"))
}

func TestKeySchedule(t *testing.T) {
	assert.Equal(t, "schedule:12002", KeySchedule("12002"))
}

func TestGzipRoundTrip(t *testing.T) {
	payload := []byte(`{"trains":[{"train_no":"12002"}]}`)

	compressed, err := gzipCompress(payload)
	assert.NoError(t, err)

	raw, err := gzipDecompress(compressed)
	assert.NoError(t, err)
	assert.Equal(t, payload, raw)
}
