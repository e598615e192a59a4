package postgres

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeCodec_SmallPayloadStaysPlain(t *testing.T) {
	codec, err := newChangeCodec(64)
	require.NoError(t, err)

	raw := []byte(`{"qty":{"old":0,"new":10}}`)
	plain, compressed, algo := codec.encode(raw)

	assert.Equal(t, CompressionNone, algo)
	assert.Nil(t, compressed)
	assert.JSONEq(t, string(raw), string(plain))

	out, err := codec.decode(plain, compressed, algo)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestChangeCodec_LargePayloadRoundTrips(t *testing.T) {
	codec, err := newChangeCodec(64)
	require.NoError(t, err)

	payload := map[string]any{"note": string(bytes.Repeat([]byte("a"), 1024))}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	plain, compressed, algo := codec.encode(raw)
	assert.Equal(t, CompressionZstd, algo)
	assert.Nil(t, plain)
	assert.Less(t, len(compressed), len(raw))

	out, err := codec.decode(plain, compressed, algo)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestChangeCodec_DefaultThreshold(t *testing.T) {
	codec, err := newChangeCodec(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCompressThreshold, codec.threshold)
}
