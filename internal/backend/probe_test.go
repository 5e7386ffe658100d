package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	payload := []byte(`{
		"format": {
			"filename": "talk/demo.webm",
			"duration": "125.480000",
			"bit_rate": "492032"
		}
	}`)

	dur, err := parseProbeOutput(payload)
	require.NoError(t, err)
	assert.InDelta(t, 125.48, dur, 1e-9)
}

func TestParseProbeOutputMissingDuration(t *testing.T) {
	_, err := parseProbeOutput([]byte(`{"format": {}}`))
	assert.Error(t, err)
}

func TestParseProbeOutputBadJSON(t *testing.T) {
	_, err := parseProbeOutput([]byte("not json"))
	assert.Error(t, err)

	_, err = parseProbeOutput([]byte(`{"format": {"duration": "soon"}}`))
	assert.Error(t, err)
}
