package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("Beijing")
	require.True(t, ok)
	require.InDelta(t, 39.9042, p.Lat, 1e-9)
	require.InDelta(t, 116.4074, p.Lon, 1e-9)

	_, ok = Lookup("Atlantis")
	require.False(t, ok)
}

func TestLookup_UnknownSentinelIsValid(t *testing.T) {
	p, ok := Lookup("Unknown")
	require.True(t, ok)
	require.InDelta(t, 35.8617, p.Lat, 1e-9)
}
