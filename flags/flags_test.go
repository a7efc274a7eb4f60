package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Flags{
		{},
		{HasZ: true},
		{HasM: true},
		{HasZ: true, HasM: true},
		{HasBBox: true, Geodetic: true},
		{Extended: true, Version: 1},
		{HasZ: true, HasM: true, HasBBox: true, Extended: true, Version: 3, Geodetic: true},
	}

	for _, want := range cases {
		b := Encode(want)
		got := Decode(b)

		require.Equal(t, want.HasZ, got.HasZ)
		require.Equal(t, want.HasM, got.HasM)
		require.Equal(t, want.Geodetic, got.Geodetic)
		require.Equal(t, want.HasBBox, got.HasBBox)
		require.Equal(t, want.Extended, got.Extended)
		require.Equal(t, want.Version, got.Version)
	}
}

func TestExtFlagsRoundTrip(t *testing.T) {
	want := Flags{SolidRing: true, HasHash: true}
	ext := EncodeExt(want)
	got := DecodeExt(ext)

	require.True(t, got.SolidRing)
	require.True(t, got.HasHash)
	require.False(t, got.CheckedOK)
	require.False(t, got.IsValidFlag)
}

func TestNdims(t *testing.T) {
	require.Equal(t, 2, Ndims(Flags{}))
	require.Equal(t, 3, Ndims(Flags{HasZ: true}))
	require.Equal(t, 3, Ndims(Flags{HasM: true}))
	require.Equal(t, 4, Ndims(Flags{HasZ: true, HasM: true}))
}

func TestNdimsBoxGeodeticAlwaysThree(t *testing.T) {
	require.Equal(t, 3, NdimsBox(Flags{Geodetic: true}))
	require.Equal(t, 3, NdimsBox(Flags{Geodetic: true, HasZ: true, HasM: true}))
	require.Equal(t, 2, NdimsBox(Flags{}))
	require.Equal(t, 4, NdimsBox(Flags{HasZ: true, HasM: true}))
}

func TestHeaderSize(t *testing.T) {
	require.Equal(t, 8, HeaderSize(Flags{}))
	require.Equal(t, 16, HeaderSize(Flags{Extended: true}))
	require.Equal(t, 8+2*2*4, HeaderSize(Flags{HasBBox: true}))
	require.Equal(t, 8+8+2*4*4, HeaderSize(Flags{Extended: true, HasBBox: true, HasZ: true, HasM: true}))
}

func TestSRIDPackUnpack(t *testing.T) {
	for _, srid := range []int32{0, 1, 4326, 900913, 1048575, -1, -100} {
		packed := PackSRID(srid)
		got := UnpackSRID(packed)

		if srid >= 0 {
			require.Equal(t, srid, got)
		} else {
			// Negative SRIDs round-trip through the 21-bit signed field.
			require.Equal(t, srid, got)
		}
	}
}

func TestValidateExtendedRejectsUnknownBits(t *testing.T) {
	require.NoError(t, ValidateExtended(ExtSolid|ExtHasHash))
	require.Error(t, ValidateExtended(1<<10))
}
