package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		data     []byte
		expected float64
		wantErr  bool
	}{
		{
			name:     "uint8 plain",
			format:   Uint8,
			data:     []byte{0xC8},
			expected: 200,
		},
		{
			name:     "uint16 hundredths",
			format:   Uint16Hundredths,
			data:     []byte{0xE8, 0x03},
			expected: 10.0,
		},
		{
			name:     "int16 tenths positive",
			format:   Int16Tenths,
			data:     []byte{0x64, 0x00},
			expected: 10.0,
		},
		{
			name:     "int16 tenths negative",
			format:   Int16Tenths,
			data:     []byte{0x9C, 0xFF}, // -100
			expected: -10.0,
		},
		{
			name:     "int16 plain negative",
			format:   Int16,
			data:     []byte{0xFF, 0xFF},
			expected: -1,
		},
		{
			name:     "uint32 max",
			format:   Uint32,
			data:     []byte{0xFF, 0xFF, 0xFF, 0xFF},
			expected: float64(uint32(0xFFFFFFFF)),
		},
		{
			name:    "truncated uint16",
			format:  Uint16Hundredths,
			data:    []byte{0xE8},
			wantErr: true,
		},
		{
			name:    "truncated empty",
			format:  Uint8,
			data:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			v, err := Decode(r, tt.format)

			if tt.wantErr {
				var truncated *TruncatedError
				require.ErrorAs(t, err, &truncated)
				assert.Equal(t, tt.format.Width, truncated.Wanted)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
			assert.Zero(t, r.Len(), "decode must consume exactly the format width")
		})
	}
}

func TestDecode_ConsumesExactWidth(t *testing.T) {
	// Two values back to back; the first decode must not eat the second.
	r := bytes.NewReader([]byte{0x01, 0x00, 0x02, 0x00})

	first, err := Decode(r, Int16)
	require.NoError(t, err)

	second, err := Decode(r, Int16)
	require.NoError(t, err)

	assert.Equal(t, 1.0, first)
	assert.Equal(t, 2.0, second)
}

func TestDecodeUint32(t *testing.T) {
	r := bytes.NewReader([]byte{0x78, 0x56, 0x34, 0x12})
	v, err := DecodeUint32(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	_, err = DecodeUint32(bytes.NewReader([]byte{0x01, 0x02}))
	var truncated *TruncatedError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, 4, truncated.Wanted)
	assert.Equal(t, 2, truncated.Got)
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		values []float64
	}{
		{"uint8", Uint8, []float64{0, 1, 40, 200, 255}},
		{"uint16 hundredths", Uint16Hundredths, []float64{0, 0.01, 10.0, 25.5, 655.35}},
		{"int16 tenths", Int16Tenths, []float64{-3276.8, -10.0, -0.1, 0, 0.1, 15.5, 3276.7}},
		{"int16", Int16, []float64{-32768, -1, 0, 100, 32767}},
		{"uint32", Uint32, []float64{0, 1, 65536}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.values {
				var buf bytes.Buffer
				require.NoError(t, Encode(&buf, tt.format, v))
				require.Equal(t, tt.format.Width, buf.Len())

				got, err := Decode(bytes.NewReader(buf.Bytes()), tt.format)
				require.NoError(t, err)
				assert.Equal(t, v, got, "round-trip of %v", v)
			}
		})
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		value  float64
	}{
		{"uint8 negative", Uint8, -1},
		{"uint8 overflow", Uint8, 256},
		{"int16 overflow", Int16, 32768},
		{"int16 underflow", Int16, -32769},
		{"uint16 hundredths overflow", Uint16Hundredths, 655.36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, Encode(&buf, tt.format, tt.value))
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "u4", Uint32.String())
	assert.Equal(t, "u2.2", Uint16Hundredths.String())
	assert.Equal(t, "s2.1", Int16Tenths.String())
	assert.Equal(t, "s2", Int16.String())
	assert.Equal(t, "u1", Uint8.String())
}

func TestFormat_InvalidWidth(t *testing.T) {
	bad := Format{Width: 3}

	_, err := Decode(bytes.NewReader([]byte{1, 2, 3}), bad)
	assert.Error(t, err)

	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, bad, 0))
}
