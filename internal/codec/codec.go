// Package codec implements the little-endian fixed-point numeric formats
// used by FTMS characteristic values. A wire value is an integer of 1, 2 or
// 4 bytes that represents a real number after division by a power of ten.
package codec

import (
	"bytes"
	"fmt"
	"math"
)

// Format describes a single fixed-point wire format.
type Format struct {
	Signed   bool
	Width    int // bytes: 1, 2 or 4
	Exponent int // decimal places: value = raw * 10^-Exponent
}

// Predeclared formats used by the FTMS capability characteristics.
var (
	// Uint32 is the plain 32-bit field format used by feature bitfields.
	Uint32 = Format{Width: 4}

	// Uint16Hundredths encodes speed values in units of 0.01.
	Uint16Hundredths = Format{Width: 2, Exponent: 2}

	// Int16Tenths encodes inclination and resistance values in units of 0.1.
	Int16Tenths = Format{Signed: true, Width: 2, Exponent: 1}

	// Int16 encodes power values as plain signed integers.
	Int16 = Format{Signed: true, Width: 2}

	// Uint8 encodes heart rate values as plain unsigned bytes.
	Uint8 = Format{Width: 1}
)

// TruncatedError reports a buffer with fewer bytes than the format requires.
type TruncatedError struct {
	Wanted int
	Got    int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated buffer: need %d bytes, %d available", e.Wanted, e.Got)
}

// String returns a compact format code, e.g. "u2.2" for an unsigned 16-bit
// value with two decimal places, "s2" for a plain signed 16-bit value.
func (f Format) String() string {
	sign := "u"
	if f.Signed {
		sign = "s"
	}
	if f.Exponent == 0 {
		return fmt.Sprintf("%s%d", sign, f.Width)
	}
	return fmt.Sprintf("%s%d.%d", sign, f.Width, f.Exponent)
}

func (f Format) validate() error {
	switch f.Width {
	case 1, 2, 4:
		return nil
	default:
		return fmt.Errorf("unsupported format width %d", f.Width)
	}
}

// scale returns the base-10 divisor for the format.
func (f Format) scale() float64 {
	return math.Pow10(f.Exponent)
}

// Decode consumes exactly f.Width bytes from r and returns the scaled value.
// Returns a TruncatedError if fewer bytes remain.
func Decode(r *bytes.Reader, f Format) (float64, error) {
	if err := f.validate(); err != nil {
		return 0, err
	}

	raw, err := readRaw(r, f.Width)
	if err != nil {
		return 0, err
	}

	if !f.Signed {
		return float64(raw) / f.scale(), nil
	}

	// Sign-extend from the format width to 32 bits.
	shift := uint(32 - 8*f.Width)
	return float64(int32(raw<<shift)>>shift) / f.scale(), nil
}

// DecodeUint32 consumes a plain little-endian 32-bit unsigned integer.
func DecodeUint32(r *bytes.Reader) (uint32, error) {
	return readRaw(r, 4)
}

// Encode appends v to w in the given format. It is the exact inverse of
// Decode for values representable at the format's scale and width.
func Encode(w *bytes.Buffer, f Format, v float64) error {
	if err := f.validate(); err != nil {
		return err
	}

	scaled := int64(math.Round(v * f.scale()))

	bits := uint(8 * f.Width)
	if f.Signed {
		if min, max := -(int64(1) << (bits - 1)), int64(1)<<(bits-1)-1; scaled < min || scaled > max {
			return fmt.Errorf("value %v does not fit format %s", v, f)
		}
	} else {
		if max := int64(1)<<bits - 1; scaled < 0 || scaled > max {
			return fmt.Errorf("value %v does not fit format %s", v, f)
		}
	}

	// Low f.Width bytes of the two's complement representation, little-endian.
	u := uint32(scaled)
	for i := 0; i < f.Width; i++ {
		w.WriteByte(byte(u >> (8 * i)))
	}
	return nil
}

// readRaw reads width little-endian bytes as an unsigned integer.
func readRaw(r *bytes.Reader, width int) (uint32, error) {
	if r.Len() < width {
		return 0, &TruncatedError{Wanted: width, Got: r.Len()}
	}

	var raw uint32
	for i := 0; i < width; i++ {
		b, _ := r.ReadByte()
		raw |= uint32(b) << (8 * i)
	}
	return raw, nil
}
