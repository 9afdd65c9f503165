package ftms

import "fmt"

// UndefinedFlagError reports a capability bitfield with a bit set outside
// its defined symbol set. Reserved FTMS bits are guaranteed zero, so an
// unexpected bit means corruption or a protocol revision this package does
// not understand; it is never masked away.
type UndefinedFlagError struct {
	Field     string // "features" or "settings"
	Raw       uint32
	Undefined uint32 // the offending bits
}

func (e *UndefinedFlagError) Error() string {
	return fmt.Sprintf("undefined %s bits 0x%08X in value 0x%08X", e.Field, e.Undefined, e.Raw)
}

// TrailingDataError reports leftover bytes after a characteristic value was
// fully decoded. The capability layouts are exact-length, so a remainder
// indicates a format mismatch.
type TrailingDataError struct {
	Value     string // which characteristic value was being decoded
	Remaining int
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("%d trailing bytes after %s value", e.Remaining, e.Value)
}
