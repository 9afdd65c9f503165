package gatt

import "strings"

// bleBaseSuffix is the tail of the Bluetooth SIG base UUID
// (0000xxxx-0000-1000-8000-00805f9b34fb) once dashes are stripped.
const bleBaseSuffix = "0000" + "1000" + "8000" + "00805f9b34fb"

// NormalizeUUID converts a UUID string to the lookup form used by this
// package (lowercase, no dashes). Also strips a 0x prefix if present
// (e.g., "0x2ACC" -> "2acc"). For full 128-bit UUIDs in the Bluetooth SIG
// base format, extracts the 16-bit short form.
func NormalizeUUID(uuid string) string {
	u := strings.ToLower(strings.TrimSpace(uuid))
	u = strings.TrimPrefix(u, "0x")
	u = strings.ReplaceAll(u, "-", "")

	if len(u) == 32 && strings.HasPrefix(u, "0000") && strings.HasSuffix(u, bleBaseSuffix) {
		return u[4:8]
	}
	return u
}
