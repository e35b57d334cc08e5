// Package safeconv converts between integer types where the sign or range
// is known from context, such as file sizes reported by the OS.
package safeconv

// Int64ToUint64 converts a size to uint64, clamping negatives to zero.
func Int64ToUint64(v int64) uint64 {
	if v < 0 {
		return 0
	}

	return uint64(v)
}

// IntToUint64 converts a length to uint64, clamping negatives to zero.
func IntToUint64(v int) uint64 {
	if v < 0 {
		return 0
	}

	return uint64(v)
}
