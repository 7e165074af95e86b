// Package format provides human-readable rendering helpers shared across services.
package format

import "fmt"

// Bytes formats a byte count as a human-readable size with one decimal.
func Bytes(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", value)
}
