package utils

import "fmt"

// ByteFmt renders a byte count for humans.
func ByteFmt(bytes int64) string {
	val := float64(bytes)
	suffixes := []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}
	for val > 1024 {
		val /= 1024
		suffixes = suffixes[1:]
	}
	return fmt.Sprintf("%0.02f %s", val, suffixes[0])
}
