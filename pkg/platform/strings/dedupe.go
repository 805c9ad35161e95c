// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// SplitList splits a separated list, trimming whitespace and dropping empty
// and repeated entries. Order is preserved. An input with no entries yields nil.
//
// Example:
//
//	SplitList(" k1:9092, k2:9092,,k1:9092", ",")
//	// Returns: []string{"k1:9092", "k2:9092"}
func SplitList(value, sep string) []string {
	return DedupeAndTrim(strings.Split(value, sep))
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	var result []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	return result
}
