package services

import "time"

// nowUTC returns the current time in UTC. All audit timestamps use it.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// uniqueStrings returns a slice containing only the unique strings from the
// input, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
