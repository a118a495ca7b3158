package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Tail returns the last n elements of slice, or nil if it holds fewer.
func Tail[T any](slice []T, n int) []T {
	if n < 0 || len(slice) < n {
		return nil
	}
	return slice[len(slice)-n:]
}
