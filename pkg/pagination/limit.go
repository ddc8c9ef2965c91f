package pagination

import "strconv"

// DefaultLimit is the result size when no limit is given.
const DefaultLimit = 5

// MaxLimit is the largest result size served.
const MaxLimit = 50

// ParseLimit reads a limit query value. Empty means DefaultLimit and numbers
// outside [1, MaxLimit] are clamped.
func ParseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return Clamp(n), nil
}

func Clamp(n int) int {
	return max(1, min(n, MaxLimit))
}
