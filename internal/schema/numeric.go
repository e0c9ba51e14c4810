package schema

import (
	"math"
	"strconv"
)

func itoa(n int64) string  { return strconv.FormatInt(n, 10) }
func utoa(n uint64) string { return strconv.FormatUint(n, 10) }

func posInf() float64 { return math.Inf(1) }
func negInf() float64 { return math.Inf(-1) }
func nanVal() float64 { return math.NaN() }

// formatFloat renders a float64 the way the core schema expects plain
// scalars to read back: ".inf"/"-.inf"/".nan" for the special values,
// otherwise the shortest round-tripping decimal representation.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
