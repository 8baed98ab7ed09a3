package market

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// FormatUSD renders large dollar amounts as $1.2T, $3.4B, $56M.
func FormatUSD(n float64) string {
	switch {
	case n >= 1e12:
		return fmt.Sprintf("$%.1fT", n/1e12)
	case n >= 1e9:
		return fmt.Sprintf("$%.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("$%.0fM", n/1e6)
	default:
		return fmt.Sprintf("$%.0f", n)
	}
}

// FormatCount renders large counts as 1.2B, 3.4M, 56K.
func FormatCount(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.0fK", n/1e3)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// PctChange returns the percent change from old to cur, 0 when old is 0.
func PctChange(cur, old float64) float64 {
	if old == 0 {
		return 0
	}
	return (cur - old) / old * 100
}

// Point is one vertex of a sparkline polyline.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sparkline scales data into a width x height box, y growing downwards with a 2px margin.
func Sparkline(data []float64, width, height float64) []Point {
	if len(data) == 0 {
		return nil
	}

	lo, hi := slices.Min(data), slices.Max(data)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	points := make([]Point, len(data))
	for i, v := range data {
		x := width
		if len(data) > 1 {
			x = float64(i) / float64(len(data)-1) * width
		}
		points[i] = Point{
			X: round2(x),
			Y: round2(height - (v-lo)/span*(height-4) - 2),
		}
	}
	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func signedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}
