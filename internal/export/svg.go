package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/springlab/internal/lattice"
)

const (
	massRadius = 3.0
	margin     = 20.0
	// speedScale maps mass speed onto the blue-to-red ramp.
	speedScale = 100.0
)

// SnapshotSVG renders the system's current state: springs as lines colored
// by stretch (white at rest, red extended, blue compressed) and masses as
// circles colored by speed. The viewBox is fitted to the mass positions.
func SnapshotSVG(sys *lattice.System) string {
	masses := sys.Masses()
	if len(masses) == 0 {
		return ""
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, m := range masses {
		minX = math.Min(minX, m.Position.X)
		maxX = math.Max(maxX, m.Position.X)
		minY = math.Min(minY, m.Position.Y)
		maxY = math.Max(maxY, m.Position.Y)
	}

	width := maxX - minX + 2*margin
	height := maxY - minY + 2*margin
	offX := minX - margin
	offY := minY - margin

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i := 0; i < sys.SpringCount(); i++ {
		v := sys.SpringAt(i)
		var stroke string
		if v.Stretch < 0 {
			stroke = rampHex([3]uint8{255, 255, 255}, [3]uint8{255, 64, 64}, -v.Stretch)
		} else {
			stroke = rampHex([3]uint8{255, 255, 255}, [3]uint8{64, 64, 255}, v.Stretch)
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>
`, v.First.X-offX, v.First.Y-offY, v.Second.X-offX, v.Second.Y-offY, stroke))
	}

	for _, m := range masses {
		fill := rampHex([3]uint8{64, 64, 255}, [3]uint8{255, 64, 64}, m.Velocity.Length()/speedScale)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>
`, m.Position.X-offX, m.Position.Y-offY, massRadius, fill))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// rampHex linearly interpolates between two RGB colors, clamping t to [0,1].
func rampHex(from, to [3]uint8, t float64) string {
	t = math.Max(0, math.Min(1, t))
	var out [3]uint8
	for i := range out {
		out[i] = uint8(float64(from[i]) + (float64(to[i])-float64(from[i]))*t)
	}
	return fmt.Sprintf("#%02x%02x%02x", out[0], out[1], out[2])
}
