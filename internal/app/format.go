// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/relabs-tech/nmea_gga/internal/gps"
)

const notAvailable = "N/A"

var qualityNames = []string{
	"invalid",
	"GPS fix",
	"DGPS fix",
	"PPS fix",
	"RTK",
	"float RTK",
	"estimated",
	"manual input",
	"simulation",
}

func qualityName(q int) string {
	if q >= 0 && q < len(qualityNames) {
		return qualityNames[q]
	}
	return "unknown"
}

// formatCoordinate renders decimal degrees as degrees and decimal minutes,
// e.g. 53°21.6802' N.
func formatCoordinate(v float64, pos, neg string) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	hemi := pos
	if v < 0 {
		hemi = neg
		v = -v
	}
	deg := math.Floor(v)
	return fmt.Sprintf("%.0f°%.4f' %s", deg, (v-deg)*60, hemi)
}

func formatInt(v int) string {
	if v == gps.Unset {
		return notAvailable
	}
	return fmt.Sprintf("%d", v)
}

func formatFloat(v float64, format string) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	return fmt.Sprintf(format, v)
}

func formatTime(f gps.Fix) string {
	if !f.HasTime() {
		return notAvailable
	}
	return fmt.Sprintf("%02d:%02d:%02d UTC", f.Hour, f.Minute, f.Second)
}

// formatFix renders a fix as the multi-line report printed by the console.
func formatFix(f gps.Fix) string {
	quality := notAvailable
	if f.FixType != gps.Unset {
		quality = fmt.Sprintf("%d (%s)", f.FixType, qualityName(f.FixType))
	}

	var b strings.Builder
	b.WriteString("GGA Data:\n")
	fmt.Fprintf(&b, "- Time: %s\n", formatTime(f))
	fmt.Fprintf(&b, "- Latitude: %s\n", formatCoordinate(f.Latitude, "N", "S"))
	fmt.Fprintf(&b, "- Longitude: %s\n", formatCoordinate(f.Longitude, "E", "W"))
	fmt.Fprintf(&b, "- GPS Quality: %s\n", quality)
	fmt.Fprintf(&b, "- Number of Satellites: %s\n", formatInt(f.Satellites))
	fmt.Fprintf(&b, "- Horizontal Dilution of Precision: %s\n", formatFloat(f.HDOP, "%.2f"))
	fmt.Fprintf(&b, "- Altitude: %s\n", formatFloat(f.Altitude, "%.1f Meters"))
	fmt.Fprintf(&b, "- Height of Geoid above WGS84 Ellipsoid: %s\n", formatFloat(f.GeoidSeparation, "%.1f Meters"))
	return b.String()
}
