// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"math"
	"strconv"
	"strings"
)

// Field decoders. Each returns ok=false for an empty or malformed field;
// the assembler turns that into the sentinel.

// decodeTime parses hhmmss or hhmmss.sss. Fractional seconds are dropped.
func decodeTime(s string) (hour, minute, second int, ok bool) {
	if len(s) < 6 || !allDigits(s[:6]) {
		return 0, 0, 0, false
	}
	if rest := s[6:]; rest != "" {
		if rest[0] != '.' || !allDigits(rest[1:]) {
			return 0, 0, 0, false
		}
	}
	hour = twoDigits(s[0:2])
	minute = twoDigits(s[2:4])
	second = twoDigits(s[4:6])
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, false
	}
	return hour, minute, second, true
}

// decodeCoordinate parses ddmm.mmmm (latitude) or dddmm.mmmm (longitude)
// together with its hemisphere letter.
//
// degDigits is the maximum number of degree digits and limit the largest
// magnitude accepted. pos/neg are the hemisphere letters for a positive and
// negative result; any other letter rejects the coordinate.
func decodeCoordinate(field, hemi string, degDigits int, limit float64, pos, neg byte) (float64, bool) {
	if len(hemi) != 1 {
		return 0, false
	}
	var sign float64
	switch hemi[0] {
	case pos:
		sign = 1
	case neg:
		sign = -1
	default:
		return 0, false
	}

	intPart, frac, _ := strings.Cut(field, ".")
	if len(intPart) < 3 || len(intPart) > degDigits+2 || !allDigits(intPart) || !allDigits(frac) {
		return 0, false
	}

	// The last two integer digits are whole minutes.
	split := len(intPart) - 2
	deg, err := strconv.Atoi(intPart[:split])
	if err != nil {
		return 0, false
	}
	mins, err := strconv.ParseFloat(field[split:], 64)
	if err != nil || mins >= 60 {
		return 0, false
	}

	v := float64(deg) + mins/60.0
	if v > limit {
		return 0, false
	}
	return sign * v, true
}

func decodeLatitude(field, hemi string) (float64, bool) {
	return decodeCoordinate(field, hemi, 2, 90, 'N', 'S')
}

func decodeLongitude(field, hemi string) (float64, bool) {
	return decodeCoordinate(field, hemi, 3, 180, 'E', 'W')
}

// decodeInt parses a non-negative decimal integer that fits in an int32.
func decodeInt(s string) (int, bool) {
	if s == "" || !allDigits(s) {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// decodeFloat parses [+-]digits[.digits]. Exponents, inf and nan are rejected.
func decodeFloat(s string) (float64, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if i != len(s) || digits == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func twoDigits(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
