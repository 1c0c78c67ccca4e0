// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import "math"

// Parse decodes a GGA sentence such as
//
//	$GPGGA,092750.000,5321.6802,N,00630.3372,W,1,8,1.03,61.7,M,55.2,M,,*76
//
// Parse never fails: every field that is absent or cannot be decoded is set
// to its sentinel, so garbage input yields EmptyFix(). The checksum is not
// enforced; use ParseVerified to inspect it.
func Parse(line string) Fix {
	fix, _ := ParseVerified(line)
	return fix
}

// ParseVerified is Parse plus the result of the checksum check. Callers that
// only trust checksummed data should drop fixes whose Checksum is not valid.
func ParseVerified(line string) (Fix, Checksum) {
	s := Tokenize(line)
	return assemble(&s), s.Checksum
}

func assemble(s *Sentence) Fix {
	fix := EmptyFix()
	if !s.IsGGA() {
		return fix
	}

	if h, m, sec, ok := decodeTime(s.Field(fieldTime)); ok {
		fix.Hour, fix.Minute, fix.Second = h, m, sec
	}
	if lat, ok := decodeLatitude(s.Field(fieldLat), s.Field(fieldNS)); ok {
		fix.Latitude = lat
	}
	if lon, ok := decodeLongitude(s.Field(fieldLon), s.Field(fieldEW)); ok {
		fix.Longitude = lon
	}
	if q, ok := decodeInt(s.Field(fieldQuality)); ok {
		fix.FixType = q
	}
	if n, ok := decodeInt(s.Field(fieldSatellites)); ok {
		fix.Satellites = n
	}
	if v, ok := decodeFloat(s.Field(fieldHDOP)); ok {
		fix.HDOP = v
	}
	// Units fields (M) are not checked.
	if v, ok := decodeFloat(s.Field(fieldAltitude)); ok {
		fix.Altitude = v
	}
	if v, ok := decodeFloat(s.Field(fieldGeoid)); ok {
		fix.GeoidSeparation = v
	}
	return fix
}

// AltitudeOnly returns the altitude field of a GGA sentence without decoding
// anything else. The result is identical to Parse(line).Altitude, NaN when
// the altitude is absent or malformed.
func AltitudeOnly(line string) float64 {
	payload, _, _ := splitSentence(line)
	if !isGGA(nthField(payload, fieldType)) {
		return math.NaN()
	}
	v, ok := decodeFloat(nthField(payload, fieldAltitude))
	if !ok {
		return math.NaN()
	}
	return v
}

// IsGGA reports whether line carries a GGA identifier. Readers use it to pick
// GGA sentences out of a mixed NMEA stream before calling Parse.
func IsGGA(line string) bool {
	payload, _, _ := splitSentence(line)
	return isGGA(nthField(payload, fieldType))
}
