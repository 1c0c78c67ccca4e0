// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"strings"

	nmea "github.com/adrianmo/go-nmea"
)

// GGA field positions. Field 0 is the talker+type identifier.
//
//	 0: talker+type (GPGGA, GNGGA, ...)
//	 1: time (hhmmss.sss)
//	 2: latitude (ddmm.mmmm)
//	 3: N/S
//	 4: longitude (dddmm.mmmm)
//	 5: E/W
//	 6: fix quality (0=invalid)
//	 7: number of satellites
//	 8: HDOP
//	 9: altitude
//	10: altitude units (M)
//	11: geoid separation
//	12: geoid units (M)
//	13: age of DGPS correction
//	14: DGPS station id
const (
	fieldType = iota
	fieldTime
	fieldLat
	fieldNS
	fieldLon
	fieldEW
	fieldQuality
	fieldSatellites
	fieldHDOP
	fieldAltitude
	fieldAltitudeUnits
	fieldGeoid
	fieldGeoidUnits
	fieldDGPSAge
	fieldDGPSStation

	maxFields
)

// Checksum is the outcome of checking the "*hh" suffix of a sentence.
type Checksum int

const (
	// ChecksumMissing means the sentence carried no '*' suffix.
	ChecksumMissing Checksum = iota
	// ChecksumValid means the suffix matched the payload.
	ChecksumValid
	// ChecksumMismatch means the suffix was malformed or did not match.
	ChecksumMismatch
)

func (c Checksum) String() string {
	switch c {
	case ChecksumMissing:
		return "missing"
	case ChecksumValid:
		return "valid"
	case ChecksumMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Valid reports whether the sentence carried a matching checksum.
func (c Checksum) Valid() bool { return c == ChecksumValid }

// Sentence is a GGA sentence split into fields.
//
// Fields live in a fixed array so tokenizing never allocates; fields past the
// last GGA field are dropped.
type Sentence struct {
	fields [maxFields]string
	n      int

	Checksum Checksum
}

// Tokenize splits line into fields and checks its checksum suffix.
//
// The leading '$' and surrounding whitespace (CR/LF) are optional. A checksum
// mismatch is reported in Sentence.Checksum; the fields are still returned.
func Tokenize(line string) Sentence {
	var s Sentence
	payload, suffix, hasSuffix := splitSentence(line)
	s.Checksum = verifyChecksum(payload, suffix, hasSuffix)

	for s.n < maxFields {
		field, rest, more := strings.Cut(payload, ",")
		s.fields[s.n] = field
		s.n++
		if !more {
			break
		}
		payload = rest
	}
	return s
}

// Len returns the number of fields found, identifier included.
func (s *Sentence) Len() int { return s.n }

// Field returns field i, or "" when the sentence is too short to have it.
func (s *Sentence) Field(i int) string {
	if i < 0 || i >= s.n {
		return ""
	}
	return s.fields[i]
}

// IsGGA reports whether the identifier field names a GGA sentence.
func (s *Sentence) IsGGA() bool { return isGGA(s.Field(fieldType)) }

// splitSentence strips framing and returns the payload between '$' and '*'
// plus the raw checksum suffix.
func splitSentence(line string) (payload, suffix string, hasSuffix bool) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "$")
	return strings.Cut(line, "*")
}

func verifyChecksum(payload, suffix string, hasSuffix bool) Checksum {
	if !hasSuffix {
		return ChecksumMissing
	}
	if len(suffix) != 2 || !isHex(suffix[0]) || !isHex(suffix[1]) {
		return ChecksumMismatch
	}
	if !strings.EqualFold(nmea.Checksum(payload), suffix) {
		return ChecksumMismatch
	}
	return ChecksumValid
}

// isGGA accepts any talker: GPGGA, GNGGA, GLGGA, ...
func isGGA(id string) bool {
	return len(id) >= 3 && id[len(id)-3:] == "GGA"
}

// nthField returns the n-th comma-separated field of payload without
// splitting the rest.
func nthField(payload string, n int) string {
	for ; n > 0; n-- {
		i := strings.IndexByte(payload, ',')
		if i < 0 {
			return ""
		}
		payload = payload[i+1:]
	}
	if i := strings.IndexByte(payload, ','); i >= 0 {
		return payload[:i]
	}
	return payload
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
