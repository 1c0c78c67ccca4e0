// Package gps decodes NMEA 0183 GGA sentences into position fixes.
//
// Decoding degrades per field instead of failing: an empty or malformed field
// becomes a sentinel (Unset for integers, NaN for floats) and the rest of the
// sentence is still decoded. The package keeps no state and is safe for
// concurrent use.
package gps
