// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"encoding/json"
	"math"
)

// Unset is the sentinel for an absent integer field.
const Unset = -1

// Fix is a single GGA position fix.
//
// Every field is always populated: integer fields hold Unset and float fields
// hold NaN when the sentence did not carry a usable value.
type Fix struct {
	Hour   int // UTC, 0-23
	Minute int // 0-59
	Second int // 0-59

	FixType int // 0=no fix, 1=GPS, 2=DGPS, ...

	Latitude  float64 // decimal degrees, south negative
	Longitude float64 // decimal degrees, west negative

	Satellites int

	HDOP            float64
	Altitude        float64 // meters above mean sea level
	GeoidSeparation float64 // meters
}

// EmptyFix returns a fix with every field set to its sentinel.
func EmptyFix() Fix {
	return Fix{
		Hour:            Unset,
		Minute:          Unset,
		Second:          Unset,
		FixType:         Unset,
		Latitude:        math.NaN(),
		Longitude:       math.NaN(),
		Satellites:      Unset,
		HDOP:            math.NaN(),
		Altitude:        math.NaN(),
		GeoidSeparation: math.NaN(),
	}
}

// HasTime reports whether the time of day was decoded.
func (f Fix) HasTime() bool { return f.Hour != Unset }

// HasPosition reports whether both coordinates were decoded.
func (f Fix) HasPosition() bool {
	return !math.IsNaN(f.Latitude) && !math.IsNaN(f.Longitude)
}

// fixJSON is the wire form. NaN is not valid JSON, so absent floats travel as null.
type fixJSON struct {
	Hour            int      `json:"fix_hour"`
	Minute          int      `json:"fix_minute"`
	Second          int      `json:"fix_second"`
	FixType         int      `json:"fix_type"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Satellites      int      `json:"fix_satellites"`
	HDOP            *float64 `json:"hdop"`
	Altitude        *float64 `json:"altitude"`
	GeoidSeparation *float64 `json:"geoid_separation"`
}

func marshalFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func unmarshalFloat(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// MarshalJSON implements json.Marshaler.
func (f Fix) MarshalJSON() ([]byte, error) {
	return json.Marshal(fixJSON{
		Hour:            f.Hour,
		Minute:          f.Minute,
		Second:          f.Second,
		FixType:         f.FixType,
		Latitude:        marshalFloat(f.Latitude),
		Longitude:       marshalFloat(f.Longitude),
		Satellites:      f.Satellites,
		HDOP:            marshalFloat(f.HDOP),
		Altitude:        marshalFloat(f.Altitude),
		GeoidSeparation: marshalFloat(f.GeoidSeparation),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Missing integer keys decode as Unset.
func (f *Fix) UnmarshalJSON(data []byte) error {
	w := fixJSON{
		Hour:       Unset,
		Minute:     Unset,
		Second:     Unset,
		FixType:    Unset,
		Satellites: Unset,
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = Fix{
		Hour:            w.Hour,
		Minute:          w.Minute,
		Second:          w.Second,
		FixType:         w.FixType,
		Latitude:        unmarshalFloat(w.Latitude),
		Longitude:       unmarshalFloat(w.Longitude),
		Satellites:      w.Satellites,
		HDOP:            unmarshalFloat(w.HDOP),
		Altitude:        unmarshalFloat(w.Altitude),
		GeoidSeparation: unmarshalFloat(w.GeoidSeparation),
	}
	return nil
}
