// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"
)

// Record is the fixed-layout form of a Fix, matching the C struct
//
//	struct CGgaData {
//	    int fix_hour, fix_minute, fix_second, fix_type;
//	    double latitude, longitude;
//	    int fix_satellites;
//	    float hdop, altitude, geoid_separation;
//	};
//
// Field order and widths must not change: consumers on the other side of a
// C or wire boundary rely on the offsets below.
type Record struct {
	FixHour         int32   // offset 0
	FixMinute       int32   // 4
	FixSecond       int32   // 8
	FixType         int32   // 12
	Latitude        float64 // 16
	Longitude       float64 // 24
	FixSatellites   int32   // 32
	HDOP            float32 // 36
	Altitude        float32 // 40
	GeoidSeparation float32 // 44
}

// recordLen is the encoded length of a Record; it equals RecordSize().
const recordLen = 48

// RecordSize returns the in-memory size of Record in bytes.
func RecordSize() uintptr {
	return unsafe.Sizeof(Record{})
}

// Record converts the fix to its fixed-layout form. HDOP, altitude and geoid
// separation are narrowed to float32; NaN stays NaN.
func (f Fix) Record() Record {
	return Record{
		FixHour:         int32(f.Hour),
		FixMinute:       int32(f.Minute),
		FixSecond:       int32(f.Second),
		FixType:         int32(f.FixType),
		Latitude:        f.Latitude,
		Longitude:       f.Longitude,
		FixSatellites:   int32(f.Satellites),
		HDOP:            float32(f.HDOP),
		Altitude:        float32(f.Altitude),
		GeoidSeparation: float32(f.GeoidSeparation),
	}
}

// Fix widens the record back into a Fix.
func (r Record) Fix() Fix {
	return Fix{
		Hour:            int(r.FixHour),
		Minute:          int(r.FixMinute),
		Second:          int(r.FixSecond),
		FixType:         int(r.FixType),
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		Satellites:      int(r.FixSatellites),
		HDOP:            float64(r.HDOP),
		Altitude:        float64(r.Altitude),
		GeoidSeparation: float64(r.GeoidSeparation),
	}
}

// MarshalBinary encodes the record little-endian using the in-memory offsets.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, recordLen)
	le := binary.LittleEndian
	le.PutUint32(b[0:], uint32(r.FixHour))
	le.PutUint32(b[4:], uint32(r.FixMinute))
	le.PutUint32(b[8:], uint32(r.FixSecond))
	le.PutUint32(b[12:], uint32(r.FixType))
	le.PutUint64(b[16:], math.Float64bits(r.Latitude))
	le.PutUint64(b[24:], math.Float64bits(r.Longitude))
	le.PutUint32(b[32:], uint32(r.FixSatellites))
	le.PutUint32(b[36:], math.Float32bits(r.HDOP))
	le.PutUint32(b[40:], math.Float32bits(r.Altitude))
	le.PutUint32(b[44:], math.Float32bits(r.GeoidSeparation))
	return b, nil
}

// UnmarshalBinary decodes a record produced by MarshalBinary.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) != recordLen {
		return fmt.Errorf("gps: record must be %d bytes, got %d", recordLen, len(b))
	}
	le := binary.LittleEndian
	*r = Record{
		FixHour:         int32(le.Uint32(b[0:])),
		FixMinute:       int32(le.Uint32(b[4:])),
		FixSecond:       int32(le.Uint32(b[8:])),
		FixType:         int32(le.Uint32(b[12:])),
		Latitude:        math.Float64frombits(le.Uint64(b[16:])),
		Longitude:       math.Float64frombits(le.Uint64(b[24:])),
		FixSatellites:   int32(le.Uint32(b[32:])),
		HDOP:            math.Float32frombits(le.Uint32(b[36:])),
		Altitude:        math.Float32frombits(le.Uint32(b[40:])),
		GeoidSeparation: math.Float32frombits(le.Uint32(b[44:])),
	}
	return nil
}
