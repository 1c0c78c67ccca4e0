// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Command libgga builds the GGA parser as a C library:
//
//	go build -buildmode=c-shared -o libgga.so ./cmd/libgga
//
// A NULL sentence is treated like garbage input.
package main

/*
#include <stdint.h>

struct CGgaData {
    int fix_hour;
    int fix_minute;
    int fix_second;
    int fix_type;
    double latitude;
    double longitude;
    int fix_satellites;
    float hdop;
    float altitude;
    float geoid_separation;
};
*/
import "C"

import (
	"fmt"

	"github.com/relabs-tech/nmea_gga/internal/gps"
)

func init() {
	if uintptr(C.sizeof_struct_CGgaData) != gps.RecordSize() {
		panic(fmt.Sprintf("libgga: struct CGgaData is %d bytes, record is %d",
			C.sizeof_struct_CGgaData, gps.RecordSize()))
	}
}

func toC(r gps.Record) C.struct_CGgaData {
	return C.struct_CGgaData{
		fix_hour:         C.int(r.FixHour),
		fix_minute:       C.int(r.FixMinute),
		fix_second:       C.int(r.FixSecond),
		fix_type:         C.int(r.FixType),
		latitude:         C.double(r.Latitude),
		longitude:        C.double(r.Longitude),
		fix_satellites:   C.int(r.FixSatellites),
		hdop:             C.float(r.HDOP),
		altitude:         C.float(r.Altitude),
		geoid_separation: C.float(r.GeoidSeparation),
	}
}

//export parse_nmea_gga
func parse_nmea_gga(sentence *C.char) C.struct_CGgaData {
	if sentence == nil {
		return toC(gps.EmptyFix().Record())
	}
	return toC(gps.Parse(C.GoString(sentence)).Record())
}

//export nmea_gga_altitude
func nmea_gga_altitude(sentence *C.char) C.float {
	if sentence == nil {
		return C.float(gps.EmptyFix().Altitude)
	}
	return C.float(gps.AltitudeOnly(C.GoString(sentence)))
}

//export nmea_size
func nmea_size() C.uint32_t {
	return C.uint32_t(gps.RecordSize())
}

func main() {}
