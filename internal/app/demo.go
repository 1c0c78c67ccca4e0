// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/relabs-tech/nmea_gga/internal/gps"
)

// DemoSentence is the GGA sentence the demo parses when given none.
const DemoSentence = "$GPGGA,092750.000,5321.6802,N,00630.3372,W,1,8,1.03,61.7,M,55.2,M,,*76"

// RunDemo prints the record size, then the fast-path altitude and the full
// report for each sentence, without any broker or hardware.
func RunDemo(w io.Writer, sentences []string) error {
	if len(sentences) == 0 {
		sentences = []string{DemoSentence}
	}

	if _, err := fmt.Fprintf(w, "Size of GGA record: %d bytes\n\n", gps.RecordSize()); err != nil {
		return err
	}
	for _, s := range sentences {
		fix, ck := gps.ParseVerified(s)
		alt := strconv.FormatFloat(gps.AltitudeOnly(s), 'f', -1, 64)
		if _, err := fmt.Fprintf(w, "Sentence: %s\nChecksum: %s\nGGA altitude: %s\n%s\n", s, ck, alt, formatFix(fix)); err != nil {
			return err
		}
	}
	return nil
}
