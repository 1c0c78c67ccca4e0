package gps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTime(t *testing.T) {
	tests := []struct {
		in      string
		h, m, s int
		ok      bool
	}{
		{"092750.000", 9, 27, 50, true},
		{"092750", 9, 27, 50, true},
		{"235959.99", 23, 59, 59, true},
		{"000000.", 0, 0, 0, true},
		{"240000", 0, 0, 0, false},
		{"129950", 0, 0, 0, false},
		{"120060", 0, 0, 0, false},
		{"09275", 0, 0, 0, false},
		{"", 0, 0, 0, false},
		{"09:27:50", 0, 0, 0, false},
		{"092750Z", 0, 0, 0, false},
		{"092750.0a", 0, 0, 0, false},
		{"-92750", 0, 0, 0, false},
	}
	for _, tt := range tests {
		h, m, s, ok := decodeTime(tt.in)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.in)
		if tt.ok {
			assert.Equal(t, []int{tt.h, tt.m, tt.s}, []int{h, m, s}, "time for %q", tt.in)
		}
	}
}

func TestDecodeLatitude(t *testing.T) {
	tests := []struct {
		name  string
		field string
		hemi  string
		want  float64
		ok    bool
	}{
		{"north", "5321.6802", "N", 53 + 21.6802/60, true},
		{"south", "3352.1280", "S", -(33 + 52.128/60), true},
		{"no fraction", "4807", "N", 48 + 7.0/60, true},
		{"trailing dot", "4807.", "N", 48 + 7.0/60, true},
		{"equator", "0000.0000", "S", 0, true},
		{"pole", "9000.0000", "N", 90, true},
		{"beyond pole", "9000.0001", "N", 0, false},
		{"minutes overflow", "5360.0000", "N", 0, false},
		{"three degree digits", "05321.6802", "N", 0, false},
		{"too short", "21.68", "N", 0, false},
		{"empty hemisphere", "5321.6802", "", 0, false},
		{"longitude hemisphere", "5321.6802", "E", 0, false},
		{"lower case hemisphere", "5321.6802", "n", 0, false},
		{"two letter hemisphere", "5321.6802", "NN", 0, false},
		{"signed", "-5321.6802", "N", 0, false},
		{"letters in fraction", "5321.68x2", "N", 0, false},
		{"empty", "", "N", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeLatitude(tt.field, tt.hemi)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestDecodeLongitude(t *testing.T) {
	tests := []struct {
		name  string
		field string
		hemi  string
		want  float64
		ok    bool
	}{
		{"west", "00630.3372", "W", -(6 + 30.3372/60), true},
		{"east", "15112.5600", "E", 151 + 12.56/60, true},
		{"two degree digits", "0630.3372", "W", -(6 + 30.3372/60), true},
		{"antimeridian", "18000.0000", "E", 180, true},
		{"beyond antimeridian", "18000.5000", "E", 0, false},
		{"four degree digits", "000630.3372", "W", 0, false},
		{"latitude hemisphere", "00630.3372", "S", 0, false},
		{"missing hemisphere", "00630.3372", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeLongitude(tt.field, tt.hemi)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"8", 8, true},
		{"08", 8, true},
		{"0", 0, true},
		{"2147483647", 2147483647, true},
		{"2147483648", 0, false},
		{"", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.0", 0, false},
		{" 1", 0, false},
	}
	for _, tt := range tests {
		got, ok := decodeInt(tt.in)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.in)
		assert.Equal(t, tt.want, got, "value for %q", tt.in)
	}
}

func TestDecodeFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"61.7", 61.7, true},
		{"-33.5", -33.5, true},
		{"+12", 12, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"0", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"1e3", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"0x10", 0, false},
		{"1_000", 0, false},
		{"1.2.3", 0, false},
		{" 1", 0, false},
	}
	for _, tt := range tests {
		got, ok := decodeFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-12, "value for %q", tt.in)
		}
	}
}
