package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/nmea_gga/internal/config"
	"github.com/relabs-tech/nmea_gga/internal/gps"
)

const sampleGGA = "$GPGGA,092750.000,5321.6802,N,00630.3372,W,1,8,1.03,61.7,M,55.2,M,,*76"

type message struct {
	topic    string
	retained bool
	payload  []byte
}

type fakePublisher struct {
	messages []message
	err      error
}

func (f *fakePublisher) Publish(topic string, retained bool, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message{topic: topic, retained: retained, payload: payload})
	return nil
}

func (f *fakePublisher) topic(name string) []message {
	var out []message
	for _, m := range f.messages {
		if m.topic == name {
			out = append(out, m)
		}
	}
	return out
}

func newTestPublisher(cfg *config.Config) (*ggaPublisher, *fakePublisher) {
	pub := &fakePublisher{}
	return &ggaPublisher{
		pub:    pub,
		cfg:    cfg,
		logger: newLoggerTo(&bytes.Buffer{}, "test", "debug"),
	}, pub
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.MQTTBroker = "tcp://localhost:1883"
	cfg.TopicGPSAltitude = "inertial/gps/altitude"
	cfg.TopicGPSRecord = "inertial/gps/record"
	return cfg
}

func TestHandleLinePublishesAllTopics(t *testing.T) {
	p, pub := newTestPublisher(testConfig())

	sent, err := p.handleLine(sampleGGA + "\r\n")
	require.NoError(t, err)
	require.True(t, sent)

	fixes := pub.topic("inertial/gps")
	require.Len(t, fixes, 1)
	assert.True(t, fixes[0].retained)
	var fix gps.Fix
	require.NoError(t, json.Unmarshal(fixes[0].payload, &fix))
	assert.Equal(t, gps.Parse(sampleGGA), fix)

	alts := pub.topic("inertial/gps/altitude")
	require.Len(t, alts, 1)
	assert.Equal(t, "61.7", string(alts[0].payload))

	recs := pub.topic("inertial/gps/record")
	require.Len(t, recs, 1)
	require.Len(t, recs[0].payload, int(gps.RecordSize()))
	var rec gps.Record
	require.NoError(t, rec.UnmarshalBinary(recs[0].payload))
	assert.Equal(t, int32(8), rec.FixSatellites)
}

func TestHandleLineOptionalTopicsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.TopicGPSAltitude = ""
	cfg.TopicGPSRecord = ""
	p, pub := newTestPublisher(cfg)

	sent, err := p.handleLine(sampleGGA)
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "inertial/gps", pub.messages[0].topic)
}

func TestHandleLineSkipsOtherSentences(t *testing.T) {
	p, pub := newTestPublisher(testConfig())

	for _, line := range []string{
		"",
		"garbage",
		"GPGGA,092750.000,5321.6802,N,00630.3372,W,1,8,1.03,61.7,M,55.2,M,,*76",
		"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
	} {
		sent, err := p.handleLine(line)
		require.NoError(t, err)
		assert.False(t, sent, "line %q", line)
	}
	assert.Empty(t, pub.messages)
}

func TestHandleLineMissingAltitude(t *testing.T) {
	p, pub := newTestPublisher(testConfig())

	sent, err := p.handleLine("$GPGGA,092750.000,5321.6802,N,00630.3372,W,1,8,1.03,,M,55.2,M,,")
	require.NoError(t, err)
	require.True(t, sent)

	alts := pub.topic("inertial/gps/altitude")
	require.Len(t, alts, 1)
	assert.Equal(t, "NaN", string(alts[0].payload))

	var fix gps.Fix
	require.NoError(t, json.Unmarshal(pub.topic("inertial/gps")[0].payload, &fix))
	assert.True(t, math.IsNaN(fix.Altitude))
}

func TestHandleLineRequireChecksum(t *testing.T) {
	cfg := testConfig()
	cfg.GPSRequireChecksum = true
	p, pub := newTestPublisher(cfg)

	sent, err := p.handleLine(strings.Replace(sampleGGA, "*76", "*00", 1))
	require.NoError(t, err)
	assert.False(t, sent)

	sent, err = p.handleLine(strings.TrimSuffix(sampleGGA, "*76"))
	require.NoError(t, err)
	assert.False(t, sent)

	sent, err = p.handleLine(sampleGGA)
	require.NoError(t, err)
	assert.True(t, sent)

	assert.Equal(t, 2, p.dropped)
	assert.Equal(t, 1, p.published)
	assert.Len(t, pub.topic("inertial/gps"), 1)
}

func TestHandleLineChecksumNotRequired(t *testing.T) {
	p, _ := newTestPublisher(testConfig())

	sent, err := p.handleLine(strings.Replace(sampleGGA, "*76", "*00", 1))
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestHandleLinePublishError(t *testing.T) {
	p, pub := newTestPublisher(testConfig())
	pub.err = errors.New("broker gone")

	sent, err := p.handleLine(sampleGGA)
	assert.False(t, sent)
	assert.ErrorContains(t, err, "broker gone")
	assert.Zero(t, p.published)
}

func TestRunReadsUntilEOF(t *testing.T) {
	p, pub := newTestPublisher(testConfig())

	stream := strings.Join([]string{
		"$GPGSV,3,1,11,03,03,111,00,04,15,270,00,06,01,010,00,13,06,292,00*74",
		sampleGGA,
		"$GNGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*59",
		sampleGGA, // no trailing newline
	}, "\r\n")

	require.NoError(t, p.run(context.Background(), strings.NewReader(stream)))
	assert.Equal(t, 3, p.published)
	assert.Len(t, pub.topic("inertial/gps"), 3)
}
