package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/speters/energyplus/energyplus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPin = 23

func serve(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	return w
}

func TestSendCommand(t *testing.T) {
	rec := energyplus.NewRecorder()
	tx = energyplus.NewTransmitter(rec, testPin)

	w := serve(t, "POST", "/command/1010101010101010101010101")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "\"OK\"\n", w.Body.String())
	assert.Len(t, rec.Pulses(), energyplus.PulseCount)
	assert.Equal(t, 1, rec.Releases())
}

func TestSendCommandInvalid(t *testing.T) {
	rec := energyplus.NewRecorder()
	tx = energyplus.NewTransmitter(rec, testPin)

	for _, command := range []string{"01", "1010101010101010101010102"} {
		w := serve(t, "POST", "/command/"+command)
		assert.Equal(t, http.StatusBadRequest, w.Code, command)
	}
	assert.Empty(t, rec.Pulses())
	assert.Zero(t, rec.Opens())
}

func TestSendCommandPinUnavailable(t *testing.T) {
	rec := energyplus.NewRecorder()
	held, err := rec.Open(testPin)
	require.NoError(t, err)
	defer held.Release()
	tx = energyplus.NewTransmitter(rec, testPin)

	w := serve(t, "POST", "/command/1010101010101010101010101")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSendCommandDriverError(t *testing.T) {
	rec := energyplus.NewRecorder()
	rec.FailSetAfter = 3
	tx = energyplus.NewTransmitter(rec, testPin)

	w := serve(t, "POST", "/command/1010101010101010101010101")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, rec.Releases())
}

func TestGetFrame(t *testing.T) {
	w := serve(t, "GET", "/frame/0000000000000000000000001")
	require.Equal(t, http.StatusOK, w.Code)

	var pulses []struct {
		Level    string `json:"level"`
		Duration int64  `json:"duration_ns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pulses))
	require.Len(t, pulses, energyplus.PulseCount)
	assert.Equal(t, "HIGH", pulses[0].Level)
	assert.Equal(t, energyplus.AGCHigh.Nanoseconds(), pulses[0].Duration)
	assert.Equal(t, "LOW", pulses[1].Level)
	assert.Equal(t, energyplus.AGCLow.Nanoseconds(), pulses[1].Duration)
	// last bit of the last repetition is a '1'
	assert.Equal(t, energyplus.PulseLong.Nanoseconds(), pulses[len(pulses)-2].Duration)
	assert.Equal(t, energyplus.PulseShort.Nanoseconds(), pulses[len(pulses)-1].Duration)

	w = serve(t, "GET", "/frame/01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTiming(t *testing.T) {
	w := serve(t, "GET", "/timing")
	require.Equal(t, http.StatusOK, w.Code)

	var v map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, map[string]int{
		"agc_high_us":    400,
		"agc_low_us":     2210,
		"pulse_short_us": 335,
		"pulse_long_us":  1190,
		"repeat_count":   6,
		"command_length": 25,
		"pulse_count":    307,
	}, v)
}

func TestVersionInfo(t *testing.T) {
	w := serve(t, "GET", "/version")
	require.Equal(t, http.StatusOK, w.Code)

	var v map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, buildVersion, v["version"])
	assert.Equal(t, buildDate, v["build_date"])
}

func TestMethodNotAllowed(t *testing.T) {
	w := serve(t, "GET", "/command/1010101010101010101010101")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
