package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/speters/energyplus/energyplus"

	log "github.com/sirupsen/logrus"
)

func newRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/version", versionInfo).Methods("GET")
	router.HandleFunc("/timing", getTiming).Methods("GET")
	router.HandleFunc("/frame/{command}", getFrame).Methods("GET")
	router.HandleFunc("/command/{command}", sendCommand).Methods("POST")

	return router
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	e := json.NewEncoder(w)
	e.SetIndent("", "    ")
	e.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Version   string `json:"version"`
		BuildDate string `json:"build_date"`
	}{Version: buildVersion, BuildDate: buildDate})
}

func getTiming(w http.ResponseWriter, r *http.Request) {
	us := func(d time.Duration) int64 { return d.Microseconds() }
	writeJSON(w, struct {
		AGCHigh       int64 `json:"agc_high_us"`
		AGCLow        int64 `json:"agc_low_us"`
		PulseShort    int64 `json:"pulse_short_us"`
		PulseLong     int64 `json:"pulse_long_us"`
		RepeatCount   int   `json:"repeat_count"`
		CommandLength int   `json:"command_length"`
		PulseCount    int   `json:"pulse_count"`
	}{
		AGCHigh:       us(energyplus.AGCHigh),
		AGCLow:        us(energyplus.AGCLow),
		PulseShort:    us(energyplus.PulseShort),
		PulseLong:     us(energyplus.PulseLong),
		RepeatCount:   energyplus.RepeatCount,
		CommandLength: energyplus.CommandLength,
		PulseCount:    energyplus.PulseCount,
	})
}

func getFrame(w http.ResponseWriter, r *http.Request) {
	c, err := energyplus.ParseCommand(mux.Vars(r)["command"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pulses, err := energyplus.Frame(c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, pulses)
}

func sendCommand(w http.ResponseWriter, r *http.Request) {
	command := mux.Vars(r)["command"]
	err := tx.Transmit(command)
	switch {
	case err == nil:
	case errors.Is(err, energyplus.ErrInvalidCommandLength), errors.Is(err, energyplus.ErrInvalidSymbol):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, energyplus.ErrPinUnavailable):
		log.Error(err)
		writeError(w, http.StatusServiceUnavailable, err)
		return
	default:
		log.Error(err)
		writeError(w, http.StatusInternalServerError, fmt.Errorf("sending %v: %w", command, err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("\"OK\"\n"))
}
