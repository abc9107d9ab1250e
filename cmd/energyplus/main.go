package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/speters/energyplus/energyplus"
	"github.com/speters/energyplus/gpio"

	log "github.com/sirupsen/logrus"
)

var tx *energyplus.Transmitter

// set once a signal released the pins, so a send failing on the released pin is not fatal
var interrupted atomic.Bool

// To be set via go build -ldflags "-X main.buildVersion=$(git describe --dirty) -X main.buildDate=$(date -u +%FT%TZ)"
var buildVersion = "unspecified"
var buildDate = "unknown"

func usage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage:\n  %s [flags] [command_string]\n\n", fs.Name())
		fmt.Fprintf(out, "Correct command length is %d bits.\n\n", energyplus.CommandLength)
		fs.PrintDefaults()
	}
}

// run sends the command in args through d. Usage is written to out and run
// returns nil when there is no command or the command is invalid.
func run(args []string, out io.Writer, d energyplus.Driver) error {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = usage(fs)

	httpServe := fs.String("s", "", "start http server at [bindtohost][:]port instead of sending a single command")
	dryRun := fs.Bool("n", false, "print the pulse train instead of driving the transmitter")
	reset := fs.Bool("reset", false, "drive the transmit pin low and release it, e.g. after an interrupted run")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		// the FlagSet already reported it along with the usage
		return nil
	}

	if *verbose == true {
		log.SetLevel(log.DebugLevel)
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	}

	if *reset {
		if err := energyplus.Reset(d, gpio.TransmitPin); err != nil {
			return err
		}
		log.Infof("gpio%d reset to %v", gpio.TransmitPin, energyplus.Low)
		return nil
	}

	if *httpServe != "" {
		tx = energyplus.NewTransmitter(d, gpio.TransmitPin)

		// accept :[portnum] as well as [portnum]
		addr := *httpServe
		if i, err := strconv.Atoi(addr); err == nil {
			addr = fmt.Sprintf(":%d", i)
		}

		h := &http.Server{Addr: addr, Handler: newRouter()}
		log.Infof("Serving on %v", addr)
		return h.ListenAndServe()
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return nil
	}

	c, err := energyplus.ParseCommand(fs.Arg(0))
	if err != nil {
		log.Errorf("Your (invalid) command: %v", err)
		fs.Usage()
		return nil
	}

	if *dryRun {
		rec := energyplus.NewRecorder()
		if err := energyplus.NewTransmitter(rec, gpio.TransmitPin).Send(c); err != nil {
			return err
		}
		for _, p := range rec.Pulses() {
			fmt.Fprintln(out, p)
		}
		return nil
	}

	tx = energyplus.NewTransmitter(d, gpio.TransmitPin)
	return tx.Send(c)
}

// releaseOnSignal drives every pin of d low and exits 0 on SIGHUP, SIGINT, SIGTERM or SIGQUIT
func releaseOnSignal(d *gpio.Driver) {
	done := make(chan os.Signal, 1)

	signal.Notify(done,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		s := <-done
		interrupted.Store(true)
		log.Infof("Got %v, releasing transmit pin", s)
		if err := d.ReleaseAll(); err != nil {
			log.Error(err)
		}
		os.Exit(0)
	}()
}

// fatal reports whether err from run ends the program with exit status 1.
// Once a signal released the pins, a send failing on them is part of the shutdown.
func fatal(err error) bool {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return false
	}
	return !interrupted.Load()
}

func main() {
	driver := gpio.NewDriver()
	releaseOnSignal(driver)

	if err := run(os.Args[1:], os.Stdout, driver); fatal(err) {
		log.Fatal(err)
	}
	if interrupted.Load() {
		// the signal handler exits 0 once the pins are low
		select {}
	}
}
