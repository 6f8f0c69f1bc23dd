// Command fieldgate runs the sensor gateway: it reads register-mapped
// sensors over a fieldbus, detects publishable changes, and relays them to a
// cloud MQTT broker after onboarding the device.
//
// Usage:
//
//	fieldgate [flags]
//
// Flags:
//
//	-config string     Gateway definition file (default "fieldgate.yaml")
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-trace string      Write a binary protocol trace to this file
//	-simulate          Use the built-in fieldbus simulator (default true)
//	-mdns              Advertise the gateway over mDNS
//
// Examples:
//
//	# Run against the simulator with the sample definition
//	fieldgate -config fieldgate.yaml -simulate
//
//	# Run with a protocol trace for later inspection
//	fieldgate -config fieldgate.yaml -trace /var/log/fieldgate.trace
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldgate-project/fieldgate-go/pkg/broker"
	"github.com/fieldgate-project/fieldgate-go/pkg/config"
	"github.com/fieldgate-project/fieldgate-go/pkg/discovery"
	"github.com/fieldgate-project/fieldgate-go/pkg/fieldbus"
	"github.com/fieldgate-project/fieldgate-go/pkg/persistence"
	"github.com/fieldgate-project/fieldgate-go/pkg/policy"
	"github.com/fieldgate-project/fieldgate-go/pkg/poll"
	"github.com/fieldgate-project/fieldgate-go/pkg/service"
	"github.com/fieldgate-project/fieldgate-go/pkg/trace"
)

type options struct {
	configFile string
	logLevel   string
	traceFile  string
	simulate   bool
	mdns       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "fieldgate.yaml", "Gateway definition file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.traceFile, "trace", "", "Write a binary protocol trace to this file")
	flag.BoolVar(&opts.simulate, "simulate", true, "Use the built-in fieldbus simulator")
	flag.BoolVar(&opts.mdns, "mdns", false, "Advertise the gateway over mDNS")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "fieldgate:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logger := newLogger(opts.logLevel)

	tracer, closeTrace, err := newTracer(opts.traceFile, logger)
	if err != nil {
		return err
	}
	defer closeTrace()

	// The definition file is parsed twice: once here to drive the
	// simulator and discovery, and once by the supervisor's loader to
	// populate the aggregate.
	definition, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.configFile, err)
	}

	transport, stopSim := newTransport(opts.simulate, definition, logger)
	defer stopSim()

	loop := service.NewLoop()
	sm := newMachine(logger)
	creds := persistence.NewCredentialsStore()

	sup, err := service.New(service.Config{
		StateMachine: sm,
		Fieldbus:     fieldbus.NewLink(transport, logger),
		Broker:       broker.NewClient(logger),
		Polls:        poll.NewScheduler(loop.Dispatch, logger),
		Credentials:  creds,
		Properties:   config.NewLoader(creds),
		Policy:       policy.NewEngine(),
		Loop:         loop,
		PollInterval: definition.PollInterval(),
		Logger:       logger,
		Tracer:       tracer,
	})
	if err != nil {
		return err
	}
	sm.Bind(sup)

	if err := sup.Start(opts.configFile); err != nil {
		loop.Stop()
		return err
	}

	advertiser := discovery.NewAdvertiser()
	if opts.mdns {
		err := advertiser.Advertise(discovery.Info{
			DeviceID: sup.ID(),
			Name:     definition.Name,
		})
		if err != nil {
			logger.Warn("mdns advertisement failed", "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	advertiser.Stop()
	sup.Shutdown()
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newTracer(path string, logger *slog.Logger) (trace.Logger, func(), error) {
	if path == "" {
		return trace.NewSlogAdapter(logger), func() {}, nil
	}

	file, err := trace.NewFileLogger(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open trace file: %w", err)
	}
	return trace.NewMultiLogger(trace.NewSlogAdapter(logger), file),
		func() { _ = file.Close() }, nil
}

// newTransport selects the fieldbus wire. Only the simulator ships with the
// gateway; a hardware transport plugs in behind fieldbus.Transport.
func newTransport(simulate bool, definition *config.File, logger *slog.Logger) (fieldbus.Transport, func()) {
	if !simulate {
		logger.Warn("no hardware fieldbus transport configured, using simulator")
	}

	sim := fieldbus.NewSimulator()
	for _, sensor := range definition.Sensors {
		sim.SetRegister(sensor.Register, 0)
	}

	stop := make(chan struct{})
	go runSimulation(sim, definition, stop)
	return sim, func() { close(stop) }
}

// runSimulation feeds the register bank with drifting synthetic values so
// change detection has something to chew on.
func runSimulation(sim *fieldbus.Simulator, definition *config.File, stop chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, sensor := range definition.Sensors {
				sim.SetRegister(sensor.Register, uint16(rand.Intn(1<<12)))
			}
		}
	}
}
