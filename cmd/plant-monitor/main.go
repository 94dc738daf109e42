// Command plant-monitor samples soil moisture, light and temperature, lights
// the status LED when a reading leaves its comfort band, and takes gestures
// from two front-panel buttons.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sweeney/plant-monitor/internal/config"
	"github.com/sweeney/plant-monitor/internal/gpio"
	"github.com/sweeney/plant-monitor/internal/logging"
	"github.com/sweeney/plant-monitor/internal/logic"
	"github.com/sweeney/plant-monitor/internal/panel"
	"github.com/sweeney/plant-monitor/internal/sensor"
	"github.com/sweeney/plant-monitor/internal/status"
)

// printStateWait bounds how long --print-state waits for the ADC board.
const printStateWait = 3 * time.Second

func main() {
	configPath := flag.String("config", "/etc/plant-monitor.yaml", "Path to YAML config file")
	logLevel := flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	printState := flag.Bool("print-state", false, "Print current buttons and readings and exit")
	jsonOut := flag.Bool("json", false, "With --print-state, print the status snapshot as JSON")

	flag.Parse()

	if err := run(*configPath, *logLevel, *printState, *jsonOut); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

// hardware bundles the I/O shims the loop talks to.
type hardware struct {
	buttons gpio.Reader
	sensors sensor.Source
	led     gpio.LED
}

func run(configPath, logLevel string, printState, jsonOut bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	if err := logging.Init(level, cfg.LogFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	mc, err := cfg.Monitor()
	if err != nil {
		return err
	}
	monitor, err := logic.NewMonitor(mc)
	if err != nil {
		return fmt.Errorf("init monitor: %w", err)
	}

	buttons, err := gpio.NewRealReader(cfg.Buttons.Chip, cfg.Buttons.LeftPin, cfg.Buttons.RightPin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer buttons.Close()

	sensors, err := sensor.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud, cfg.ADC.Resolution, cfg.Serial.MaxAge)
	if err != nil {
		return fmt.Errorf("init sensors: %w", err)
	}
	defer sensors.Close()

	statusCfg := status.Config{
		PollMs:            cfg.Timing.Poll.Milliseconds(),
		SensorIntervalSec: int64(cfg.Timing.SensorInterval / time.Second),
		ErrorIntervalSec:  int64(cfg.Timing.ErrorInterval / time.Second),
		SerialPort:        cfg.Serial.Port,
	}

	if printState {
		if jsonOut {
			return printStatusJSON(os.Stdout, buttons, sensors, monitor, statusCfg, time.Now, printStateWait)
		}
		return printCurrentState(os.Stdout, buttons, sensors, monitor, printStateWait)
	}

	led, err := gpio.NewRealLED(cfg.Buttons.Chip, cfg.LED.Pin)
	if err != nil {
		return fmt.Errorf("init led: %w", err)
	}
	defer led.Close()

	if cfg.SkipSetup {
		monitor.CompleteSetup()
	}

	log.Info().
		Str("config", configPath).
		Dur("poll", cfg.Timing.Poll).
		Dur("sensor_interval", cfg.Timing.SensorInterval).
		Dur("error_interval", cfg.Timing.ErrorInterval).
		Str("serial", cfg.Serial.Port).
		Str("state", string(monitor.State())).
		Msg("started")

	ticker := time.NewTicker(cfg.Timing.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)

	hw := hardware{buttons: buttons, sensors: sensors, led: led}
	return runLoop(hw, monitor, cfg.StatusSchedule(), statusCfg, time.Now, ticker.C, sigCh)
}

func runLoop(hw hardware, monitor *logic.Monitor, schedule status.Schedule, statusCfg status.Config, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	pnl := panel.New()
	ledOn := false
	var left, right bool

	snapshot := func(t time.Time) status.Snapshot {
		s := status.Capture(monitor, startTime, t)
		s.DisplayOn = pnl.DisplayOn()
		s.Acknowledged = pnl.Acknowledged()
		s.LED = ledOn
		s.Config = statusCfg
		return s
	}

	log.Info().RawJSON("status", status.FormatStatusEvent(snapshot(startTime), "STARTUP", "")).Msg("startup")

	for {
		select {
		case s := <-sig:
			if s == syscall.SIGUSR1 {
				log.Info().RawJSON("status", status.FormatStatusEvent(snapshot(now()), "STATUS", "")).Msg("status")
				continue
			}

			log.Info().Str("signal", signalName(s)).Msg("shutting down")
			if ledOn {
				if err := hw.led.Set(false); err != nil {
					log.Error().Err(err).Msg("led off failed")
				} else {
					ledOn = false
				}
			}
			log.Info().RawJSON("status", status.FormatStatusEvent(snapshot(now()), "SHUTDOWN", signalName(s))).Msg("shutdown")
			return nil

		case <-tick:
			t := now()

			// Keep the last known levels on a read error so sensor checks
			// still run.
			l, r, err := hw.buttons.Read()
			if err != nil {
				log.Error().Err(err).Msg("gpio read error")
			} else {
				left, right = l, r
			}

			in := logic.Input{
				Left:        left,
				Right:       right,
				Now:         t,
				SecondOfDay: logic.SecondsSinceMidnight(t),
			}
			if reading, ok := hw.sensors.Latest(); ok {
				in.Samples = reading.Raw
				in.HaveSamples = true
			}

			out := monitor.Tick(in)

			if out.LeftEdge != logic.EdgeNone || out.RightEdge != logic.EdgeNone {
				log.Debug().
					Stringer("left", out.LeftEdge).
					Stringer("right", out.RightEdge).
					Msg("button edge")
			}

			if out.Sampled {
				log.Debug().
					Int("moisture", in.Samples[logic.ChannelMoisture]).
					Int("light", in.Samples[logic.ChannelLight]).
					Int("temperature", in.Samples[logic.ChannelTemperature]).
					Msg("sampled")
			}
			if out.Verdict != nil {
				logVerdict(*out.Verdict)
			}
			if out.Transition != nil {
				noteTransition(pnl, *out.Transition)
			}

			for _, label := range out.LongPresses {
				log.Info().Str("button", label).Msg("long press")
				apply(monitor, pnl, pnl.HandleLongPress(label))
			}
			if out.Click != logic.ClickNone {
				log.Info().Str("click", string(out.Click)).Str("state", string(monitor.State())).Msg("click")
				apply(monitor, pnl, pnl.Handle(out.Click, monitor.State()))
			}

			want := status.LEDOn(monitor.State(), schedule.Daytime(t), pnl.Acknowledged())
			if want != ledOn {
				if err := hw.led.Set(want); err != nil {
					log.Error().Err(err).Bool("on", want).Msg("led set failed")
				} else {
					ledOn = want
				}
			}
		}
	}
}

// apply carries out a panel action against the monitor.
func apply(monitor *logic.Monitor, pnl *panel.Panel, action panel.Action) {
	if action == panel.ActionNone {
		return
	}
	log.Info().Str("action", string(action)).Msg("panel action")

	switch action {
	case panel.ActionCompleteSetup:
		if tr, ok := monitor.CompleteSetup(); ok {
			noteTransition(pnl, tr)
		}
	case panel.ActionRecheck:
		v, tr, changed := monitor.Recheck()
		logVerdict(v)
		if changed {
			noteTransition(pnl, tr)
		}
	case panel.ActionReset:
		if tr, changed := monitor.Reset(); changed {
			noteTransition(pnl, tr)
		}
	}
}

func noteTransition(pnl *panel.Panel, tr logic.Transition) {
	log.Info().Str("from", string(tr.From)).Str("to", string(tr.To)).Msg("state change")
	pnl.NoteState(tr.To)
}

func logVerdict(v logic.Verdict) {
	if !v.Evaluated {
		log.Debug().Msg("no samples to evaluate")
		return
	}
	if v.Flags.Any() {
		log.Warn().
			Int("errors", v.Flags.Count).
			Str("message", status.ErrorMessage(v.Flags)).
			Msg("readings out of range")
		return
	}
	log.Debug().Msg("readings in range")
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}

func pressedString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

// printCurrentState reads the buttons once, waits up to wait for a sensor
// reading and evaluates it against the configured bands.
func printCurrentState(w io.Writer, buttons gpio.Reader, sensors sensor.Source, monitor *logic.Monitor, wait time.Duration) error {
	left, right, err := buttons.Read()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}
	fmt.Fprintf(w, "left: %s, right: %s\n", pressedString(left), pressedString(right))

	reading, ok := waitForReading(sensors, wait, 50*time.Millisecond)
	if !ok {
		fmt.Fprintln(w, "sensors: no reading")
		return nil
	}
	fmt.Fprintf(w, "raw: moisture=%d light=%d temperature=%d\n",
		reading.Raw[logic.ChannelMoisture], reading.Raw[logic.ChannelLight], reading.Raw[logic.ChannelTemperature])

	v := evaluateNow(monitor, reading)

	msg := status.ErrorMessage(v.Flags)
	if msg == "" {
		msg = "OK"
	}
	fmt.Fprintf(w, "state: %s (%s)\n", monitor.State(), msg)
	return nil
}

// printStatusJSON is the --json form of --print-state. Without a sensor
// reading the snapshot is left in SETUP with nothing pending.
func printStatusJSON(w io.Writer, buttons gpio.Reader, sensors sensor.Source, monitor *logic.Monitor, statusCfg status.Config, now func() time.Time, wait time.Duration) error {
	if _, _, err := buttons.Read(); err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}

	if reading, ok := waitForReading(sensors, wait, 50*time.Millisecond); ok {
		evaluateNow(monitor, reading)
	}

	t := now()
	snap := status.Capture(monitor, t, t)
	snap.DisplayOn = true
	snap.Config = statusCfg

	if _, err := fmt.Fprintf(w, "%s\n", status.FormatJSON(snap)); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

// evaluateNow leaves setup and evaluates a single reading straight away.
func evaluateNow(monitor *logic.Monitor, reading sensor.Reading) logic.Verdict {
	monitor.CompleteSetup()
	monitor.Sample(reading.Raw)
	v, _, _ := monitor.Recheck()
	return v
}

func waitForReading(sensors sensor.Source, wait, every time.Duration) (sensor.Reading, bool) {
	deadline := time.Now().Add(wait)
	for {
		if r, ok := sensors.Latest(); ok {
			return r, true
		}
		if time.Now().After(deadline) {
			return sensor.Reading{}, false
		}
		time.Sleep(every)
	}
}
