// Command ac-node is the room-edge daemon of the Smart AC system: it infers
// doorway occupancy from two ultrasonic rangers, relays coordinator commands
// to the AC over IR, and reports temperature and occupancy over MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/sweeney/ac-node/internal/climate"
	"github.com/sweeney/ac-node/internal/command"
	"github.com/sweeney/ac-node/internal/config"
	"github.com/sweeney/ac-node/internal/ir"
	"github.com/sweeney/ac-node/internal/logging"
	"github.com/sweeney/ac-node/internal/mqtt"
	"github.com/sweeney/ac-node/internal/occupancy"
	"github.com/sweeney/ac-node/internal/policy"
	"github.com/sweeney/ac-node/internal/sonar"
	"github.com/sweeney/ac-node/internal/status"
	"github.com/sweeney/ac-node/internal/web"
)

func main() {
	cfgFile := flag.String("config", "", "Path to config file (overrides the search path)")
	check := flag.Bool("check", false, "Read sensors once, print, and exit")
	flag.Parse()

	v := config.New()
	if *cfgFile != "" {
		v.SetConfigFile(*cfgFile)
	}
	settings, err := config.Read(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(settings.LogLevel)

	if *check {
		if err := checkSensors(settings); err != nil {
			logger.Fatal().Err(err).Msg("sensor check failed")
		}
		return
	}

	if err := run(v, settings, logger); err != nil {
		logger.Fatal().Err(err).Msg("fatal")
	}
}

// checkSensors takes one reading from each sensor and prints it.
func checkSensors(s config.Settings) error {
	pair, err := openSonar(s)
	if err != nil {
		return err
	}
	defer pair.Close()

	inner, outer, err := pair.Read()
	if err != nil {
		return fmt.Errorf("read sonar: %w", err)
	}
	fmt.Printf("inner: %s, outer: %s\n", distanceString(inner), distanceString(outer))

	dht, err := climate.NewRealSensor(s.PinDHT)
	if err != nil {
		return fmt.Errorf("init climate: %w", err)
	}
	defer dht.Close()

	celsius, err := dht.Read()
	if err != nil {
		return fmt.Errorf("read climate: %w", err)
	}
	fmt.Printf("room: %.1f C\n", celsius)
	return nil
}

func openSonar(s config.Settings) (sonar.Pair, error) {
	inner, err := sonar.NewRealRanger(s.PinTrigInner, s.PinEchoInner, s.EchoTimeout)
	if err != nil {
		return sonar.Pair{}, fmt.Errorf("init inner ranger: %w", err)
	}
	outer, err := sonar.NewRealRanger(s.PinTrigOuter, s.PinEchoOuter, s.EchoTimeout)
	if err != nil {
		inner.Close()
		return sonar.Pair{}, fmt.Errorf("init outer ranger: %w", err)
	}
	return sonar.Pair{Inner: inner, Outer: outer}, nil
}

func run(v *viper.Viper, settings config.Settings, logger zerolog.Logger) error {
	pair, err := openSonar(settings)
	if err != nil {
		return err
	}
	defer pair.Close()

	dht, err := climate.NewRealSensor(settings.PinDHT)
	if err != nil {
		return fmt.Errorf("init climate: %w", err)
	}
	defer dht.Close()

	blaster, err := ir.NewBlaster(settings.PinIR)
	if err != nil {
		return fmt.Errorf("init ir: %w", err)
	}
	defer blaster.Close()

	messenger, err := mqtt.NewClient(mqtt.Config{
		Broker:    settings.Broker,
		Prefix:    settings.Prefix,
		Username:  settings.Username,
		Password:  settings.Password,
		QueueSize: settings.QueueSize,
	}, logger)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer messenger.Close()

	tracker := status.NewTracker(time.Now(), trackerConfig(settings))

	// The displayed config follows the file while the daemon runs; pins
	// and the broker stay fixed until restart.
	config.Watch(v, func(s config.Settings) {
		logger.Info().Msg("config file changed")
		tracker.SetConfig(trackerConfig(s))
	}, func(err error) {
		logger.Error().Err(err).Msg("config reload rejected")
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := messenger.PublishSystem(startupEvent); err != nil {
		logger.Error().Err(err).Msg("failed to publish startup event")
	} else {
		logger.Info().Msg("published startup event")
	}

	// Start HTTP status server
	if settings.HTTPAddr != "" {
		srv := web.New(settings.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("http server error")
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info().Str("addr", settings.HTTPAddr).Msg("http status server listening")
	}

	logger.Info().
		Dur("poll", settings.Poll).
		Str("broker", settings.Broker).
		Str("prefix", settings.Prefix).
		Float64("baseline_cm", settings.BaselineCm).
		Float64("margin_cm", settings.MarginCm).
		Msg("started")

	ticker := time.NewTicker(settings.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		sonar:      pair,
		messenger:  messenger,
		mqttStatus: messenger,
		tx:         blaster,
		dispatcher: command.NewDispatcher(blaster, dht),
		engine:     occupancy.NewEngine(settings.BaselineCm, settings.MarginCm),
		rules:      policy.NewController(settings.VacancyTimeout),
		tracker:    tracker,
		log:        logger,
	}
	return runLoop(deps, settings, time.Now, ticker.C, sigCh)
}

func trackerConfig(s config.Settings) status.Config {
	return status.Config{
		PollMs:      s.Poll.Milliseconds(),
		HeartbeatMs: s.Heartbeat.Milliseconds(),
		VacancyMs:   s.VacancyTimeout.Milliseconds(),
		Broker:      s.Broker,
		Prefix:      s.Prefix,
		HTTPAddr:    s.HTTPAddr,
		BaselineCm:  s.BaselineCm,
		MarginCm:    s.MarginCm,
	}
}

// loopDeps bundles the collaborators of the polling loop so runLoop can be
// exercised with fakes.
type loopDeps struct {
	sonar      sonar.PairReader
	messenger  mqtt.Messenger
	mqttStatus mqtt.ConnectionStatus
	tx         ir.Transmitter
	dispatcher *command.Dispatcher
	engine     *occupancy.Engine
	rules      *policy.Controller
	tracker    *status.Tracker
	log        zerolog.Logger
}

func runLoop(d loopDeps, settings config.Settings, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	ac := status.ACState{TargetTemp: settings.TargetTemp}
	occ, prevOcc := 0, 0
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			d.log.Info().Str("signal", signalName).Msg("shutting down")

			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if d.tracker != nil {
				if d.mqttStatus != nil {
					d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
				}
				snap := d.tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := d.messenger.PublishSystem(event); err != nil {
				d.log.Error().Err(err).Msg("failed to publish shutdown event")
			} else {
				d.log.Info().Msg("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			powerBefore := ac.Power

			// At most one pending inbound message per tick.
			if msg, ok := d.messenger.Poll(); ok {
				result, eff := d.dispatcher.Dispatch(msg.Topic, msg.Payload)
				d.log.Info().
					Str("topic", msg.Topic).
					Str("result", result.String()).
					Msg(eff.Note)
				if err := d.messenger.PublishLog(fmt.Sprintf("dispatch %s: %s", result, eff.Note)); err != nil {
					d.log.Error().Err(err).Msg("log notice publish error")
				}

				switch eff.Kind {
				case command.EffectTemperature:
					d.tracker.SetRoomTemp(eff.Celsius)
					if err := d.messenger.PublishTemperature(eff.Celsius); err != nil {
						d.log.Error().Err(err).Msg("temperature publish error")
					}
				case command.EffectIR:
					applyIR(&ac, eff.Action, eff.Arg, eff.Table)
					if eff.Action == "power" {
						// The coordinator tracks occupancy per powered
						// session; both edges restart the count.
						prevOcc, occ = occ, 0
					}
				}
			}

			// One fresh distance pair per tick.
			inner, outer, err := d.sonar.Read()
			if err != nil {
				d.log.Error().Err(err).Msg("sonar read error")
			} else if delta := d.engine.Observe(inner, outer); delta != 0 {
				if err := d.messenger.PublishOccupancy(delta); err != nil {
					d.log.Error().Err(err).Msg("occupancy publish error")
					// Don't crash on publish failure
				}
				if ac.Power {
					prevOcc = occ
					occ += delta
					if occ < 0 {
						occ = 0
					}
					note := fmt.Sprintf("occupancy change %+d; updated from %d to %d", delta, prevOcc, occ)
					d.log.Info().Msg(note)
					if err := d.messenger.PublishLog(note); err != nil {
						d.log.Error().Err(err).Msg("log notice publish error")
					}
				} else {
					d.log.Debug().Int("delta", delta).Msg("occupancy change while powered off, not counted")
				}
			}

			for _, action := range d.rules.Evaluate(policy.Input{
				Power:       ac.Power,
				PowerOnTick: ac.Power && !powerBefore,
				Mode:        ac.Mode,
				TargetTemp:  ac.TargetTemp,
				Occupancy:   occ,
				Time:        t,
			}) {
				d.log.Info().Msg(action.Reason)
				if err := d.messenger.PublishLog(action.Reason); err != nil {
					d.log.Error().Err(err).Msg("log notice publish error")
				}
				if action.Command == "" {
					continue
				}
				executePolicyCommand(d, &ac, action)
				if action.Command == "power" && action.Argument == "off" {
					prevOcc, occ = occ, 0
				}
			}

			deadline, timerActive := d.rules.Deadline()
			d.tracker.SetAutoOff(deadline, timerActive)
			d.tracker.SetOccupancy(occ, prevOcc)
			d.tracker.SetAC(ac)
			d.tracker.SetCounts(d.engine.CountsSnapshot())
			if d.mqttStatus != nil {
				d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
			}

			// Check for heartbeat
			if settings.Heartbeat > 0 && t.Sub(lastHeartbeat) >= settings.Heartbeat {
				lastHeartbeat = t
				snap := d.tracker.Snapshot()
				hbEvent := mqtt.SystemEvent{
					Timestamp:  t,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				d.log.Info().
					Dur("uptime", snap.Uptime()).
					Int("entries", snap.Counts.Entries).
					Int("exits", snap.Counts.Exits).
					Msg("heartbeat")
				if err := d.messenger.PublishSystem(hbEvent); err != nil {
					d.log.Error().Err(err).Msg("heartbeat publish error")
				}
			}
		}
	}
}

// applyIR folds a successful IR command into the believed AC state.
func applyIR(ac *status.ACState, action, arg, table string) {
	switch action {
	case "power":
		ac.Power = arg == "on"
	case "mode":
		ac.Mode = arg
	case "temp":
		// The table name carries the resolved target, e.g. "temp17".
		if n, err := strconv.Atoi(strings.TrimPrefix(table, "temp")); err == nil {
			ac.TargetTemp = n
		}
	}
}

func executePolicyCommand(d loopDeps, ac *status.ACState, action policy.Action) {
	var (
		table ir.Table
		ok    bool
	)
	switch action.Command {
	case "power":
		table, ok = ir.PowerTable(action.Argument)
	case "mode":
		table, ok = ir.ModeTable(action.Argument)
	case "temp":
		table, ok = ir.TempTable(action.Argument)
	}
	if !ok {
		d.log.Error().Str("command", action.Command).Str("arg", action.Argument).
			Msg("policy produced an unmapped command")
		return
	}
	if err := d.tx.Transmit(table); err != nil {
		d.log.Error().Err(err).Str("table", table.Name).Msg("policy transmit error")
		return
	}
	applyIR(ac, action.Command, action.Argument, table.Name)
}

func distanceString(cm float64) string {
	if cm < 0 {
		return "no echo"
	}
	return fmt.Sprintf("%.1f cm", cm)
}
