package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/pedsync/assets"
	"github.com/automoto/pedsync/audio"
	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/debugview"
	"github.com/automoto/pedsync/feed"
	"github.com/automoto/pedsync/scenes"
	"github.com/automoto/pedsync/shared/crash"
	"github.com/automoto/pedsync/shared/loop"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/automoto/pedsync/shared/protocol"
	"github.com/automoto/pedsync/world"
	"github.com/gdamore/tcell/v2"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const appName = "pedsync"

type options struct {
	feedAddr   string
	levelName  string
	assetsDir  string
	tickRate   int
	backend    string
	policy     string
	tuningPath string
	saveTuning bool
	sentryDSN  string
	statsAddr  string
	view       bool
	record     string
	duration   time.Duration
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.feedAddr, "feed", cfg.Feed.Address, "Feed simulator address (host:port)")
	flag.StringVar(&o.levelName, "level", cfg.Runtime.Level, "Level name under levels/")
	flag.StringVar(&o.assetsDir, "assets", "", "Assets directory (empty = embedded)")
	flag.IntVar(&o.tickRate, "tickrate", cfg.Runtime.TickRate, "Controller ticks per second")
	flag.StringVar(&o.backend, "backend", "", "Locomotion backend: feed or manual (default feed)")
	flag.StringVar(&o.policy, "policy", "", "Correction policy: refire or reset (default refire)")
	flag.StringVar(&o.tuningPath, "tuning", "", "JSON file with tuning overrides")
	flag.BoolVar(&o.saveTuning, "save-tuning", false, "Persist the effective tuning for the next run")
	flag.StringVar(&o.sentryDSN, "sentry-dsn", os.Getenv("SENTRY_DSN"), "Sentry DSN for crash reports")
	flag.StringVar(&o.statsAddr, "statsview", "", "Serve runtime stats on this address, e.g. localhost:18066")
	flag.BoolVar(&o.view, "view", false, "Show the terminal debug view")
	flag.StringVar(&o.record, "record", "", "Record locomotion cues to this WAV file")
	flag.DurationVar(&o.duration, "duration", 0, "Stop after this long (0 = until interrupted)")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	if err := crash.Init(opts.sentryDSN, netconfig.ProtocolVersion); err != nil {
		log.Printf("Warning: crash reporting disabled: %v", err)
	}
	defer crash.Flush()

	if opts.statsAddr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(opts.statsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Printf("Stats view on http://%s/debug/statsview", opts.statsAddr)
	}

	store, err := cfg.OpenStore(appName)
	if err != nil {
		log.Printf("Warning: Could not open settings store: %v", err)
	}
	if err := applyTuning(store, opts); err != nil {
		log.Fatalf("Invalid tuning: %v", err)
	}

	if err := run(opts); err != nil {
		log.Fatalf("Runtime error: %v", err)
	}

	if opts.saveTuning {
		if err := store.SaveTuning(cfg.Capture()); err != nil {
			log.Printf("Warning: Could not save tuning: %v", err)
		}
	}
}

// applyTuning layers the saved tuning, the tuning file and the flags over
// the package defaults, in that order.
func applyTuning(store *cfg.Store, opts options) error {
	saved, err := store.LoadTuning()
	if err != nil {
		log.Printf("Warning: ignoring saved tuning: %v", err)
	}
	if saved != nil {
		saved.Apply()
	}

	if opts.tuningPath != "" {
		t, err := cfg.LoadTuning(opts.tuningPath)
		if err != nil {
			return err
		}
		t.Apply()
	}

	flags := &cfg.Tuning{}
	if opts.policy != "" {
		flags.CorrectionPolicy = &opts.policy
	}
	if err := flags.Validate(); err != nil {
		return err
	}
	flags.Apply()

	switch cfg.Backend(opts.backend) {
	case "":
	case cfg.BackendFeed, cfg.BackendManual:
		cfg.Controller.Backend = cfg.Backend(opts.backend)
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", cfg.BackendFeed, cfg.BackendManual, opts.backend)
	}

	cfg.Runtime.TickRate = opts.tickRate
	cfg.Runtime.Level = opts.levelName
	cfg.Feed.Address = opts.feedAddr
	return nil
}

func run(opts options) error {
	fsys, err := assets.Open(opts.assetsDir)
	if err != nil {
		return err
	}
	level, err := world.LoadLevel(fsys, cfg.Runtime.Level, cfg.Physics.GroundThickness)
	if err != nil {
		return err
	}

	agents := make([]feed.AgentID, 0, len(level.Data.SpawnPoints))
	for _, sp := range level.Data.SpawnPoints {
		agents = append(agents, feed.AgentID(sp.Agent))
	}

	client := feed.NewClient(cfg.Feed, agents)
	client.Connect(cfg.Feed.Address)
	defer client.Disconnect()

	cues := audio.NewCues(audio.DefaultSampleRate)
	if opts.record != "" {
		cues.Record()
	}

	stop := make(chan struct{}, 1)
	requestStop := func() {
		select {
		case stop <- struct{}{}:
		default:
		}
	}

	var view *debugview.View
	if opts.view {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("debug view: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("debug view: %w", err)
		}
		defer screen.Fini()

		logFile, err := os.Create(appName + ".log")
		if err == nil {
			log.SetOutput(logFile)
			defer logFile.Close()
		}

		view = debugview.New(screen, level.Data)
		go view.WatchKeys(requestStop)
	}

	scene := scenes.NewWorldScene(scenes.Options{
		LevelName: cfg.Runtime.Level,
		Level:     level,
		Source:    client,
		Link:      client,
		Cues:      cues,
		View:      view,
		ViewEvery: uint64(max(1, cfg.Runtime.TickRate/10)),
	})

	errCh := make(chan error, 1)
	var ticks uint64
	lp := loop.New("runtime", cfg.Runtime.TickRate, func(dt float64) {
		ticks++
		crash.Guard("runtime", map[string]string{"tick": fmt.Sprint(ticks)}, func() {
			if err := scene.Update(dt); err != nil {
				select {
				case errCh <- err:
				default:
				}
			}
		})
	})

	done := make(chan struct{})
	go func() {
		lp.Run()
		close(done)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var timeout <-chan time.Time
	if opts.duration > 0 {
		timeout = time.After(opts.duration)
	}

	log.Printf("Pedestrian runtime on level %q: %d pedestrians, feed %s, %d ticks/s, backend %s",
		cfg.Runtime.Level, len(agents), cfg.Feed.Address, cfg.Runtime.TickRate, cfg.Controller.Backend)

	var runErr error
	select {
	case <-sigChan:
		log.Println("Shutting down runtime...")
	case <-stop:
	case <-timeout:
	case runErr = <-errCh:
	}

	lp.Stop()
	<-done
	scene.Close()

	if err := client.LastError(); err != nil {
		log.Printf("[feed] last error: %v", err)
	}
	log.Printf("Runtime stopped after %d ticks (feed available: %v, sim time %.1fs)",
		ticks, client.Available(), client.SimTime())

	if opts.record != "" {
		if err := writeRecording(cues, opts.record); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

func writeRecording(cues *audio.Cues, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	defer f.Close()

	if err := cues.WriteWAV(f); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	steps, lands := cues.Counts()
	log.Printf("Recorded %v of cues (%d footsteps, %d landings) to %s", cues.Recorded(), steps, lands, path)
	return nil
}
