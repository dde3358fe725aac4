// main.go - Main entry point for ClearFrame

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
	"golang.org/x/term"
)

func boilerPlate() {
	fmt.Println("\nClearFrame - region reconstruction for watermarked video")
	fmt.Println("https://github.com/clearframe/ClearFrame")
}

func main() {
	boilerPlate()

	var (
		configPath  string
		filePath    string
		urlSource   string
		profileName string
		luaProfile  string
		headless    bool
		autoProcess bool
		scale       int
		snapshotDir string
		logLevel    string
		seed        int64
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "Path to YAML config file")
	flagSet.StringVar(&filePath, "file", "", "Open a local video or still file")
	flagSet.StringVar(&urlSource, "url", "", "Open a hosted video link")
	flagSet.StringVar(&profileName, "profile", "", "Built-in region profile name")
	flagSet.StringVar(&luaProfile, "lua-profile", "", "Lua region profile script")
	flagSet.BoolVar(&headless, "headless", false, "Run without a window")
	flagSet.BoolVar(&autoProcess, "autoprocess", false, "Start processing immediately")
	flagSet.IntVar(&scale, "scale", 0, "Integer window scale factor")
	flagSet.StringVar(&snapshotDir, "snapshot-dir", "", "Directory for still captures")
	flagSet.StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flagSet.Int64Var(&seed, "seed", 0, "Grain seed (0 picks one per run)")
	chimeOn := flagSet.Bool("chime", true, "Play a chime when processing finishes")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./clearframe [-file video.mp4 | -url https://...] [-profile default] [-headless]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if filePath != "" && urlSource != "" {
		fmt.Println("Error: -file and -url are mutually exclusive")
		os.Exit(1)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if profileName != "" {
		cfg.Profile = profileName
	}
	if luaProfile != "" {
		cfg.LuaProfile = luaProfile
	}
	if scale > 0 {
		cfg.Scale = clampScale(scale)
	}
	if snapshotDir != "" {
		cfg.SnapshotDir = snapshotDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	// Bool flags have no unset sentinel, so only an explicit -chime
	// overrides the config value.
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "chime" {
			cfg.Chime = *chimeOn
		}
	})

	setupLogging(cfg.LogLevel)

	profile, err := loadProfile(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("profile", profile.Name).Int("regions", len(profile.Regions)).Msg("region profile loaded")

	store, err := NewHandleStore()
	if err != nil {
		fmt.Printf("Failed to initialize staging store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	collab := NewCollaborator(cfg.Collaborator.APIKey, cfg.Collaborator.Model)
	engine := NewSessionEngine(store, collab)
	defer engine.Close()

	if cfg.Chime {
		chime := NewChimeNotifier()
		engine.SetNotifier(chime.Play)
	}

	backend := VIDEO_BACKEND_EBITEN
	if headless {
		backend = VIDEO_BACKEND_HEADLESS
	}
	output, err := NewVideoOutput(backend)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		os.Exit(1)
	}

	grainSeed := cfg.Seed
	if grainSeed == 0 {
		grainSeed = time.Now().UnixNano()
	}
	comp := NewCompositor(cfg.GrainCount, grainSeed)

	source := NewPatternSource(1280, 720)
	source.Play()
	loop := NewFrameLoop(source, output, comp, profile.Regions, cfg.RefreshRate)
	loop.SetSampleGap(cfg.SampleGap)

	controller := NewAppController(engine, loop, output, source, cfg)
	defer controller.Shutdown()

	if err := output.SetDisplayConfig(DisplayConfig{
		Width:       1280,
		Height:      720,
		Scale:       cfg.Scale,
		RefreshRate: cfg.RefreshRate,
		VSync:       true,
	}); err != nil {
		fmt.Printf("Failed to configure display: %v\n", err)
		os.Exit(1)
	}
	if err := output.Start(); err != nil {
		fmt.Printf("Failed to start video: %v\n", err)
		os.Exit(1)
	}
	defer output.Close()

	tok, err := loop.Start()
	if err != nil {
		fmt.Printf("Failed to start playback loop: %v\n", err)
		os.Exit(1)
	}
	defer loop.Stop(tok)

	switch {
	case filePath != "":
		controller.selectSource(filePath)
	case urlSource != "":
		controller.selectSource(urlSource)
	}
	if autoProcess {
		if err := engine.Process(); err != nil {
			log.Warn().Err(err).Msg("autoprocess refused")
		}
	}

	var host *TerminalHost
	if term.IsTerminal(int(os.Stdin.Fd())) {
		host = NewTerminalHost(controller.HandleKey)
		host.Start()
		defer host.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	type doneProvider interface {
		Done() <-chan struct{}
	}
	var windowDone <-chan struct{}
	if dp, ok := output.(doneProvider); ok {
		windowDone = dp.Done()
	}

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-windowDone:
		log.Info().Msg("window closed")
	}
}

// loadProfile resolves the active region catalog: a loadable Lua script
// wins over the built-in profile name, a rejected script degrades to the
// built-in with a warning.
func loadProfile(cfg AppConfig) (Profile, error) {
	if cfg.LuaProfile != "" {
		p, err := LoadLuaProfile(cfg.LuaProfile)
		if err == nil {
			return p, nil
		}
		log.Warn().Err(err).Str("script", cfg.LuaProfile).Msg("lua profile rejected, using built-in profile")
	}
	return ProfileByName(cfg.Profile)
}
