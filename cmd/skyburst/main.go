package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/lixenwraith/skyburst/audio"
	"github.com/lixenwraith/skyburst/engine"
	"github.com/lixenwraith/skyburst/term"
)

var (
	seedFlag  = flag.Int64("seed", 0, "Simulation seed (0 = time-based)")
	starsFlag = flag.Int("stars", 0, "Star count override (0 = derive from terminal area)")
	muteFlag  = flag.Bool("mute", false, "Disable the audio show")
	titleFlag = flag.String("title", "✦ S K Y B U R S T ✦", "Overlay title text")
)

func main() {
	flag.Parse()

	scr, err := term.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing anything if the show crashes
	defer func() {
		if r := recover(); r != nil {
			scr.Close()
			fmt.Fprintf(os.Stderr, "skyburst crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	player := audio.NewPlayer()
	if !*muteFlag {
		// Non-fatal: the show runs silent without a device
		_ = player.Init()
	}
	showRng := rand.New(rand.NewSource(time.Now().UnixNano()))

	loop := engine.New(scr, scr, scr, engine.Config{
		Title:     *titleFlag,
		Subtitle:  "a fireworks show for your terminal",
		Seed:      *seedFlag,
		StarCount: *starsFlag,
		OnShow:    func() { player.PlayShow(showRng) },
		OnLaunch:  player.PlayLaunch,
		OnCleanup: func() {
			player.Close()
			scr.Close()
		},
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		loop.Stop()
	}()

	// Opening number
	player.PlayShow(showRng)

	loop.Run()
}
