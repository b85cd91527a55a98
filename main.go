/*
Hexwave renders an animated hexagonal wave surface. The testbed package
drives the engine with the lattice and wave configuration from a TOML
file, which can be edited while the application runs.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/hexwave/engine"
	"github.com/spaghettifunk/hexwave/testbed"
)

func main() {
	configPath := flag.String("config", "assets/hexwave.toml", "path to the configuration file")
	flag.Parse()

	game, err := testbed.NewWaveGame(*configPath)
	if err != nil {
		panic(err)
	}

	e, err := engine.New(game)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = e.Shutdown()
		os.Exit(0)
	}()

	// run engine
	if err := e.Run(); err != nil {
		panic(err)
	}

	if err := e.Shutdown(); err != nil {
		panic(err)
	}
}
