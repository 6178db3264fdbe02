package main

import (
	"os"
)

// Version is set during build time via ldflags.
var Version = "dev"

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := a.rootCmd().Execute(); err != nil {
		os.Exit(a.fail(err))
	}
}
