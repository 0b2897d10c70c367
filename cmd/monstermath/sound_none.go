//go:build nosound

package main

import (
	"github.com/vovakirdan/monster-math/internal/audio"
	"github.com/vovakirdan/monster-math/internal/config"
)

// soundDevice is always nil in headless builds (go build -tags nosound),
// which link no native audio library.
func soundDevice(config.AudioConfig) audio.Opener {
	return nil
}
