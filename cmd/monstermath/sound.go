//go:build !nosound

package main

import (
	"time"

	"github.com/vovakirdan/monster-math/internal/audio"
	"github.com/vovakirdan/monster-math/internal/audio/device"
	"github.com/vovakirdan/monster-math/internal/config"
)

// soundDevice returns the system audio device, or nil with --no-sound.
func soundDevice(cfg config.AudioConfig) audio.Opener {
	if flagNoSound || !cfg.Enabled {
		return nil
	}
	return device.Opener(time.Duration(cfg.BufferMS) * time.Millisecond)
}
