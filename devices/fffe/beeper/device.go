// Package beeper implements the buzzer driven by the sound timer.
package beeper

import (
	"log"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8/devices"
)

// Default tone settings.
const (
	DefaultSampleRate = 44100
	DefaultPitch      = 440
	DefaultDuration   = 100 * time.Millisecond
	DefaultVolume     = 0.25
)

// Device defines all internal doodads for the beeper.
type Device struct {
	tone     *tone
	duration time.Duration
	ctx      *oto.Context
	player   *oto.Player
}

var _ devices.Device = &Device{}

// New creates a beeper playing a square wave of the given pitch (in herz)
// for the given duration each time Beep is called.
func New(pitch float64, duration time.Duration) *Device {
	if pitch <= 0 {
		pitch = DefaultPitch
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Device{
		tone:     newTone(DefaultSampleRate, pitch, DefaultVolume),
		duration: duration,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.Builtin(0x0004)
}

// Startup opens the audio output. Only one audio context can exist per
// process, so Startup must not be called again after Shutdown.
func (d *Device) Startup() error {
	if d.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   DefaultSampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to open audio output")
		}
		<-ready
		d.ctx = ctx
	}

	d.player = d.ctx.NewPlayer(d.tone)
	d.player.Play()
	return nil
}

// Shutdown stops audio playback.
func (d *Device) Shutdown() error {
	if d.player == nil {
		return nil
	}

	err := d.player.Close()
	d.player = nil
	return errors.Wrapf(err, "failed to close audio player")
}

// Beep starts the tone. A beep that is already playing starts over.
// Beep can be passed to cpu.New as the tone handler.
func (d *Device) Beep() {
	if d.player == nil {
		log.Println(d.ID(), "beep (no audio output)")
		return
	}
	d.tone.trigger(int(d.duration.Seconds() * float64(d.tone.rate)))
}
