package beeper

import (
	"encoding/binary"
	"sync"
)

// bytesPerSample is the size of a signed 16 bit mono sample.
const bytesPerSample = 2

// tone generates a square wave of fixed pitch for a limited number of
// samples, then silence. It is read from the audio goroutine and
// triggered from the emulation loop.
type tone struct {
	mu        sync.Mutex
	rate      int     // Samples per second.
	halfWave  float64 // Samples per half period of the wave.
	amplitude int16
	phase     float64 // Position within the current half period.
	high      bool    // Which half of the period we are in.
	remaining int     // Samples left to play.
}

func newTone(rate int, pitch float64, volume float64) *tone {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &tone{
		rate:      rate,
		halfWave:  float64(rate) / pitch / 2,
		amplitude: int16(volume * 0x7fff),
	}
}

// trigger (re)starts the tone for the given number of samples.
func (t *tone) trigger(samples int) {
	t.mu.Lock()
	t.remaining = samples
	t.mu.Unlock()
}

// playing returns true while the tone is audible.
func (t *tone) playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining > 0
}

// Read implements io.Reader. It never runs dry; once the tone has ended
// it produces silence.
func (t *tone) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(p) / bytesPerSample
	for i := 0; i < n; i++ {
		var v int16
		if t.remaining > 0 {
			t.remaining--
			v = -t.amplitude
			if t.high {
				v = t.amplitude
			}

			t.phase++
			if t.phase >= t.halfWave {
				t.phase -= t.halfWave
				t.high = !t.high
			}
		}
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(v))
	}

	return n * bytesPerSample, nil
}
