package beeper

import (
	"encoding/binary"
	"testing"
)

func TestToneSilentByDefault(t *testing.T) {
	tn := newTone(8000, 1000, 1)
	buf := make([]byte, 64)

	n, err := tn.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(buf) {
		t.Fatalf("short read:\nwant: %d\nhave: %d", len(buf), n)
	}

	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not silent: %02x", i, b)
		}
	}
}

func TestToneSquareWave(t *testing.T) {
	// 8000 Hz sample rate and 1000 Hz pitch give 4 samples per half wave.
	tn := newTone(8000, 1000, 1)
	tn.trigger(12)

	samples := readSamples(t, tn, 16)
	amp := int16(0x7fff)
	want := []int16{
		-amp, -amp, -amp, -amp,
		amp, amp, amp, amp,
		-amp, -amp, -amp, -amp,
		0, 0, 0, 0,
	}

	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("sample %d mismatch:\nwant: %d\nhave: %d", i, want[i], samples[i])
		}
	}

	if tn.playing() {
		t.Fatalf("tone still playing after its duration")
	}
}

func TestToneRetrigger(t *testing.T) {
	tn := newTone(8000, 1000, 0.5)
	tn.trigger(4)
	readSamples(t, tn, 2)
	tn.trigger(4)

	samples := readSamples(t, tn, 6)
	for i := 0; i < 4; i++ {
		if samples[i] == 0 {
			t.Fatalf("sample %d silent after retrigger", i)
		}
	}
	if samples[4] != 0 || samples[5] != 0 {
		t.Fatalf("tone ran past its duration: %v", samples)
	}
}

func TestToneVolumeClamp(t *testing.T) {
	if tn := newTone(8000, 1000, 2); tn.amplitude != 0x7fff {
		t.Fatalf("amplitude not clamped: %d", tn.amplitude)
	}
	if tn := newTone(8000, 1000, -1); tn.amplitude != 0 {
		t.Fatalf("amplitude not clamped: %d", tn.amplitude)
	}
}

func TestBeepWithoutOutput(t *testing.T) {
	d := New(0, 0)
	d.Beep()

	if d.tone.playing() {
		t.Fatalf("tone started without an audio output")
	}
	if err := d.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

func readSamples(t *testing.T, tn *tone, n int) []int16 {
	t.Helper()

	buf := make([]byte, n*bytesPerSample)
	if _, err := tn.Read(buf); err != nil {
		t.Fatal(err)
	}

	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*bytesPerSample:]))
	}
	return out
}
