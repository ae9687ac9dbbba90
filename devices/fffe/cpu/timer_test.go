package cpu

import "testing"

func TestDelayTimer(t *testing.T) {
	//   LD V0, 3
	//   LD DT, V0
	//   LD V1, DT
	//   JP $206
	c := newCPU(t, 0x6003, 0xf015, 0xf107, 0x1206)
	mustStep(t, c, 2)

	// LD DT ticks once in the same step.
	if c.Delay() != 2 {
		t.Fatalf("delay mismatch:\nwant: 2\nhave: %d", c.Delay())
	}

	mustStep(t, c, 1)
	if c.V(1) != 2 {
		t.Fatalf("LD Vx, DT mismatch:\nwant: 2\nhave: %d", c.V(1))
	}

	mustStep(t, c, 10)
	if c.Delay() != 0 {
		t.Fatalf("delay did not clamp at 0: %d", c.Delay())
	}
}

func TestSoundToneFiresOnce(t *testing.T) {
	tones := 0
	c := New(nil, func() { tones++ })

	//   LD V0, 4
	//   LD ST, V0
	//   JP $204
	if err := c.Load(program(0x6004, 0xf018, 0x1204)); err != nil {
		t.Fatal(err)
	}

	mustStep(t, c, 2)
	if c.Sound() != 3 || tones != 0 {
		t.Fatalf("unexpected state after LD ST: sound=%d tones=%d", c.Sound(), tones)
	}

	mustStep(t, c, 2)
	if tones != 0 {
		t.Fatalf("tone fired early at sound=%d", c.Sound())
	}

	mustStep(t, c, 1)
	if tones != 1 || c.Sound() != 0 {
		t.Fatalf("expected one tone at expiry: sound=%d tones=%d", c.Sound(), tones)
	}

	mustStep(t, c, 20)
	if tones != 1 {
		t.Fatalf("tone repeated while timer is 0: %d", tones)
	}
}

func TestSoundToneNotFromHostCalls(t *testing.T) {
	tones := 0
	c := New(nil, func() { tones++ })
	c.sound = 1

	if err := c.SetKey(4); err != nil {
		t.Fatal(err)
	}
	if err := c.Load(program(0x1200)); err != nil {
		t.Fatal(err)
	}

	if tones != 0 {
		t.Fatalf("tone fired outside of Step")
	}

	mustStep(t, c, 1)
	if tones != 1 {
		t.Fatalf("expected tone on step; have %d", tones)
	}
}

func TestSoundToneZeroStart(t *testing.T) {
	tones := 0
	c := New(nil, func() { tones++ })

	//   LD ST, V0 (V0 = 0)
	if err := c.Load(program(0xf018, 0x1202)); err != nil {
		t.Fatal(err)
	}
	mustStep(t, c, 10)

	if tones != 0 {
		t.Fatalf("tone fired for a zero sound timer")
	}
}

func TestKeyWait(t *testing.T) {
	//   LD V5, K
	//   LD V6, $01
	c := newCPU(t, 0xf50a, 0x6601)

	mustStep(t, c, 1)
	if c.State() != AwaitingKey || c.PC() != ProgramAddress {
		t.Fatalf("expected suspension at %03x; have state=%v pc=%03x", ProgramAddress, c.State(), c.PC())
	}

	mustStep(t, c, 5)
	if c.State() != AwaitingKey || c.PC() != ProgramAddress || c.V(6) != 0 {
		t.Fatalf("machine advanced without a key")
	}

	if err := c.SetKey(0xb); err != nil {
		t.Fatal(err)
	}
	mustStep(t, c, 1)

	if c.State() != Ready || c.PC() != ProgramAddress+2 || c.V(5) != 0xb {
		t.Fatalf("key not accepted: state=%v pc=%03x v5=%x", c.State(), c.PC(), c.V(5))
	}

	mustStep(t, c, 1)
	if c.V(6) != 1 {
		t.Fatalf("execution did not resume after key wait")
	}
}

func TestKeyWaitImmediate(t *testing.T) {
	c := newCPU(t, 0xf30a)
	if err := c.SetKey(7); err != nil {
		t.Fatal(err)
	}
	mustStep(t, c, 1)

	if c.State() != Ready || c.PC() != ProgramAddress+2 || c.V(3) != 7 {
		t.Fatalf("latched key not consumed: state=%v pc=%03x v3=%x", c.State(), c.PC(), c.V(3))
	}
}

func TestKeyWaitTimersKeepRunning(t *testing.T) {
	//   LD V0, 10
	//   LD DT, V0
	//   LD V1, K
	c := newCPU(t, 0x600a, 0xf015, 0xf10a)
	mustStep(t, c, 3)
	before := c.Delay()
	mustStep(t, c, 4)

	if c.Delay() != before-4 {
		t.Fatalf("delay timer stalled during key wait: %d -> %d", before, c.Delay())
	}
}

func TestKeyLatchResetsEachStep(t *testing.T) {
	//   LD   V0, $04
	//   SKP  V0
	//   LD   V1, $01
	//   SKP  V0
	//   LD   V2, $01
	c := newCPU(t, 0x6004, 0xe09e, 0x6101, 0xe09e, 0x6201)

	mustStep(t, c, 1)
	if err := c.SetKey(4); err != nil {
		t.Fatal(err)
	}
	mustStep(t, c, 1)

	if c.PC() != 0x206 {
		t.Fatalf("SKP did not skip with key latched: pc=%03x", c.PC())
	}

	// The latch was cleared at the end of the previous step.
	mustStep(t, c, 2)
	if c.V(2) != 1 {
		t.Fatalf("SKP skipped without a latched key")
	}
}

func TestSKNP(t *testing.T) {
	//   LD   V0, $04
	//   SKNP V0
	c := newCPU(t, 0x6004, 0xe0a1)
	mustStep(t, c, 1)
	if err := c.SetKey(5); err != nil {
		t.Fatal(err)
	}
	mustStep(t, c, 1)

	if c.PC() != 0x206 {
		t.Fatalf("SKNP did not skip for a different key: pc=%03x", c.PC())
	}

	c = newCPU(t, 0x6004, 0xe0a1)
	mustStep(t, c, 1)
	if err := c.SetKey(4); err != nil {
		t.Fatal(err)
	}
	mustStep(t, c, 1)

	if c.PC() != 0x204 {
		t.Fatalf("SKNP skipped for the pressed key: pc=%03x", c.PC())
	}
}

func TestSetKeyLastWriteWins(t *testing.T) {
	c := newCPU(t, 0xf00a)
	for _, k := range []Key{1, 2, NoKey, 9} {
		if err := c.SetKey(k); err != nil {
			t.Fatal(err)
		}
	}
	mustStep(t, c, 1)

	if c.V(0) != 9 {
		t.Fatalf("latch mismatch:\nwant: 9\nhave: %d", c.V(0))
	}
}
