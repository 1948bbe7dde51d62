package mem

import "testing"

type fakeDSP struct {
	regs [128]uint8
}

func (f *fakeDSP) ReadReg(addr uint8) uint8  { return f.regs[addr&0x7F] }
func (f *fakeDSP) WriteReg(addr uint8, v uint8) { f.regs[addr&0x7F] = v }

func newTestBus() (*Bus, *fakeDSP) {
	b := NewBus()
	d := &fakeDSP{}
	b.AttachDSP(d)
	return b, d
}

func TestDSPWindowRoundTrip(t *testing.T) {
	b, d := newTestBus()
	b.WriteByte(regDSPAddr, 0x4C)
	b.WriteByte(regDSPData, 0xFF)
	if d.regs[0x4C] != 0xFF {
		t.Fatalf("DSP write did not dispatch: got %#x", d.regs[0x4C])
	}
	if got := b.ReadByte(regDSPData); got != 0xFF {
		t.Fatalf("DSP read did not dispatch: got %#x", got)
	}
}

func TestDSPAddressMasked(t *testing.T) {
	b, d := newTestBus()
	b.WriteByte(regDSPAddr, 0xFC) // 0xFC & 0x7F == 0x7C
	b.WriteByte(regDSPData, 0x00)
	if d.regs[0x7C] != 0x00 {
		t.Fatalf("expected write routed to reg 0x7C")
	}
}

func TestPortsDoNotAlias(t *testing.T) {
	b, _ := newTestBus()
	b.WritePort(2, 0x42)
	b.WritePort(3, 0x05)
	if got := b.ReadByte(regPort0 + 2); got != 0x42 {
		t.Fatalf("CPU should see host's write via input port, got %#x", got)
	}
	b.WriteByte(regPort0+2, 0x99)
	if got := b.ReadPort(2); got != 0x99 {
		t.Fatalf("host should see CPU's write via output port, got %#x", got)
	}
	if got := b.ReadByte(regPort0 + 2); got != 0x42 {
		t.Fatalf("CPU write must not clobber input port, got %#x", got)
	}
}

func TestTimerCounterReadClears(t *testing.T) {
	b, _ := newTestBus()
	b.WriteByte(regControl, ctrlTimer2Enable)
	b.WriteByte(regTimer0+2, 1) // target 1
	b.Tick(timerPeriodFast)
	if got := b.ReadByte(regCount0 + 2); got != 1 {
		t.Fatalf("expected counter == 1 after one target period, got %d", got)
	}
	if got := b.ReadByte(regCount0 + 2); got != 0 {
		t.Fatalf("expected read to clear counter, got %d", got)
	}
}

func TestTimerTargetZeroMeans256(t *testing.T) {
	b, _ := newTestBus()
	b.WriteByte(regControl, ctrlTimer0Enable)
	b.WriteByte(regTimer0, 0)
	b.Tick(timerPeriodSlow * 255)
	if got := b.ReadByte(regCount0); got != 0 {
		t.Fatalf("counter should not have incremented yet, got %d", got)
	}
	b.Tick(timerPeriodSlow)
	if got := b.ReadByte(regCount0); got != 1 {
		t.Fatalf("expected counter == 1 after 256 periods, got %d", got)
	}
}

func TestControlPortClearLatch(t *testing.T) {
	b, _ := newTestBus()
	b.WritePort(0, 0x11)
	b.WritePort(1, 0x22)
	b.WriteByte(regControl, ctrlPortClear01)
	if b.ReadByte(regPort0) != 0 || b.ReadByte(regPort0+1) != 0 {
		t.Fatalf("expected ports 0,1 cleared by CONTROL bit 4")
	}
}

func TestROMOverlay(t *testing.T) {
	b, _ := newTestBus()
	b.WriteByte(0xFFFE, 0xAB)
	if got := b.ReadByte(0xFFFE); got != 0xAB {
		t.Fatalf("expected RAM visible with ROM overlay disabled, got %#x", got)
	}
	b.WriteByte(regControl, ctrlROMEnable)
	if got := b.ReadByte(0xFFFE); got == 0xAB {
		t.Fatalf("expected IPL ROM to shadow RAM once enabled")
	}
	b.WriteByte(0xFFFE, 0xCD) // writes must still land in RAM
	b.WriteByte(regControl, 0)
	if got := b.ReadByte(0xFFFE); got != 0xCD {
		t.Fatalf("expected RAM write under ROM overlay to be preserved, got %#x", got)
	}
}
