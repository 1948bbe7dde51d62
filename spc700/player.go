// Package spc700 is the scheduler: it owns one cpu.CPU, one dsp.DSP and
// one mem.Bus, loads a snapshot into them, and alternates short CPU bursts
// with DSP sample ticks to produce an unbounded PCM stream. Structurally
// this mirrors the teacher's main.go orchestration shape (construct a bus,
// wire peripherals onto it, drive execution) without inheriting the
// teacher's GUI/video dependency, since this system has neither.
package spc700

import (
	"github.com/retrocore/spc700/cpu"
	"github.com/retrocore/spc700/dsp"
	"github.com/retrocore/spc700/internal/diag"
	"github.com/retrocore/spc700/mem"
	"github.com/retrocore/spc700/snapshot"
)

// tsCyc is the CPU-cycle burst length between DSP sample ticks: the
// SPC-700 runs at ~1.024MHz and the DSP produces one stereo sample every
// 32kHz tick, so 1024000/32000 = 32 cycles elapse per sample. Grounded in
// original_source/libopenspc/main.cc's OSPC_Run, which reads this value as
// the extern TS_CYC constant.
const tsCyc = 32

// Player is C5: the root scheduler a caller constructs once per
// independent emulated machine. Concurrent calls into the same Player
// from multiple goroutines are undefined, matching spec.md's single-
// threaded cooperative concurrency model.
type Player struct {
	cpu *cpu.CPU
	dsp *dsp.DSP
	bus *mem.Bus

	mixLeft int // leftover CPU cycles owed before the next DSP tick, carried across Run calls
}

// New constructs an unloaded Player. Call Init before Run.
func New() *Player {
	bus := mem.NewBus()
	d := dsp.New(bus)
	bus.AttachDSP(d)
	c := cpu.New(bus)
	c.SetUndefinedHandler(diag.ReportOnce)
	return &Player{cpu: c, dsp: d, bus: bus}
}

// Init loads a snapshot (SPC, ZST or S9X, auto-detected) and resets the
// scheduler's cycle bookkeeping. It returns snapshot.ErrUnsupportedFormat
// or a *snapshot.FormatError if data isn't a recognized or well-formed
// snapshot.
func (p *Player) Init(data []byte) error {
	st, err := snapshot.Load(data)
	if err != nil {
		return err
	}

	p.bus.Reset()
	p.bus.RAM = st.RAM

	regs := st.DSPRegs
	const regKON = 0x4C
	regs[regKON] |= st.RestartVoices
	p.dsp.LoadRegs(regs)

	p.cpu.SetState(st.PC, st.A, st.X, st.Y, st.PSW, st.SP)
	p.mixLeft = 0

	p.clearEchoRegionOnLoad(st.DSPRegs)
	return nil
}

// clearEchoRegionOnLoad zeroes the echo buffer region unless the snapshot
// already disabled echo writes (FLG bit 5). Most emulators that produced
// the snapshot didn't correctly emulate echo, so without this the first
// moments of playback can pop/click from whatever garbage is sitting in
// that RAM region. Grounded in original_source/libopenspc/main.cc's
// OSPC_Init NO_CLEAR_ECHO block; "truncate don't wrap" resolves the one
// case (start+len overflowing 0x10000) the original leaves to unsigned
// wraparound.
func (p *Player) clearEchoRegionOnLoad(dspRegs [128]byte) {
	const (
		flgEchoWrite = 1 << 5
		regFLG       = 0x6C
		regESA       = 0x6D
		regEDL       = 0x7D
	)
	if dspRegs[regFLG]&flgEchoWrite != 0 {
		return
	}
	start := int(dspRegs[regESA]) << 8
	length := int(dspRegs[regEDL]) << 11
	if start+length > 0x10000 {
		length = 0x10000 - start
	}
	for i := 0; i < length; i++ {
		p.bus.RAM[start+i] = 0
	}
}

// Run advances emulation and fills buf with interleaved 16-bit stereo PCM,
// alternating cycleLimit-bounded CPU bursts with DSP sample ticks exactly
// as libopenspc's OSPC_Run does: the byte count actually written is
// whichever of cycleLimit or len(buf) runs out first, and any partial
// sample period owed is carried into the next call via mixLeft.
//
// cycleLimit < 0 means "buffer size is the limiting factor": Run fills buf
// completely (down to a multiple of 4 bytes) regardless of cycle count.
// buf may be nil (or shorter than the cycle budget implies); CPU and DSP
// state still advance correctly, and the return value is the number of
// bytes that would have been written had a large enough buffer been given.
func (p *Player) Run(cycleLimit int, buf []byte) int {
	sampleCap := (len(buf) / 4) * 4

	if cycleLimit < 0 || (len(buf) > 0 && cycleLimit >= (sampleCap/4)*tsCyc+p.mixLeft) {
		if p.mixLeft > 0 {
			p.cpu.Run(p.mixLeft)
		}
		n := 0
		for n < sampleCap {
			p.dsp.Tick(buf[n : n+4])
			p.cpu.Run(tsCyc)
			n += 4
		}
		p.mixLeft = 0
		return n
	}

	if cycleLimit < p.mixLeft {
		p.cpu.Run(cycleLimit)
		p.mixLeft -= cycleLimit
		return 0
	}

	cyc := cycleLimit
	if p.mixLeft > 0 {
		p.cpu.Run(p.mixLeft)
		cyc -= p.mixLeft
	}

	var scratch [4]byte
	written := 0
	for cyc >= tsCyc {
		p.tickSample(buf, written, scratch[:])
		p.cpu.Run(tsCyc)
		cyc -= tsCyc
		written += 4
	}
	if cyc > 0 {
		p.tickSample(buf, written, scratch[:])
		p.cpu.Run(cyc)
		p.mixLeft = tsCyc - cyc
		written += 4
	} else {
		p.mixLeft = 0
	}
	return written
}

// tickSample ticks the DSP for one sample period, writing into buf at off
// when buf has room there, and into scratch otherwise so the CPU and DSP
// still advance correctly when the caller passed a nil or undersized buf.
func (p *Player) tickSample(buf []byte, off int, scratch []byte) {
	if off+4 <= len(buf) {
		p.dsp.Tick(buf[off : off+4])
		return
	}
	p.dsp.Tick(scratch)
}

// WritePort is the host->SPC direction: value is observed by the CPU the
// next time it reads RAM at 0xF4+i. No implicit synchronization happens.
func (p *Player) WritePort(i int, v uint8) {
	p.bus.WritePort(i, v)
}

// ReadPort is the SPC->host direction: the last byte the CPU wrote to
// output port i.
func (p *Player) ReadPort(i int) uint8 {
	return p.bus.ReadPort(i)
}

// SetChannelMask sets the 8-bit per-voice mute mask: bit v set silences
// voice v in the final mix only, after envelopes and echo contribution
// have already been computed for it.
func (p *Player) SetChannelMask(mask uint8) {
	p.dsp.SetChannelMask(mask)
}

// GetChannelMask returns the mask last set by SetChannelMask.
func (p *Player) GetChannelMask() uint8 {
	return p.dsp.GetChannelMask()
}
