// Package cpu implements C3, the SPC-700 fetch/decode/execute core: a
// 6502-derived 8-bit processor with an accumulator (A), two index
// registers (X, Y, the latter doubling as a 16-bit pair YA with A for
// MUL/DIV), a stack pointer, a direct-page flag that banks zero-page
// addressing between 0x0000 and 0x0100, and three built-in timers exposed
// through the memory map it executes against (package mem).
//
// Dispatch follows the teacher's 6502 core (cpu_six5go2.go in the
// reference corpus): flags are stored as individual bools and packed to a
// byte on demand rather than kept packed at all times, and cycle costs are
// accounted per instruction rather than pre-tabulated, since the SPC-700's
// addressing-mode/operation cross product makes a flat cost table
// redundant with the work the executor already does.
package cpu

import "github.com/retrocore/spc700/mem"

// PSW flag bit positions, packed N V P B H I Z C from bit 7 down to bit 0.
const (
	flagN = 0x80
	flagV = 0x40
	flagP = 0x20
	flagB = 0x10
	flagH = 0x08
	flagI = 0x04
	flagZ = 0x02
	flagC = 0x01
)

const (
	resetVector = 0xFFFE
	directPage0 = 0x0000
	directPage1 = 0x0100
)

// UndefinedHandler is invoked exactly once per distinct program-counter
// location that hits an implementation-detected undefined condition
// (spec.md S7's InternalConsistencyError). It never aborts execution; the
// core always completes the Run call. A nil handler disables reporting.
type UndefinedHandler func(pc uint16, detail string)

// CPU is C3: one SPC-700 instance. Not safe for concurrent use — the
// scheduler (package spc700) that owns one of these drives it from a
// single goroutine, matching spec.md S5's cooperative single-threaded
// model.
type CPU struct {
	PC         uint16
	A, X, Y    uint8
	SP         uint8
	N, V, P, B bool
	H, I, Z, C bool

	Cycles uint32 // free-running total, compared by deltas (spec.md S9)

	bus *mem.Bus

	onUndefined UndefinedHandler
	warnedAt    map[uint16]bool
}

// New constructs a CPU driving the given bus. The bus must already have
// its DSP attached.
func New(bus *mem.Bus) *CPU {
	return &CPU{bus: bus, warnedAt: make(map[uint16]bool)}
}

// SetUndefinedHandler installs the diagnostic callback for undefined
// conditions. See UndefinedHandler.
func (c *CPU) SetUndefinedHandler(h UndefinedHandler) {
	c.onUndefined = h
}

// Reset puts the CPU in its power-on state: PC loaded from the reset
// vector, SP at 0xEF (the IPL ROM's convention), flags clear except I.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xEF
	c.N, c.V, c.P, c.B, c.H, c.I, c.Z, c.C = false, false, false, false, false, true, false, false
	c.PC = uint16(c.bus.ReadByte(resetVector)) | uint16(c.bus.ReadByte(resetVector+1))<<8
	c.Cycles = 0
}

// SetState loads the full architectural register state, as done when a
// snapshot is loaded (spec.md S4.5). RAM itself is loaded directly into
// the bus by the caller.
func (c *CPU) SetState(pc uint16, a, x, y, psw, sp uint8) {
	c.PC = pc
	c.A, c.X, c.Y, c.SP = a, x, y, sp
	c.SetFlags(psw)
}

// Flags packs the eight flag bits into one PSW byte, for PUSH PSW and for
// snapshot readback.
func (c *CPU) Flags() uint8 {
	var f uint8
	if c.N {
		f |= flagN
	}
	if c.V {
		f |= flagV
	}
	if c.P {
		f |= flagP
	}
	if c.B {
		f |= flagB
	}
	if c.H {
		f |= flagH
	}
	if c.I {
		f |= flagI
	}
	if c.Z {
		f |= flagZ
	}
	if c.C {
		f |= flagC
	}
	return f
}

// SetFlags unpacks a PSW byte into the eight flag bits, for POP PSW and
// snapshot loading.
func (c *CPU) SetFlags(f uint8) {
	c.N = f&flagN != 0
	c.V = f&flagV != 0
	c.P = f&flagP != 0
	c.B = f&flagB != 0
	c.H = f&flagH != 0
	c.I = f&flagI != 0
	c.Z = f&flagZ != 0
	c.C = f&flagC != 0
}

func (c *CPU) directPageBase() uint16 {
	if c.P {
		return directPage1
	}
	return directPage0
}

// Run advances the CPU so that at least `cycles` SPC cycles are consumed,
// per the public contract in spec.md S4.2: overshoot by up to one
// instruction is permitted, undershoot is not.
func (c *CPU) Run(cycles int) {
	consumed := 0
	for consumed < cycles {
		n := c.step()
		consumed += n
		c.Cycles += uint32(n)
		c.bus.Tick(n)
	}
}

// step fetches, decodes and executes one instruction, returning its
// cycle cost. Never fails: an implementation-detected undefined condition
// is reported once via onUndefined and execution continues with a
// best-effort result (spec.md S4.2/S7).
func (c *CPU) step() int {
	op := c.fetch8()
	return c.execute(op)
}

func (c *CPU) reportUndefined(pc uint16, detail string) {
	if c.onUndefined == nil {
		return
	}
	if c.warnedAt[pc] {
		return
	}
	c.warnedAt[pc] = true
	c.onUndefined(pc, detail)
}

// --- memory helpers ---

func (c *CPU) fetch8() uint8 {
	v := c.bus.ReadByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.bus.ReadByte(addr)
	hi := c.bus.ReadByte(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) write16(addr uint16, v uint16) {
	c.bus.WriteByte(addr, uint8(v))
	c.bus.WriteByte(addr+1, uint8(v>>8))
}

func (c *CPU) push8(v uint8) {
	c.bus.WriteByte(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop8() uint8 {
	c.SP++
	return c.bus.ReadByte(0x0100 | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.pop8()
	hi := c.pop8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) pushPSW() {
	c.push8(c.Flags())
}

func (c *CPU) popPSW() {
	c.SetFlags(c.pop8())
}

func (c *CPU) setNZ(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

func (c *CPU) setNZ16(v uint16) {
	c.Z = v == 0
	c.N = v&0x8000 != 0
}

// branchRel applies an 8-bit signed relative displacement to PC, used by
// every conditional and unconditional branch.
func (c *CPU) branchRel(disp uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(disp)))
}
