package cpu

import (
	"testing"

	"github.com/retrocore/spc700/mem"
)

type silentDSP struct{ regs [128]uint8 }

func (d *silentDSP) ReadReg(addr uint8) uint8    { return d.regs[addr&0x7F] }
func (d *silentDSP) WriteReg(addr uint8, v uint8) { d.regs[addr&0x7F] = v }

func newTestCPU() (*CPU, *mem.Bus) {
	b := mem.NewBus()
	b.AttachDSP(&silentDSP{})
	c := New(b)
	return c, b
}

// load writes a little program at 0x0200 and points the reset vector at
// it, then resets the CPU so execution starts there.
func load(c *CPU, b *mem.Bus, code ...uint8) {
	for i, v := range code {
		b.WriteByte(0x0200+uint16(i), v)
	}
	b.WriteByte(0xFFFE, 0x00)
	b.WriteByte(0xFFFF, 0x02)
	c.Reset()
}

func TestResetVector(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0x00)
	if c.PC != 0x0200 {
		t.Fatalf("expected PC == 0x0200, got %#x", c.PC)
	}
	if c.SP != 0xEF {
		t.Fatalf("expected SP == 0xEF after reset, got %#x", c.SP)
	}
}

func TestMOVImmediateSetsFlags(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0xE8, 0x00) // MOV A,#0
	c.Run(1)
	if !c.Z {
		t.Fatalf("expected Z set after loading zero into A")
	}
	if c.A != 0 {
		t.Fatalf("expected A == 0, got %#x", c.A)
	}
}

func TestADCCarryAndHalfCarry(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0xE8, 0x0F, 0x88, 0x01) // MOV A,#0x0F ; ADC A,#1
	c.Run(3) // force both 2-cycle instructions: Run's cycle budget is cumulative
	if c.A != 0x10 {
		t.Fatalf("expected A == 0x10, got %#x", c.A)
	}
	if !c.H {
		t.Fatalf("expected half-carry set crossing nibble boundary")
	}
	if c.C {
		t.Fatalf("expected no carry out of bit 7")
	}
}

func TestCMPDoesNotWriteAccumulator(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0xE8, 0x05, 0x68, 0x05) // MOV A,#5 ; CMP A,#5
	c.Run(3)
	if c.A != 0x05 {
		t.Fatalf("CMP must not alter A, got %#x", c.A)
	}
	if !c.Z || !c.C {
		t.Fatalf("expected Z and C set for equal operands")
	}
}

func TestBranchTaken(t *testing.T) {
	c, b := newTestCPU()
	// MOV A,#0 ; BEQ +2 ; MOV A,#0xFF ; MOV A,#0x42
	load(c, b, 0xE8, 0x00, 0xF0, 0x02, 0xE8, 0xFF, 0xE8, 0x42)
	c.Run(7) // MOV(2) + taken BEQ(4) + MOV(2): budget must exceed the first two
	if c.A != 0x42 {
		t.Fatalf("expected branch to skip the dead MOV, A == %#x", c.A)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0xE8, 0x99, 0x2D, 0xE8, 0x00, 0xAE) // MOV A,#0x99 ; PUSH A ; MOV A,#0 ; POP A
	c.Run(11) // 2+4+2+4 cumulative: budget must exceed the first three
	if c.A != 0x99 {
		t.Fatalf("expected A restored to 0x99 from stack, got %#x", c.A)
	}
}

func TestCallAndRet(t *testing.T) {
	c, b := newTestCPU()
	// CALL 0x0210 ; MOV A,#0x11 (after return)
	load(c, b, 0x3F, 0x10, 0x02, 0xE8, 0x11)
	b.WriteByte(0x0210, 0x6F) // RET, at the call target
	c.Run(9) // CALL(8) + RET(5): budget must exceed the CALL alone
	if c.PC != 0x0203 {
		t.Fatalf("expected RET to resume after the CALL, got PC=%#x", c.PC)
	}
}

func TestMulYA(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0x8D, 0x10, 0xE8, 0x10, 0xCF) // MOV Y,#0x10 ; MOV A,#0x10 ; MUL YA
	c.Run(5) // 2+2 cumulative before MUL: budget must exceed that to reach it
	if c.Y != 0x01 || c.A != 0x00 {
		t.Fatalf("expected YA == 0x0100 (16*16), got Y=%#x A=%#x", c.Y, c.A)
	}
}

func TestDivYAByX(t *testing.T) {
	c, b := newTestCPU()
	// MOV Y,#0 ; MOV A,#10 ; MOV X,#3 ; DIV YA,X
	load(c, b, 0x8D, 0x00, 0xE8, 0x0A, 0xCD, 0x03, 0x9E)
	c.Run(7) // 2+2+2 cumulative before DIV: budget must exceed that to reach it
	if c.A != 3 || c.Y != 1 {
		t.Fatalf("expected quotient 3 remainder 1, got A=%d Y=%d", c.A, c.Y)
	}
}

func TestRunOvershootsByAtMostOneInstruction(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0xE8, 0x01, 0xE8, 0x02, 0xE8, 0x03, 0x00) // three 2-cycle MOVs then NOP
	c.Run(1)
	if c.Cycles < 1 {
		t.Fatalf("expected at least one cycle consumed, got %d", c.Cycles)
	}
	if c.Cycles > 2 {
		t.Fatalf("expected overshoot bounded to a single instruction, got %d cycles", c.Cycles)
	}
}

func TestDefinedOpcodeNotReportedAsUndefined(t *testing.T) {
	c, b := newTestCPU()
	load(c, b, 0xFF /*STOP, legal but used here as a halting sentinel*/)
	var reports int
	c.SetUndefinedHandler(func(pc uint16, detail string) { reports++ })
	c.Run(4)
	if reports != 0 {
		t.Fatalf("STOP is a defined opcode, expected no undefined-condition reports, got %d", reports)
	}
}

func TestDirectPageFlagBanksAddressing(t *testing.T) {
	c, b := newTestCPU()
	b.WriteByte(0x0010, 0xAA)
	b.WriteByte(0x0110, 0xBB)
	load(c, b, 0x40, 0xE4, 0x10) // SETP ; MOV A,$10 (banked to page 1)
	c.Run(3) // SETP(2) alone would satisfy a budget of 2; force the MOV too
	if c.A != 0xBB {
		t.Fatalf("expected direct page 1 addressing with P set, got %#x", c.A)
	}
}
