package cpu

// Addressing-mode helpers. Each reads whatever operand bytes it needs from
// the instruction stream (via fetch8/fetch16) and returns the effective
// address; callers that need the register operand instead (accumulator,
// X, Y) skip these entirely. Naming loosely follows the official SPC-700
// syntax: d (direct page), !a (absolute), [d+X]/[d]+Y (indirection).

func (c *CPU) dpAddr() uint16 {
	return c.directPageBase() + uint16(c.fetch8())
}

func (c *CPU) dpXAddr() uint16 {
	return c.directPageBase() + uint16(c.fetch8()+c.X)
}

func (c *CPU) dpYAddr() uint16 {
	return c.directPageBase() + uint16(c.fetch8()+c.Y)
}

func (c *CPU) absAddr() uint16 {
	return c.fetch16()
}

func (c *CPU) absXAddr() uint16 {
	return c.fetch16() + uint16(c.X)
}

func (c *CPU) absYAddr() uint16 {
	return c.fetch16() + uint16(c.Y)
}

// indXAddr resolves [d+X]: the direct-page byte at (d+X) holds a 16-bit
// pointer into the full address space.
func (c *CPU) indXAddr() uint16 {
	ptr := c.directPageBase() + uint16(c.fetch8()+c.X)
	return c.read16(ptr)
}

// indYAddr resolves [d]+Y: the direct-page byte at d holds a 16-bit
// pointer, to which Y is then added.
func (c *CPU) indYAddr() uint16 {
	ptr := c.directPageBase() + uint16(c.fetch8())
	return c.read16(ptr) + uint16(c.Y)
}

// indXReg resolves (X): X itself, banked by the direct-page flag.
func (c *CPU) indXReg() uint16 {
	return c.directPageBase() + uint16(c.X)
}

// indYReg resolves (Y): Y itself, banked by the direct-page flag.
func (c *CPU) indYReg() uint16 {
	return c.directPageBase() + uint16(c.Y)
}

// bitAddr splits a mem.bit absolute operand (13-bit address, 3-bit index)
// used by the SET1/CLR1/OR1/AND1/EOR1/NOT1/MOV1 family.
func bitAddr(word uint16) (addr uint16, bit uint) {
	return word & 0x1FFF, uint(word >> 13)
}
