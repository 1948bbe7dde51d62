package dsp

// echoState is the 8-tap FIR echo: a circular ARAM buffer sized EDL*2KiB
// starting at ESA<<8, fed back through EFB and eight programmable FIR
// coefficients.
type echoState struct {
	histL, histR [8]int32 // most-recent-first ring of raw (pre-FIR) echo input
	pos          int      // current offset, in samples, into the ARAM ring
}

func echoBase(esa uint8) uint16 {
	return uint16(esa) << 8
}

func echoLength(edl uint8) int {
	return int(edl&0x0F) * 0x800
}

// process reads the echo buffer at the current ring position, applies the
// 8-tap FIR, adds the FIR output scaled by EFB to this tick's dry echo-send
// sum, and writes the result back — implementing the feedback loop before
// advancing the
// ring position. Returns the FIR-filtered (pre-feedback-write) echo
// output to be added into the main mix via EVOL.
func (e *echoState) process(d *DSP, dryL, dryR int32) (outL, outR int32) {
	edl := d.regs[regEDL]
	length := echoLength(edl)
	if length == 0 {
		length = 1
	}
	base := echoBase(d.regs[regESA])
	addr := base + uint16(e.pos*4) // 2 bytes L + 2 bytes R per echo sample

	rawL := int16(uint16(d.ram.ReadByte(addr)) | uint16(d.ram.ReadByte(addr+1))<<8)
	rawR := int16(uint16(d.ram.ReadByte(addr+2)) | uint16(d.ram.ReadByte(addr+3))<<8)

	copy(e.histL[1:], e.histL[:7])
	copy(e.histR[1:], e.histR[:7])
	e.histL[0] = int32(rawL)
	e.histR[0] = int32(rawR)

	for tap := 0; tap < 8; tap++ {
		c := int32(d.firCoeff(tap))
		outL += e.histL[tap] * c
		outR += e.histR[tap] * c
	}
	outL >>= 7
	outR >>= 7

	if d.regs[regFLG]&flgEchoWrite == 0 {
		efb := int32(int8(d.regs[regEFB]))
		newL := dryL + ((outL * efb) >> 7)
		newR := dryR + ((outR * efb) >> 7)
		newL = clamp16(newL)
		newR = clamp16(newR)
		d.ram.WriteByte(addr, uint8(newL))
		d.ram.WriteByte(addr+1, uint8(newL>>8))
		d.ram.WriteByte(addr+2, uint8(newR))
		d.ram.WriteByte(addr+3, uint8(newR>>8))
	}

	e.pos++
	if e.pos >= length/4 {
		e.pos = 0
	}
	return outL, outR
}

func clamp16(v int32) int32 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return v
}
