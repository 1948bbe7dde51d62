// Package dsp implements C4, the S-DSP: an 8-voice BRR sample mixer with
// per-voice ADSR/GAIN envelopes, pitch modulation, a noise generator, an
// 8-tap echo FIR filter, and master volume stages, driven one stereo
// sample at a time by the scheduler in the root package.
//
// Register layout and the overall decode pipeline are grounded in
// original_source/libopenspc/dsp.h's voice_state_type and the DSP_WRITE_7C
// ENDX quirk it documents; structurally this package follows the
// teacher's audio_chip.go (one struct owning fixed-size per-voice state,
// advanced one output sample per call) adapted from a software synth to a
// sample-accurate hardware mixer.
package dsp

const (
	NumVoices  = 8
	regsPerVoice = 0x10

	regVOLL  = 0x00
	regVOLR  = 0x01
	regPITCHL = 0x02
	regPITCHH = 0x03
	regSRCN  = 0x04
	regADSR1 = 0x05
	regADSR2 = 0x06
	regGAIN  = 0x07
	regENVX  = 0x08
	regOUTX  = 0x09

	regMVOLL = 0x0C
	regMVOLR = 0x1C
	regEVOLL = 0x2C
	regEVOLR = 0x3C
	regKON   = 0x4C
	regKOF   = 0x5C
	regFLG   = 0x6C
	regENDX  = 0x7C
	regEFB   = 0x0D
	regPMON  = 0x2D
	regNON   = 0x3D
	regEON   = 0x4D
	regDIR   = 0x5D
	regESA   = 0x6D
	regEDL   = 0x7D
	regFIRBase = 0x0F // FIR[i] at regFIRBase + i*0x10

	flgSoftReset = 1 << 7
	flgMute      = 1 << 6
	flgEchoWrite = 1 << 5 // set disables writes to the echo buffer
	flgNoiseMask = 0x1F
)

// RAM is the seam DSP uses to reach ARAM for sample directory lookups,
// BRR block reads and the echo ring buffer. package mem's *Bus satisfies
// this directly; keeping the dependency as an interface rather than a
// concrete mem.Bus avoids a mem<->dsp import cycle symmetric to the one
// mem.DSPRegisters avoids on the other side.
type RAM interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, v uint8)
}

// DSP is C4. Register reads/writes arrive through ReadReg/WriteReg
// (satisfying mem.DSPRegisters); Tick produces one stereo sample and
// advances every voice, the noise LFSR and the echo pipeline by one
// 32kHz sample period.
type DSP struct {
	regs [128]uint8

	ram RAM

	voices [NumVoices]voice
	noise  noiseLFSR
	echo   echoState

	konPending uint8 // KON bits latched this tick, applied at mix time

	channelMask uint8 // bit v set: voice v's contribution to the final mix is silenced
}

// SetChannelMask sets the 8-bit per-voice mute mask (spec's channel-mute
// control surface): bit v set silences voice v in the final mix only.
// Masked voices still decode BRR data, advance envelopes, and feed the
// echo buffer exactly as an unmasked voice would.
func (d *DSP) SetChannelMask(mask uint8) {
	d.channelMask = mask
}

// GetChannelMask returns the mask last set by SetChannelMask.
func (d *DSP) GetChannelMask() uint8 {
	return d.channelMask
}

// New constructs a DSP reading/writing ARAM through ram.
func New(ram RAM) *DSP {
	d := &DSP{ram: ram}
	d.noise.reset()
	for i := range d.voices {
		d.voices[i].index = i
	}
	return d
}

// ReadReg implements mem.DSPRegisters. ENVX/OUTX/ENDX are the only
// CPU-visible outputs; everything else reads back whatever was last
// written, per hardware behavior.
func (d *DSP) ReadReg(addr uint8) uint8 {
	return d.regs[addr&0x7F]
}

// WriteReg implements mem.DSPRegisters. KON writes stage voices for the
// next Tick rather than taking effect immediately, matching how real
// hardware only samples KON between sample generation passes.
func (d *DSP) WriteReg(addr uint8, v uint8) {
	addr &= 0x7F
	switch addr {
	case regENDX:
		// ENDX is cleared by any CPU write, regardless of value written
		// (original_source/libopenspc/dsp.h's DSP_WRITE_7C macro).
		v = 0
	case regKON:
		d.konPending = v
	case regFLG:
		if v&flgSoftReset != 0 {
			d.softReset()
		}
	}
	d.regs[addr] = v
}

// LoadRegs installs a raw register file exactly as a save state captured
// it, bypassing WriteReg's CPU-write side effects: ENDX is kept as saved
// rather than force-cleared, and any already-set KON bits are staged for
// the very next Tick, matching how real hardware would already have
// latched them by the time a snapshot was taken.
func (d *DSP) LoadRegs(regs [128]uint8) {
	d.regs = regs
	d.konPending = regs[regKON]
}

func (d *DSP) softReset() {
	for i := range d.voices {
		d.voices[i].keyOff(true)
		d.voices[i].env.level = 0
	}
	d.regs[regKON] = 0
	d.konPending = 0
}

func (d *DSP) voiceReg(v int, off uint8) uint8 {
	return d.regs[v*regsPerVoice+int(off)]
}

func (d *DSP) setVoiceReg(v int, off uint8, val uint8) {
	d.regs[v*regsPerVoice+int(off)] = val
}

func (d *DSP) firCoeff(tap int) int8 {
	return int8(d.regs[regFIRBase+tap*regsPerVoice])
}
