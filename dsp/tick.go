package dsp

import "encoding/binary"

// Tick produces exactly one interleaved 16-bit stereo sample (left then
// right, little-endian, 4 bytes total) into out[:4] and advances every
// voice, the noise generator and the echo pipeline by one 32kHz sample
// period. Called once per scheduler pass (spec.md S4.4/S4.5), alternating
// with CPU bursts.
func (d *DSP) Tick(out []byte) {
	d.applyPendingKeys()

	d.noise.setRate(d.regs[regFLG] & flgNoiseMask)
	d.noise.tick()

	pmon := d.regs[regPMON]
	non := d.regs[regNON]
	eon := d.regs[regEON]
	adsrEnabledMask := uint8(0)

	var mixL, mixR int32
	var echoDryL, echoDryR int32

	muted := d.regs[regFLG]&flgMute != 0

	prevOut := int32(0)
	for i := range d.voices {
		v := &d.voices[i]
		adsr1 := d.voiceReg(i, regADSR1)
		adsr2 := d.voiceReg(i, regADSR2)
		gain := d.voiceReg(i, regGAIN)
		adsrOn := adsr1&0x80 != 0
		if adsrOn {
			adsrEnabledMask |= 1 << i
		}

		pitch := uint16(d.voiceReg(i, regPITCHL)) | uint16(d.voiceReg(i, regPITCHH))<<8
		pmEnabled := i > 0 && pmon&(1<<i) != 0
		noiseEnabled := non&(1<<i) != 0

		sample := v.step(d.ram, pitch, prevOut, pmEnabled, adsr1, adsr2, gain, adsrOn, &d.noise, noiseEnabled)
		prevOut = sample

		d.setVoiceReg(i, regENVX, v.envx())
		d.setVoiceReg(i, regOUTX, uint8(sample>>8))

		if v.endFlag {
			d.regs[regENDX] |= 1 << i
			v.endFlag = false
		}

		voll := int32(int8(d.voiceReg(i, regVOLL)))
		volr := int32(int8(d.voiceReg(i, regVOLR)))
		l := (sample * voll) >> 7
		r := (sample * volr) >> 7

		if !muted && d.channelMask&(1<<i) == 0 {
			mixL += l
			mixR += r
		}
		if eon&(1<<i) != 0 {
			echoDryL += l
			echoDryR += r
		}
	}

	mvoll := int32(int8(d.regs[regMVOLL]))
	mvolr := int32(int8(d.regs[regMVOLR]))
	mixL = (mixL * mvoll) >> 7
	mixR = (mixR * mvolr) >> 7

	echoL, echoR := d.echo.process(d, echoDryL, echoDryR)
	evoll := int32(int8(d.regs[regEVOLL]))
	evolr := int32(int8(d.regs[regEVOLR]))

	outL := clamp16(mixL + (echoL*evoll)>>7)
	outR := clamp16(mixR + (echoR*evolr)>>7)
	if muted {
		outL, outR = 0, 0
	}

	binary.LittleEndian.PutUint16(out[0:2], uint16(int16(outL)))
	binary.LittleEndian.PutUint16(out[2:4], uint16(int16(outR)))
}

// applyPendingKeys resolves the KON/KOF registers latched since the last
// tick. Real hardware samples these once per sample-generation pass
// rather than immediately on the CPU's write, which is what konPending
// models.
func (d *DSP) applyPendingKeys() {
	kof := d.regs[regKOF]
	for i := range d.voices {
		if kof&(1<<i) != 0 {
			d.voices[i].keyOff(false)
		}
	}
	if d.konPending == 0 {
		return
	}
	dirBase := uint16(d.regs[regDIR]) << 8
	for i := range d.voices {
		if d.konPending&(1<<i) != 0 {
			srcn := d.voiceReg(i, regSRCN)
			d.voices[i].keyOn(dirBase, srcn, d.ram)
			d.regs[regENDX] &^= 1 << i
		}
	}
	d.konPending = 0
	d.regs[regKON] = 0
}
