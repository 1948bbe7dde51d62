package dsp

// envMode tracks which stage of the envelope generator a voice is in.
// GAIN mode bypasses attack/decay/sustain entirely and is driven by the
// GAIN register instead (see envelope.stepGain).
type envMode int

const (
	envAttack envMode = iota
	envDecay
	envSustain
	envRelease
)

// envMax resolves the spec's own inconsistent envelope-ceiling wording
// (it states both 0x7FF and 0x7FFF in different places) toward the real
// 11-bit envelope: this is the value the SL*0x100+0xFF sustain-level
// formula and the voice output stage's (sample*level)>>11 scale both
// assume, not an off-by-16.
const envMax = 0x7FF

// envRatePeriods maps a 5-bit ADSR/GAIN rate code to a sample-tick
// period. Real hardware's table runs from roughly 4ms to 38s per step;
// this reconstruction keeps the table's relative ordering (lower codes
// are slower) but is not claimed to be cycle-exact, consistent with the
// other best-effort constants in this package (see gaussTable).
var envRatePeriods = [32]int{
	0, 2048, 1536, 1280, 1024, 768, 640, 512,
	384, 320, 256, 192, 160, 128, 96, 80,
	64, 48, 40, 32, 24, 20, 16, 12,
	10, 8, 6, 5, 4, 3, 2, 1,
}

type envelope struct {
	mode  envMode
	level int32 // 0-envMax

	accum  int
	period int
}

// gainMode is the GAIN register's bits 6-5 when its top bit is set:
// 0=linear decrease, 1=exponential decrease, 2=linear increase, 3=bent
// (slow-then-fast) increase.
const (
	gainLinearDown = iota
	gainExpDown
	gainLinearUp
	gainBentUp
)

func (e *envelope) keyOn() {
	e.mode = envAttack
	e.level = 0
}

func (e *envelope) keyOff() {
	e.mode = envRelease
}

// step advances the envelope by one sample tick per the ADSR1/ADSR2/GAIN
// register encoding documented in original_source/libopenspc/dsp.h's
// env_state_t32 enum. adsrEnabled selects ADSR mode (ADSR1 bit 7) versus
// direct GAIN-register control.
func (e *envelope) step(adsr1, adsr2, gain uint8, adsrEnabled bool) {
	if !adsrEnabled {
		e.stepGain(gain)
		return
	}
	switch e.mode {
	case envAttack:
		rate := (adsr1 & 0x0F) * 2
		if rate == 31 {
			e.level += 1024
		} else {
			e.tickRate(int(rate), func() { e.level += 32 })
		}
		if e.level >= envMax {
			e.level = envMax
			e.mode = envDecay
		}
	case envDecay:
		rate := (adsr1 >> 4 & 0x07) * 2
		e.tickRate(int(rate), func() { e.level -= ((e.level - 1) >> 8) + 1 })
		sustainLevel := int32(adsr2>>5+1) * (envMax + 1) / 8
		if e.level <= sustainLevel {
			e.mode = envSustain
		}
	case envSustain:
		rate := adsr2 & 0x1F
		e.tickRate(int(rate), func() { e.level -= ((e.level - 1) >> 8) + 1 })
	case envRelease:
		e.level -= 8
	}
	if e.level < 0 {
		e.level = 0
	}
	if e.level > envMax {
		e.level = envMax
	}
}

func (e *envelope) stepGain(gain uint8) {
	if gain&0x80 == 0 {
		// direct mode: envelope tracks (gain&0x7F)<<4 immediately.
		e.level = int32(gain&0x7F) << 4
		return
	}
	mode := (gain >> 5) & 0x03
	rate := int(gain & 0x1F)
	switch mode {
	case gainLinearDown:
		e.tickRate(rate, func() { e.level -= 32 })
	case gainExpDown:
		e.tickRate(rate, func() { e.level -= ((e.level - 1) >> 8) + 1 })
	case gainLinearUp:
		e.tickRate(rate, func() { e.level += 32 })
	case gainBentUp:
		step := int32(32)
		if e.level >= 0x600 {
			step = 8
		}
		e.tickRate(rate, func() { e.level += step })
	}
	if e.level < 0 {
		e.level = 0
	}
	if e.level > envMax {
		e.level = envMax
	}
}

func (e *envelope) tickRate(rateCode int, apply func()) {
	period := envRatePeriods[rateCode&0x1F]
	if period <= 0 {
		return
	}
	e.accum++
	if e.accum < period {
		return
	}
	e.accum = 0
	apply()
}
