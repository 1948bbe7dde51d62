package dsp

// BRR (Bit Rate Reduction) blocks are 9 bytes: one header byte followed
// by 8 bytes of packed 4-bit nibbles, decoding to 16 signal samples. The
// header's top nibble is a shift (0-12; 13-15 give +-0x800 by the nibble's
// sign, per the well-documented ">12 => clamp to +-2048" hardware quirk), the next two
// bits select one of four predictive filters, and the low two bits flag
// loop/end-of-sample.
const (
	brrBlockSize = 9
	brrFlagEnd   = 0x01
	brrFlagLoop  = 0x02
)

type brrHeader struct {
	shift  uint8
	filter uint8
	end    bool
	loop   bool
}

func decodeBRRHeader(b uint8) brrHeader {
	return brrHeader{
		shift:  b >> 4,
		filter: (b >> 2) & 0x03,
		end:    b&brrFlagEnd != 0,
		loop:   b&brrFlagLoop != 0,
	}
}

// decodeBRRNibble converts one signed 4-bit sample nibble plus the
// block's shift/filter and the voice's running two-sample history into
// one 16-bit PCM sample, applying the four standard SNES prediction
// filters.
func decodeBRRNibble(nibble uint8, shift uint8, filter uint8, h1, h2 int32) int32 {
	s := int32(int8(nibble<<4)) >> 4 // sign-extend the low 4 bits

	var sample int32
	if shift <= 12 {
		sample = s << shift
	} else {
		// shift values 13-15 are undefined on hardware; observed behavior
		// clamps the nibble's sign to +-0x800 instead of scaling it.
		if s < 0 {
			sample = -0x800
		} else {
			sample = 0x800
		}
	}

	switch filter {
	case 0:
		// no prediction
	case 1:
		sample += h1 + ((-h1) >> 4)
	case 2:
		sample += 2*h1 + ((-3 * h1) >> 5) - h2 + (h2 >> 4)
	case 3:
		sample += 2*h1 + ((-13 * h1) >> 6) - h2 + ((3 * h2) >> 4)
	}

	if sample > 32767 {
		sample = 32767
	} else if sample < -32768 {
		sample = -32768
	}
	return sample
}
