package snapshot

// ZST is ZSNES's whole-machine save state; the SPC-700/DSP state is one
// small slice of a much larger dump. Offsets below are the exact byte
// positions ZSNES's internal struct layout implies, transcribed from
// original_source/libopenspc/main.cc's Load_ZST (a packed C struct with
// named junk/padding fields whose sizes fix every subsequent offset).
const (
	zstIdentSize = 26
	zstJunk1     = 199673
	zstRAMSize   = 65536
	zstJunk2     = 16

	zstPCOffset = zstIdentSize + zstJunk1 + zstRAMSize + zstJunk2 // 265251
	// PCl, PCh, then 2 padding bytes (PCj) per register slot: ZSNES's
	// save format stores each CPU register in a 4-byte-aligned slot.
	zstAOffset  = zstPCOffset + 4  // 265255
	zstXOffset  = zstAOffset + 4   // 265259
	zstYOffset  = zstXOffset + 4   // 265263
	zstPOffset  = zstYOffset + 4   // 265267
	zstP2Offset = zstPOffset + 4   // 265271, 4 bytes
	zstSPOffset = zstP2Offset + 4  // 265275

	zstJunk3     = 420
	zstVOnOffset = zstSPOffset + 4 + zstJunk3 // 8 bytes, one per voice
	zstJunk4     = 916

	zstDSPOffset = zstVOnOffset + 8 + zstJunk4 // 266623
	zstDSPSize   = 256                          // ZST carries the 128 real registers twice (legacy layout)

	zstMinSize = zstDSPOffset + zstDSPSize
)

var zstMagic = []byte("ZSNES Save State File")

// loadZST parses a ZSNES save state. ZSNES's internal CPU core tracks the
// Z and N flags outside the packed PSW byte, so Load_ZST reconstructs
// bits 1 and 7 of P from a separate 4-byte shadow (P2) rather than
// trusting P's own copies of those two bits; this port carries the same
// reconstruction.
func loadZST(data []byte) (*State, error) {
	if len(data) < zstMinSize {
		return nil, &FormatError{Format: "ZST", Reason: "file too short for the fixed ZSNES save-state layout"}
	}
	if string(data[0:len(zstMagic)]) != string(zstMagic) {
		return nil, &FormatError{Format: "ZST", Reason: "missing 'ZSNES Save State File' identifier"}
	}

	s := &State{Format: "ZST"}
	ramStart := zstIdentSize + zstJunk1
	copy(s.RAM[:], data[ramStart:ramStart+zstRAMSize])

	s.PC = uint16(data[zstPCOffset]) | uint16(data[zstPCOffset+1])<<8
	s.A = data[zstAOffset]
	s.X = data[zstXOffset]
	s.Y = data[zstYOffset]
	s.SP = data[zstSPOffset]

	p := data[zstPOffset]
	p2 := data[zstP2Offset : zstP2Offset+4]
	if p2[0]|p2[1]|p2[2]|p2[3] == 0 {
		p |= 0x02
	} else {
		p &^= 0x02
	}
	if p2[0]&0x80 != 0 {
		p |= 0x80
	} else {
		p &^= 0x80
	}
	s.PSW = p

	copy(s.DSPRegs[:], data[zstDSPOffset:zstDSPOffset+128])

	// ZSNES's save state doesn't capture a voice's in-flight BRR decode
	// position, only whether it was on. Load_ZST compensates by flagging
	// every such voice to restart from the beginning of its sample rather
	// than leaving it silent forever; RestartVoices carries that flag to
	// the caller, which ORs it into the loaded KON register.
	for i := 0; i < 8; i++ {
		if data[zstVOnOffset+i] != 0 {
			s.RestartVoices |= 1 << uint(i)
		}
	}

	return s, nil
}
