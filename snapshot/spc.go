package snapshot

const (
	spcHeaderSize  = 0x100
	spcRAMOffset   = 0x100
	spcRAMSize     = 65536
	spcDSPOffset   = spcRAMOffset + spcRAMSize // 0x10100
	spcDSPSize     = 128

	spcPCOffset  = 0x25
	spcAOffset   = 0x27
	spcXOffset   = 0x28
	spcYOffset   = 0x29
	spcPSWOffset = 0x2A
	spcSPOffset  = 0x2B
)

// loadSPC parses the SPC save-state format, whose register and RAM-dump
// offsets are grounded directly in original_source/libopenspc/main.cc's
// Load_SPC: a fixed 256-byte header (identification text plus the
// register block at 0x25-0x2C) followed by the full 64KiB RAM image and
// then the 128-byte DSP register file.
func loadSPC(data []byte) (*State, error) {
	if len(data) < spcDSPOffset+spcDSPSize {
		return nil, &FormatError{Format: "SPC", Reason: "file too short for header+RAM+DSP registers"}
	}

	s := &State{Format: "SPC"}
	s.PC = uint16(data[spcPCOffset]) | uint16(data[spcPCOffset+1])<<8
	s.A = data[spcAOffset]
	s.X = data[spcXOffset]
	s.Y = data[spcYOffset]
	s.PSW = data[spcPSWOffset]
	s.SP = data[spcSPOffset]

	copy(s.RAM[:], data[spcRAMOffset:spcRAMOffset+spcRAMSize])
	copy(s.DSPRegs[:], data[spcDSPOffset:spcDSPOffset+spcDSPSize])
	return s, nil
}
