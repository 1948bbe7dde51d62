package snapshot

import (
	"bytes"
	"compress/gzip"
	"io"
	"strconv"
	"strings"
)

// S9X is Snes9x's gzip-compressed save state. Unlike SPC and ZST it has no
// fixed layout: after a "#!snes9" identifier the stream is a sequence of
// tagged, length-prefixed blocks, and the loader must scan for the three it
// cares about (APU: the DSP-register dump; ARE: the APU CPU registers; ARA:
// the 64KiB ARAM image) while skipping everything else. ARE and ARA are
// required; a missing APU block leaves the DSP registers zeroed. Grounded in
// original_source/libopenspc/main.cc's Load_S9X; this format is not named
// in spec.md but nothing in its Non-goals excludes it, and the original
// library treats it as a third first-class snapshot format.
const (
	s9xIdent    = "#!snes9"
	s9xIdentLen = 14 // Load_S9X reads 14 bytes before checking the 7-byte magic
	s9xBlockHdr = 11
	s9xRAMSize  = 65536
	s9xDSPSize  = 0x80
	s9xRegsSize = 7 // P, A, Y, X, S, PCh, PCl
)

func loadS9X(data []byte) (*State, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Format: "S9X", Reason: "not a gzip stream"}
	}
	defer zr.Close()

	ident := make([]byte, s9xIdentLen)
	if _, err := io.ReadFull(zr, ident); err != nil || !bytes.HasPrefix(ident, []byte(s9xIdent)) {
		return nil, &FormatError{Format: "S9X", Reason: "missing '#!snes9' identifier"}
	}

	var dspRegs [128]byte
	var ram [s9xRAMSize]byte
	var pc uint16
	var a, x, y, psw, sp uint8
	foundRAM, foundRegs := false, false

	header := make([]byte, s9xBlockHdr)
	for {
		if _, err := io.ReadFull(zr, header); err != nil {
			break // truncated read or EOF ends the scan, mirroring Z_STREAM_END
		}
		colon := bytes.IndexByte(header, ':')
		if colon < 0 || colon+1 >= len(header) {
			break
		}
		digits := strings.TrimRight(string(header[colon+1:]), "\x00")
		blen, convErr := strconv.Atoi(digits)
		if convErr != nil || blen < 0 {
			break
		}
		tag := string(header[:3])

		readLen := blen
		if readLen > s9xRAMSize {
			readLen = s9xRAMSize // the original caps a single read at its 64KiB scratch buffer
		}
		block := make([]byte, readLen)
		if readLen > 0 {
			if _, err := io.ReadFull(zr, block); err != nil {
				return nil, &FormatError{Format: "S9X", Reason: "truncated block in gzip stream"}
			}
		}

		switch tag {
		case "APU":
			if len(block) >= s9xBlockHdr+s9xDSPSize {
				copy(dspRegs[:], block[s9xBlockHdr:s9xBlockHdr+s9xDSPSize])
			}
		case "ARE":
			if len(block) >= s9xRegsSize {
				psw, a, y, x, sp = block[0], block[1], block[2], block[3], block[4]
				pc = uint16(block[6]) | uint16(block[5])<<8
				foundRegs = true
			}
		case "ARA":
			if len(block) >= s9xRAMSize {
				copy(ram[:], block[:s9xRAMSize])
				foundRAM = true
			}
		}

		if remaining := blen - readLen; remaining > 0 {
			if _, err := io.CopyN(io.Discard, zr, int64(remaining)); err != nil {
				break
			}
		}
	}

	if !foundRAM || !foundRegs {
		return nil, &FormatError{Format: "S9X", Reason: "stream ended before an APU register and ARAM block were both found"}
	}

	return &State{
		Format:  "S9X",
		PC:      pc,
		A:       a,
		X:       x,
		Y:       y,
		PSW:     psw,
		SP:      sp,
		RAM:     ram,
		DSPRegs: dspRegs,
	}, nil
}
