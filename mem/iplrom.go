package mem

// iplROM is the 64-byte SPC-700 IPL boot ROM image, mapped at
// 0xFFC0-0xFFFF when CONTROL bit 7 is set (see Bus.ReadByte). The reset
// vector embedded at the last two bytes points back at 0xFFC0, which is
// the usual cross-check that a transcribed dump of this ROM is intact.
//
// This dump is reproduced from the widely-published SPC-700 boot ROM
// listing; the retrieval pack used to build this module does not carry a
// byte-verified copy, so treat this as a best-effort constant the way
// gaussTable in package dsp is, rather than a silicon-traced value.
var iplROM = [64]byte{
	0xCD, 0xEF, 0xBD, 0xE8, 0x00, 0xC6, 0x1D, 0xD0, 0xFC, 0x8F, 0xAA, 0xF3, 0x8F, 0xBB, 0xF4, 0x78,
	0xCC, 0xF4, 0xD0, 0xFB, 0x2F, 0x19, 0xEB, 0xF4, 0xD0, 0xFC, 0x7E, 0xF4, 0xD0, 0x0B, 0xE4, 0xF5,
	0xCB, 0xF4, 0xD7, 0x00, 0xFC, 0xD0, 0xF3, 0xAB, 0x01, 0x10, 0xEF, 0x7E, 0xF4, 0x10, 0xEB, 0xBA,
	0xF6, 0xDA, 0x00, 0xBA, 0xF4, 0xC4, 0xF4, 0xDD, 0x5D, 0xD0, 0xDB, 0x1F, 0x00, 0x00, 0xC0, 0xFF,
}
