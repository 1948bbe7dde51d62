package spc700

// defaultPlayer backs the package-level Init/Run/... functions below: a
// thin wrapper for source compatibility with libopenspc's own global-
// context API (OSPC_Init/OSPC_Run/...), grounded directly in
// spc_cpu.h's documented TODO about that singleton state. New callers
// should prefer constructing their own *Player with New instead — this
// exists only so a straight port of code written against the C library's
// global functions has something to call.
var defaultPlayer = New()

// Init loads a snapshot into the package-level default Player. See
// Player.Init.
func Init(data []byte) error {
	return defaultPlayer.Init(data)
}

// Run renders PCM from the package-level default Player. See Player.Run.
func Run(cycleLimit int, buf []byte) int {
	return defaultPlayer.Run(cycleLimit, buf)
}

// WritePort writes to the package-level default Player. See Player.WritePort.
func WritePort(i int, v uint8) {
	defaultPlayer.WritePort(i, v)
}

// ReadPort reads from the package-level default Player. See Player.ReadPort.
func ReadPort(i int) uint8 {
	return defaultPlayer.ReadPort(i)
}

// SetChannelMask sets the mute mask on the package-level default Player.
func SetChannelMask(mask uint8) {
	defaultPlayer.SetChannelMask(mask)
}

// GetChannelMask reads the mute mask from the package-level default Player.
func GetChannelMask() uint8 {
	return defaultPlayer.GetChannelMask()
}
