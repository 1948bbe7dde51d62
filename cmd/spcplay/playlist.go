package main

import "math/rand"

// shuffle returns files in a new, randomly-permuted order when requested;
// otherwise it returns them unchanged, matching spec §6's -r flag.
func shuffle(files []string, enabled bool) []string {
	if !enabled {
		return files
	}
	out := make([]string, len(files))
	copy(out, files)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
