// Package amp runs a guitar amplifier signal path over host audio blocks.
//
// Every block passes through the same fixed chain, per channel and in place:
//
//	input gain → highpass 200 Hz → peak 1420 Hz (+6 dB) → diode clipper →
//	cabinet convolution → low shelf 200 Hz → peak 815 Hz → peak 6000 Hz →
//	output gain
//
// The six user parameters (input, drive, low, mid, high, output) live in a
// lock-free [Parameters] store that any goroutine may write. [Pipeline]
// takes one [Snapshot] per block, so a block is never processed with a mix of
// old and new values.
//
// [Pipeline.Prepare] is the sample-rate/block-size handshake. It allocates
// all state, loads and conditions the cabinet impulse response and resets
// filter history. [Pipeline.Process] then runs without allocating, locking
// or blocking, and reports host contract violations with sentinel errors:
//
//	p := amp.New(params, amp.WithIRProvider(ir.File{Path: "cab.wav"}))
//	if err := p.Prepare(48000, 512); err != nil { ... }
//	err := p.Process(channels, 2, 512)
//
// An impulse response that cannot be loaded is logged and the cabinet stage
// is bypassed; the rest of the chain keeps running.
package amp
