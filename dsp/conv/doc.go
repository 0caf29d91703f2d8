// Package conv provides the convolution routines behind the speaker cabinet.
//
//   - Direct: O(N·M) time-domain linear convolution, used for short kernels
//     and as the reference the streaming engine is checked against.
//   - Kernel / Partitioned: uniformly partitioned overlap-save convolution in
//     the frequency domain for long impulse responses in a real-time loop.
//
// # Partitioned convolution
//
// The impulse response is split into P partitions of B samples. Each
// partition is zero-padded to 2B and transformed once when the [Kernel] is
// built. At run time every full block of B input samples is transformed,
// pushed into a frequency-domain delay line and multiplied against the
// partition spectra:
//
//	Y = Σ_k X[n-k] · H[k],  k = 0 … P-1
//
// The last B samples of the inverse transform are the next output block.
// Input and output FIFOs decouple the host block size from B, so any block
// length works and the engine always adds exactly B samples of latency:
//
//	k, err := conv.NewKernel(ir, conv.PartitionSize(maxBlock))
//	p, err := conv.NewPartitioned(k)
//	err = p.Process(block) // in place
//
// Process does not allocate.
package conv
