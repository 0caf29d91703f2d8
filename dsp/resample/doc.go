// Package resample converts impulse responses between sample rates with a
// rational polyphase FIR.
//
// The anti-aliasing prototype is a Kaiser-windowed sinc whose length scales
// with the interpolation factor. Quality modes trade filter length for
// stopband attenuation:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// [Convert] is the offline entry point used when loading a cabinet IR: it
// flushes the filter and removes its group delay so the converted response
// starts where the input did. [Resampler] keeps streaming state for
// block-wise conversion.
package resample
