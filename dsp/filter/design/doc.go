// Package design computes biquad coefficients for the amp's tone filters.
//
// All designers follow the RBJ audio-EQ cookbook (bilinear transform of the
// analog prototype with frequency pre-warping) and return coefficients
// normalised so that a0 = 1. They are pure functions: out-of-range arguments
// are clamped to the nearest valid value instead of producing NaN, so a
// designer can be called from the audio thread with unvalidated input.
package design
