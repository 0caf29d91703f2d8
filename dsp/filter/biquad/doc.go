// Package biquad provides the second-order IIR section used by every filter
// in the amp tone stack.
//
// A [Section] holds normalised [Coefficients] (a0 = 1) and two words of
// Direct Form II Transposed state. Coefficients are plain values: designers in
// dsp/filter/design return them by value and callers assign them into a
// section between blocks, leaving the state untouched so that tone changes do
// not click.
//
// Block processing is dispatched once, at package initialisation, to the best
// kernel registered for the running CPU.
package biquad
