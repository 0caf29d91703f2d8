// Package ir loads and conditions speaker-cabinet impulse responses.
//
// An [ImpulseResponse] is immutable planar audio plus its sample rate.
// [Prepare] turns a raw response into what the convolution engine runs:
//
//  1. keep at most [MaxChannels] channels (stereo cabinet, or mono shared)
//  2. resample to the engine sample rate
//  3. normalise so the most energetic channel has unit energy
//  4. trim leading and trailing samples below −80 dBFS
//
// Responses come from a [Provider]: a file on disk ([File]), an in-memory
// response ([Static]) or a procedurally generated cabinet ([Synthetic]).
package ir
