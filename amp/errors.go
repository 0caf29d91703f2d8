package amp

import "errors"

// Errors returned by Process. They are preallocated; the audio path never
// formats errors.
var (
	ErrNotPrepared     = errors.New("amp: process called before prepare")
	ErrBlockTooLarge   = errors.New("amp: block larger than prepared maximum")
	ErrTooManyChannels = errors.New("amp: more channels than prepared")
	ErrChannelLength   = errors.New("amp: channel buffer shorter than block")
)

// Errors returned by configuration and parameter calls.
var (
	ErrInvalidSampleRate = errors.New("amp: invalid sample rate")
	ErrInvalidBlockSize  = errors.New("amp: invalid block size")
	ErrUnknownParameter  = errors.New("amp: unknown parameter")
)
