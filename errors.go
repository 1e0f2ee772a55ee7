package loopy

import (
	"github.com/pkg/errors"
)

//Pre-defined errors
var (
	ErrUnknownSoundType = errors.New("unknown sound type. Sound file extension must be one of: .mp3, .wav, .ogg")
	ErrStreamFormat     = errors.New("sound format does not match the device and can not be streamed. Use SoundMode_Memory instead")
	ErrInvalidVolume    = errors.New("volume must be a non-negative number")
	ErrDeviceFormat     = errors.New("default device is already open with a different format")
	ErrUnsupportedFmt   = errors.New("unsupported device format. Bit depth must be 2 and channel count 1 or 2")
	ErrClosed           = errors.New("sound is closed")
	ErrPlayback         = errors.New("audio player stopped with an error")
)
