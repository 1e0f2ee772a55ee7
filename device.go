package loopy

import (
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/pkg/errors"
)

//Format describes the PCM layout a device expects. Everything queued on a sink must be in this format.
type Format struct {
	SampleRate SampleRate
	ChanCount  SoundChannelCount
	BitDepth   SoundBitDepth
}

var DefaultFormat = Format{
	SampleRate: SampleRate_44100,
	ChanCount:  SoundChannelCount_2,
	BitDepth:   SoundBitDepth_2,
}

//FrameSize is the number of bytes holding one sample for every channel
func (f Format) FrameSize() int {
	return int(f.ChanCount) * int(f.BitDepth)
}

//BytesPerSecond is how many bytes the device consumes per second of sound
func (f Format) BytesPerSecond() int {
	return int(f.SampleRate) * f.FrameSize()
}

func (f Format) validate() error {
	if f.BitDepth != SoundBitDepth_2 || f.SampleRate <= 0 {
		return ErrUnsupportedFmt
	}
	if f.ChanCount != SoundChannelCount_1 && f.ChanCount != SoundChannelCount_2 {
		return ErrUnsupportedFmt
	}
	return nil
}

//Player is the part of an oto.Player a sink drives
type Player interface {
	Play()
	Pause()
	//Reset drops everything buffered and pauses the player
	Reset()
	SetVolume(volume float64)
	//Err returns the error that stopped the player, if any
	Err() error
	io.Closer
}

//Device creates players that pull PCM data in Format() from a reader
type Device interface {
	NewPlayer(r io.Reader) Player
	Format() Format
}

var _ Device = &OtoDevice{}

//DefaultPlayerBuffer is how much audio an oto player reads ahead. oto's own default is half a second,
//which is also how late a Stop or SetSource would be heard
const DefaultPlayerBuffer = 100 * time.Millisecond

type OtoDevice struct {
	Ctx *oto.Context
	//PlayerBuffer is the read-ahead of new players. Zero uses DefaultPlayerBuffer
	PlayerBuffer time.Duration
	fmt          Format
}

func (d *OtoDevice) NewPlayer(r io.Reader) Player {

	p := d.Ctx.NewPlayer(r)
	if bs, ok := p.(oto.BufferSizeSetter); ok {
		bs.SetBufferSize(d.playerBufferBytes())
	}

	return p
}

func (d *OtoDevice) playerBufferBytes() int {

	dur := d.PlayerBuffer
	if dur <= 0 {
		dur = DefaultPlayerBuffer
	}

	return BufferBytes(d.fmt, dur)
}

func (d *OtoDevice) Format() Format {
	return d.fmt
}

//oto only allows one context per process
var (
	defaultDevMutex sync.Mutex
	defaultDev      *OtoDevice
)

//OpenDefaultDevice prepares the default audio device with the given format.
//The first successful call opens the device; later calls return the same device as long as
//the format matches, otherwise ErrDeviceFormat is returned.
func OpenDefaultDevice(f Format) (*OtoDevice, error) {

	if err := f.validate(); err != nil {
		return nil, err
	}

	defaultDevMutex.Lock()
	defer defaultDevMutex.Unlock()

	if defaultDev != nil {
		if defaultDev.fmt != f {
			return nil, errors.Wrapf(ErrDeviceFormat, "open with %+v, requested %+v", defaultDev.fmt, f)
		}
		return defaultDev, nil
	}

	otoCtx, readyChan, err := oto.NewContext(int(f.SampleRate), int(f.ChanCount), int(f.BitDepth))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create audio context")
	}
	<-readyChan

	defaultDev = &OtoDevice{
		Ctx: otoCtx,
		fmt: f,
	}

	logger.Debug().
		Int("sampleRate", int(f.SampleRate)).
		Int("channels", int(f.ChanCount)).
		Msg("audio device opened")

	return defaultDev, nil
}

//BufferBytes returns how many bytes of format f play for dur, rounded down to whole frames
//but never less than one frame
func BufferBytes(f Format, dur time.Duration) int {

	frameSize := f.FrameSize()
	if frameSize <= 0 {
		return 0
	}

	frames := int(int64(f.SampleRate) * int64(dur) / int64(time.Second))
	if frames < 1 {
		frames = 1
	}

	return frames * frameSize
}
