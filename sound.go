package loopy

import (
	"io"
	"math"
	"time"

	"github.com/pkg/errors"
)

//Sound is a handle to one sound file playing on its own sink. By default it loops forever:
//the caller keeps calling Update from its main loop, and whenever only the playing copy is
//left in the queue another copy is appended so there is no audible gap.
//
//A Sound is not safe for concurrent use.
type Sound struct {
	Device Device
	Sink   *Sink

	source  string
	volume  float64
	mode    SoundMode
	loaded  bool
	playing bool
	loop    bool
	closed  bool

	//buf is the decoded sound in SoundMode_Memory, copied for every queue entry
	buf *SoundBuffer
}

//NewSound opens the default audio device (or reuses it if already open) and returns an unloaded,
//looping sound that decodes source into memory
func NewSound(source string, volume float64) (*Sound, error) {

	dev, err := OpenDefaultDevice(DefaultFormat)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open default audio device")
	}

	return NewSoundWithDevice(dev, source, volume, SoundMode_Memory)
}

func NewSoundWithDevice(dev Device, source string, volume float64, mode SoundMode) (*Sound, error) {

	if err := checkVolume(volume); err != nil {
		return nil, err
	}

	sink, err := NewSink(dev)
	if err != nil {
		return nil, err
	}

	return &Sound{
		Device: dev,
		Sink:   sink,
		source: source,
		volume: volume,
		mode:   mode,
		loop:   true,
	}, nil
}

//Load decodes the source and queues it for playback. It does nothing if already loaded.
//If loading fails the sound stays unloaded
func (s *Sound) Load() error {

	if s.closed {
		return ErrClosed
	}

	if s.loaded {
		return nil
	}

	if s.mode == SoundMode_Memory && s.buf == nil {
		buf, err := Decode(s.source, s.Device.Format())
		if err != nil {
			return err
		}
		s.buf = buf
	}

	if err := s.addToQueue(); err != nil {
		return err
	}

	s.Sink.SetVolume(s.volume)
	s.loaded = true

	logger.Info().
		Str("source", s.source).
		Float64("volume", s.volume).
		Stringer("mode", s.mode).
		Msg("sound loaded")

	return nil
}

func (s *Sound) addToQueue() error {

	var src io.Reader
	if s.mode == SoundMode_Memory {
		src = s.buf.Copy()
	} else {
		streamer, err := OpenStreamer(s.source, s.Device.Format())
		if err != nil {
			return err
		}
		src = streamer
	}

	return s.Sink.Append(src)
}

//Update must be called regularly, for example once per frame. If looping, it queues another copy of
//the sound once the queue drained to the copy being played, or restarts the loop if the queue already ran dry.
//
//Errors are recoverable: a source that failed to decode was dropped and is reported once,
//while ErrPlayback means the device player itself stopped and the sound has to be recreated
func (s *Sound) Update() error {

	if s.closed {
		return ErrClosed
	}

	var queueErr error
	queueLen := s.Sink.Len()
	if s.loop && s.loaded && queueLen < 2 {

		if queueLen == 0 {
			logger.Warn().Str("source", s.source).Msg("queue ran dry, restarting loop")
		} else {
			logger.Debug().Str("source", s.source).Msg("adding source to queue")
		}

		queueErr = s.addToQueue()
	}

	s.playing = s.Sink.Len() != 0

	if err := s.Sink.Err(); err != nil {
		return errors.Wrapf(err, "failed to play '%s'", s.source)
	}

	if queueErr != nil {
		return queueErr
	}

	if err := s.Sink.Player.Err(); err != nil {
		return errors.Wrapf(ErrPlayback, "%v", err)
	}

	return nil
}

//Play loads the sound if needed and resumes playback
func (s *Sound) Play() error {

	if err := s.Load(); err != nil {
		return err
	}

	s.Sink.Play()
	return nil
}

//Pause stops output without dropping what is queued, so Play continues where it left off
func (s *Sound) Pause() {
	s.Sink.Pause()
}

//Stop drops everything queued along with what the player already buffered.
//A later Play starts the sound from the beginning, reusing the decoded data
func (s *Sound) Stop() {
	s.Sink.Stop()
	s.playing = false
	s.loaded = false
}

//Reload clears the queue and loads the source again, picking up changes to the file
func (s *Sound) Reload() error {
	logger.Info().Str("source", s.source).Msg("reloading sound")
	return s.reload()
}

//SetSource switches to a different file, replacing whatever is queued
func (s *Sound) SetSource(source string) error {
	s.source = source
	return s.reload()
}

func (s *Sound) reload() error {

	if s.closed {
		return ErrClosed
	}

	s.Sink.Stop()
	s.playing = false
	s.loaded = false
	s.buf = nil

	return s.Load()
}

func (s *Sound) SetVolume(volume float64) error {

	if err := checkVolume(volume); err != nil {
		return err
	}

	s.volume = volume
	s.Sink.SetVolume(volume)
	return nil
}

func checkVolume(volume float64) error {
	if math.IsNaN(volume) || math.IsInf(volume, 0) || volume < 0 {
		return errors.Wrapf(ErrInvalidVolume, "got %v", volume)
	}
	return nil
}

//IsPlaying reports whether anything was queued at the end of the last Update
func (s *Sound) IsPlaying() bool {
	return s.playing
}

func (s *Sound) SetLoop(loop bool) {
	s.loop = loop
}

func (s *Sound) Looping() bool {
	return s.loop
}

func (s *Sound) IsLoaded() bool {
	return s.loaded
}

func (s *Sound) Source() string {
	return s.source
}

func (s *Sound) Volume() float64 {
	return s.volume
}

func (s *Sound) Mode() SoundMode {
	return s.mode
}

func (s *Sound) QueueLen() int {
	return s.Sink.Len()
}

func (s *Sound) QueueState() QueueState {
	return QueueStateFromLen(s.Sink.Len())
}

//TotalTime returns the time taken to play one copy of the sound, or zero if it isn't loaded in memory
func (s *Sound) TotalTime() time.Duration {

	if s.buf == nil {
		return 0
	}

	return PCMDuration(s.buf.Size(), s.buf.Format)
}

//Close releases the sink and any open files. Repeated calls are no-ops
func (s *Sound) Close() error {

	if s.closed {
		return nil
	}

	s.closed = true
	s.playing = false
	s.loaded = false
	s.buf = nil

	return s.Sink.Close()
}
