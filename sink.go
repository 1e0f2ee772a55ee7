package loopy

import (
	"io"
	"sync"

	"github.com/pkg/errors"
)

var _ io.Reader = &Sink{}

//Sink is a queue of sources played back-to-back by a single device player.
//The player pulls from the sink on its own goroutine, so all methods are safe for concurrent use.
//
//The player holds its own lock while it calls Read, so the sink never calls into the player
//while holding its mutex.
type Sink struct {
	Player Player

	mutex  sync.Mutex
	queue  []io.Reader
	volume float64
	paused bool
	closed bool
	err    error

	//idle is set while the player is reset and waiting for something to be appended
	idle bool
}

//NewSink creates an unpaused sink on the device. The player starts on the first Append,
//so nothing is buffered ahead of the first source
func NewSink(dev Device) (*Sink, error) {

	if dev == nil {
		return nil, errors.New("failed to create sink: nil device")
	}

	s := &Sink{
		volume: 1,
		idle:   true,
	}

	s.Player = dev.NewPlayer(s)
	if s.Player == nil {
		return nil, errors.New("failed to create sink: device returned no player")
	}

	return s, nil
}

//Read copies from the head of the queue into outBuf. It stops short at the end of a source,
//so one call never moves past more than one source. Silence is only returned once the queue is empty
//(or its head had nothing to give), and Read never returns an error
func (s *Sink) Read(outBuf []byte) (int, error) {

	if len(outBuf) == 0 {
		return 0, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for len(s.queue) > 0 {

		readBytes, err := s.queue[0].Read(outBuf)
		if err != nil {
			if err != io.EOF {
				s.err = err
				logger.Warn().Err(err).Msg("dropping sound source after read error")
			}
			s.popFront()
		}

		if readBytes > 0 {
			return readBytes, nil
		}

		if err == nil {
			break
		}
	}

	for i := range outBuf {
		outBuf[i] = 0
	}

	return len(outBuf), nil
}

//Append adds src to the end of the queue, restarting the player if it was reset by Stop
func (s *Sink) Append(src io.Reader) error {

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		closeSource(src)
		return ErrClosed
	}

	s.queue = append(s.queue, src)
	start := s.idle && !s.paused
	if start {
		s.idle = false
	}
	s.mutex.Unlock()

	if start {
		s.Player.Play()
	}

	return nil
}

//Len returns the number of queued sources, including the one being played
func (s *Sink) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.queue)
}

func (s *Sink) Play() {

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return
	}
	s.paused = false
	s.idle = false
	s.mutex.Unlock()

	s.Player.Play()
}

func (s *Sink) Pause() {

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return
	}
	s.paused = true
	s.mutex.Unlock()

	s.Player.Pause()
}

func (s *Sink) IsPaused() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.paused
}

//Stop drops every queued source and resets the player, discarding whatever it already buffered.
//The player stays quiet until the next Append or Play. Pausing is unaffected
func (s *Sink) Stop() {

	s.mutex.Lock()
	s.dropAll()
	closed := s.closed
	if !closed {
		s.idle = true
	}
	s.mutex.Unlock()

	if !closed {
		s.Player.Reset()
	}
}

//SetVolume sets the player's volume. It applies to what the device plays next, including audio
//the player already buffered. Values above 1 amplify and may clip
func (s *Sink) SetVolume(volume float64) {

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return
	}
	s.volume = volume
	s.mutex.Unlock()

	s.Player.SetVolume(volume)
}

func (s *Sink) Volume() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.volume
}

//Err returns the last error a source failed with and clears it, so each failure is reported once
func (s *Sink) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := s.err
	s.err = nil
	return err
}

//Close drops the queue and closes the player. Repeated calls are no-ops
func (s *Sink) Close() error {

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return nil
	}

	s.closed = true
	s.dropAll()
	s.mutex.Unlock()

	return s.Player.Close()
}

func (s *Sink) popFront() {
	closeSource(s.queue[0])
	s.queue[0] = nil
	s.queue = s.queue[1:]
}

func (s *Sink) dropAll() {
	for _, src := range s.queue {
		closeSource(src)
	}
	s.queue = nil
}

func closeSource(src io.Reader) {

	c, ok := src.(io.Closer)
	if !ok {
		return
	}

	if err := c.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close sound source")
	}
}
