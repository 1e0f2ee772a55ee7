package loopy_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloeys/loopy"
)

type closingReader struct {
	io.Reader
	closed bool
}

func (c *closingReader) Close() error {
	c.closed = true
	return nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("corrupt frame")
}

func TestSinkReadsInOrder(t *testing.T) {

	dev := newFakeDevice()
	sink, err := loopy.NewSink(dev)
	require.NoError(t, err)
	assert.False(t, dev.lastPlayer().playing)

	first := &closingReader{Reader: bytes.NewReader([]byte{1, 0, 2, 0})}
	require.NoError(t, sink.Append(first))
	require.NoError(t, sink.Append(bytes.NewReader([]byte{3, 0})))
	assert.Equal(t, 2, sink.Len())
	assert.True(t, dev.lastPlayer().playing, "appending should start the player")

	buf := dev.consume(t, 8)
	assert.Equal(t, []byte{1, 0, 2, 0, 3, 0, 0, 0}, buf)
	assert.Equal(t, 0, sink.Len())
	assert.True(t, first.closed, "finished sources should be closed")
}

func TestSinkReadStopsAtSourceEnd(t *testing.T) {

	dev := newFakeDevice()
	sink, err := loopy.NewSink(dev)
	require.NoError(t, err)

	require.NoError(t, sink.Append(bytes.NewReader([]byte{1, 0, 2, 0})))
	require.NoError(t, sink.Append(bytes.NewReader([]byte{3, 0, 4, 0})))

	assert.Equal(t, []byte{1, 0, 2, 0}, dev.pull(t, 64))
	assert.Equal(t, 2, sink.Len())

	//The first source ends here and the second is read without padding in between
	assert.Equal(t, []byte{3, 0, 4, 0}, dev.pull(t, 64))
	assert.Equal(t, 1, sink.Len())

	//Only an empty queue gives silence
	assert.Equal(t, make([]byte, 64), dev.pull(t, 64))
	assert.Equal(t, 0, sink.Len())

	assert.Empty(t, dev.pull(t, 0))
}

func TestSinkStopResetsPlayer(t *testing.T) {

	dev := newFakeDevice()
	sink, err := loopy.NewSink(dev)
	require.NoError(t, err)
	assert.False(t, sink.IsPaused())

	src := &closingReader{Reader: bytes.NewReader([]byte{1, 1})}
	require.NoError(t, sink.Append(src))
	sink.Stop()
	assert.Equal(t, 0, sink.Len())
	assert.True(t, src.closed)
	assert.False(t, sink.IsPaused())
	assert.Equal(t, 1, dev.lastPlayer().resets)
	assert.False(t, dev.lastPlayer().playing)

	require.NoError(t, sink.Append(bytes.NewReader([]byte{1, 1})))
	assert.True(t, dev.lastPlayer().playing, "the next source restarts the player")

	//A paused sink stays paused across Stop and Append
	sink.Pause()
	sink.Stop()
	require.NoError(t, sink.Append(bytes.NewReader([]byte{1, 1})))
	assert.True(t, sink.IsPaused())
	assert.False(t, dev.lastPlayer().playing)

	sink.Play()
	assert.True(t, dev.lastPlayer().playing)
	assert.Equal(t, 2, dev.lastPlayer().resets)
}

func TestSinkVolume(t *testing.T) {

	dev := newFakeDevice()
	sink, err := loopy.NewSink(dev)
	require.NoError(t, err)
	assert.Equal(t, 1.0, sink.Volume())

	sink.SetVolume(0.25)
	assert.Equal(t, 0.25, sink.Volume())
	assert.Equal(t, 0.25, dev.lastPlayer().volume)

	require.NoError(t, sink.Append(bytes.NewReader([]byte{0xe8, 0x03})))
	assert.Equal(t, []byte{0xe8, 0x03}, dev.pull(t, 2))
}

func TestSinkDropsFailingSource(t *testing.T) {

	dev := newFakeDevice()
	sink, err := loopy.NewSink(dev)
	require.NoError(t, err)

	require.NoError(t, sink.Append(failingReader{}))
	require.NoError(t, sink.Append(bytes.NewReader([]byte{7, 0})))

	buf := dev.consume(t, 2)
	assert.Equal(t, []byte{7, 0}, buf)
	assert.Equal(t, 1, sink.Len(), "the second source hasn't reported EOF yet")

	assert.EqualError(t, sink.Err(), "corrupt frame")
	assert.NoError(t, sink.Err(), "errors are reported once")
}

func TestSinkClose(t *testing.T) {

	dev := newFakeDevice()
	sink, err := loopy.NewSink(dev)
	require.NoError(t, err)

	require.NoError(t, sink.Append(bytes.NewReader([]byte{1, 1})))
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())
	assert.True(t, dev.lastPlayer().closed)
	assert.Equal(t, 0, sink.Len())

	late := &closingReader{Reader: bytes.NewReader(nil)}
	assert.ErrorIs(t, sink.Append(late), loopy.ErrClosed)
	assert.True(t, late.closed)

	_, err = loopy.NewSink(nil)
	assert.Error(t, err)
}
