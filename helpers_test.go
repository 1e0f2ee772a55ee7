package loopy_test

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"

	"github.com/bloeys/loopy"
)

type fakePlayer struct {
	src     io.Reader
	playing bool
	closed  bool
	resets  int
	volume  float64
	err     error
}

func (p *fakePlayer) Play() { p.playing = true }
func (p *fakePlayer) Pause() { p.playing = false }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Err() error { return p.err }

//Reset pauses like oto's does
func (p *fakePlayer) Reset() {
	p.resets++
	p.playing = false
}

func (p *fakePlayer) Close() error {
	p.closed = true
	p.playing = false
	return nil
}

//fakeDevice hands out players that never pull on their own; tests drive them with pull and consume
type fakeDevice struct {
	fmt     loopy.Format
	players []*fakePlayer
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{fmt: loopy.DefaultFormat}
}

func (d *fakeDevice) NewPlayer(r io.Reader) loopy.Player {
	p := &fakePlayer{src: r, volume: 1}
	d.players = append(d.players, p)
	return p
}

func (d *fakeDevice) Format() loopy.Format {
	return d.fmt
}

func (d *fakeDevice) lastPlayer() *fakePlayer {
	return d.players[len(d.players)-1]
}

//pull does a single Read of up to n bytes, the way oto fills its buffer, and returns what was read
func (d *fakeDevice) pull(t require.TestingT, n int) []byte {
	buf := make([]byte, n)
	readBytes, err := d.lastPlayer().src.Read(buf)
	require.NoError(t, err)
	return buf[:readBytes]
}

//consume keeps reading until exactly n bytes were pulled
func (d *fakeDevice) consume(t require.TestingT, n int) []byte {

	buf := make([]byte, 0, n)
	for len(buf) < n {
		chunk := d.pull(t, n-len(buf))
		require.NotEmpty(t, chunk, "player source returned nothing")
		buf = append(buf, chunk...)
	}

	return buf
}

//writeWav writes a 16-bit wav of 'frames' frames where every channel of frame i holds sample(i)
func writeWav(t *testing.T, dir, name string, frames, sampleRate, chans int, sample func(i int) int) string {
	t.Helper()

	fpath := filepath.Join(dir, name)
	f, err := os.Create(fpath)
	require.NoError(t, err)
	defer f.Close()

	data := make([]int, 0, frames*chans)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < chans; ch++ {
			data = append(data, sample(i))
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, chans, 1)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: chans, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	})
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	return fpath
}

func constSample(v int) func(int) int {
	return func(int) int { return v }
}

func sineSample(freq float64, sampleRate int) func(int) int {
	return func(i int) int {
		return int(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * 0.3 * math.MaxInt16)
	}
}

func int16At(buf []byte, sampleIndex int) int16 {
	return int16(binary.LittleEndian.Uint16(buf[sampleIndex*2:]))
}
