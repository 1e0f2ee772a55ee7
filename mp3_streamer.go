package loopy

import (
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"
)

var _ io.ReadCloser = &Mp3Streamer{}

type Mp3Streamer struct {
	F   *os.File
	Dec *mp3.Decoder
}

func (ms *Mp3Streamer) Read(outBuf []byte) (int, error) {
	return ms.Dec.Read(outBuf)
}

//Size returns number of bytes
func (ms *Mp3Streamer) Size() int64 {
	return ms.Dec.Length()
}

func (ms *Mp3Streamer) Close() error {
	return ms.F.Close()
}

func NewMp3Streamer(f *os.File, dec *mp3.Decoder, devFmt Format) (*Mp3Streamer, error) {

	if devFmt.ChanCount != mp3ChanCount || dec.SampleRate() != int(devFmt.SampleRate) {
		return nil, errors.Wrapf(ErrStreamFormat, "mp3 is %dHz/%dch", dec.SampleRate(), mp3ChanCount)
	}

	return &Mp3Streamer{
		F:   f,
		Dec: dec,
	}, nil
}
