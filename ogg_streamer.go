package loopy

import (
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
	"github.com/pkg/errors"
)

var _ io.ReadCloser = &OggStreamer{}

type OggStreamer struct {
	F   *os.File
	Dec *oggvorbis.Reader

	floatBuf []float32
}

func (ogs *OggStreamer) Read(outBuf []byte) (bytesRead int, err error) {

	floatCount := len(outBuf) / 2
	if cap(ogs.floatBuf) < floatCount {
		ogs.floatBuf = make([]float32, floatCount)
	}

	readerBuf := ogs.floatBuf[:floatCount]
	floatsRead, err := ogs.Dec.Read(readerBuf)
	F32ToPCM16(readerBuf[:floatsRead], outBuf)

	return floatsRead * 2, err
}

//Size returns number of bytes
func (ogs *OggStreamer) Size() int64 {
	return ogs.Dec.Length() * int64(ogs.Dec.Channels()) * int64(SoundBitDepth_2)
}

func (ogs *OggStreamer) Close() error {
	return ogs.F.Close()
}

func NewOggStreamer(f *os.File, dec *oggvorbis.Reader, devFmt Format) (*OggStreamer, error) {

	if dec.Channels() != int(devFmt.ChanCount) || dec.SampleRate() != int(devFmt.SampleRate) {
		return nil, errors.Wrapf(ErrStreamFormat, "ogg is %dHz/%dch", dec.SampleRate(), dec.Channels())
	}

	return &OggStreamer{
		F:   f,
		Dec: dec,
	}, nil
}
