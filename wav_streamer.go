package loopy

import (
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

var _ io.ReadCloser = &WavStreamer{}

//WavStreamer reads raw PCM straight out of a wav file. The file must already be 16-bit
//and match the device's rate and channel count, since nothing is converted
type WavStreamer struct {
	F   *os.File
	Dec *wav.Decoder
}

func (ws *WavStreamer) Read(outBuf []byte) (int, error) {
	return ws.Dec.PCMChunk.Read(outBuf)
}

//Size returns the number of PCM bytes
func (ws *WavStreamer) Size() int64 {
	return ws.Dec.PCMLen()
}

func (ws *WavStreamer) Close() error {
	return ws.F.Close()
}

func NewWavStreamer(f *os.File, wavDec *wav.Decoder, devFmt Format) (*WavStreamer, error) {

	if !wavDec.IsValidFile() {
		return nil, errors.New("invalid wav file")
	}

	if wavDec.BitDepth != 16 || int(wavDec.NumChans) != int(devFmt.ChanCount) || int(wavDec.SampleRate) != int(devFmt.SampleRate) {
		return nil, errors.Wrapf(ErrStreamFormat, "wav is %dHz/%dch/%dbit", wavDec.SampleRate, wavDec.NumChans, wavDec.BitDepth)
	}

	if err := wavDec.FwdToPCM(); err != nil {
		return nil, err
	}

	return &WavStreamer{
		F:   f,
		Dec: wavDec,
	}, nil
}
