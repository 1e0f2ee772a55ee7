package loopy

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/pkg/errors"
)

//mp3 output from go-mp3 is always 16-bit stereo
const mp3ChanCount = 2

func GetSoundFileType(fpath string) SoundType {

	ext := strings.ToLower(filepath.Ext(fpath))
	switch ext {
	case ".mp3":
		return SoundType_MP3
	case ".wav", ".wave":
		return SoundType_WAV
	case ".ogg", ".oga":
		return SoundType_OGG
	default:
		return SoundType_Unknown
	}
}

//Decode loads the entire sound file into memory and converts it into the format f,
//remapping channels and resampling where needed.
func Decode(fpath string, f Format) (*SoundBuffer, error) {

	if err := f.validate(); err != nil {
		return nil, err
	}

	soundType := GetSoundFileType(fpath)
	if soundType == SoundType_Unknown {
		return nil, errors.Wrap(ErrUnknownSoundType, fpath)
	}

	fileBytes, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sound file")
	}

	var (
		samples  []int16
		srcRate  int
		srcChans int
	)

	bytesReader := bytes.NewReader(fileBytes)
	switch soundType {
	case SoundType_MP3:
		samples, srcRate, srcChans, err = decodeMp3(bytesReader)
	case SoundType_WAV:
		samples, srcRate, srcChans, err = decodeWav(bytesReader)
	case SoundType_OGG:
		samples, srcRate, srcChans, err = decodeOgg(bytesReader)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s file '%s'", soundType, fpath)
	}

	samples = RemapChannels(samples, srcChans, int(f.ChanCount))
	samples = Resample(samples, int(f.ChanCount), srcRate, int(f.SampleRate))

	return &SoundBuffer{
		Data:   Int16ToBytes(samples),
		Format: f,
	}, nil
}

func decodeMp3(r io.Reader) (samples []int16, sampleRate, chanCount int, err error) {

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, 0, err
	}

	pcm, err := ReadAllFromReader(dec, 0, uint64(dec.Length()))
	if err != nil {
		return nil, 0, 0, err
	}

	return BytesToInt16(pcm), dec.SampleRate(), mp3ChanCount, nil
}

func decodeWav(r io.ReadSeeker) (samples []int16, sampleRate, chanCount int, err error) {

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, 0, errors.New("invalid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, err
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}

	samples = make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = IntToInt16(v, bitDepth)
	}

	return samples, int(dec.SampleRate), int(dec.NumChans), nil
}

func decodeOgg(r io.Reader) (samples []int16, sampleRate, chanCount int, err error) {

	floats, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, 0, 0, err
	}

	samples = make([]int16, len(floats))
	for i, f := range floats {
		samples[i] = f32ToInt16(f)
	}

	return samples, format.SampleRate, format.Channels, nil
}

//PCMDuration returns how long pcmBytes of sound in format f plays for
func PCMDuration(pcmBytes int64, f Format) time.Duration {

	bps := f.BytesPerSecond()
	if bps == 0 {
		return 0
	}

	return time.Duration(pcmBytes) * time.Second / time.Duration(bps)
}

//ReadAllFromReader takes an io.Reader and reads until error or io.EOF.
//
//If io.EOF is reached then read bytes are returned with a nil error.
//If the reader returns an error that's not io.EOF then everything read till that point is returned along with the error
//
//readingBufSize is the buffer used to read from reader.Read(). Bigger values might read more efficiently.
//If readingBufSize<4096 then readingBufSize is set to 4096
//
//ouputBufSize is used to set the capacity of the final buffer to be returned. This can greatly improve performance
//if you know the size of the output. It is allowed to have an outputBufSize that's smaller or larger than what the reader
//ends up returning
func ReadAllFromReader(reader io.Reader, readingBufSize, ouputBufSize uint64) ([]byte, error) {

	if readingBufSize < 4096 {
		readingBufSize = 4096
	}

	tempBuf := make([]byte, readingBufSize)
	finalBuf := make([]byte, 0, ouputBufSize)
	for {

		readBytesCount, err := reader.Read(tempBuf)
		finalBuf = append(finalBuf, tempBuf[:readBytesCount]...)

		if err != nil {
			if err == io.EOF {
				return finalBuf, nil
			}
			return finalBuf, err
		}
	}
}
