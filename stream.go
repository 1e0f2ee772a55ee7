package loopy

import (
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/pkg/errors"
)

//Streamer decodes a sound file on demand. Closing it closes the file
type Streamer interface {
	io.ReadCloser
	Size() int64
}

//OpenStreamer opens fpath and returns a streamer producing PCM in the device format f.
//The file stays open until the streamer is closed. If the file's format differs from f
//the error wraps ErrStreamFormat
func OpenStreamer(fpath string, f Format) (s Streamer, err error) {

	soundType := GetSoundFileType(fpath)
	if soundType == SoundType_Unknown {
		return nil, errors.Wrap(ErrUnknownSoundType, fpath)
	}

	//We don't close on success so the player can stream the file any time later
	file, err := os.Open(fpath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sound file")
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()

	switch soundType {
	case SoundType_MP3:
		dec, decErr := mp3.NewDecoder(file)
		if decErr != nil {
			return nil, errors.Wrapf(decErr, "failed to decode mp3 file '%s'", fpath)
		}
		s, err = NewMp3Streamer(file, dec, f)

	case SoundType_WAV:
		s, err = NewWavStreamer(file, wav.NewDecoder(file), f)

	case SoundType_OGG:
		dec, decErr := oggvorbis.NewReader(file)
		if decErr != nil {
			return nil, errors.Wrapf(decErr, "failed to decode ogg file '%s'", fpath)
		}
		s, err = NewOggStreamer(file, dec, f)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to stream '%s'", fpath)
	}

	return s, nil
}
