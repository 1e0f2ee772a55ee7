package loopy

import (
	"io"

	"github.com/pkg/errors"
)

// Pre-defined errors
var (
	ErrInvalidWhence   = errors.New("invalid whence value. Must be: io.SeekStart, io.SeekCurrent, or io.SeekEnd")
	ErrNegativeSeekPos = errors.New("negative seeker position")
)

var _ io.ReadSeeker = &SoundBuffer{}

// SoundBuffer is a fully decoded sound, stored as signed 16-bit little-endian PCM in the format it was decoded for.
type SoundBuffer struct {
	Data   []byte
	Format Format

	// Pos is the starting position of the next read
	Pos int64
}

// Read only returns io.EOF when bytesRead==0 and no more input is available
func (sb *SoundBuffer) Read(outBuf []byte) (bytesRead int, err error) {

	if sb.Pos >= int64(len(sb.Data)) {
		return 0, io.EOF
	}

	bytesRead = copy(outBuf, sb.Data[sb.Pos:])
	sb.Pos += int64(bytesRead)
	return bytesRead, nil
}

// Seek returns the new position.
// An error is only returned if the whence is invalid or if the resulting position is negative.
//
// If the resulting position is >=len(SoundBuffer.Data) then future Read() calls will return io.EOF
func (sb *SoundBuffer) Seek(offset int64, whence int) (int64, error) {

	newPos := sb.Pos
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos += offset
	case io.SeekEnd:
		newPos = int64(len(sb.Data)) + offset
	default:
		return 0, ErrInvalidWhence
	}

	if newPos < 0 {
		return 0, ErrNegativeSeekPos
	}

	sb.Pos = newPos
	return sb.Pos, nil
}

// Size returns the number of PCM bytes
func (sb *SoundBuffer) Size() int64 {
	return int64(len(sb.Data))
}

// Remaining returns how many bytes are left to read
func (sb *SoundBuffer) Remaining() int64 {
	if sb.Pos >= int64(len(sb.Data)) {
		return 0
	}
	return int64(len(sb.Data)) - sb.Pos
}

// Copy returns a new SoundBuffer that uses the same `Data` but with an independent ReadSeeker.
// This is what lets a looping sound queue the same decoded data many times.
//
// The new buffer will have its starting position set to io.SeekStart (`Pos=0`)
func (sb *SoundBuffer) Copy() *SoundBuffer {
	return &SoundBuffer{
		Data:   sb.Data,
		Format: sb.Format,
		Pos:    0,
	}
}
