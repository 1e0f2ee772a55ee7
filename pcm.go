package loopy

import (
	"encoding/binary"
	"math"
)

//F32ToPCM16 converts float samples in [-1,1] into signed 16-bit little-endian bytes.
//outBuf must have room for 2*len(inBuf) bytes
func F32ToPCM16(inBuf []float32, outBuf []byte) {

	for i, f := range inBuf {
		binary.LittleEndian.PutUint16(outBuf[i*2:], uint16(f32ToInt16(f)))
	}
}

func f32ToInt16(f float32) int16 {

	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}

	return int16(f * math.MaxInt16)
}

//IntToInt16 scales a sample of the given bit depth (in bits) to 16 bits.
//8-bit samples are expected unsigned, as stored in wav files
func IntToInt16(v int, bitDepth int) int16 {

	switch bitDepth {
	case 8:
		return int16((v - 128) << 8)
	case 16:
		return int16(v)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	default:
		return 0
	}
}

//Int16ToBytes encodes samples as little-endian bytes
func Int16ToBytes(samples []int16) []byte {

	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	return out
}

//BytesToInt16 decodes little-endian bytes into samples. A trailing odd byte is ignored
func BytesToInt16(b []byte) []int16 {

	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}

	return out
}

//RemapChannels converts interleaved samples from srcChans to dstChans.
//Mono is duplicated to every output channel, and anything with more channels is downmixed by averaging
//when going to mono or by keeping the first channels otherwise
func RemapChannels(samples []int16, srcChans, dstChans int) []int16 {

	if srcChans == dstChans || srcChans <= 0 || dstChans <= 0 {
		return samples
	}

	frames := len(samples) / srcChans
	out := make([]int16, frames*dstChans)
	for i := 0; i < frames; i++ {

		frame := samples[i*srcChans : (i+1)*srcChans]
		switch {
		case srcChans == 1:
			for ch := 0; ch < dstChans; ch++ {
				out[i*dstChans+ch] = frame[0]
			}

		case dstChans == 1:
			sum := 0
			for _, s := range frame {
				sum += int(s)
			}
			out[i] = int16(sum / srcChans)

		default:
			for ch := 0; ch < dstChans; ch++ {
				if ch < srcChans {
					out[i*dstChans+ch] = frame[ch]
				}
			}
		}
	}

	return out
}

//Resample converts interleaved samples between sample rates using linear interpolation
func Resample(samples []int16, chans, srcRate, dstRate int) []int16 {

	if srcRate == dstRate || chans <= 0 || srcRate <= 0 || dstRate <= 0 {
		return samples
	}

	inFrames := len(samples) / chans
	if inFrames == 0 {
		return samples[:0]
	}

	ratio := float64(srcRate) / float64(dstRate)
	outFrames := int(int64(inFrames) * int64(dstRate) / int64(srcRate))
	out := make([]int16, outFrames*chans)

	for i := 0; i < outFrames; i++ {

		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= inFrames {
			idx = inFrames - 1
		}
		frac := pos - float64(idx)

		next := idx + 1
		if next >= inFrames {
			next = inFrames - 1
		}

		for ch := 0; ch < chans; ch++ {
			s1 := float64(samples[idx*chans+ch])
			s2 := float64(samples[next*chans+ch])
			out[i*chans+ch] = int16(s1*(1-frac) + s2*frac)
		}
	}

	return out
}
