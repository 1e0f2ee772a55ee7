package loopy_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/bloeys/loopy"
)

func TestRemapChannels(t *testing.T) {

	tests := []struct {
		name     string
		in       []int16
		src, dst int
		want     []int16
	}{
		{"mono to stereo", []int16{1, 2, 3}, 1, 2, []int16{1, 1, 2, 2, 3, 3}},
		{"stereo to mono", []int16{2, 4, -6, -2}, 2, 1, []int16{3, -4}},
		{"same", []int16{5, 6}, 2, 2, []int16{5, 6}},
		{"quad to stereo", []int16{1, 2, 3, 4}, 4, 2, []int16{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loopy.RemapChannels(tt.in, tt.src, tt.dst)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RemapChannels() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResample(t *testing.T) {

	//Upsampling 2x interpolates midpoints
	got := loopy.Resample([]int16{0, 0, 100, 200}, 2, 22050, 44100)
	want := []int16{0, 0, 50, 100, 100, 200, 100, 200}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resample() up mismatch (-want +got):\n%s", diff)
	}

	//Downsampling 2x keeps every other frame
	got = loopy.Resample([]int16{1, 2, 3, 4, 5, 6, 7, 8}, 1, 48000, 24000)
	want = []int16{1, 3, 5, 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resample() down mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, loopy.Resample(make([]int16, 2*48000), 2, 48000, 44100), 2*44100)
	assert.Empty(t, loopy.Resample(nil, 2, 48000, 44100))
}

func TestSampleConversions(t *testing.T) {

	assert.Equal(t, int16(0), loopy.IntToInt16(128, 8))
	assert.Equal(t, int16(-32768), loopy.IntToInt16(0, 8))
	assert.Equal(t, int16(1234), loopy.IntToInt16(1234, 16))
	assert.Equal(t, int16(0x1234), loopy.IntToInt16(0x123456, 24))
	assert.Equal(t, int16(0x1234), loopy.IntToInt16(0x12345678, 32))

	out := make([]byte, 6)
	loopy.F32ToPCM16([]float32{1, -2, 0}, out)
	assert.Equal(t, []int16{math.MaxInt16, -math.MaxInt16, 0}, loopy.BytesToInt16(out))
}
