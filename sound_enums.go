package loopy

type SoundType int

const (
	SoundType_Unknown SoundType = iota
	SoundType_MP3
	SoundType_WAV
	SoundType_OGG
)

func (t SoundType) String() string {
	switch t {
	case SoundType_MP3:
		return "mp3"
	case SoundType_WAV:
		return "wav"
	case SoundType_OGG:
		return "ogg"
	default:
		return "unknown"
	}
}

type SampleRate int

const (
	SampleRate_44100 SampleRate = 44100
	SampleRate_48000 SampleRate = 48000
)

type SoundChannelCount int

const (
	SoundChannelCount_1 SoundChannelCount = 1
	SoundChannelCount_2 SoundChannelCount = 2
)

//SoundBitDepth is in bytes per sample
type SoundBitDepth int

const (
	SoundBitDepth_2 SoundBitDepth = 2
)

type SoundMode int

const (
	SoundMode_Streaming SoundMode = iota
	SoundMode_Memory
)

func (m SoundMode) String() string {
	if m == SoundMode_Streaming {
		return "stream"
	}
	return "memory"
}

//QueueState is what the sink's queue length says about a looping sound
type QueueState int

const (
	//QueueState_Stopped means nothing is queued
	QueueState_Stopped QueueState = iota
	//QueueState_Draining means only the playing copy is left, so the next Update re-queues
	QueueState_Draining
	//QueueState_Steady means a second copy is buffered behind the playing one
	QueueState_Steady
)

func QueueStateFromLen(queueLen int) QueueState {
	switch {
	case queueLen <= 0:
		return QueueState_Stopped
	case queueLen == 1:
		return QueueState_Draining
	default:
		return QueueState_Steady
	}
}

func (q QueueState) String() string {
	switch q {
	case QueueState_Draining:
		return "draining"
	case QueueState_Steady:
		return "steady"
	default:
		return "stopped"
	}
}
