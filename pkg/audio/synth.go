package audio

import (
	"encoding/binary"
	"math"

	"github.com/decker502/spacejellies/pkg/game"
)

// fadeSeconds 每个音符首尾的淡入淡出时长，避免爆音
const fadeSeconds = 0.01

// synthesize 生成 16 位有符号小端、双声道 PCM 数据
func synthesize(sampleRate int, tones []game.Tone) []byte {
	total := 0
	for _, tone := range tones {
		total += samplesFor(tone, sampleRate)
	}

	buf := make([]byte, 0, total*4)
	fade := int(fadeSeconds * float64(sampleRate))

	for _, tone := range tones {
		count := samplesFor(tone, sampleRate)
		for i := 0; i < count; i++ {
			v := 0.0
			if tone.Freq > 0 {
				v = math.Sin(2 * math.Pi * tone.Freq * float64(i) / float64(sampleRate))
				v *= envelope(i, count, fade) * 0.5
			}
			s := uint16(int16(v * math.MaxInt16))
			buf = binary.LittleEndian.AppendUint16(buf, s) // 左声道
			buf = binary.LittleEndian.AppendUint16(buf, s) // 右声道
		}
	}
	return buf
}

// envelope 线性淡入淡出包络（0 ~ 1）
func envelope(i, count, fade int) float64 {
	if fade <= 0 {
		return 1
	}
	if i < fade {
		return float64(i) / float64(fade)
	}
	if remain := count - 1 - i; remain < fade {
		return float64(remain) / float64(fade)
	}
	return 1
}

func samplesFor(tone game.Tone, sampleRate int) int {
	return int(tone.Duration.Seconds() * float64(sampleRate))
}
