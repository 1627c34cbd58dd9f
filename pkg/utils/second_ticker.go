package utils

// SecondTicker 把逐帧的 deltaTime 累积成整秒节拍
// 用于会话倒计时和飞行倒计时这类"每秒一次"的粗粒度时钟
type SecondTicker struct {
	accumulated float64
}

// Advance 累积 deltaTime，返回本次跨过的整秒数
func (t *SecondTicker) Advance(deltaTime float64) int {
	if deltaTime <= 0 {
		return 0
	}
	t.accumulated += deltaTime
	ticks := 0
	for t.accumulated >= 1.0 {
		t.accumulated -= 1.0
		ticks++
	}
	return ticks
}

// Fraction 返回当前秒内已经过去的比例（0~1）
func (t *SecondTicker) Fraction() float64 {
	return t.accumulated
}

// Reset 清空累积时间
func (t *SecondTicker) Reset() {
	t.accumulated = 0
}
