package utils

// Clamp01 将值限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeDeg 将角度归一化到 [0, 360)
func NormalizeDeg(deg float64) float64 {
	for deg >= 360 {
		deg -= 360
	}
	for deg < 0 {
		deg += 360
	}
	return deg
}
