package utils

// 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的进度 ∈ [0, 1]
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出，开始快结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic 三次方缓入缓出，开始和结束都慢
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
