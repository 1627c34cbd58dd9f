package components

// GrowthComponent 槽位中水母的生长动画状态
//
// Progress 从 0.0 单调递增到 1.0，缩放 = Progress * MaxScale。
// 生长完成后由 RingSystem 移除此组件。
type GrowthComponent struct {
	// Progress 生长进度（0.0 ~ 1.0）
	Progress float64

	// Duration 从 0 长到 1.0 需要的时间（秒）
	Duration float64

	// MaxScale 生长完成时的缩放
	MaxScale float64
}
