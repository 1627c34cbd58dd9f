package components

// TransitComponent 水母从槽位飞向弹弓锚点的装填动画状态
//
// 位置以固定速度直线逼近锚点；缩放和朝向在 Duration 内按三次缓入缓出（utils.EaseInOutCubic）过渡到目标值。
type TransitComponent struct {
	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Duration 缩放/转向过渡时长（秒）
	Duration float64

	// StartScale 起始缩放
	StartScale float64

	// TargetScale 目标缩放
	TargetScale float64

	// StartYaw 起始朝向（度）
	StartYaw float64

	// TargetYaw 目标朝向（度）
	TargetYaw float64
}
