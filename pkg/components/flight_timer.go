package components

import "github.com/decker502/spacejellies/pkg/utils"

// FlightTimerComponent 已发射水母的飞行倒计时
//
// 倒计时以整秒为单位，每经过一秒 Remaining 减一，减到 0 时水母过期。
type FlightTimerComponent struct {
	// Remaining 剩余秒数
	Remaining int

	// Duration 倒计时总秒数（所有水母相同）
	Duration int

	// Ticker 该水母自己的整秒累积器（从发射时刻开始计时）
	Ticker utils.SecondTicker

	// StartScale 发射时的缩放，飞行中线性缩小到 0
	StartScale float64
}
