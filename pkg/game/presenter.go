package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/utils"
)

// Presenter 展示协作方
//
// 核心逻辑只通过这个接口推送需要显示的内容，不关心文本如何绘制、模型如何渲染。
type Presenter interface {
	SetScoreText(text string)
	SetTimeText(text string)
	// SetPhaseVisibility 切换说明文字和计时器的可见性
	SetPhaseVisibility(instructionsVisible, timerVisible bool)
	SetProjectileTransform(id ecs.EntityID, kind string, position utils.Vec3, scale, yaw float64)
	RemoveProjectile(id ecs.EntityID)
	// SetAimGuide 更新瞄准线两端；visible 为 false 时隐藏
	SetAimGuide(visible bool, from, to utils.Vec3)
}

// FormatScore 分数文本
func FormatScore(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// FormatTime 剩余时间文本
func FormatTime(seconds int) string {
	return fmt.Sprintf("Time: %d", seconds)
}

// ProjectileView 一个水母在展示层的快照
type ProjectileView struct {
	ID       ecs.EntityID
	Kind     string
	Position utils.Vec3
	Scale    float64
	Yaw      float64
}

// HUDState 保存最近一次推送的展示数据，渲染器每帧从中读取
type HUDState struct {
	ScoreText           string
	TimeText            string
	InstructionsVisible bool
	TimerVisible        bool

	AimVisible bool
	AimFrom    utils.Vec3
	AimTo      utils.Vec3

	projectiles map[ecs.EntityID]ProjectileView
}

// NewHUDState 创建初始展示状态（会话开始前：显示说明，隐藏计时器）
func NewHUDState() *HUDState {
	return &HUDState{
		ScoreText:           FormatScore(0),
		TimeText:            "",
		InstructionsVisible: true,
		TimerVisible:        false,
		projectiles:         make(map[ecs.EntityID]ProjectileView),
	}
}

// SetScoreText 实现 Presenter
func (h *HUDState) SetScoreText(text string) {
	h.ScoreText = text
}

// SetTimeText 实现 Presenter
func (h *HUDState) SetTimeText(text string) {
	h.TimeText = text
}

// SetPhaseVisibility 实现 Presenter
func (h *HUDState) SetPhaseVisibility(instructionsVisible, timerVisible bool) {
	h.InstructionsVisible = instructionsVisible
	h.TimerVisible = timerVisible
}

// SetProjectileTransform 实现 Presenter
func (h *HUDState) SetProjectileTransform(id ecs.EntityID, kind string, position utils.Vec3, scale, yaw float64) {
	h.projectiles[id] = ProjectileView{
		ID:       id,
		Kind:     kind,
		Position: position,
		Scale:    scale,
		Yaw:      yaw,
	}
}

// RemoveProjectile 实现 Presenter
func (h *HUDState) RemoveProjectile(id ecs.EntityID) {
	delete(h.projectiles, id)
}

// SetAimGuide 实现 Presenter
func (h *HUDState) SetAimGuide(visible bool, from, to utils.Vec3) {
	h.AimVisible = visible
	h.AimFrom = from
	h.AimTo = to
}

// Projectiles 按实体 ID 升序返回所有水母快照
func (h *HUDState) Projectiles() []ProjectileView {
	ids := slices.Sorted(maps.Keys(h.projectiles))
	views := make([]ProjectileView, 0, len(ids))
	for _, id := range ids {
		views = append(views, h.projectiles[id])
	}
	return views
}

// ProjectileCount 当前展示的水母数量
func (h *HUDState) ProjectileCount() int {
	return len(h.projectiles)
}
