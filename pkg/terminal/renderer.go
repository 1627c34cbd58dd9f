package terminal

import (
	"fmt"
	"math"
	"unicode"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/gameplay"
	"github.com/decker502/spacejellies/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// 画面样式
var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	ringStyle   = tcell.StyleDefault.Foreground(tcell.ColorSlateBlue)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorGold)
	aimStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	viewerStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)

	kindStyles = map[string]tcell.Style{
		"blue":  tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue),
		"pink":  tcell.StyleDefault.Foreground(tcell.ColorHotPink),
		"green": tcell.StyleDefault.Foreground(tcell.ColorLightGreen),
	}
	defaultKindStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// instructionLines 会话未进行时显示在底部
var instructionLines = []string{
	"Enter/Space: start   q/Esc: quit   m: sound",
	"Mouse drag or WASD to pull back, release (f) to toss",
	"Left/Right: turn",
}

const (
	// viewDepth 画面纵向需要容纳的世界深度（单位）
	viewDepth = 7.0
	// cellAspect 字符格高宽比，横向每单位的格数是纵向的两倍
	cellAspect = 2.0
	// viewerRowsFromBottom 视点距离底边的行数
	viewerRowsFromBottom = 5
)

// Renderer 在 tcell 屏幕上绘制一局游戏的俯视图
type Renderer struct {
	screen tcell.Screen
	status string
}

// NewRenderer 创建渲染器
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// SetStatus 设置右上角状态文字（如 "Sound off"），空字符串表示不显示
func (r *Renderer) SetStatus(status string) {
	r.status = status
}

// cellProjection 视点坐标系 -> 字符格
type cellProjection struct {
	origin      utils.Vec3
	yaw         float64
	centerX     float64
	centerY     float64
	rowsPerUnit float64
	colsPerUnit float64
}

func newCellProjection(m *gameplay.Match, width, height int) cellProjection {
	view := m.View()
	rows := math.Max(float64(height-viewerRowsFromBottom-2), 1) / viewDepth
	return cellProjection{
		origin:      view.Origin,
		yaw:         view.Yaw,
		centerX:     float64(width) / 2,
		centerY:     float64(height - viewerRowsFromBottom),
		rowsPerUnit: rows,
		colsPerUnit: rows * cellAspect,
	}
}

func (p cellProjection) toCell(world utils.Vec3) (int, int) {
	local := utils.RotateY(world.Sub(p.origin), p.yaw)
	x := p.centerX + local.X*p.colsPerUnit
	y := p.centerY - local.Z*p.rowsPerUnit
	return int(math.Round(x)), int(math.Round(y))
}

// Draw 绘制一帧（不调用 Show）
func (r *Renderer) Draw(m *gameplay.Match) {
	r.screen.Clear()
	width, height := r.screen.Size()
	proj := newCellProjection(m, width, height)

	r.drawRing(m, proj)
	r.drawTargets(m, proj)
	r.drawAimGuide(m, proj)
	r.drawProjectiles(m, proj)

	vx, vy := proj.toCell(m.View().Origin)
	r.screen.SetContent(vx, vy, '^', nil, viewerStyle)

	r.drawHUD(m, width, height)
}

func (r *Renderer) drawRing(m *gameplay.Match, proj cellProjection) {
	ring := m.Ring()
	for i := 0; i < ring.SlotCount(); i++ {
		x, y := proj.toCell(ring.SlotPosition(i))
		r.screen.SetContent(x, y, '.', nil, ringStyle)
	}
}

func (r *Renderer) drawTargets(m *gameplay.Match, proj cellProjection) {
	em := m.EntityManager()
	for _, id := range m.Targets() {
		target, ok := ecs.GetComponent[*components.TargetComponent](em, id)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			continue
		}

		cx, cy := proj.toCell(transform.Position)
		rx := int(math.Ceil(target.Radius * proj.colsPerUnit))
		ry := int(math.Ceil(target.Radius * proj.rowsPerUnit))
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				nx, ny := float64(dx)/math.Max(float64(rx), 1), float64(dy)/math.Max(float64(ry), 1)
				if nx*nx+ny*ny <= 1 {
					r.screen.SetContent(cx+dx, cy+dy, '#', nil, targetStyle)
				}
			}
		}
		if target.Hits > 0 {
			r.drawText(cx, cy, fmt.Sprintf("%d", target.Hits), hudStyle)
		}
	}
}

func (r *Renderer) drawAimGuide(m *gameplay.Match, proj cellProjection) {
	hud := m.HUD()
	if hud == nil || !hud.AimVisible {
		return
	}
	x0, y0 := proj.toCell(hud.AimFrom)
	x1, y1 := proj.toCell(hud.AimTo)
	steps := max(abs(x1-x0), abs(y1-y0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := int(math.Round(utils.Lerp(float64(x0), float64(x1), t)))
		y := int(math.Round(utils.Lerp(float64(y0), float64(y1), t)))
		r.screen.SetContent(x, y, ':', nil, aimStyle)
	}
}

func (r *Renderer) drawProjectiles(m *gameplay.Match, proj cellProjection) {
	hud := m.HUD()
	if hud == nil {
		return
	}
	maxScale := m.Config().Ring.MaxScale
	for _, p := range hud.Projectiles() {
		if p.Scale <= 0 {
			continue
		}
		style, ok := kindStyles[p.Kind]
		if !ok {
			style = defaultKindStyle
		}
		x, y := proj.toCell(p.Position)
		r.screen.SetContent(x, y, projectileRune(p.Kind, p.Scale, maxScale), nil, style)
	}
}

// projectileRune 种类首字母；未长满时小写
func projectileRune(kind string, scale, maxScale float64) rune {
	ch := 'j'
	for _, c := range kind {
		ch = unicode.ToLower(c)
		break
	}
	if scale >= maxScale {
		return unicode.ToUpper(ch)
	}
	return ch
}

func (r *Renderer) drawHUD(m *gameplay.Match, width, height int) {
	hud := m.HUD()
	if hud == nil {
		return
	}

	r.drawText(1, 0, hud.ScoreText, hudStyle)
	if hud.TimerVisible {
		r.drawText(1, 1, hud.TimeText, hudStyle)
	}
	if r.status != "" {
		r.drawText(width-len(r.status)-1, 0, r.status, hudStyle)
	}

	if hud.InstructionsVisible {
		base := height - len(instructionLines)
		for i, line := range instructionLines {
			r.drawText(1, base+i, line, hudStyle)
		}
	}
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
