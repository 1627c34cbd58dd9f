package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/spacejellies/pkg/components"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/ecs"
	"github.com/decker502/spacejellies/pkg/game"
	"github.com/decker502/spacejellies/pkg/gameplay"
	"github.com/decker502/spacejellies/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.RGBA{R: 8, G: 10, B: 32, A: 255}
	ringColor       = color.RGBA{R: 70, G: 80, B: 140, A: 255}
	targetColor     = color.RGBA{R: 230, G: 190, B: 70, A: 255}
	aimColor        = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	viewerColor     = color.RGBA{R: 120, G: 220, B: 120, A: 255}
	hudColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// kindColors 水母种类对应的颜色，未知种类使用 defaultKindColor
	kindColors = map[string]color.RGBA{
		"blue":  {R: 80, G: 160, B: 255, A: 255},
		"pink":  {R: 255, G: 120, B: 200, A: 255},
		"green": {R: 110, G: 230, B: 140, A: 255},
	}
	defaultKindColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// 会话未进行时显示的说明；移动端没有键盘
var (
	desktopInstructions = []string{
		"Press Enter (or tap with three fingers) to start",
		"Drag back and release to toss a jelly at the orbs",
		"Left/Right: turn   M: sound on/off   F11: fullscreen",
	}
	mobileInstructions = []string{
		"Tap with three fingers to start",
		"Drag back and release to toss a jelly at the orbs",
	}
)

// instructionLines 按平台选择说明文字
func instructionLines() []string {
	if utils.IsMobile() {
		return mobileInstructions
	}
	return desktopInstructions
}

// TossScene 水母投掷的俯视场景
//
// 玩家位于屏幕偏下位置，视线朝上；环、目标球和水母按世界坐标投影绘制。
type TossScene struct {
	match    *gameplay.Match
	settings *game.SettingsManager
	scores   *game.ScoreBook
	face     text.Face
}

// NewTossScene 创建场景
// settings 可为 nil（此时声音开关不可用）；scores 可为 nil（不显示最高分）
func NewTossScene(match *gameplay.Match, settings *game.SettingsManager, scores *game.ScoreBook) *TossScene {
	return &TossScene{
		match:    match,
		settings: settings,
		scores:   scores,
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
}

// Update 处理场景级按键并推进一帧游戏
func (s *TossScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && s.settings != nil {
		enabled := !s.settings.GetSettings().SoundEnabled
		s.settings.SetSoundEnabled(enabled)
		if err := s.settings.Save(); err != nil {
			log.Printf("[TossScene] Warning: Failed to save settings: %v", err)
		}
	}

	s.match.Update(deltaTime)
}

// Draw 绘制场景
func (s *TossScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	view := s.match.View()
	proj := NewProjection(view.Origin, view.Yaw)

	s.drawRing(screen, proj)
	s.drawTargets(screen, proj)
	s.drawProjectiles(screen, proj)
	s.drawAimGuide(screen, proj)

	vx, vy := proj.ToScreen(view.Origin)
	vector.DrawFilledCircle(screen, float32(vx), float32(vy), 5, viewerColor, true)

	s.drawHUD(screen)
}

func (s *TossScene) drawRing(screen *ebiten.Image, proj Projection) {
	ring := s.match.Ring().Ring()
	cx, cy := proj.ToScreen(ring.Pivot)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(proj.Length(ring.Radius)), 1, ringColor, true)

	for i := range ring.Slots {
		x, y := proj.ToScreen(s.match.Ring().SlotPosition(i))
		vector.StrokeCircle(screen, float32(x), float32(y), 4, ringColor, true)
	}
}

func (s *TossScene) drawTargets(screen *ebiten.Image, proj Projection) {
	em := s.match.EntityManager()
	for _, id := range s.match.Targets() {
		target, ok := ecs.GetComponent[*components.TargetComponent](em, id)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			continue
		}
		x, y := proj.ToScreen(transform.Position)
		r := float32(proj.Length(target.Radius))
		vector.DrawFilledCircle(screen, float32(x), float32(y), r, targetColor, true)
		if target.Hits > 0 {
			s.drawText(screen, fmt.Sprintf("%d", target.Hits), x-4, y-6)
		}
	}
}

func (s *TossScene) drawProjectiles(screen *ebiten.Image, proj Projection) {
	hud := s.match.HUD()
	if hud == nil {
		return
	}
	radius := s.match.Config().Projectile.Radius
	for _, p := range hud.Projectiles() {
		if p.Scale <= 0 {
			continue
		}
		clr, ok := kindColors[p.Kind]
		if !ok {
			clr = defaultKindColor
		}
		x, y := proj.ToScreen(p.Position)
		r := float32(proj.Length(radius*p.Scale)) + 2
		vector.DrawFilledCircle(screen, float32(x), float32(y), r, clr, true)
	}
}

func (s *TossScene) drawAimGuide(screen *ebiten.Image, proj Projection) {
	hud := s.match.HUD()
	if hud == nil || !hud.AimVisible {
		return
	}
	x0, y0 := proj.ToScreen(hud.AimFrom)
	x1, y1 := proj.ToScreen(hud.AimTo)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, aimColor, true)
}

func (s *TossScene) drawHUD(screen *ebiten.Image) {
	hud := s.match.HUD()
	if hud == nil {
		return
	}

	x := float64(config.HUDMarginX)
	y := float64(config.HUDMarginY)
	s.drawText(screen, hud.ScoreText, x, y)
	if hud.TimerVisible {
		s.drawText(screen, hud.TimeText, x, y+config.HUDLineHeight)
	}

	if hud.InstructionsVisible {
		lines := instructionLines()
		base := float64(config.GameWindowHeight) - float64(len(lines)+1)*config.HUDLineHeight
		for i, line := range lines {
			s.drawText(screen, line, x, base+float64(i)*config.HUDLineHeight)
		}
	}

	if best := game.FormatBest(s.scores); best != "" {
		s.drawText(screen, best, x, y+2*config.HUDLineHeight)
	}

	if s.settings != nil && !s.settings.GetSettings().SoundEnabled {
		s.drawText(screen, "Sound off", float64(config.GameWindowWidth-100), y)
	}
}

func (s *TossScene) drawText(screen *ebiten.Image, str string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, str, s.face, op)
}
