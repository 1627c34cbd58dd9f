// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/spacejellies/pkg/audio"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/game"
	"github.com/decker502/spacejellies/pkg/gameplay"
	"github.com/decker502/spacejellies/pkg/input/ebitensrc"
	"github.com/decker502/spacejellies/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部游戏配置文件；为空则使用内置配置
	ConfigPath string
	// Seed 随机种子；非 0 时覆盖设置中的种子
	Seed uint64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *scenes.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用内置配置前必须先调用 embedded.Init()；未初始化时退回默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.ResolveGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	// 设置存储：失败时降级为仅内存
	settingsManager := game.OpenSettingsManager(game.StorageAppName)
	settings := settingsManager.GetSettings()

	seed := settings.Seed
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}

	// 初始化音频上下文
	audioContext := ebitenaudio.NewContext(audio.SampleRate)
	audioManager := audio.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized")

	match := gameplay.NewMatch(gameplay.Options{
		Config: gameConfig,
		Seed:   seed,
		Source: ebitensrc.NewSource(),
		Cues:   audioManager,
	})

	scores, err := game.NewScoreBook(game.DefaultScoreDir())
	if err != nil {
		log.Printf("[App] Warning: scores will not persist: %v", err)
		scores, _ = game.NewScoreBook("")
	}
	match.Session().AddListener(scores)

	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewTossScene(match, settingsManager, scores))

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记住选择
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(!a.settingsManager.GetSettings().Fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
