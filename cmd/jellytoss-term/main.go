// jellytoss-term 在终端中运行水母投掷
//
// 用法：
//
//	go run ./cmd/jellytoss-term [-config game_config.yaml] [-seed N] [-mute] [-log jellytoss.log]
//
// 鼠标左键拖拽或 WASD 拉弓，f 松手；Enter/空格开始；m 开关声音；q/Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/game"
	"github.com/decker502/spacejellies/pkg/gameplay"
	"github.com/decker502/spacejellies/pkg/terminal"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = time.Second / 60
	// maxFrameDelta 终端卡顿时单帧最多推进的秒数
	maxFrameDelta = 0.1
)

var (
	configPath = flag.String("config", "", "game config YAML (defaults to built-in values)")
	seed       = flag.Uint64("seed", 0, "random seed (0 = saved setting or current time)")
	mute       = flag.Bool("mute", false, "disable sound cues")
	logPath    = flag.String("log", "", "write logs to this file (logs are discarded otherwise)")
)

func main() {
	flag.Parse()
	os.Exit(realMain())
}

// realMain 运行游戏并返回退出码；defer 在进程退出前执行完毕
func realMain() int {
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
		defer log.SetOutput(io.Discard)
	}

	score, err := run()
	if err != nil {
		log.Printf("[Main] Error: %v", err)
		fmt.Fprintf(os.Stderr, "jellytoss-term: %v\n", err)
		return 1
	}
	fmt.Printf("Final score: %d\n", score)
	return 0
}

func run() (int, error) {
	gameConfig, err := config.ResolveGameConfig(*configPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load game config: %w", err)
	}

	settings := game.OpenSettingsManager(game.StorageAppName)
	matchSeed := settings.GetSettings().Seed
	if *seed != 0 {
		matchSeed = *seed
	}

	cues := terminal.NewBeepCuePlayer(settings)
	if !*mute {
		if err := cues.Initialize(); err != nil {
			log.Printf("[Main] Warning: audio unavailable, continuing without sound: %v", err)
		}
	}
	defer cues.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return 0, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return 0, fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	scores, err := game.NewScoreBook(game.DefaultScoreDir())
	if err != nil {
		log.Printf("[Main] Warning: scores will not persist: %v", err)
		scores, _ = game.NewScoreBook("")
	}

	source := terminal.NewSource()
	match := gameplay.NewMatch(gameplay.Options{
		Config: gameConfig,
		Seed:   matchSeed,
		Source: source,
		Cues:   cues,
	})
	match.Session().AddListener(scores)
	renderer := terminal.NewRenderer(screen)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if terminal.IsQuitKey(ev) {
					return match.Session().Score(), nil
				}
				if ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M') {
					toggleSound(settings)
					continue
				}
			case *tcell.EventResize:
				screen.Sync()
				continue
			}
			source.Feed(ev)

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxFrameDelta)
			last = now

			match.Update(dt)
			renderer.SetStatus(statusText(settings, scores))
			renderer.Draw(match)
			screen.Show()
		}
	}
}

func toggleSound(settings *game.SettingsManager) {
	settings.SetSoundEnabled(!settings.GetSettings().SoundEnabled)
	if err := settings.Save(); err != nil {
		log.Printf("[Main] Warning: Failed to save settings: %v", err)
	}
}

func statusText(settings *game.SettingsManager, scores *game.ScoreBook) string {
	parts := make([]string, 0, 2)
	if best := game.FormatBest(scores); best != "" {
		parts = append(parts, best)
	}
	if !settings.GetSettings().SoundEnabled {
		parts = append(parts, "Sound off")
	}
	return strings.Join(parts, "  ")
}
