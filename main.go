package main

import (
	"flag"
	"log"

	"github.com/decker502/spacejellies/pkg/app"
	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	configPath := flag.String("config", "", "game config YAML (defaults to the embedded data/game_config.yaml)")
	seed := flag.Uint64("seed", 0, "random seed (0 = saved setting or current time)")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Space Jellies")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
