// simulate 无头运行一局脚本化的水母投掷并打印结果
//
// 脚本：开始手势，然后每隔固定帧数向后拖拽松手一次，依次瞄准正前方、
// 左前方和右前方。用于在没有窗口和音频设备的环境下验证玩法。
//
// 用法：
//
//	go run ./cmd/simulate [-seed 42] [-tosses 12] [-length 60] [-verbose]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/spacejellies/pkg/config"
	"github.com/decker502/spacejellies/pkg/game"
	"github.com/decker502/spacejellies/pkg/gameplay"
	"github.com/decker502/spacejellies/pkg/input"
)

const (
	tickRate = 60
	// tossInterval 两次投掷之间的帧数，足够下一只水母长满并装填
	tossInterval = 4 * tickRate
	// pullPixels 每次向后拖拽的像素
	pullPixels = 60.0
	dragMoves  = 6
)

// aimOffsets 每次投掷的横向拖拽（像素），循环使用
var aimOffsets = []float64{0, 60, -60}

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "game config YAML (defaults to built-in values)")
	seed       = flag.Uint64("seed", 42, "random seed")
	tosses     = flag.Int("tosses", 12, "number of tosses in the script")
	length     = flag.Int("length", 0, "override session length in seconds (0 = config value)")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.ResolveGameConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
	if *length > 0 {
		cfg.Session.LengthSeconds = *length
	}

	source := buildScript(*tosses)
	hud := game.NewHUDState()
	match := gameplay.NewMatch(gameplay.Options{
		Config:    cfg,
		Seed:      *seed,
		Source:    source,
		Presenter: hud,
	})

	// 会话结束后再多跑一秒，保证结束信号已发出
	maxTicks := (cfg.Session.LengthSeconds + 2) * tickRate
	ended := false
	for i := 0; i < maxTicks; i++ {
		match.Update(1.0 / tickRate)
		if match.Session().Phase() == game.SessionEnded {
			ended = true
			break
		}
	}

	fmt.Printf("seed:     %d\n", *seed)
	fmt.Printf("ticks:    %d\n", match.Ticks())
	fmt.Printf("tossed:   %d\n", match.Toss().Fired())
	fmt.Printf("hits:     %d\n", match.Flight().Hits())
	fmt.Printf("misses:   %d\n", match.Flight().Misses())
	fmt.Printf("ended:    %v\n", ended)
	fmt.Printf("%s\n", hud.ScoreText)
}

// buildScript 生成脚本：开始手势后每 tossInterval 帧投掷一次
func buildScript(n int) *input.ScriptedSource {
	source := input.NewScriptedSource(input.ScriptStep{Trigger: true})
	for i := 0; i < n; i++ {
		source.Idle(tossInterval)
		dx := aimOffsets[i%len(aimOffsets)]
		source.Append(input.Drag(0, 0, 0, dx, -pullPixels, dragMoves)...)
	}
	return source
}
