package config

import (
	"fmt"
	"log"

	"github.com/decker502/spacejellies/pkg/embedded"
)

// EmbeddedConfigPath 内置游戏配置在嵌入文件系统中的路径
const EmbeddedConfigPath = "data/game_config.yaml"

// ResolveGameConfig 按优先级加载游戏配置：外部文件 > 内置文件 > 默认值
//
// 使用内置文件前须先调用 embedded.Init()。
func ResolveGameConfig(path string) (*GameConfig, error) {
	if path != "" {
		log.Printf("[Config] Loading game config from %s", path)
		return LoadGameConfig(path)
	}

	if !embedded.IsInitialized() || !embedded.Exists(EmbeddedConfigPath) {
		log.Printf("[Config] Embedded config unavailable, using defaults")
		return DefaultGameConfig(), nil
	}

	data, err := embedded.ReadFile(EmbeddedConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	return ParseGameConfig(data)
}
