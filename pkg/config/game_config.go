package config

import (
	"fmt"
	"os"

	"github.com/decker502/spacejellies/pkg/utils"
	"gopkg.in/yaml.v3"
)

// GameConfig 水母投掷小游戏的全部可调参数
//
// 对应 data/game_config.yaml；缺省值见 DefaultGameConfig。
type GameConfig struct {
	Ring       RingConfig       `yaml:"ring"`       // 水母环
	Toss       TossConfig       `yaml:"toss"`       // 弹弓
	Projectile ProjectileConfig `yaml:"projectile"` // 水母（可投掷物）
	Session    SessionConfig    `yaml:"session"`    // 计时会话
	View       ViewConfig       `yaml:"view"`       // 视点
	Targets    []TargetConfig   `yaml:"targets"`    // 目标球
}

// RingConfig 水母环配置
type RingConfig struct {
	SlotCount      int        `yaml:"slotCount"`      // 槽位数量 N
	Radius         float64    `yaml:"radius"`         // 槽位到环心的距离
	Pivot          Vec3Config `yaml:"pivot"`          // 环心
	RotationSpeed  float64    `yaml:"rotationSpeed"`  // 旋转角速度（度/秒）
	GrowthDuration float64    `yaml:"growthDuration"` // 生长到满尺寸所需时间（秒）
	MaxScale       float64    `yaml:"maxScale"`       // 槽位中水母的最大缩放
}

// TossConfig 弹弓配置
type TossConfig struct {
	Anchor            Vec3Config `yaml:"anchor"`            // 弹弓锚点静止位置
	SwapSpeed         float64    `yaml:"swapSpeed"`         // 装填时水母飞向锚点的速度（单位/秒）
	SwapTime          float64    `yaml:"swapTime"`          // 装填时缩放/转向过渡时长（秒）
	ArriveEpsilon     float64    `yaml:"arriveEpsilon"`     // 视为到达锚点的距离阈值
	LoadedScale       float64    `yaml:"loadedScale"`       // 装填完成时的缩放
	LoadedYaw         float64    `yaml:"loadedYaw"`         // 装填完成时的朝向（度）
	Sensitivity       float64    `yaml:"sensitivity"`       // 触摸位移到锚点位移的比例
	ImpulseMultiplier float64    `yaml:"impulseMultiplier"` // 拉拽向量到冲量的比例
}

// ProjectileConfig 水母配置
type ProjectileConfig struct {
	Kinds         []string `yaml:"kinds"`         // 可生成的水母种类目录
	FlightSeconds int      `yaml:"flightSeconds"` // 飞行倒计时（秒）
	Radius        float64  `yaml:"radius"`        // 碰撞半径
}

// SessionConfig 计时会话配置
type SessionConfig struct {
	LengthSeconds int `yaml:"lengthSeconds"` // 一局时长（秒）
	HitScore      int `yaml:"hitScore"`      // 命中加分
	MissPenalty   int `yaml:"missPenalty"`   // 未命中扣分
}

// ViewConfig 视点配置
type ViewConfig struct {
	Origin   Vec3Config `yaml:"origin"`   // 视点位置
	Yaw      float64    `yaml:"yaw"`      // 初始水平朝向（度，0 = +Z 方向）
	TurnRate float64    `yaml:"turnRate"` // 键盘转向速度（度/秒）
}

// TargetConfig 目标球配置
type TargetConfig struct {
	Position Vec3Config `yaml:"position"`
	Radius   float64    `yaml:"radius"`
}

// Vec3Config YAML 中的三维坐标
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 转换为运行时使用的向量类型
func (v Vec3Config) Vec3() utils.Vec3 {
	return utils.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// DefaultGameConfig 返回内置的默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Ring: RingConfig{
			SlotCount:      7,
			Radius:         1.5,
			RotationSpeed:  15.0, // 60 帧下每帧 0.25 度
			GrowthDuration: 2.0,
			MaxScale:       0.25,
		},
		Toss: TossConfig{
			Anchor:            Vec3Config{X: 0, Y: -0.2, Z: 0.5},
			SwapSpeed:         5.0,
			SwapTime:          1.0,
			ArriveEpsilon:     0.1,
			LoadedScale:       1.0,
			LoadedYaw:         180.0,
			Sensitivity:       0.01,
			ImpulseMultiplier: 5.0,
		},
		Projectile: ProjectileConfig{
			Kinds:         []string{"blue", "pink", "green"},
			FlightSeconds: 10,
			Radius:        0.1,
		},
		Session: SessionConfig{
			LengthSeconds: 120,
			HitScore:      100,
			MissPenalty:   10,
		},
		View: ViewConfig{
			TurnRate: 90.0,
		},
		Targets: []TargetConfig{
			{Position: Vec3Config{X: 0, Y: 0, Z: 6}, Radius: 0.8},
			{Position: Vec3Config{X: -4, Y: 0, Z: 4}, Radius: 0.6},
			{Position: Vec3Config{X: 4, Y: 0, Z: 4}, Radius: 0.6},
		},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 数据
// 文件中未出现的字段保持默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := DefaultGameConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(config); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return config, nil
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(config *GameConfig) error {
	// 环
	if config.Ring.SlotCount < 1 {
		return fmt.Errorf("ring.slotCount must be >= 1, got %d", config.Ring.SlotCount)
	}
	if config.Ring.Radius <= 0 {
		return fmt.Errorf("ring.radius must be > 0, got %v", config.Ring.Radius)
	}
	if config.Ring.GrowthDuration <= 0 {
		return fmt.Errorf("ring.growthDuration must be > 0, got %v", config.Ring.GrowthDuration)
	}
	if config.Ring.MaxScale <= 0 {
		return fmt.Errorf("ring.maxScale must be > 0, got %v", config.Ring.MaxScale)
	}

	// 弹弓
	if config.Toss.SwapSpeed <= 0 {
		return fmt.Errorf("toss.swapSpeed must be > 0, got %v", config.Toss.SwapSpeed)
	}
	if config.Toss.SwapTime <= 0 {
		return fmt.Errorf("toss.swapTime must be > 0, got %v", config.Toss.SwapTime)
	}
	if config.Toss.ArriveEpsilon <= 0 {
		return fmt.Errorf("toss.arriveEpsilon must be > 0, got %v", config.Toss.ArriveEpsilon)
	}

	// 水母
	if len(config.Projectile.Kinds) == 0 {
		return fmt.Errorf("projectile.kinds cannot be empty")
	}
	for i, kind := range config.Projectile.Kinds {
		if kind == "" {
			return fmt.Errorf("projectile.kinds[%d] cannot be empty", i)
		}
	}
	if config.Projectile.FlightSeconds < 1 {
		return fmt.Errorf("projectile.flightSeconds must be >= 1, got %d", config.Projectile.FlightSeconds)
	}

	// 会话
	if config.Session.LengthSeconds < 1 {
		return fmt.Errorf("session.lengthSeconds must be >= 1, got %d", config.Session.LengthSeconds)
	}

	for i, target := range config.Targets {
		if target.Radius <= 0 {
			return fmt.Errorf("targets[%d].radius must be > 0, got %v", i, target.Radius)
		}
	}

	return nil
}
