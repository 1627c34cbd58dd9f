package utils

import (
	"math/rand/v2"
	"time"
)

// PRNG 可注入的随机数源
// 整局游戏共享同一个实例，固定种子时结果可复现
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG 创建随机数源；seed 为 0 时使用当前时间
func NewPRNG(seed uint64) *PRNG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &PRNG{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN 返回 [0, n) 范围内的随机整数；n <= 0 时返回 0
func (p *PRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return p.rng.IntN(n)
}

// Float64 返回 [0.0, 1.0) 范围内的随机浮点数
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}
