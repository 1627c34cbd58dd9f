package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// scoreFileName 成绩文件名
const scoreFileName = "scores.yaml"

// ScoreRecord 历史成绩
type ScoreRecord struct {
	BestScore      int       `yaml:"bestScore"`      // 最高分
	LastScore      int       `yaml:"lastScore"`      // 上一局得分
	SessionsPlayed int       `yaml:"sessionsPlayed"` // 已完成的局数
	LastPlayedAt   time.Time `yaml:"lastPlayedAt"`   // 上一局结束时间
}

// ScoreBook 成绩簿
//
// 职责：
//   - 在每局结束时记录得分和最高分
//   - 持久化到本地 YAML 文件
//
// saveDir 为空时只保存在内存中（移动端、无头运行）。
// 实现 SessionListener，由会话时钟在结束时通知。
type ScoreBook struct {
	path   string
	record ScoreRecord
	now    func() time.Time
}

// NewScoreBook 创建成绩簿并加载已有记录
//
// 参数：
//   - saveDir: 成绩文件目录；为空时不持久化
//
// 返回：
//   - error: 目录无法创建或已有文件损坏时返回错误
func NewScoreBook(saveDir string) (*ScoreBook, error) {
	book := &ScoreBook{now: time.Now}
	if saveDir == "" {
		return book, nil
	}

	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create score directory: %w", err)
	}
	book.path = filepath.Join(saveDir, scoreFileName)

	if err := book.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	return book, nil
}

// DefaultScoreDir 用户配置目录下的应用目录；无法确定时返回空字符串
func DefaultScoreDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, StorageAppName)
}

// Load 从文件加载成绩（文件不存在时返回 os.ErrNotExist）
func (b *ScoreBook) Load() error {
	if b.path == "" {
		return nil
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		return err
	}

	var record ScoreRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to parse score file: %w", err)
	}
	b.record = record
	return nil
}

// Save 写入文件；不持久化时什么都不做
func (b *ScoreBook) Save() error {
	if b.path == "" {
		return nil
	}

	data, err := yaml.Marshal(&b.record)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write score file: %w", err)
	}
	return nil
}

// Submit 记录一局得分，返回是否刷新了最高分
// 首局的得分即使为负也作为最高分
func (b *ScoreBook) Submit(score int) bool {
	first := b.record.SessionsPlayed == 0
	b.record.SessionsPlayed++
	b.record.LastScore = score
	b.record.LastPlayedAt = b.now()

	if first || score > b.record.BestScore {
		b.record.BestScore = score
		return true
	}
	return false
}

// Record 当前成绩副本
func (b *ScoreBook) Record() ScoreRecord {
	return b.record
}

// BestScore 最高分；尚无记录时 ok 为 false
func (b *ScoreBook) BestScore() (int, bool) {
	return b.record.BestScore, b.record.SessionsPlayed > 0
}

// OnSessionStart 实现 SessionListener
func (b *ScoreBook) OnSessionStart() {}

// OnSessionEnd 实现 SessionListener：记录并保存
func (b *ScoreBook) OnSessionEnd(finalScore int) {
	if b.Submit(finalScore) {
		log.Printf("[ScoreBook] New best score: %d", finalScore)
	}
	if err := b.Save(); err != nil {
		log.Printf("[ScoreBook] Warning: Failed to save scores: %v", err)
	}
}

// FormatBest 最高分文字；尚无记录时返回空字符串
func FormatBest(book *ScoreBook) string {
	if book == nil {
		return ""
	}
	best, ok := book.BestScore()
	if !ok {
		return ""
	}
	return fmt.Sprintf("Best: %d", best)
}
