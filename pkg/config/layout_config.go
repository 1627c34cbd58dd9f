package config

// 布局配置常量
// 本文件定义了窗口尺寸以及俯视调试视图的投影参数

const (
	// GameWindowWidth 窗口宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 窗口高度（像素）
	GameWindowHeight = 600

	// WorldPixelsPerUnit 俯视图中一个世界单位对应的像素数
	WorldPixelsPerUnit = 50.0

	// ViewCenterX 俯视图中视点（玩家）所在的屏幕X坐标
	ViewCenterX = GameWindowWidth / 2

	// ViewCenterY 俯视图中视点（玩家）所在的屏幕Y坐标
	// 玩家位于屏幕偏下的位置，前方（+Z）朝屏幕上方
	ViewCenterY = GameWindowHeight * 3 / 4

	// HUDMarginX HUD 文本左边距
	HUDMarginX = 16

	// HUDMarginY HUD 文本上边距
	HUDMarginY = 16

	// HUDLineHeight HUD 文本行高
	HUDLineHeight = 20
)
