//go:build !mobile

// Package mobile 的桌面端占位：真正的绑定入口在 mobile.go，仅 -tags mobile 时编译。
package mobile

// Dummy 让包在普通构建中也有导出符号
func Dummy() {}
