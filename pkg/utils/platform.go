//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 "1" 时桌面端按移动端处理（本地调试触摸提示用）
const MobileEmulateEnv = "JELLIES_MOBILE_EMULATE"

// IsMobile 桌面端编译时返回 false，除非设置了 MobileEmulateEnv
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
