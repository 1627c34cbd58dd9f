//go:build !mobile

package utils

import "testing"

func TestIsMobileDesktop(t *testing.T) {
	t.Setenv(MobileEmulateEnv, "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

func TestIsMobileEmulated(t *testing.T) {
	t.Setenv(MobileEmulateEnv, "1")
	if !IsMobile() {
		t.Error("IsMobile() should return true when emulation is enabled")
	}
}
