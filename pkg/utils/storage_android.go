//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前创建 /data/data/{package}/saves 并确认可写
//
// gdata 在 Android 上使用应用私有目录，但不会预先创建子目录。
func EnsureStorageDir() error {
	pkg, err := androidPackageName()
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// androidPackageName 进程命令行即应用包名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name := string(bytes.TrimRight(bytes.Split(data, []byte{0})[0], "\n"))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
