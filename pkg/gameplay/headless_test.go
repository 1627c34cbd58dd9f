package gameplay

import (
	"go/build"
	"path/filepath"
	"strings"
	"testing"
)

const (
	modulePath = "github.com/decker502/spacejellies"
	// moduleRoot 相对本包目录的模块根目录
	moduleRoot = "../.."
	ebitenPath = "github.com/hajimehoshi/ebiten"
)

// localImports 递归收集模块内包（非测试文件）的直接依赖，返回 包 -> 依赖列表
func localImports(t *testing.T, root string) map[string][]string {
	t.Helper()
	graph := make(map[string][]string)
	var walk func(importPath string)
	walk = func(importPath string) {
		if _, ok := graph[importPath]; ok {
			return
		}
		dir := filepath.Join(moduleRoot, strings.TrimPrefix(importPath, modulePath))
		pkg, err := build.ImportDir(dir, 0)
		if err != nil {
			t.Fatalf("ImportDir(%s): %v", dir, err)
		}
		graph[importPath] = pkg.Imports
		for _, imp := range pkg.Imports {
			if strings.HasPrefix(imp, modulePath+"/") {
				walk(imp)
			}
		}
	}
	walk(root)
	return graph
}

// 玩法核心、终端前端和无头模拟不应链接 ebiten（及其 cgo 图形依赖）
func TestHeadlessPackagesDoNotImportEbiten(t *testing.T) {
	roots := []string{
		modulePath + "/pkg/gameplay",
		modulePath + "/pkg/terminal",
		modulePath + "/cmd/simulate",
		modulePath + "/cmd/jellytoss-term",
	}

	for _, root := range roots {
		t.Run(strings.TrimPrefix(root, modulePath+"/"), func(t *testing.T) {
			for pkg, imports := range localImports(t, root) {
				for _, imp := range imports {
					if strings.HasPrefix(imp, ebitenPath) {
						t.Errorf("%s imports %s", pkg, imp)
					}
				}
			}
		})
	}
}
