package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager controls which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates a SceneManager with no active scene; use SwitchTo to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	log.Printf("[SceneManager] Switched scene to %T", scene)
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
