package assets

import (
	"fmt"
	"log"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var manager *Manager

// Manager caches GPU resources that several objects share.
type Manager struct {
	models  map[string]rl.Model
	shaders map[string]rl.Shader
}

func Init() {
	manager = &Manager{
		models:  make(map[string]rl.Model),
		shaders: make(map[string]rl.Shader),
	}
}

// LoadShader loads and caches a vertex/fragment shader pair. Missing files
// fall back to raylib's default shader.
func LoadShader(vsPath, fsPath string) (rl.Shader, error) {
	if manager == nil {
		Init()
	}

	key := vsPath + "|" + fsPath
	if shader, exists := manager.shaders[key]; exists {
		return shader, nil
	}

	for _, p := range []string{vsPath, fsPath} {
		if _, err := os.Stat(p); err != nil {
			return rl.Shader{}, fmt.Errorf("load shader: %w", err)
		}
	}

	shader := rl.LoadShader(vsPath, fsPath)
	if !rl.IsShaderValid(shader) {
		return rl.Shader{}, fmt.Errorf("load shader %s: compile failed", key)
	}
	log.Printf("Assets: loaded shader %s", key)
	manager.shaders[key] = shader
	return shader, nil
}

// TorusModel returns a cached torus with the given ring radius and tube
// radius.
func TorusModel(radius, tube float32, radialSegments, tubularSegments int) rl.Model {
	if manager == nil {
		Init()
	}

	key := fmt.Sprintf("torus:%g:%g:%d:%d", radius, tube, radialSegments, tubularSegments)
	if model, exists := manager.models[key]; exists {
		return model
	}

	// raylib's torus has ring radius size/2 and tube radius ratio*size/2
	mesh := rl.GenMeshTorus(tube/radius, 2*radius, radialSegments, tubularSegments)
	model := rl.LoadModelFromMesh(mesh)
	manager.models[key] = model
	return model
}

// SphereModel returns a cached unit sphere.
func SphereModel(segments int) rl.Model {
	if manager == nil {
		Init()
	}

	key := fmt.Sprintf("sphere:%d", segments)
	if model, exists := manager.models[key]; exists {
		return model
	}

	mesh := rl.GenMeshSphere(1, segments, segments)
	model := rl.LoadModelFromMesh(mesh)
	manager.models[key] = model
	return model
}

func Unload() {
	if manager == nil {
		return
	}

	for _, model := range manager.models {
		rl.UnloadModel(model)
	}
	for _, shader := range manager.shaders {
		rl.UnloadShader(shader)
	}

	manager.models = make(map[string]rl.Model)
	manager.shaders = make(map[string]rl.Shader)
}
