package engine

import "testing"

type unloadCounter struct {
	BaseComponent
	unloaded *int
}

func (u *unloadCounter) Unload() { *u.unloaded++ }

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Connectors")
	obj := NewGameObject("Pointer")

	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != obj {
		t.Fatalf("GameObject not added to scene")
	}
	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
}

func TestSceneUIDLookup(t *testing.T) {
	scene := NewScene("Connectors")
	obj := NewGameObject("Connector_0")
	scene.AddGameObject(obj)

	if found := scene.FindByUID(obj.UID); found != obj {
		t.Errorf("FindByUID failed: expected %v, got %v", obj, found)
	}
	if scene.FindByUID(1 << 40) != nil {
		t.Error("FindByUID should return nil for non-existent UID")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Connectors")
	obj1 := NewGameObject("Connector_0")
	obj2 := NewGameObject("Connector_1")
	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	scene.RemoveGameObject(obj1)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != obj2 {
		t.Fatalf("Wrong GameObject removed")
	}
	if scene.FindByUID(obj1.UID) != nil {
		t.Error("Removed GameObject still in UID map")
	}
	if scene.FindByUID(obj2.UID) != obj2 {
		t.Error("Remaining GameObject not in UID map")
	}
	if obj1.Scene != nil {
		t.Error("Removed GameObject still points at the scene")
	}
}

func TestSceneFindByNameAndTag(t *testing.T) {
	scene := NewScene("Connectors")
	a := NewGameObject("Connector_0")
	b := NewGameObject("Connector_1")
	p := NewGameObject("Pointer")
	a.Tags = []string{"connector", "accent"}
	b.Tags = []string{"connector"}
	p.Tags = []string{"pointer"}
	scene.AddGameObject(a)
	scene.AddGameObject(b)
	scene.AddGameObject(p)

	if scene.FindByName("Pointer") != p {
		t.Error("FindByName failed")
	}
	if scene.FindByName("Missing") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}
	if got := len(scene.FindByTag("connector")); got != 2 {
		t.Errorf("Expected 2 connectors, got %d", got)
	}
	if got := len(scene.FindByTag("nonexistent")); got != 0 {
		t.Errorf("Expected no matches, got %d", got)
	}
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := NewScene("Connectors")
	parent := NewGameObject("Environment")
	child := NewGameObject("Lightformer_0")
	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	parent.AddChild(child)

	scene.RemoveGameObject(parent)

	if len(scene.GameObjects) != 0 {
		t.Errorf("Expected 0 GameObjects, got %d", len(scene.GameObjects))
	}
	if scene.FindByUID(parent.UID) != nil || scene.FindByUID(child.UID) != nil {
		t.Error("UID map not cleaned up")
	}
}

func TestSceneLazyUIDMap(t *testing.T) {
	scene := &Scene{Name: "Bare"}
	obj := NewGameObject("Connector_0")
	scene.AddGameObject(obj)

	if scene.FindByUID(obj.UID) != obj {
		t.Error("uidMap should be initialized on first AddGameObject")
	}
}

func TestSceneUnloadReleasesComponents(t *testing.T) {
	scene := NewScene("Connectors")
	count := 0
	for i := 0; i < 3; i++ {
		obj := NewGameObject("Connector")
		obj.AddComponent(&unloadCounter{unloaded: &count})
		scene.AddGameObject(obj)
	}

	scene.Unload()

	if count != 3 {
		t.Errorf("Expected 3 unloads, got %d", count)
	}
	if len(scene.GameObjects) != 0 {
		t.Errorf("Expected empty scene, got %d objects", len(scene.GameObjects))
	}
}
