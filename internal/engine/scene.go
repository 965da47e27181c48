package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
}

// RemoveGameObject removes g and every descendant of g.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range g.Children {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	g.Scene = nil
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// Unload releases component resources and empties the scene.
func (s *Scene) Unload() {
	for _, g := range s.GameObjects {
		for _, c := range g.Components() {
			if u, ok := c.(Unloader); ok {
				u.Unload()
			}
		}
	}
	s.GameObjects = s.GameObjects[:0]
	s.uidMap = make(map[uint64]*GameObject)
}
