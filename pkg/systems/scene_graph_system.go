package systems

import (
	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/ecs"
)

// SceneGraphSystem 解析场景图节点的世界变换
//
// 子节点的世界变换 = 父节点世界变换 ∘ 子节点局部变换，
// 可见性沿父链传递。每帧在所有写入局部变换的系统之后运行一次。
type SceneGraphSystem struct {
	entityManager *ecs.EntityManager

	// 单帧内已解析的节点
	resolved map[ecs.EntityID]bool
}

// NewSceneGraphSystem 创建场景图系统
func NewSceneGraphSystem(em *ecs.EntityManager) *SceneGraphSystem {
	return &SceneGraphSystem{
		entityManager: em,
		resolved:      make(map[ecs.EntityID]bool),
	}
}

// Update 解析所有节点
func (s *SceneGraphSystem) Update() {
	clear(s.resolved)
	for _, id := range ecs.GetEntitiesWith1[*components.TransformComponent](s.entityManager) {
		s.resolve(id, 0)
	}
}

// maxSceneDepth 父链最大深度，超过视为环
const maxSceneDepth = 32

func (s *SceneGraphSystem) resolve(id ecs.EntityID, depth int) *components.TransformComponent {
	node, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	if s.resolved[id] {
		return node
	}
	s.resolved[id] = true

	var parent *components.TransformComponent
	if node.Parent != 0 && node.Parent != id && depth < maxSceneDepth {
		parent = s.resolve(node.Parent, depth+1)
	}

	if parent == nil {
		node.WorldPosition = node.LocalPosition
		node.WorldBasis = node.LocalBasis
		node.WorldScale = node.LocalScale
		node.WorldVisible = node.Visible
		return node
	}

	offset := parent.WorldBasis.ToWorld(node.LocalPosition.Scale(parent.WorldScale))
	node.WorldPosition = parent.WorldPosition.Add(offset)
	node.WorldBasis = parent.WorldBasis.Compose(node.LocalBasis)
	node.WorldScale = parent.WorldScale * node.LocalScale
	node.WorldVisible = parent.WorldVisible && node.Visible
	return node
}
