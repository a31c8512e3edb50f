package components

import (
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// TransformComponent 场景图节点
//
// Local* 是相对父节点的变换，World* 由 SceneGraphSystem 每帧解析。
// Parent 为 0 表示根节点。
type TransformComponent struct {
	Parent ecs.EntityID

	LocalPosition utils.Vec3
	LocalBasis    utils.Basis
	LocalScale    float64

	WorldPosition utils.Vec3
	WorldBasis    utils.Basis
	WorldScale    float64

	// Visible 为 false 时节点及其子节点都不绘制
	Visible bool
	// WorldVisible 解析后的可见性（包含祖先）
	WorldVisible bool
}

// NewTransform 创建位于 position 的根节点
func NewTransform(position utils.Vec3) *TransformComponent {
	return &TransformComponent{
		LocalPosition: position,
		LocalBasis:    utils.IdentityBasis(),
		LocalScale:    1,
		WorldPosition: position,
		WorldBasis:    utils.IdentityBasis(),
		WorldScale:    1,
		Visible:       true,
		WorldVisible:  true,
	}
}

// NewChildTransform 创建挂在 parent 下的节点
func NewChildTransform(parent ecs.EntityID, local utils.Vec3) *TransformComponent {
	t := NewTransform(local)
	t.Parent = parent
	return t
}
