package systems

import (
	"math"
	"testing"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// TestSceneGraphSystem_ChildFollowsParent 子节点位置随父节点平移和旋转
func TestSceneGraphSystem_ChildFollowsParent(t *testing.T) {
	em := ecs.NewEntityManager()
	sgs := NewSceneGraphSystem(em)

	root := em.CreateEntity()
	rootNode := components.NewTransform(utils.V3(10, 0, 0))
	ecs.AddComponent(em, root, rootNode)

	child := em.CreateEntity()
	childNode := components.NewChildTransform(root, utils.V3(1, 2, 0))
	ecs.AddComponent(em, child, childNode)

	sgs.Update()
	if !childNode.WorldPosition.ApproxEqual(utils.V3(11, 2, 0), 1e-9) {
		t.Errorf("child world = %+v, want (11,2,0)", childNode.WorldPosition)
	}

	// 父节点看向 +X：局部 -Z 前方变成世界 +X，局部 +X 右侧变成世界 +Z
	rootNode.LocalBasis = utils.LookBasis(utils.Vec3{}, utils.V3(1, 0, 0), utils.WorldUp)
	childNode.LocalPosition = utils.V3(1, 0, -2)
	sgs.Update()

	want := utils.V3(12, 0, 1)
	if !childNode.WorldPosition.ApproxEqual(want, 1e-9) {
		t.Errorf("rotated child world = %+v, want %+v", childNode.WorldPosition, want)
	}
}

// TestSceneGraphSystem_Grandchild 多级节点与缩放
func TestSceneGraphSystem_Grandchild(t *testing.T) {
	em := ecs.NewEntityManager()
	sgs := NewSceneGraphSystem(em)

	// 孙节点先于祖先创建，ID 更小，解析顺序不能依赖 ID
	leaf := em.CreateEntity()

	root := em.CreateEntity()
	rootNode := components.NewTransform(utils.V3(0, 5, 0))
	rootNode.LocalScale = 2
	ecs.AddComponent(em, root, rootNode)

	mid := em.CreateEntity()
	ecs.AddComponent(em, mid, components.NewChildTransform(root, utils.V3(1, 0, 0)))

	leafNode := components.NewChildTransform(mid, utils.V3(0, 1, 0))
	ecs.AddComponent(em, leaf, leafNode)

	sgs.Update()

	if !leafNode.WorldPosition.ApproxEqual(utils.V3(2, 7, 0), 1e-9) {
		t.Errorf("leaf world = %+v, want (2,7,0)", leafNode.WorldPosition)
	}
	if leafNode.WorldScale != 2 {
		t.Errorf("leaf scale = %v, want 2", leafNode.WorldScale)
	}
}

// TestSceneGraphSystem_Visibility 隐藏父节点时整棵子树不可见
func TestSceneGraphSystem_Visibility(t *testing.T) {
	em := ecs.NewEntityManager()
	sgs := NewSceneGraphSystem(em)

	root := em.CreateEntity()
	rootNode := components.NewTransform(utils.Vec3{})
	ecs.AddComponent(em, root, rootNode)

	child := em.CreateEntity()
	childNode := components.NewChildTransform(root, utils.Vec3{})
	ecs.AddComponent(em, child, childNode)

	sgs.Update()
	if !childNode.WorldVisible {
		t.Fatal("child should be visible")
	}

	rootNode.Visible = false
	sgs.Update()
	if childNode.WorldVisible {
		t.Error("child of hidden node should be hidden")
	}

	rootNode.Visible = true
	childNode.Visible = false
	sgs.Update()
	if childNode.WorldVisible || !rootNode.WorldVisible {
		t.Error("hiding a child must not affect its parent")
	}
}

// TestSceneGraphSystem_Cycle 父链成环时不会无限递归
func TestSceneGraphSystem_Cycle(t *testing.T) {
	em := ecs.NewEntityManager()
	sgs := NewSceneGraphSystem(em)

	a := em.CreateEntity()
	b := em.CreateEntity()
	ecs.AddComponent(em, a, components.NewChildTransform(b, utils.V3(1, 0, 0)))
	ecs.AddComponent(em, b, components.NewChildTransform(a, utils.V3(1, 0, 0)))

	sgs.Update()

	node, _ := ecs.GetComponent[*components.TransformComponent](em, a)
	if math.IsNaN(node.WorldPosition.X) {
		t.Error("world position should stay finite")
	}
}
