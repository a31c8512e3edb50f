package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}
}

func TestAddComponentMethodMatchesGeneric(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 方法版按动态类型登记，泛型版按静态类型查询，两者对指针组件一致
	em.AddComponent(id, &testVelocityComponent{VX: 1})
	if !HasComponent[*testVelocityComponent](em, id) {
		t.Error("component added via method should be visible to generic query")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component before adding")
	}
	AddComponent(em, id, &testPositionComponent{})
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Should have component after adding")
	}
	RemoveComponent[*testPositionComponent](em, id)
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component after removal")
	}
	em.AddComponent(id, &testPositionComponent{})
	em.RemoveComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("reflect-typed removal should work too")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 标记后清理前仍然存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()

	if em.Exists(id) {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Components should be removed with the entity")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	e1 := em.CreateEntity()
	AddComponent(em, e1, &testPositionComponent{})
	AddComponent(em, e1, &testVelocityComponent{})

	e2 := em.CreateEntity()
	AddComponent(em, e2, &testPositionComponent{})

	e3 := em.CreateEntity()
	AddComponent(em, e3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != e1 {
		t.Errorf("expected only entity %d, got %v", e1, both)
	}

	withPos := GetEntitiesWith1[*testPositionComponent](em)
	if !reflect.DeepEqual(withPos, []EntityID{e1, e2}) {
		t.Errorf("expected [%d %d] in ID order, got %v", e1, e2, withPos)
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
	}
	ids := GetEntitiesWith1[*testPositionComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("result not sorted at %d: %v", i, ids)
		}
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, 42, &testPositionComponent{})
	if em.EntityCount() != 0 {
		t.Error("adding a component to an unknown entity should not create it")
	}
}
