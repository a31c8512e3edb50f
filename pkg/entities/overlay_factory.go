package entities

import (
	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/ecs"
)

// AppTitle 标题栏文字
const AppTitle = "AlphaCoaster"

// NewOverlayEntity 创建界面覆盖层实体，初始显示开场面板
func NewOverlayEntity(em *ecs.EntityManager) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.OverlayComponent{
		Title: AppTitle,
		Panel: components.PanelIntro,
	})
	return entity
}
