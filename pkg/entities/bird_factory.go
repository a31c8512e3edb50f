package entities

import (
	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// 小鸟配色
var (
	birdYellow = config.RGB{R: 0xFF, G: 0xD7, B: 0x00}
	birdBelly  = config.RGB{R: 0xFF, G: 0xF5, B: 0x9D}
	birdWing   = config.RGB{R: 0xFB, G: 0xC0, B: 0x2D}
	birdBeak   = config.RGB{R: 0xFF, G: 0x6B, B: 0x6B}
	birdEye    = config.RGB{}
	birdPupil  = config.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
)

// birdPart 小鸟部件在身体节点下的摆放
type birdPart struct {
	shape    components.BirdPartShape
	offset   utils.Vec3
	radius   float64
	color    config.RGB
	wingSide float64
}

// birdParts 小鸟由若干面向镜头的圆形部件组成
// 身体节点局部坐标中 +z 朝向镜头
var birdParts = []birdPart{
	{shape: components.BirdPartTail, offset: utils.V3(0, 0.05, -0.25), radius: 0.12, color: birdWing},
	{shape: components.BirdPartWing, offset: utils.V3(-0.32, 0, 0), radius: 0.15, color: birdWing, wingSide: -1},
	{shape: components.BirdPartWing, offset: utils.V3(0.32, 0, 0), radius: 0.15, color: birdWing, wingSide: 1},
	{shape: components.BirdPartBody, offset: utils.V3(0, 0, 0), radius: 0.3, color: birdYellow},
	{shape: components.BirdPartBelly, offset: utils.V3(0, -0.08, 0.18), radius: 0.18, color: birdBelly},
	{shape: components.BirdPartEye, offset: utils.V3(-0.1, 0.1, 0.22), radius: 0.05, color: birdEye},
	{shape: components.BirdPartEye, offset: utils.V3(0.1, 0.1, 0.22), radius: 0.05, color: birdEye},
	{shape: components.BirdPartPupil, offset: utils.V3(-0.09, 0.11, 0.26), radius: 0.018, color: birdPupil},
	{shape: components.BirdPartPupil, offset: utils.V3(0.11, 0.11, 0.26), radius: 0.018, color: birdPupil},
	{shape: components.BirdPartBeak, offset: utils.V3(0, 0, 0.25), radius: 0.08, color: birdBeak},
}

// birdBubbleOffset "Tweet!" 气泡相对小鸟根节点的位置
var birdBubbleOffset = utils.V3(0.5, 0.5, 0)

// birdBubbleSize 气泡文字高度（世界单位）
const birdBubbleSize = 0.25

// NewBirdEntity 创建小鸟助手
//
// 小鸟根节点挂在镜头节点下，随镜头移动：
//   - 身体节点：上下浮动，所有部件挂在它下面
//   - 气泡节点：说话时显示 "Tweet!"
//
// 返回：
//   - 小鸟根实体ID（带 BirdComponent）
func NewBirdEntity(em *ecs.EntityManager, camera ecs.EntityID, cfg config.BirdConfig) ecs.EntityID {
	offset := utils.V3(cfg.Offset[0], cfg.Offset[1], cfg.Offset[2])

	root := em.CreateEntity()
	ecs.AddComponent(em, root, components.NewChildTransform(camera, offset))

	body := em.CreateEntity()
	ecs.AddComponent(em, body, components.NewChildTransform(root, utils.Vec3{}))

	for _, p := range birdParts {
		part := em.CreateEntity()
		ecs.AddComponent(em, part, components.NewChildTransform(body, p.offset))
		ecs.AddComponent(em, part, &components.BirdPartComponent{
			Shape:    p.shape,
			Radius:   p.radius,
			Color:    p.color,
			WingSide: p.wingSide,
		})
	}

	bubble := em.CreateEntity()
	bubbleNode := components.NewChildTransform(root, birdBubbleOffset)
	bubbleNode.Visible = false
	ecs.AddComponent(em, bubble, bubbleNode)
	ecs.AddComponent(em, bubble, &components.LabelComponent{
		Kind:  components.LabelBubble,
		Text:  "Tweet!",
		Size:  birdBubbleSize,
		Color: config.RGB{R: 0x1F, G: 0x29, B: 0x37},
	})

	ecs.AddComponent(em, root, &components.BirdComponent{
		BobAmplitude:  cfg.BobAmplitude,
		BobSpeed:      cfg.BobSpeed,
		FlapAmplitude: cfg.FlapAmplitude,
		FlapSpeed:     cfg.FlapSpeed,
		Body:          body,
		Bubble:        bubble,
	})

	logging.L().Debugf("[BirdFactory] bird created: root=%d body=%d parts=%d", root, body, len(birdParts))
	return root
}
