package systems

import (
	"math"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// RideSystem 沿闭合轨道移动骑乘镜头
//
// 每帧根据当前站点索引计算目标进度，沿环路最短方向匀速前进，
// 进入到站阈值后吸附到目标并发出一次到站信号。
// 它是 RideCameraComponent.Progress 和镜头节点的唯一写入者。
type RideSystem struct {
	entityManager *ecs.EntityManager
	curve         *utils.ClosedCurve
	config        config.RideConfig
	stationCount  int
	cameraEntity  ecs.EntityID
}

// NewRideSystem 创建骑乘系统，同时创建镜头实体（场景图根节点）
func NewRideSystem(em *ecs.EntityManager, curve *utils.ClosedCurve, cfg config.RideConfig, stationCount int) *RideSystem {
	rs := &RideSystem{
		entityManager: em,
		curve:         curve,
		config:        cfg,
		stationCount:  stationCount,
	}

	rs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, rs.cameraEntity, &components.RideCameraComponent{
		Progress:     utils.WrapUnit(cfg.StartProgress),
		ArrivedIndex: -1,
		Up:           utils.WorldUp,
	})
	ecs.AddComponent(em, rs.cameraEntity, components.NewTransform(utils.Vec3{}))

	rs.updatePose()
	return rs
}

// CameraEntity 镜头实体 ID，小鸟等跟随镜头的节点挂在它下面
func (rs *RideSystem) CameraEntity() ecs.EntityID {
	return rs.cameraEntity
}

// Camera 镜头组件
func (rs *RideSystem) Camera() *components.RideCameraComponent {
	cam, _ := ecs.GetComponent[*components.RideCameraComponent](rs.entityManager, rs.cameraEntity)
	return cam
}

// Progress 当前进度 [0, 1)
func (rs *RideSystem) Progress() float64 {
	return rs.Camera().Progress
}

// TargetProgress 站点 index 在环路上的进度
func (rs *RideSystem) TargetProgress(index int) float64 {
	if rs.stationCount <= 0 {
		return 0
	}
	return utils.WrapUnit(float64(index) / float64(rs.stationCount))
}

// Update 推进一帧
// 返回值 arrived 为 true 表示本帧镜头到达 index 站点，每次进站只返回一次
func (rs *RideSystem) Update(dt float64, state game.GameState, index int) (arrivedIndex int, arrived bool) {
	cam := rs.Camera()
	if cam == nil {
		return 0, false
	}

	// 离开骑行状态后清除到站标记，下次进入骑行时可以重新到站
	if state != game.StateRiding {
		cam.ArrivedIndex = -1
	}

	target := rs.TargetProgress(index)
	dist := utils.WrapDistance(target, cam.Progress)
	cam.TargetIndex = index
	cam.Moving = false

	switch {
	case math.Abs(dist) > rs.config.ArrivalEpsilon:
		if state.CameraMoves() {
			step := math.Min(math.Abs(dist), rs.config.Speed*dt)
			cam.Progress = utils.WrapUnit(cam.Progress + utils.Sign(dist)*step)
			cam.Moving = true
		}
	case state == game.StateRiding:
		cam.Progress = target
		if cam.ArrivedIndex != index {
			cam.ArrivedIndex = index
			arrivedIndex, arrived = index, true
			logging.L().Debugf("[RideSystem] arrived at station %d (progress %.4f)", index, target)
		}
	}

	rs.updatePose()
	return arrivedIndex, arrived
}

// updatePose 根据进度计算镜头位姿并写入镜头节点
func (rs *RideSystem) updatePose() {
	cam := rs.Camera()
	if cam == nil || rs.curve == nil {
		return
	}

	eye, look, up := RidePose(rs.curve, cam.Progress, rs.config)
	cam.Eye, cam.LookAt, cam.Up = eye, look, up

	if node, ok := ecs.GetComponent[*components.TransformComponent](rs.entityManager, rs.cameraEntity); ok {
		basis := utils.LookBasis(eye, look, up)
		node.LocalPosition = eye
		node.LocalBasis = basis
		node.WorldPosition = eye
		node.WorldBasis = basis
	}
}

// RidePose 计算进度 u 处的镜头位置、注视点和向上方向
// 向上方向向轨道侧向轻微倾斜，转弯时有压弯感
func RidePose(curve *utils.ClosedCurve, u float64, cfg config.RideConfig) (eye, look, up utils.Vec3) {
	eye = curve.PointAt(u).Add(utils.V3(0, cfg.SeatHeight, 0))
	look = curve.PointAt(u + cfg.LookAhead).Add(utils.V3(0, cfg.LookHeight, 0))

	up = utils.WorldUp.Add(curve.SideVector(u).Scale(cfg.BankFactor)).Normalize()
	return eye, look, up
}
