package components

import "github.com/decker502/alphacoaster/pkg/utils"

// RideCameraComponent 骑乘镜头沿轨道的状态
// Progress 只由 RideSystem 写入
type RideCameraComponent struct {
	// Progress 当前在环路上的位置 [0, 1)
	Progress float64

	// TargetIndex 正在前往的站点索引
	TargetIndex int

	// Moving 本帧是否在移动
	Moving bool

	// ArrivedIndex 最近一次触发到站信号的站点索引，-1 表示尚未到站
	// 重新出发时清除，保证每次进站只触发一次
	ArrivedIndex int

	// 镜头位姿（世界坐标）
	Eye    utils.Vec3
	LookAt utils.Vec3
	Up     utils.Vec3
}
