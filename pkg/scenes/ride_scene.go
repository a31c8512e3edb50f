package scenes

import (
	"fmt"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/entities"
	"github.com/decker502/alphacoaster/pkg/game"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/decker502/alphacoaster/pkg/systems"
	"github.com/decker502/alphacoaster/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// RideSceneOptions 创建骑行场景所需的依赖
type RideSceneOptions struct {
	Config       *config.GameConfig
	Alphabet     config.Alphabet
	Orchestrator *game.Orchestrator
	// Fonts 为 nil 时不绘制文字（无头模拟）
	Fonts systems.FontProvider
	// Pointer 每帧的指针事件来源，为 nil 时读取鼠标/触摸
	Pointer func() utils.PointerEvent
}

// RideScene 过山车主场景
//
// 每帧顺序：
//  1. 按钮输入（回调驱动状态机）
//  2. 取回趣味知识请求结果
//  3. 镜头沿轨道前进，到站时通知状态机
//  4. 小鸟、环境、场景图、覆盖层动画
type RideScene struct {
	entityManager *ecs.EntityManager
	orchestrator  *game.Orchestrator
	alphabet      config.Alphabet
	pointer       func() utils.PointerEvent
	tracker       utils.PointerTracker

	// ECS systems
	rideSystem          *systems.RideSystem
	sceneGraphSystem    *systems.SceneGraphSystem
	birdSystem          *systems.BirdSystem
	environmentSystem   *systems.EnvironmentSystem
	buttonSystem        *systems.ButtonSystem
	worldRenderSystem   *systems.WorldRenderSystem
	overlayRenderSystem *systems.OverlayRenderSystem
	buttonRenderSystem  *systems.ButtonRenderSystem

	overlayEntity ecs.EntityID
	birdEntity    ecs.EntityID
	buttons       entities.RideButtons

	lastState game.GameState
}

// NewRideScene 搭建轨道、站点、小鸟、环境和界面
func NewRideScene(opts RideSceneOptions) (*RideScene, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("ride scene: config is nil")
	}
	if opts.Orchestrator == nil {
		return nil, fmt.Errorf("ride scene: orchestrator is nil")
	}
	if opts.Alphabet.Len() == 0 {
		return nil, fmt.Errorf("ride scene: alphabet is empty")
	}

	cfg := opts.Config
	em := ecs.NewEntityManager()
	stationCount := opts.Alphabet.Len()

	s := &RideScene{
		entityManager: em,
		orchestrator:  opts.Orchestrator,
		alphabet:      opts.Alphabet,
		pointer:       opts.Pointer,
		lastState:     opts.Orchestrator.State(),
	}
	if s.pointer == nil {
		s.pointer = s.tracker.Poll
	}

	curve := entities.NewTrackCurve(cfg.Track, stationCount)
	entities.NewTrackEntity(em, curve, cfg.Track)
	entities.NewStationEntities(em, curve, opts.Alphabet, cfg.Stations)
	entities.NewEnvironmentEntity(em, cfg.Palettes, cfg.Fog)
	entities.NewDecorationEntities(em)

	s.rideSystem = systems.NewRideSystem(em, curve, cfg.Ride, stationCount)
	s.birdEntity = entities.NewBirdEntity(em, s.rideSystem.CameraEntity(), cfg.Bird)
	s.overlayEntity = entities.NewOverlayEntity(em)

	var fonts entities.RideButtonFonts
	if opts.Fonts != nil {
		fonts.Button = opts.Fonts.Font(config.ButtonFontSize, true)
		fonts.Icon = opts.Fonts.Font(config.ButtonFontSize+4, true)
	}
	s.buttons = entities.NewRideButtons(em, fonts, s.handleAction)

	camera := utils.NewCamera(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far, config.GameWindowWidth, config.GameWindowHeight)
	s.sceneGraphSystem = systems.NewSceneGraphSystem(em)
	s.birdSystem = systems.NewBirdSystem(em)
	s.environmentSystem = systems.NewEnvironmentSystem(em, cfg.Palettes, stationCount)
	s.buttonSystem = systems.NewButtonSystem(em)
	s.worldRenderSystem = systems.NewWorldRenderSystem(em, camera, opts.Fonts)
	s.overlayRenderSystem = systems.NewOverlayRenderSystem(em, opts.Fonts)
	s.buttonRenderSystem = systems.NewButtonRenderSystem(em)

	s.sceneGraphSystem.Update()
	s.applyOverlay()

	logging.L().Infof("[RideScene] created: %d stations, %d entities", stationCount, em.EntityCount())
	return s, nil
}

// EntityManager 返回场景的实体管理器
func (s *RideScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// RideSystem 返回镜头系统
func (s *RideScene) RideSystem() *systems.RideSystem {
	return s.rideSystem
}

// Buttons 返回场景按钮
func (s *RideScene) Buttons() entities.RideButtons {
	return s.buttons
}

// Overlay 返回当前覆盖层内容
func (s *RideScene) Overlay() *components.OverlayComponent {
	overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, s.overlayEntity)
	return overlay
}

// Update 推进一帧
func (s *RideScene) Update(deltaTime float64) {
	s.buttonSystem.Update(s.pointer())
	s.orchestrator.Update()

	if index, arrived := s.rideSystem.Update(deltaTime, s.orchestrator.State(), s.orchestrator.CurrentIndex()); arrived {
		s.orchestrator.OnArrival(index)
	}

	state := s.orchestrator.State()
	if state != s.lastState {
		logging.L().Debugf("[RideScene] state %s -> %s (station %d)", s.lastState, state, s.orchestrator.CurrentIndex())
		s.lastState = state
	}

	s.birdSystem.Update(deltaTime, state == game.StateLearning)
	s.environmentSystem.Update(deltaTime, s.orchestrator.CurrentIndex())
	s.sceneGraphSystem.Update()
	s.applyOverlay()
	s.overlayRenderSystem.Update(deltaTime)
}

// Draw 绘制三维场景，再绘制覆盖层和按钮
func (s *RideScene) Draw(screen *ebiten.Image) {
	s.worldRenderSystem.Draw(screen)
	s.overlayRenderSystem.Draw(screen)
	s.buttonRenderSystem.Draw(screen)
}

// Close 取消后台请求
func (s *RideScene) Close() {
	s.orchestrator.Close()
}

// handleAction 按钮回调
func (s *RideScene) handleAction(action components.ButtonAction) {
	logging.L().Debugf("[RideScene] button action %d in state %s", action, s.orchestrator.State())

	switch action {
	case components.ActionStart:
		s.orchestrator.Start()
	case components.ActionNext:
		s.orchestrator.Next()
	case components.ActionReplay:
		s.orchestrator.ReplayAudio()
	case components.ActionRestart, components.ActionPlayAgain:
		s.orchestrator.Restart()
	}
	s.applyOverlay()
}

// applyOverlay 把状态机的当前状态写入覆盖层和按钮可见性
func (s *RideScene) applyOverlay() {
	overlay := s.Overlay()
	if overlay == nil {
		return
	}

	view := OverlayFor(s.orchestrator.State(), s.orchestrator.Loading(), s.orchestrator.FunFact())
	entry := s.orchestrator.CurrentEntry()

	overlay.Panel = view.Panel
	overlay.Heading = view.Heading
	overlay.Body = view.Body
	overlay.Loading = view.Loading
	overlay.Letter = entry.Letter
	overlay.Word = entry.Word

	entities.SetButtonVisible(s.entityManager, s.buttons.Start, view.ShowStart)
	entities.SetButtonVisible(s.entityManager, s.buttons.Replay, view.ShowReplay)
	entities.SetButtonVisible(s.entityManager, s.buttons.Next, view.ShowNext)
	entities.SetButtonVisible(s.entityManager, s.buttons.PlayAgain, view.ShowPlayAgain)
}
