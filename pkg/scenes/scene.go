package scenes

import (
	"github.com/decker502/alphacoaster/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 编译期检查：场景实现 game.Scene，需要释放后台任务的实现 game.Closer
var (
	_ Scene       = (*LoadingScene)(nil)
	_ Scene       = (*RideScene)(nil)
	_ game.Closer = (*RideScene)(nil)
)
