package entities

import (
	"math"
	"strings"

	"github.com/decker502/alphacoaster/pkg/components"
	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/ecs"
	"github.com/decker502/alphacoaster/pkg/utils"
)

// 站点标签描边色
var (
	outlineWhite = config.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	outlineBlack = config.RGB{}
)

// wordLabelDrop 单词标签在图标下方的距离
const wordLabelDrop = 3.0

// StationEntities 一个站点创建出的实体
type StationEntities struct {
	Root     ecs.EntityID // 站点根节点（轨道上的点）
	Glyph    ecs.EntityID // 漂浮的图标组（图标徽章 + 单词）
	Word     ecs.EntityID
	Letter   ecs.EntityID
	Platform ecs.EntityID
}

// NewStationEntity 创建一个字母站点
//
// 站点位于轨道 index/stationCount 处：
//   - 侧向 +SideOffset：漂浮的图标徽章，下方是单词
//   - 侧向 -SideOffset：大号字母
//   - 轨道点下方 PlatformDrop：半透明圆形站台
func NewStationEntity(
	em *ecs.EntityManager,
	curve *utils.ClosedCurve,
	index, stationCount int,
	entry config.AlphabetEntry,
	cfg config.StationsConfig,
) StationEntities {
	u := float64(index) / float64(stationCount)
	point := curve.PointAt(u)
	side := curve.SideVector(u)

	var ids StationEntities

	ids.Root = em.CreateEntity()
	ecs.AddComponent(em, ids.Root, components.NewTransform(point))
	ecs.AddComponent(em, ids.Root, &components.StationComponent{
		Index:      index,
		Entry:      entry,
		TrackPoint: point,
		Side:       side,
	})

	// 图标组：相对站点根节点的侧向偏移，整体上下漂浮
	glyphOffset := side.Scale(cfg.SideOffset)
	ids.Glyph = em.CreateEntity()
	ecs.AddComponent(em, ids.Glyph, components.NewChildTransform(ids.Root, glyphOffset))
	ecs.AddComponent(em, ids.Glyph, &components.FloatComponent{
		Amplitude: cfg.FloatAmplitude,
		Speed:     cfg.FloatSpeed,
		Phase:     stationPhase(index),
		BaseY:     glyphOffset.Y,
	})
	ecs.AddComponent(em, ids.Glyph, &components.LabelComponent{
		Kind:    components.LabelGlyph,
		Text:    GlyphText(entry),
		Size:    cfg.GlyphSize,
		Color:   entry.Color,
		Outline: outlineWhite,
	})

	ids.Word = em.CreateEntity()
	ecs.AddComponent(em, ids.Word, components.NewChildTransform(ids.Glyph, utils.V3(0, -wordLabelDrop, 0)))
	ecs.AddComponent(em, ids.Word, &components.LabelComponent{
		Kind:    components.LabelWord,
		Text:    entry.Word,
		Size:    cfg.WordSize,
		Color:   outlineWhite,
		Outline: outlineBlack,
	})

	ids.Letter = em.CreateEntity()
	ecs.AddComponent(em, ids.Letter, components.NewChildTransform(ids.Root, side.Scale(-cfg.SideOffset)))
	ecs.AddComponent(em, ids.Letter, &components.LabelComponent{
		Kind:    components.LabelLetter,
		Text:    entry.Letter,
		Size:    cfg.LetterSize,
		Color:   entry.Color,
		Outline: outlineWhite,
	})

	ids.Platform = em.CreateEntity()
	ecs.AddComponent(em, ids.Platform, components.NewChildTransform(ids.Root, utils.V3(0, -cfg.PlatformDrop, 0)))
	ecs.AddComponent(em, ids.Platform, &components.DiscComponent{
		Radius:  cfg.PlatformRadius,
		Color:   entry.Color,
		Opacity: cfg.PlatformOpacity,
	})

	return ids
}

// NewStationEntities 为整个字母表创建站点
func NewStationEntities(em *ecs.EntityManager, curve *utils.ClosedCurve, alphabet config.Alphabet, cfg config.StationsConfig) []StationEntities {
	stations := make([]StationEntities, 0, alphabet.Len())
	for i, entry := range alphabet {
		stations = append(stations, NewStationEntity(em, curve, i, alphabet.Len(), entry, cfg))
	}
	return stations
}

// GlyphText 图标徽章上的文字
// 内置字体没有彩色表情符号，徽章显示大小写字母对，例如 "Aa"
func GlyphText(entry config.AlphabetEntry) string {
	if entry.Letter == "" {
		return ""
	}
	return strings.ToUpper(entry.Letter) + strings.ToLower(entry.Letter)
}

// stationPhase 站点漂浮相位，避免所有图标同步上下
func stationPhase(index int) float64 {
	return math.Mod(float64(index)*0.7, 2*math.Pi)
}
