package game

import (
	"context"
	"sync"

	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/logging"
	"github.com/google/uuid"
)

// 固定台词
const (
	StartLine    = "Here we go! Hold on tight!"
	CompleteLine = "We did it! We learned the whole alphabet!"
)

// FunFactProvider 生成站点的趣味知识，不返回错误
type FunFactProvider interface {
	FunFact(ctx context.Context, entry config.AlphabetEntry) string
}

// Speaker 朗读接口，Speak 立即返回
type Speaker interface {
	Speak(text string)
	Cancel()
}

// SoundPlayer 音效接口
type SoundPlayer interface {
	PlaySound(id SoundID) bool
}

// funFactResult 后台请求的结果，经通道交回帧线程
type funFactResult struct {
	requestID uuid.UUID
	index     int
	text      string
}

// Orchestrator 骑行流程的状态机
//
// 所有字段只在帧线程（Update 和按钮回调）中读写；
// 趣味知识请求在后台 goroutine 中执行，结果由 Update 取回。
// 每次请求带一个 ID，只有与当前 ID 一致的结果会被采用。
type Orchestrator struct {
	alphabet config.Alphabet
	facts    FunFactProvider
	speaker  Speaker
	sounds   SoundPlayer

	state   GameState
	index   int
	funFact string
	loading bool

	requestID   uuid.UUID
	cancelFetch context.CancelFunc
	results     chan funFactResult
	wg          sync.WaitGroup
}

// NewOrchestrator 创建状态机，speaker 和 sounds 可以为 nil
func NewOrchestrator(alphabet config.Alphabet, facts FunFactProvider, speaker Speaker, sounds SoundPlayer) *Orchestrator {
	return &Orchestrator{
		alphabet: alphabet,
		facts:    facts,
		speaker:  speaker,
		sounds:   sounds,
		state:    StateIntro,
		results:  make(chan funFactResult, 4),
	}
}

// State 当前状态
func (o *Orchestrator) State() GameState { return o.state }

// CurrentIndex 当前站点索引
func (o *Orchestrator) CurrentIndex() int { return o.index }

// CurrentEntry 当前站点
func (o *Orchestrator) CurrentEntry() config.AlphabetEntry { return o.alphabet.At(o.index) }

// FunFact 当前趣味知识，尚未取得时为空
func (o *Orchestrator) FunFact() string { return o.funFact }

// Loading 是否正在等待趣味知识
func (o *Orchestrator) Loading() bool { return o.loading }

// Start 开始骑行
func (o *Orchestrator) Start() {
	if o.state != StateIntro {
		return
	}
	o.state = StateRiding
	o.playSound(SoundWhoosh)
	o.speak(StartLine)
	logging.L().Infof("[Orchestrator] ride started toward %s", o.CurrentEntry().Letter)
}

// OnArrival 镜头到达站点 index
// 只在 Riding 状态且 index 为当前站点时生效，之后直到重新出发前的信号都被忽略
func (o *Orchestrator) OnArrival(index int) {
	if o.state != StateRiding || index != o.index {
		return
	}
	entry := o.CurrentEntry()

	o.state = StateLearning
	o.loading = true
	o.funFact = ""
	o.playSound(SoundChirp)
	o.speak(entry.Intro())
	logging.L().Infof("[Orchestrator] arrived at %s (%s)", entry.Letter, entry.Word)

	o.startFetch(entry)
}

// Next 离开当前站点；最后一站之后进入 Completed
func (o *Orchestrator) Next() {
	if o.state != StateLearning {
		return
	}
	o.stopFetch()
	o.loading = false

	if o.index >= o.alphabet.LastIndex() {
		o.state = StateCompleted
		o.playSound(SoundFanfare)
		o.speak(CompleteLine)
		logging.L().Infof("[Orchestrator] alphabet completed")
		return
	}

	o.index++
	o.funFact = ""
	o.state = StateRiding
	o.playSound(SoundWhoosh)
	logging.L().Infof("[Orchestrator] riding to %s", o.CurrentEntry().Letter)
}

// Restart 回到开场，任何状态下都可以调用
func (o *Orchestrator) Restart() {
	o.stopFetch()
	if o.speaker != nil {
		o.speaker.Cancel()
	}
	o.state = StateIntro
	o.index = 0
	o.funFact = ""
	o.loading = false
	logging.L().Infof("[Orchestrator] restarted")
}

// ReplayAudio 重读趣味知识；还没有时读站点介绍
func (o *Orchestrator) ReplayAudio() {
	if o.funFact != "" {
		o.speak(o.funFact)
		return
	}
	o.speak(o.CurrentEntry().Intro())
}

// Update 取回后台请求的结果，每帧调用
func (o *Orchestrator) Update() {
	for {
		select {
		case r := <-o.results:
			o.applyResult(r)
		default:
			return
		}
	}
}

// Close 取消进行中的请求并等待后台 goroutine 退出
func (o *Orchestrator) Close() {
	o.stopFetch()
	o.wg.Wait()
}

func (o *Orchestrator) startFetch(entry config.AlphabetEntry) {
	o.stopFetch()

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New()
	o.requestID = id
	o.cancelFetch = cancel
	index := o.index

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		text := o.facts.FunFact(ctx, entry)
		select {
		case o.results <- funFactResult{requestID: id, index: index, text: text}:
		case <-ctx.Done():
		}
	}()
}

func (o *Orchestrator) stopFetch() {
	if o.cancelFetch != nil {
		o.cancelFetch()
		o.cancelFetch = nil
	}
	o.requestID = uuid.Nil
}

func (o *Orchestrator) applyResult(r funFactResult) {
	if r.requestID != o.requestID || o.state != StateLearning || r.index != o.index {
		logging.L().Debugf("[Orchestrator] dropping stale fun fact %s for station %d", r.requestID, r.index)
		return
	}
	o.funFact = r.text
	o.loading = false
	if o.cancelFetch != nil {
		o.cancelFetch()
		o.cancelFetch = nil
	}
	o.speak(r.text)
}

func (o *Orchestrator) speak(text string) {
	if o.speaker != nil {
		o.speaker.Speak(text)
	}
}

func (o *Orchestrator) playSound(id SoundID) {
	if o.sounds != nil {
		o.sounds.PlaySound(id)
	}
}
