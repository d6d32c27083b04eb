package tetris

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sakura-arcade/tetris-engine/internal/database"
	"github.com/sakura-arcade/tetris-engine/internal/models/tetris"
)

const (
	// tickResolution はメインループの刻みです。自動落下そのものの間隔は
	// DropIntervalForLevel が決め、ループはこの解像度で経過時間を判定します。
	tickResolution = 50 * time.Millisecond

	commandBufferSize = 64 // コマンドキューのバッファサイズ
)

// HighScoreName は永続化されるハイスコアのキー名です。
const HighScoreName = "default"

// Engine はゲーム状態・コマンドキュー・リスナーを管理するメインコンポーネントです。
// すべての状態遷移（tick、操作コマンド、ロック、クリア、スポーン）は
// Run のイベントループ上で1つずつ直列に実行されるため、操作とtickが
// 共有状態の上で競合することはありません。
type Engine struct {
	state     *GameState
	commands  chan Command             // クライアントからの操作コマンドを受け取るチャネル
	quit      chan struct{}            // シャットダウン用チャネル
	done      chan struct{}            // メインループ終了通知用チャネル
	scoreRepo database.ScoreRepository // ハイスコアと結果の永続化（nil可）
	player    string                   // 結果レコードに記録するプレイヤー名
	gameID    string                   // 現在のゲームランのID (UUID)
	now       func() time.Time

	listenersMu sync.Mutex
	listeners   []func(Snapshot)

	stateMu sync.RWMutex // Snapshot() とイベントループの間の保護用
}

// NewEngine は新しい Engine を作成し、そのメインイベントループを
// バックグラウンドで開始します。
//
// Parameters:
//   scoreRepo : ハイスコア永続化用のリポジトリ。nilの場合は永続化なしで動作します。
//   player    : 結果レコードに記録するプレイヤー名
// Returns:
//   *Engine: 初期化されたエンジンのポインタ
func NewEngine(scoreRepo database.ScoreRepository, player string) *Engine {
	e := newEngine(scoreRepo, player, nil, nil)
	go e.Run()
	return e
}

// newEngine はイベントループを開始せずにエンジンを構築します。
// テストではここから直接 handleCommand / handleTick を呼び出します。
func newEngine(scoreRepo database.ScoreRepository, player string, catalog *tetris.Catalog, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	e := &Engine{
		state:     NewGameState(catalog, now),
		commands:  make(chan Command, commandBufferSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		scoreRepo: scoreRepo,
		player:    player,
		now:       now,
	}
	e.loadHighScore()
	return e
}

// loadHighScore は起動時に永続化済みハイスコアを読み込みます。
// ストレージが利用できない場合でもゲームは継続します（ハイスコアが
// 永続化されないだけ）。
func (e *Engine) loadHighScore() {
	if e.scoreRepo == nil {
		return
	}
	score, err := e.scoreRepo.LoadHighScore(HighScoreName)
	if err != nil {
		log.Printf("[Engine] ハイスコアの読み込みに失敗しました（永続化なしで継続します）: %v", err)
		return
	}
	e.state.HighScore = score
}

// Run は Engine のメインイベントループです。
// コマンドの処理と定期tickによる自動落下を単一のゴルーチンで直列化します。
func (e *Engine) Run() {
	defer close(e.done)

	ticker := time.NewTicker(tickResolution)
	defer ticker.Stop()

	for {
		select {
		case cmd := <-e.commands:
			e.handleCommand(cmd)
		case <-ticker.C:
			e.handleTick()
		case <-e.quit:
			// シャットダウンシグナルを受信したらメインループを終了
			log.Printf("[Engine] シャットダウンシグナルを受信、メインループを終了します")
			return
		}
	}
}

// Enqueue は操作コマンドをエンジンのキューに投入します。
// キューがフルの場合はブロックせずにコマンドを破棄します。
func (e *Engine) Enqueue(cmd Command) {
	select {
	case e.commands <- cmd:
	default:
		log.Printf("[Engine] コマンドキューがフルのため %q を破棄しました", cmd)
	}
}

// AddListener は状態変化のたびにスナップショットを受け取るリスナーを登録します。
// リスナーはイベントループのゴルーチン上で呼び出されるため、
// 重い処理は行わずに自前のチャネル等へ引き渡してください。
func (e *Engine) AddListener(fn func(Snapshot)) {
	e.listenersMu.Lock()
	e.listeners = append(e.listeners, fn)
	e.listenersMu.Unlock()
}

// Snapshot は現在のゲーム状態のスナップショットを返します。
// 初期描画などイベント外のタイミングで使用します。
func (e *Engine) Snapshot() Snapshot {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.state.Snapshot()
}

// Shutdown はエンジンを安全に停止させます。
// イベントループの終了を待ってから戻るため、呼び出し後に状態が
// 更新されることはありません。
func (e *Engine) Shutdown() {
	close(e.quit)
	<-e.done
	log.Printf("[Engine] シャットダウン完了")
}

// handleCommand は1つの操作コマンドを処理します。
// 状態遷移コマンド（start/pause/restart）はここで処理し、
// ピース操作は ApplyCommand に委譲します。
func (e *Engine) handleCommand(cmd Command) {
	e.stateMu.Lock()
	changed := false

	switch cmd {
	case CommandStart:
		// 開始は未開始状態からのみ。プレイ中のstartは無視する
		if e.state.Status == StatusIdle {
			e.startGame()
			changed = true
		}

	case CommandRestart:
		// リスタートは開始済みのゲームを再初期化する
		if e.state.Status != StatusIdle {
			e.startGame()
			changed = true
		}

	case CommandPause:
		switch e.state.Status {
		case StatusRunning:
			e.state.Status = StatusPaused
			changed = true
		case StatusPaused:
			// 再開。停止していた時間は落下時間に加算されない
			e.state.Status = StatusRunning
			e.state.lastFallTime = e.now()
			changed = true
		}

	default:
		changed = ApplyCommand(e.state, cmd)
	}

	if changed {
		e.afterStateChange()
	}
	snapshot := e.state.Snapshot()
	e.stateMu.Unlock()

	if changed {
		e.notify(snapshot)
	}
}

// handleTick は定期tickを処理します。プレイ中であれば自動落下を試みます。
func (e *Engine) handleTick() {
	e.stateMu.Lock()
	changed := AutoFall(e.state)
	if changed {
		e.afterStateChange()
	}
	snapshot := e.state.Snapshot()
	e.stateMu.Unlock()

	if changed {
		e.notify(snapshot)
	}
}

// startGame は新しいゲームランを開始します。
func (e *Engine) startGame() {
	e.gameID = uuid.New().String()
	e.state.Start()
	log.Printf("[Engine] 新しいゲームを開始しました: %s (player: %s)", e.gameID, e.player)
}

// afterStateChange は状態が変化するたびに呼ばれ、ハイスコアの更新と
// ゲームオーバー時の結果記録を行います。stateMu 保持中に呼び出されます。
func (e *Engine) afterStateChange() {
	// 現在スコアが保存済みハイスコアを上回った時点で置き換える
	if e.state.Score > e.state.HighScore {
		e.state.HighScore = e.state.Score
		e.saveHighScore(e.state.Score)
	}

	if e.state.Status == StatusGameOver {
		e.saveResult()
	}
}

// saveHighScore はハイスコアを永続化します。失敗しても致命的ではありません。
func (e *Engine) saveHighScore(score int) {
	if e.scoreRepo == nil {
		return
	}
	if err := e.scoreRepo.SaveHighScore(HighScoreName, score); err != nil {
		log.Printf("[Engine] ハイスコアの保存に失敗しました: %v", err)
	}
}

// saveResult は終了したゲームランの結果を記録します。失敗しても致命的ではありません。
func (e *Engine) saveResult() {
	if e.scoreRepo == nil {
		return
	}
	_, err := e.scoreRepo.CreateResult(e.gameID, e.player, e.state.Score, e.state.LinesCleared, e.state.Level)
	if err != nil {
		log.Printf("[Engine] ゲーム結果の記録に失敗しました: %v", err)
	}
}

// notify は登録済みリスナーにスナップショットを配信します。
func (e *Engine) notify(snapshot Snapshot) {
	e.listenersMu.Lock()
	listeners := make([]func(Snapshot), len(e.listeners))
	copy(listeners, e.listeners)
	e.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
