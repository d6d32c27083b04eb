package tetris

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakura-arcade/tetris-engine/internal/models"
	"github.com/sakura-arcade/tetris-engine/internal/models/tetris"
)

// fakeScoreRepo は ScoreRepository のテスト用実装です。
// 呼び出しを記録し、任意のエラーを返せます。
type fakeScoreRepo struct {
	highScore   int
	loadErr     error
	saveErr     error
	savedScores []int
	results     []*models.Result
}

func (r *fakeScoreRepo) LoadHighScore(name string) (int, error) {
	if r.loadErr != nil {
		return 0, r.loadErr
	}
	return r.highScore, nil
}

func (r *fakeScoreRepo) SaveHighScore(name string, score int) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.savedScores = append(r.savedScores, score)
	return nil
}

func (r *fakeScoreRepo) CreateResult(id, player string, score, linesCleared, level int) (*models.Result, error) {
	result := &models.Result{
		ID:           id,
		Player:       player,
		Score:        score,
		LinesCleared: linesCleared,
		Level:        level,
		CreatedAt:    time.Now(),
	}
	r.results = append(r.results, result)
	return result, nil
}

func (r *fakeScoreRepo) GetTopResults(limit int) ([]models.ResultResponse, error) {
	return nil, nil
}

// newTestEngine はイベントループなしのエンジンを固定シード・固定時刻で作ります。
func newTestEngine(repo *fakeScoreRepo) (*Engine, *fakeClock) {
	clock := newFakeClock()
	catalog := tetris.NewCatalog(rand.New(rand.NewSource(1)))
	return newEngine(repo, "tester", catalog, clock.Now), clock
}

// TestEngineStart は開始コマンドによる状態遷移をテストします。
func TestEngineStart(t *testing.T) {
	engine, _ := newTestEngine(&fakeScoreRepo{})

	assert.Equal(t, StatusIdle, engine.state.Status)

	engine.handleCommand(CommandStart)

	assert.Equal(t, StatusRunning, engine.state.Status)
	assert.NotNil(t, engine.state.CurrentPiece)
	assert.NotNil(t, engine.state.NextPiece)
	assert.NotEmpty(t, engine.gameID, "starting a game must assign a run ID")

	// プレイ中のstartは無視される
	gameID := engine.gameID
	engine.state.Score = 42
	engine.handleCommand(CommandStart)
	assert.Equal(t, 42, engine.state.Score, "start must not reset a running game")
	assert.Equal(t, gameID, engine.gameID)
}

// TestEngineRestart はリスタートによる状態の再初期化をテストします。
func TestEngineRestart(t *testing.T) {
	engine, _ := newTestEngine(&fakeScoreRepo{})

	engine.handleCommand(CommandStart)
	firstID := engine.gameID
	engine.state.Score = 500
	engine.state.LinesCleared = 7
	engine.state.Status = StatusGameOver

	engine.handleCommand(CommandRestart)

	assert.Equal(t, StatusRunning, engine.state.Status)
	assert.Equal(t, 0, engine.state.Score)
	assert.Equal(t, 0, engine.state.LinesCleared)
	assert.Equal(t, 1, engine.state.Level)
	assert.NotEqual(t, firstID, engine.gameID, "restart must assign a new run ID")
}

// TestEnginePauseResume は一時停止と再開をテストします。
// 停止していた時間は自動落下の経過時間に加算されません。
func TestEnginePauseResume(t *testing.T) {
	engine, clock := newTestEngine(&fakeScoreRepo{})

	engine.handleCommand(CommandStart)
	initialY := engine.state.CurrentPiece.Y

	engine.handleCommand(CommandPause)
	assert.Equal(t, StatusPaused, engine.state.Status)

	// 一時停止中はtickが経過しても落下しない
	clock.Advance(5 * time.Second)
	engine.handleTick()
	assert.Equal(t, initialY, engine.state.CurrentPiece.Y)

	// 再開直後: 停止中に経過した5秒は落下時間に数えない
	engine.handleCommand(CommandPause)
	assert.Equal(t, StatusRunning, engine.state.Status)
	engine.handleTick()
	assert.Equal(t, initialY, engine.state.CurrentPiece.Y, "paused time must not count toward the fall interval")

	// 再開後に間隔分の時間が経過すれば落下する
	clock.Advance(DropIntervalForLevel(engine.state.Level))
	engine.handleTick()
	assert.Equal(t, initialY+1, engine.state.CurrentPiece.Y)
}

// TestEngineTickDescent は定期tickによる自動落下をテストします。
func TestEngineTickDescent(t *testing.T) {
	engine, clock := newTestEngine(&fakeScoreRepo{})

	engine.handleCommand(CommandStart)
	initialY := engine.state.CurrentPiece.Y

	// 間隔未満のtickは何もしない
	clock.Advance(tickResolution)
	engine.handleTick()
	assert.Equal(t, initialY, engine.state.CurrentPiece.Y)

	clock.Advance(DropIntervalForLevel(engine.state.Level))
	engine.handleTick()
	assert.Equal(t, initialY+1, engine.state.CurrentPiece.Y)
}

// TestEngineHighScorePersistence はハイスコアの読み込みと、
// 上回ったときだけ保存されることをテストします。
func TestEngineHighScorePersistence(t *testing.T) {
	repo := &fakeScoreRepo{highScore: 50}
	engine, _ := newTestEngine(repo)

	// 起動時に永続化済みハイスコアが読み込まれる
	assert.Equal(t, 50, engine.state.HighScore)

	engine.handleCommand(CommandStart)

	// ハイスコア未満: 保存されない
	engine.state.Score = 49
	engine.afterStateChange()
	assert.Empty(t, repo.savedScores)
	assert.Equal(t, 50, engine.state.HighScore)

	// 同点: 保存されない（厳密に上回ったときのみ更新）
	engine.state.Score = 50
	engine.afterStateChange()
	assert.Empty(t, repo.savedScores)

	// 上回った: 更新と保存が行われる
	engine.state.Score = 51
	engine.afterStateChange()
	assert.Equal(t, []int{51}, repo.savedScores)
	assert.Equal(t, 51, engine.state.HighScore)
}

// TestEngineLoadHighScoreFailure は読み込み失敗時にゲームが
// 継続できることをテストします。
func TestEngineLoadHighScoreFailure(t *testing.T) {
	repo := &fakeScoreRepo{loadErr: errors.New("disk unavailable")}
	engine, _ := newTestEngine(repo)

	assert.Equal(t, 0, engine.state.HighScore)

	engine.handleCommand(CommandStart)
	assert.Equal(t, StatusRunning, engine.state.Status)
}

// TestEngineGameOverSavesResult はゲームオーバー時の結果記録をテストします。
func TestEngineGameOverSavesResult(t *testing.T) {
	repo := &fakeScoreRepo{}
	engine, _ := newTestEngine(repo)

	engine.handleCommand(CommandStart)
	engine.state.Score = 1234
	engine.state.LinesCleared = 9
	engine.state.Status = StatusGameOver

	engine.afterStateChange()

	if assert.Len(t, repo.results, 1) {
		result := repo.results[0]
		assert.Equal(t, engine.gameID, result.ID)
		assert.Equal(t, "tester", result.Player)
		assert.Equal(t, 1234, result.Score)
		assert.Equal(t, 9, result.LinesCleared)
	}
}

// TestEngineListenerNotified はリスナーへのスナップショット配信をテストします。
func TestEngineListenerNotified(t *testing.T) {
	engine, _ := newTestEngine(&fakeScoreRepo{})

	var snapshots []Snapshot
	engine.AddListener(func(s Snapshot) {
		snapshots = append(snapshots, s)
	})

	engine.handleCommand(CommandStart)

	if assert.Len(t, snapshots, 1) {
		assert.Equal(t, StatusRunning, snapshots[0].Status)
		assert.NotNil(t, snapshots[0].CurrentPiece)
	}

	// 状態が変化しないコマンドでは配信されない
	engine.state.CurrentPiece.X = 0
	engine.handleCommand(CommandMoveLeft)
	assert.Len(t, snapshots, 1)
}

// TestEngineNilRepository は永続化なし（scoreRepoがnil）でも
// 一連の操作が安全に動作することをテストします。
func TestEngineNilRepository(t *testing.T) {
	engine := newEngine(nil, "tester", tetris.NewCatalog(rand.New(rand.NewSource(1))), nil)

	engine.handleCommand(CommandStart)
	assert.Equal(t, StatusRunning, engine.state.Status)

	engine.state.Score = 100
	engine.state.Status = StatusGameOver
	assert.NotPanics(t, func() { engine.afterStateChange() })
	assert.Equal(t, 100, engine.state.HighScore)
}

// TestEngineRunLoop はイベントループ込みの起動・コマンド投入・停止をテストします。
func TestEngineRunLoop(t *testing.T) {
	engine := NewEngine(&fakeScoreRepo{}, "tester")

	engine.Enqueue(CommandStart)

	assert.Eventually(t, func() bool {
		return engine.Snapshot().Status == StatusRunning
	}, time.Second, 10*time.Millisecond, "engine should process the start command")

	engine.Shutdown()
}
