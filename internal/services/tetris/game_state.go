package tetris

import (
	"time"

	"github.com/sakura-arcade/tetris-engine/internal/models/tetris"
)

// Status はゲームセッションの状態を表します。
type Status string

const (
	StatusIdle     Status = "idle"      // 未開始
	StatusRunning  Status = "running"   // プレイ中
	StatusPaused   Status = "paused"    // 一時停止中
	StatusGameOver Status = "game_over" // 終了（リスタートのみ受け付ける）
)

// GameState は単一プレイヤーのテトリスゲーム状態です。
// ボードと操作中のピースの両方を所有し、両者の間の調整
// （衝突判定、ロック、ラインクリア、スポーン）はこの構造体を通して行われます。
type GameState struct {
	Board        tetris.Board  `json:"board"`         // 現在のゲームボード
	CurrentPiece *tetris.Piece `json:"current_piece"` // 現在操作中のテトリミノ
	NextPiece    *tetris.Piece `json:"next_piece"`    // 次に出現するテトリミノ
	Score        int           `json:"score"`         // 現在のスコア
	LinesCleared int           `json:"lines_cleared"` // 累計クリアライン数
	Level        int           `json:"level"`         // 現在のレベル
	HighScore    int           `json:"high_score"`    // セッションをまたいで保持されるハイスコア
	Status       Status        `json:"status"`        // 現在のゲーム状態

	catalog      *tetris.Catalog  // ピース供給元
	lastFallTime time.Time        // 最後の自動落下の時刻
	now          func() time.Time // 時刻源。テストでは固定時刻を注入する
}

// NewGameState は新しいゲーム状態を初期化して返します。開始前（idle）の状態です。
//
// Parameters:
//   catalog : ピース供給に使うカタログ。nilの場合は時刻シードのカタログを生成します。
//   now     : 時刻源。nilの場合は time.Now を使用します。
// Returns:
//   *GameState: 初期化されたゲーム状態のポインタ
func NewGameState(catalog *tetris.Catalog, now func() time.Time) *GameState {
	if catalog == nil {
		catalog = tetris.NewCatalog(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &GameState{
		Status:  StatusIdle,
		Level:   1,
		catalog: catalog,
		now:     now,
	}
}

// Start はボード・スコア・ライン数・レベルを初期値に戻し、
// 最初のピースをスポーンさせてプレイ中状態に遷移します。
// リスタート時にも同じ処理が使われます（概念的には新しいゲームインスタンス）。
func (s *GameState) Start() {
	s.Board = tetris.NewBoard()
	s.Score = 0
	s.LinesCleared = 0
	s.Level = 1
	s.CurrentPiece = nil
	s.NextPiece = nil
	s.Status = StatusRunning
	s.lastFallTime = s.now()
	s.SpawnNewPiece()
}

// SpawnNewPiece は新しいテトリミノをボード上に出現させます。
// 基準点はピースが水平方向に中央寄せされる位置
// (x = BoardWidth/2 - shapeWidth/2, y = 0) に設定されます。
// スポーン位置が既に無効な場合はゲームオーバーに遷移します。
// これはボードの最上部までブロックが積み上がってしまった状態を指します。
func (s *GameState) SpawnNewPiece() {
	// 現在操作中のピースがなければ、最初のピースを生成
	if s.NextPiece == nil {
		s.CurrentPiece = tetris.NewPiece(s.catalog.GetRandomTetrimino())
	} else {
		s.CurrentPiece = s.NextPiece
	}
	s.NextPiece = tetris.NewPiece(s.catalog.GetRandomTetrimino())

	s.CurrentPiece.X = tetris.BoardWidth/2 - s.CurrentPiece.Width()/2
	s.CurrentPiece.Y = 0

	// ゲームオーバー判定: 新しいピースがスポーン位置で既に衝突している場合
	if !s.Board.IsValidPlacement(s.CurrentPiece.Shape, s.CurrentPiece.X, s.CurrentPiece.Y) {
		s.Status = StatusGameOver
	}
}

// MovePiece は操作中のピースを (dx, dy) だけ平行移動させます。
// 移動先が有効な場合のみ基準点を更新してtrueを返します。
// 無効な場合は状態を変更せずfalseを返します。下方向の移動失敗
// （dy > 0 でfalse）は、呼び出し側にピースをロックすべきことを知らせます。
func (s *GameState) MovePiece(dx, dy int) bool {
	p := s.CurrentPiece
	if p == nil {
		return false
	}
	if !s.Board.IsValidPlacement(p.Shape, p.X+dx, p.Y+dy) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

// Snapshot は描画側に渡すためのゲーム状態の完全なコピーです。
// ボードのセル配列、操作中ピース、次ピース、各カウンターと状態を含みます。
// エンジンの内部状態への参照は含まれないため、受け取った側が保持・加工しても
// ゲーム状態とは競合しません。
type Snapshot struct {
	Board        tetris.Board  `json:"board"`
	CurrentPiece *tetris.Piece `json:"current_piece"`
	NextPiece    *tetris.Piece `json:"next_piece"`
	Score        int           `json:"score"`
	LinesCleared int           `json:"lines_cleared"`
	Level        int           `json:"level"`
	HighScore    int           `json:"high_score"`
	Status       Status        `json:"status"`
}

// Snapshot は現在の状態のスナップショットを返します。
// Boardは値型なので代入でコピーされ、ピースはディープコピーされます。
func (s *GameState) Snapshot() Snapshot {
	return Snapshot{
		Board:        s.Board,
		CurrentPiece: s.CurrentPiece.Clone(),
		NextPiece:    s.NextPiece.Clone(),
		Score:        s.Score,
		LinesCleared: s.LinesCleared,
		Level:        s.Level,
		HighScore:    s.HighScore,
		Status:       s.Status,
	}
}
