package tetris

import "log"

// Command はエンジンが受け付ける操作コマンドを表します。
// 物理キーからコマンドへのマッピングは外部（描画側コラボレーター）の責務です。
type Command string

const (
	CommandStart     Command = "start"      // ゲーム開始（idleからのみ）
	CommandPause     Command = "pause"      // 一時停止/再開のトグル
	CommandMoveLeft  Command = "move_left"  // 左に1マス移動
	CommandMoveRight Command = "move_right" // 右に1マス移動
	CommandSoftDrop  Command = "soft_drop"  // 下に1マス移動（着地なら即ロック）
	CommandRotate    Command = "rotate"     // 時計回りに90度回転（壁蹴りあり）
	CommandHardDrop  Command = "hard_drop"  // 最下点まで即落下してロック
	CommandRestart   Command = "restart"    // 再初期化して新しいゲームを開始
)

// wallKickOffsets は回転が衝突した際に試行する水平オフセットの列です。
// 先頭から順に試し、最初に配置可能だったオフセットが採用されます
// （古典的な単純壁蹴り）。
var wallKickOffsets = [...]int{0, 1, -1, 2, -2}

// ApplyCommand はプレイヤーの移動系コマンドに基づいてゲーム状態を更新します。
// 開始/一時停止/リスタートといった状態遷移コマンドはエンジン側で処理されるため、
// ここではプレイ中の操作のみを扱います。
//
// Parameters:
//   state  : 更新するゲーム状態のポインタ
//   action : プレイヤーが実行したコマンド
// Returns:
//   bool: ゲーム状態が実際に変更された場合はtrue
func ApplyCommand(state *GameState, action Command) bool {
	if state.Status != StatusRunning || state.CurrentPiece == nil {
		return false // プレイ中以外は操作を受け付けない
	}

	switch action {
	case CommandMoveLeft:
		return state.MovePiece(-1, 0)

	case CommandMoveRight:
		return state.MovePiece(1, 0)

	case CommandRotate:
		return rotatePiece(state)

	case CommandSoftDrop:
		// ソフトドロップ自体にボーナスはない。着地していた場合はその場でロックする。
		if state.MovePiece(0, 1) {
			state.lastFallTime = state.now() // 落下タイマーをリセット
			return true
		}
		handlePieceLock(state)
		state.lastFallTime = state.now()
		return true

	case CommandHardDrop:
		// 衝突するまで落下させ、1マスごとに固定ボーナスを加算してからロックする
		for state.MovePiece(0, 1) {
			state.Score += HardDropBonus
		}
		handlePieceLock(state)
		state.lastFallTime = state.now()
		return true
	}
	return false
}

// rotatePiece は操作中のピースの時計回り回転を試みます。
// 回転後の形状を現在位置および壁蹴りオフセット位置で順に試し、
// 最初に配置可能だった位置で確定します。いずれも不可能な場合は
// 回転を破棄し、ピースは元の形状のまま変更されません。
func rotatePiece(state *GameState) bool {
	p := state.CurrentPiece
	rotated := p.Rotated()

	for _, offset := range wallKickOffsets {
		if state.Board.IsValidPlacement(rotated, p.X+offset, p.Y) {
			p.Shape = rotated
			p.X += offset
			return true
		}
	}
	return false
}

// AutoFall は自動落下処理を行います。エンジンのメインループから定期的に呼び出されます。
// 前回の落下からレベル依存の間隔が経過していなければ何もしません。
// 経過していた場合は1マスの下方移動を試み、移動できなければピースをロックします。
//
// Returns:
//   bool: ゲーム状態が変更された場合はtrue
func AutoFall(state *GameState) bool {
	if state.Status != StatusRunning || state.CurrentPiece == nil {
		return false
	}

	// 落下間隔が経過していない場合は何もしない
	if state.now().Sub(state.lastFallTime) < DropIntervalForLevel(state.Level) {
		return false
	}

	if !state.MovePiece(0, 1) {
		// ピースが着地した
		handlePieceLock(state)
	}
	state.lastFallTime = state.now()
	return true
}

// handlePieceLock はピースがボードに固定された後の処理をすべて行います。
// ロック、ラインクリア判定、スコア加算、レベル更新、次のピース生成、
// ゲームオーバー判定が含まれます。
func handlePieceLock(state *GameState) {
	p := state.CurrentPiece
	state.Board.Lock(p.Shape, p.X, p.Y, p.Color)

	clearedLines := state.Board.ClearFullRows()
	if clearedLines > 0 {
		state.Score += ScoreForClear(clearedLines, state.Level)
		state.LinesCleared += clearedLines
		state.Level = LevelForLines(state.LinesCleared)
	}

	state.SpawnNewPiece() // 次のピースを生成

	// 新しいピースがスポーン位置で既に衝突したらゲームオーバー
	if state.Status == StatusGameOver {
		log.Printf("[GameLogic] Game Over! Final Score: %d, Lines Cleared: %d, Level: %d",
			state.Score, state.LinesCleared, state.Level)
	}
}
