package tetris

const (
	BoardWidth  = 10 // テトリスボードの幅
	BoardHeight = 20 // テトリスボードの高さ（表示部分）
)

// Cell はボード上の1マスの状態を表します。
// 空のマスは CellEmpty、埋まっているマスは固定されたピースの色タグを保持します。
// マスは形状や回転情報を持ちません。色タグのみです。
type Cell string

const CellEmpty Cell = "" // 空のマス

// Board はテトリスのゲームボードを表す2次元配列です。
// Board[y][x] でアクセスします。yは行、xは列で、行インデックスは下方向に増加します
// （最下段が最大インデックス）。
type Board [BoardHeight][BoardWidth]Cell

// NewBoard は新しい空のボードを初期化して返します。
// Goの配列はデフォルトでゼロ値（CellEmpty）で初期化されるため、特別な初期化は不要です。
func NewBoard() Board {
	var board Board
	return board
}

// IsEmpty は指定されたマスが範囲内かつ空であるかどうかを返します。
func (b *Board) IsEmpty(row, col int) bool {
	if row < 0 || row >= BoardHeight || col < 0 || col >= BoardWidth {
		return false
	}
	return b[row][col] == CellEmpty
}

// IsValidPlacement は形状マトリクスを基準点 (x, y) に置けるかどうかを判定します。
// 形状の各埋まりセルについて、対応するボード座標 (x+col, y+row) が
// 横方向の範囲内かつ下端を越えておらず、表示領域内（y+row >= 0）であれば
// 空である必要があります。y+row < 0 のセル（ボード上部の見えない領域）は
// 埋まりチェックを免除されますが、x方向の境界チェックは行われます。
// これによりスポーン直後のピースがボード上部にはみ出すことを許容しつつ、
// 列範囲外への配置は拒否されます。
//
// Parameters:
//   shape : 0/1の形状マトリクス（行×列）
//   x, y  : 形状の左上セルに対応するボード座標
// Returns:
//   bool: 配置可能な場合はtrue
func (b *Board) IsValidPlacement(shape [][]int, x, y int) bool {
	for row := range shape {
		for col := range shape[row] {
			if shape[row][col] == 0 {
				continue
			}
			bx := x + col
			by := y + row

			// 左右の壁、および下端との衝突判定
			if bx < 0 || bx >= BoardWidth || by >= BoardHeight {
				return false
			}
			// ボード上部（by < 0）は既存ブロックとの衝突が発生しない
			if by >= 0 && b[by][bx] != CellEmpty {
				return false
			}
		}
	}
	return true
}

// Lock は落下したピースをボードに固定します。
// 形状の各埋まりセルのうち y+row >= 0 のものだけを色タグで埋めます。
// 表示領域より上のセルは書き込まれずに破棄されます。これにより、ボード上部に
// はみ出したままロックされたピースが状態を壊すことはありませんが、
// 積み上がりすぎたスタックは次のスポーン判定でゲームオーバーを引き起こします。
func (b *Board) Lock(shape [][]int, x, y int, color Cell) {
	for row := range shape {
		for col := range shape[row] {
			if shape[row][col] == 0 {
				continue
			}
			bx := x + col
			by := y + row
			if bx >= 0 && bx < BoardWidth && by >= 0 && by < BoardHeight {
				b[by][bx] = color
			}
		}
	}
}

// ClearFullRows は揃ったラインをクリアし、上のブロックを落とします。
// 全マスが埋まった行をすべて削除し、同数の空行をボード上部に挿入します。
// 残った行の相対順序は保たれます。隣接しない複数行が同時に揃っていても
// 1回の走査で正しく処理されます。
//
// Returns:
//   int: クリアされたライン数
func (b *Board) ClearFullRows() int {
	clearedRows := 0
	newBoard := NewBoard() // 新しいボードを作成し、クリア後の状態を構築

	destY := BoardHeight - 1 // 新しいボードにブロックをコピーする際の最も下の行

	// ボードの最下部から上に向かって各行をチェック
	for y := BoardHeight - 1; y >= 0; y-- {
		isRowFull := true
		for x := 0; x < BoardWidth; x++ {
			if b[y][x] == CellEmpty {
				isRowFull = false // 一つでも空のマスがあればラインは揃っていない
				break
			}
		}

		if isRowFull {
			clearedRows++
		} else {
			// 揃っていないラインは新しいボードのdestYにコピー
			for x := 0; x < BoardWidth; x++ {
				newBoard[destY][x] = b[y][x]
			}
			destY-- // 次のラインは一つ上にコピーされる
		}
	}
	*b = newBoard // 現在のボードを更新されたボードに置き換える
	return clearedRows
}
