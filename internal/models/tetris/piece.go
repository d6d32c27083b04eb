package tetris

// Piece は操作中のテトリミノの状態を表します。
// カタログ定義からコピーされた形状マトリクス（回転のたびに書き換わる）と、
// 形状マトリクスの左上セルに対応するボード座標の基準点 (X, Y) を持ちます。
// スポーン時に生成され、ロックされると次のピースに置き換えられます。
type Piece struct {
	Type  PieceType `json:"type"`
	Shape [][]int   `json:"shape"`
	X     int       `json:"x"`
	Y     int       `json:"y"`
	Color Cell      `json:"color"`
}

// NewPiece はテトリミノ定義から新しい操作用ピースを生成します。
// 形状は定義から独立したコピーになります。基準点の設定は呼び出し側
// （スポーン処理）の責務です。
func NewPiece(def Tetrimino) *Piece {
	return &Piece{
		Type:  def.Type,
		Shape: copyShape(def.Shape),
		Color: def.Color,
	}
}

// Width は形状マトリクスの幅（列数）を返します。スポーン時の中央寄せに使います。
func (p *Piece) Width() int {
	if len(p.Shape) == 0 {
		return 0
	}
	return len(p.Shape[0])
}

// Rotated は形状を時計回りに90度回転させた新しいマトリクスを返します。
// 変換は rotated[col][n-1-row] = shape[row][col] で、正方マトリクスのみが対象です。
// ピース自身の形状は変更されません。回転の採用可否（壁蹴りを含む）は
// 呼び出し側が判定します。
func (p *Piece) Rotated() [][]int {
	n := len(p.Shape)
	rotated := make([][]int, n)
	for i := range rotated {
		rotated[i] = make([]int, n)
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			rotated[col][n-1-row] = p.Shape[row][col]
		}
	}
	return rotated
}

// Clone は現在のPieceのディープコピーを返します。
// スナップショット送出時に描画側へ渡すために使用します。
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Type:  p.Type,
		Shape: copyShape(p.Shape),
		X:     p.X,
		Y:     p.Y,
		Color: p.Color,
	}
}
