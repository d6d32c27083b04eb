package tetris

import (
	"math/rand"
	"time"
)

// PieceType はテトリミノの種類を表します。
type PieceType int

const (
	TypeI PieceType = iota // 0: I-ミノ (シアン)
	TypeJ                  // 1: J-ミノ (青)
	TypeL                  // 2: L-ミノ (オレンジ)
	TypeO                  // 3: O-ミノ (黄色)
	TypeS                  // 4: S-ミノ (緑)
	TypeT                  // 5: T-ミノ (紫)
	TypeZ                  // 6: Z-ミノ (赤)
)

// PieceTypeCount は定義されているテトリミノの種類数です。
const PieceTypeCount = 7

// Tetrimino はテトリミノの不変な定義（種類、初期向きの形状マトリクス、色）です。
// Shape は正方形の0/1マトリクスで、回転は常に正方マトリクスに対して行われます。
// カタログの定義自体は変更されません。取り出す際は必ずコピーが作られます。
type Tetrimino struct {
	Type  PieceType `json:"type"`
	Shape [][]int   `json:"shape"`
	Color Cell      `json:"color"`
}

// tetriminoDefs は7種類のテトリミノの正規定義です。
// 各形状は正方マトリクスで、初期向き（スポーン時の向き）を表します。
var tetriminoDefs = map[PieceType]Tetrimino{
	TypeI: {
		Type: TypeI,
		Shape: [][]int{
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		Color: "cyan",
	},
	TypeJ: {
		Type: TypeJ,
		Shape: [][]int{
			{1, 0, 0},
			{1, 1, 1},
			{0, 0, 0},
		},
		Color: "blue",
	},
	TypeL: {
		Type: TypeL,
		Shape: [][]int{
			{0, 0, 1},
			{1, 1, 1},
			{0, 0, 0},
		},
		Color: "orange",
	},
	TypeO: {
		Type: TypeO,
		Shape: [][]int{
			{1, 1},
			{1, 1},
		},
		Color: "yellow",
	},
	TypeS: {
		Type: TypeS,
		Shape: [][]int{
			{0, 1, 1},
			{1, 1, 0},
			{0, 0, 0},
		},
		Color: "green",
	},
	TypeT: {
		Type: TypeT,
		Shape: [][]int{
			{0, 1, 0},
			{1, 1, 1},
			{0, 0, 0},
		},
		Color: "purple",
	},
	TypeZ: {
		Type: TypeZ,
		Shape: [][]int{
			{1, 1, 0},
			{0, 1, 1},
			{0, 0, 0},
		},
		Color: "red",
	},
}

// Catalog はテトリミノの定義集と乱数源を保持し、ランダムなピース取得を提供します。
// 乱数生成器は注入可能で、テストでは固定シードの生成器を渡すことで
// 決定的なピース列を得られます。
type Catalog struct {
	randGenerator *rand.Rand
}

// NewCatalog は新しいカタログを作成します。
//
// Parameters:
//   r : ピース選択に使用する乱数生成器。nilの場合は現在時刻シードで初期化されます。
// Returns:
//   *Catalog: 初期化されたカタログのポインタ
func NewCatalog(r *rand.Rand) *Catalog {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Catalog{randGenerator: r}
}

// GetRandomTetrimino は7種類の定義から一様ランダムに1つ選び、
// 独立したコピーを返します。返された形状を書き換えてもカタログの
// 正規定義には影響しません。
func (c *Catalog) GetRandomTetrimino() Tetrimino {
	t := PieceType(c.randGenerator.Intn(PieceTypeCount))
	return c.Get(t)
}

// Get は指定された種類のテトリミノ定義の独立したコピーを返します。
func (c *Catalog) Get(t PieceType) Tetrimino {
	def := tetriminoDefs[t]
	return Tetrimino{
		Type:  def.Type,
		Shape: copyShape(def.Shape),
		Color: def.Color,
	}
}

// copyShape は形状マトリクスのディープコピーを返します。
func copyShape(shape [][]int) [][]int {
	out := make([][]int, len(shape))
	for i, row := range shape {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

// PieceTypeToString はPieceTypeを文字列表現に変換します。
func PieceTypeToString(t PieceType) string {
	switch t {
	case TypeI:
		return "I"
	case TypeJ:
		return "J"
	case TypeL:
		return "L"
	case TypeO:
		return "O"
	case TypeS:
		return "S"
	case TypeT:
		return "T"
	case TypeZ:
		return "Z"
	default:
		return "I" // デフォルト値
	}
}
