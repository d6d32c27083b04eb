package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allPieceTypes = []PieceType{TypeI, TypeJ, TypeL, TypeO, TypeS, TypeT, TypeZ}

// TestCatalogReturnsIndependentCopy は取り出した形状を書き換えても
// カタログの正規定義が変化しないことを確認します。
func TestCatalogReturnsIndependentCopy(t *testing.T) {
	catalog := NewCatalog(rand.New(rand.NewSource(1)))

	first := catalog.Get(TypeT)
	first.Shape[0][0] = 9 // 取り出したコピーを破壊する

	second := catalog.Get(TypeT)
	assert.Equal(t, 0, second.Shape[0][0], "canonical definition must not be affected by mutation")
	assert.Equal(t, Cell("purple"), second.Color)
}

// TestGetRandomTetriminoDeterministic は同一シードのカタログが
// 同一のピース列を生成することを確認します。
func TestGetRandomTetriminoDeterministic(t *testing.T) {
	a := NewCatalog(rand.New(rand.NewSource(42)))
	b := NewCatalog(rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		ta := a.GetRandomTetrimino()
		tb := b.GetRandomTetrimino()
		assert.Equal(t, ta.Type, tb.Type, "same seed must yield the same sequence")
		assert.GreaterOrEqual(t, int(ta.Type), 0)
		assert.Less(t, int(ta.Type), PieceTypeCount)
	}
}

// TestGetRandomTetriminoCoversAllTypes は十分な試行で7種類すべてが出現することを確認します。
func TestGetRandomTetriminoCoversAllTypes(t *testing.T) {
	catalog := NewCatalog(rand.New(rand.NewSource(7)))

	seen := make(map[PieceType]bool)
	for i := 0; i < 500; i++ {
		seen[catalog.GetRandomTetrimino().Type] = true
	}
	for _, pt := range allPieceTypes {
		assert.True(t, seen[pt], "piece type %s should appear", PieceTypeToString(pt))
	}
}

// TestRotationFourTimesIdentity は全7種類について、4回の時計回り回転で
// 形状がビット単位で元に戻ることを確認します。
func TestRotationFourTimesIdentity(t *testing.T) {
	catalog := NewCatalog(rand.New(rand.NewSource(1)))

	for _, pt := range allPieceTypes {
		piece := NewPiece(catalog.Get(pt))
		original := copyShape(piece.Shape)

		for i := 0; i < 4; i++ {
			piece.Shape = piece.Rotated()
		}
		assert.Equal(t, original, piece.Shape, "4 rotations of %s must be the identity", PieceTypeToString(pt))
	}
}

// TestRotatedDoesNotMutate は Rotated が元の形状を変更しないことを確認します。
func TestRotatedDoesNotMutate(t *testing.T) {
	catalog := NewCatalog(rand.New(rand.NewSource(1)))
	piece := NewPiece(catalog.Get(TypeS))
	original := copyShape(piece.Shape)

	_ = piece.Rotated()
	assert.Equal(t, original, piece.Shape)
}

// TestPieceClone はディープコピーの独立性を確認します。
func TestPieceClone(t *testing.T) {
	catalog := NewCatalog(rand.New(rand.NewSource(1)))
	piece := NewPiece(catalog.Get(TypeJ))
	piece.X, piece.Y = 4, 7

	clone := piece.Clone()
	clone.Shape[0][0] = 9
	clone.X = 0

	assert.Equal(t, 0, piece.Shape[0][0], "mutating the clone must not affect the original")
	assert.Equal(t, 4, piece.X)

	var nilPiece *Piece
	assert.Nil(t, nilPiece.Clone())
}

// TestEachTypeHasDistinctColor は7種類の色タグがすべて異なることを確認します。
func TestEachTypeHasDistinctColor(t *testing.T) {
	catalog := NewCatalog(rand.New(rand.NewSource(1)))

	colors := make(map[Cell]bool)
	for _, pt := range allPieceTypes {
		colors[catalog.Get(pt).Color] = true
	}
	assert.Len(t, colors, PieceTypeCount)
}
