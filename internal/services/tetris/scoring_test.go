package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestScoreForClear はクリアライン数とレベルに応じたスコアテーブルをテストします。
func TestScoreForClear(t *testing.T) {
	assert.Equal(t, 0, ScoreForClear(0, 1))
	assert.Equal(t, 100, ScoreForClear(1, 1))
	assert.Equal(t, 300, ScoreForClear(2, 1))
	assert.Equal(t, 500, ScoreForClear(3, 1))
	assert.Equal(t, 800, ScoreForClear(4, 1))

	// レベル倍率
	assert.Equal(t, 200, ScoreForClear(1, 2))
	assert.Equal(t, 900, ScoreForClear(2, 3))
	assert.Equal(t, 1600, ScoreForClear(4, 2))

	// テーブル範囲外は0（外挿しない）
	assert.Equal(t, 0, ScoreForClear(5, 1))
	assert.Equal(t, 0, ScoreForClear(-1, 1))
	assert.Equal(t, 0, ScoreForClear(0, 5))
}

// TestLevelForLines は累計ライン数からのレベル導出をテストします。
func TestLevelForLines(t *testing.T) {
	assert.Equal(t, 1, LevelForLines(0))
	assert.Equal(t, 1, LevelForLines(9))
	assert.Equal(t, 2, LevelForLines(10))
	assert.Equal(t, 3, LevelForLines(25))
	assert.Equal(t, 11, LevelForLines(100))
}

// TestDropIntervalForLevel は落下間隔の短縮と下限をテストします。
func TestDropIntervalForLevel(t *testing.T) {
	assert.Equal(t, 1000*time.Millisecond, DropIntervalForLevel(1))
	assert.Equal(t, 800*time.Millisecond, DropIntervalForLevel(3))
	assert.Equal(t, 100*time.Millisecond, DropIntervalForLevel(10))

	// レベルがいくら上がっても100msを下回らない
	assert.Equal(t, 100*time.Millisecond, DropIntervalForLevel(20))
	assert.Equal(t, 100*time.Millisecond, DropIntervalForLevel(100))
}
