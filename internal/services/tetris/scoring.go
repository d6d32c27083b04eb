package tetris

import "time"

// スコアとレベルに関する定数を定義します。
const (
	InitialFallInterval = 1000 * time.Millisecond // レベル1での自動落下間隔
	FallIntervalStep    = 100 * time.Millisecond  // レベルが1上がるごとの短縮量
	MinFallInterval     = 100 * time.Millisecond  // 自動落下間隔の下限
	LevelUpLines        = 10                      // レベルアップに必要なライン数
	HardDropBonus       = 2                       // ハードドロップ1マスごとのボーナス
)

// lineClearScores は同時クリアしたライン数ごとの基礎スコアです。
// インデックス0（クリアなし）は0点です。
var lineClearScores = [...]int{0, 100, 300, 500, 800}

// ScoreForClear はライン同時クリア数と現在のレベルからスコア加算量を計算します。
// 5ライン以上の同時クリアはテーブルで未定義のため0を返します。
// これは標準テトリミノでは到達不能なケースに対する明示的な設計判断であり、
// 式を外挿して補うことはしません。
//
// Parameters:
//   clearedLines : 同時にクリアされたライン数
//   level        : 現在のレベル
// Returns:
//   int: 加算するスコア
func ScoreForClear(clearedLines, level int) int {
	if clearedLines < 0 || clearedLines >= len(lineClearScores) {
		return 0
	}
	return lineClearScores[clearedLines] * level
}

// LevelForLines は累計クリアライン数から現在のレベルを導出します。
// 10ラインごとにレベルが1上がります（開始レベルは1）。
func LevelForLines(totalLines int) int {
	return totalLines/LevelUpLines + 1
}

// DropIntervalForLevel は現在のレベルに基づいた自動落下間隔を計算して返します。
// レベルが上がるごとに100msずつ短くなり、100msを下回ることはありません。
func DropIntervalForLevel(level int) time.Duration {
	interval := InitialFallInterval - time.Duration(level-1)*FallIntervalStep
	if interval < MinFallInterval {
		interval = MinFallInterval
	}
	return interval
}
