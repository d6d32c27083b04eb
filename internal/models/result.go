package models

import (
	"time"
)

// Result はresultsテーブルのレコードに対応する構造体です。
// 1レコードが終了した1ゲームランに対応します。
type Result struct {
	ID           string    `json:"id"` // ゲームランのUUID
	Player       string    `json:"player"`
	Score        int       `json:"score"`
	LinesCleared int       `json:"lines_cleared"`
	Level        int       `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResultResponse はランキング表示用の構造体です。
type ResultResponse struct {
	ID           string    `json:"id"`
	Player       string    `json:"player"`
	Score        int       `json:"score"`
	LinesCleared int       `json:"lines_cleared"`
	Level        int       `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
	Rank         int       `json:"rank"` // ランキング順位
}
