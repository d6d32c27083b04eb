package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sakura-arcade/tetris-engine/internal/models"
)

// ScoreRepository はハイスコアとゲーム結果関連のデータベース操作を定義するインターフェースです。
// ストレージ障害はゲーム本体にとって致命的ではないため、呼び出し側は
// エラーをログに残して処理を継続します。
type ScoreRepository interface {
	// LoadHighScore は指定された名前のハイスコアを取得します。
	// レコードが存在しない場合は0を返します。
	LoadHighScore(name string) (int, error)

	// SaveHighScore は指定された名前のハイスコアを置き換えます。
	SaveHighScore(name string, score int) error

	// CreateResult は終了したゲームランの結果レコードを作成します。
	CreateResult(id, player string, score, linesCleared, level int) (*models.Result, error)

	// GetTopResults は上位N件の結果を取得します（ランキング用）。
	GetTopResults(limit int) ([]models.ResultResponse, error)
}

// scoreRepositoryImpl はScoreRepositoryインターフェースの実装です。
type scoreRepositoryImpl struct {
	db *sql.DB
}

// NewScoreRepository はScoreRepositoryの新しいインスタンスを作成します。
func NewScoreRepository(db *sql.DB) ScoreRepository {
	return &scoreRepositoryImpl{db: db}
}

// LoadHighScore は指定された名前のハイスコアを取得します。
func (r *scoreRepositoryImpl) LoadHighScore(name string) (int, error) {
	var score int
	err := r.db.QueryRow(`SELECT score FROM high_scores WHERE name = ?`, name).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil // まだハイスコアが記録されていない
	}
	if err != nil {
		return 0, fmt.Errorf("ハイスコアの取得に失敗しました: %w", err)
	}
	return score, nil
}

// SaveHighScore は指定された名前のハイスコアを置き換えます（UPSERT）。
func (r *scoreRepositoryImpl) SaveHighScore(name string, score int) error {
	_, err := r.db.Exec(`
		INSERT INTO high_scores (name, score) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET score = excluded.score
	`, name, score)
	if err != nil {
		return fmt.Errorf("ハイスコアの保存に失敗しました: %w", err)
	}
	return nil
}

// CreateResult は新しいゲーム結果レコードを作成します。
func (r *scoreRepositoryImpl) CreateResult(id, player string, score, linesCleared, level int) (*models.Result, error) {
	now := time.Now()
	_, err := r.db.Exec(`
		INSERT INTO results (id, player, score, lines_cleared, level, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, player, score, linesCleared, level, now)
	if err != nil {
		return nil, fmt.Errorf("ゲーム結果レコードの作成に失敗しました: %w", err)
	}

	return &models.Result{
		ID:           id,
		Player:       player,
		Score:        score,
		LinesCleared: linesCleared,
		Level:        level,
		CreatedAt:    now,
	}, nil
}

// GetTopResults は上位N件の結果を取得します（ランキング用）。
func (r *scoreRepositoryImpl) GetTopResults(limit int) ([]models.ResultResponse, error) {
	query := `
		SELECT
			id, player, score, lines_cleared, level, created_at,
			ROW_NUMBER() OVER (ORDER BY score DESC, created_at ASC) as rank
		FROM results
		ORDER BY score DESC, created_at ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("ゲーム結果取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var results []models.ResultResponse
	for rows.Next() {
		var result models.ResultResponse
		err := rows.Scan(&result.ID, &result.Player, &result.Score, &result.LinesCleared, &result.Level, &result.CreatedAt, &result.Rank)
		if err != nil {
			return nil, fmt.Errorf("ゲーム結果データのスキャンに失敗しました: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ゲーム結果取得中にエラーが発生しました: %w", err)
	}

	return results, nil
}
