package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite" // 純Go実装のSQLiteドライバー
)

// DatabaseService provides methods for interacting with the database.
// ストレージはローカルのSQLiteファイル1つで、ブラウザのローカルストレージに
// 相当する役割（ハイスコアと結果履歴の保持）だけを担います。
type DatabaseService struct {
	DB *sql.DB
}

// NewDatabaseService creates a new instance of DatabaseService and establishes a database connection.
//
// Parameters:
//   path : SQLiteデータベースファイルのパス
// Returns:
//   *DatabaseService: 初期化されたサービスのポインタ
//   error : 接続または初期化に失敗した場合
func NewDatabaseService(path string) (*DatabaseService, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Printf("DatabaseService Error: sql.Openに失敗しました: %v", err)
		return nil, fmt.Errorf("データベースへの接続オブジェクト作成に失敗しました: %w", err)
	}

	// データベース接続の確認 (Ping)
	if err := db.Ping(); err != nil {
		log.Printf("DatabaseService Error: db.Pingに失敗しました: %v", err)
		return nil, fmt.Errorf("データベースのPingに失敗しました: %w", err)
	}

	service := &DatabaseService{DB: db}
	if err := service.migrate(); err != nil {
		return nil, err
	}

	log.Printf("DatabaseService Info: データベース %s に正常に接続しました。", path)
	return service, nil
}

// migrate は必要なテーブルを作成します。既に存在する場合は何もしません。
func (s *DatabaseService) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS high_scores (
			name  TEXT PRIMARY KEY,
			score INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id            TEXT PRIMARY KEY,
			player        TEXT NOT NULL,
			score         INTEGER NOT NULL,
			lines_cleared INTEGER NOT NULL,
			level         INTEGER NOT NULL,
			created_at    TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("テーブルの作成に失敗しました: %w", err)
		}
	}
	return nil
}

// Close はデータベース接続を閉じます。
func (s *DatabaseService) Close() error {
	return s.DB.Close()
}
