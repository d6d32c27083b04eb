package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/sakura-arcade/tetris-engine/internal/database"
	model "github.com/sakura-arcade/tetris-engine/internal/models/tetris"
	"github.com/sakura-arcade/tetris-engine/internal/services/tetris"
)

// cellColors は色タグから端末カラーへのマッピングです。
var cellColors = map[model.Cell]tcell.Color{
	"cyan":   tcell.ColorAqua,
	"blue":   tcell.ColorBlue,
	"orange": tcell.ColorOrange,
	"yellow": tcell.ColorYellow,
	"green":  tcell.ColorGreen,
	"purple": tcell.ColorPurple,
	"red":    tcell.ColorRed,
}

func main() {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("warning: Error loading .env file (this is fine in production): %v", err)
		}
	}

	// 画面描画中のログはファイルに退避する
	logPath := os.Getenv("TETRIS_LOG_PATH")
	if logPath == "" {
		logPath = "tetris.log"
	}
	if logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	dbPath := os.Getenv("TETRIS_DB_PATH")
	if dbPath == "" {
		dbPath = "tetris.db"
	}
	player := os.Getenv("TETRIS_PLAYER")
	if player == "" {
		player = "guest"
	}

	// ストレージが開けなくてもゲームは継続する。ハイスコアが永続化されないだけ。
	var scoreRepo database.ScoreRepository
	dbService, err := database.NewDatabaseService(dbPath)
	if err != nil {
		log.Printf("[Main] データベースを開けませんでした（ハイスコアは永続化されません）: %v", err)
	} else {
		defer dbService.Close()
		scoreRepo = database.NewScoreRepository(dbService.DB)
	}

	engine := tetris.NewEngine(scoreRepo, player)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("[Main] スクリーンの作成に失敗しました: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("[Main] スクリーンの初期化に失敗しました: %v", err)
	}
	screen.SetStyle(tcell.StyleDefault)

	// 状態変化のスナップショットを描画ループに引き渡すチャネル。
	// 描画が追いつかない場合は古いフレームを捨てて最新のみ描く。
	redraw := make(chan tetris.Snapshot, 16)
	engine.AddListener(func(s tetris.Snapshot) {
		select {
		case redraw <- s:
		default:
		}
	})

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Finiで終了
			}
			events <- ev
		}
	}()

	draw(screen, engine.Snapshot())

	last := engine.Snapshot()
loop:
	for {
		select {
		case snapshot := <-redraw:
			last = snapshot
			draw(screen, snapshot)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				draw(screen, last)
			case *tcell.EventKey:
				cmd, quit := mapKey(ev)
				if quit {
					break loop
				}
				if cmd != "" {
					engine.Enqueue(cmd)
				}
			}
		}
	}

	engine.Shutdown()
	screen.Fini()
	printRanking(scoreRepo)
}

// mapKey は物理キーをエンジンのコマンドに変換します。
// 2番目の戻り値は終了要求です。
func mapKey(ev *tcell.EventKey) (tetris.Command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", true
	case tcell.KeyLeft:
		return tetris.CommandMoveLeft, false
	case tcell.KeyRight:
		return tetris.CommandMoveRight, false
	case tcell.KeyDown:
		return tetris.CommandSoftDrop, false
	case tcell.KeyUp:
		return tetris.CommandRotate, false
	case tcell.KeyEnter:
		return tetris.CommandStart, false
	}
	switch ev.Rune() {
	case ' ':
		return tetris.CommandHardDrop, false
	case 'p', 'P':
		return tetris.CommandPause, false
	case 'r', 'R':
		return tetris.CommandRestart, false
	case 'q', 'Q':
		return "", true
	}
	return "", false
}

// draw はスナップショットを画面に描画します。
// ボードのマスは横2文字分の背景色ブロックとして描きます。
func draw(screen tcell.Screen, s tetris.Snapshot) {
	screen.Clear()

	const originX, originY = 2, 1

	// ボードの枠
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for y := 0; y <= model.BoardHeight; y++ {
		screen.SetContent(originX-1, originY+y, '|', nil, borderStyle)
		screen.SetContent(originX+model.BoardWidth*2, originY+y, '|', nil, borderStyle)
	}
	for x := -1; x <= model.BoardWidth*2; x++ {
		screen.SetContent(originX+x, originY+model.BoardHeight, '-', nil, borderStyle)
	}

	// 固定済みのセル
	for y := 0; y < model.BoardHeight; y++ {
		for x := 0; x < model.BoardWidth; x++ {
			if s.Board[y][x] != model.CellEmpty {
				drawCell(screen, originX+x*2, originY+y, s.Board[y][x])
			}
		}
	}

	// 操作中のピース（表示領域内のセルのみ）
	if p := s.CurrentPiece; p != nil && s.Status != tetris.StatusIdle {
		for row := range p.Shape {
			for col := range p.Shape[row] {
				if p.Shape[row][col] == 0 || p.Y+row < 0 {
					continue
				}
				drawCell(screen, originX+(p.X+col)*2, originY+p.Y+row, p.Color)
			}
		}
	}

	// サイドパネル
	panelX := originX + model.BoardWidth*2 + 4
	textStyle := tcell.StyleDefault
	drawText(screen, panelX, originY+0, textStyle, fmt.Sprintf("SCORE  %d", s.Score))
	drawText(screen, panelX, originY+1, textStyle, fmt.Sprintf("LINES  %d", s.LinesCleared))
	drawText(screen, panelX, originY+2, textStyle, fmt.Sprintf("LEVEL  %d", s.Level))
	drawText(screen, panelX, originY+3, textStyle, fmt.Sprintf("HIGH   %d", s.HighScore))
	drawText(screen, panelX, originY+5, textStyle, statusLine(s.Status))

	// 次のピースのプレビュー
	if s.NextPiece != nil && s.Status != tetris.StatusIdle {
		drawText(screen, panelX, originY+7, textStyle, "NEXT")
		for row := range s.NextPiece.Shape {
			for col := range s.NextPiece.Shape[row] {
				if s.NextPiece.Shape[row][col] == 1 {
					drawCell(screen, panelX+col*2, originY+8+row, s.NextPiece.Color)
				}
			}
		}
	}

	helpStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	drawText(screen, panelX, originY+13, helpStyle, "← → ↓  move")
	drawText(screen, panelX, originY+14, helpStyle, "↑      rotate")
	drawText(screen, panelX, originY+15, helpStyle, "space  hard drop")
	drawText(screen, panelX, originY+16, helpStyle, "p      pause")
	drawText(screen, panelX, originY+17, helpStyle, "r      restart")
	drawText(screen, panelX, originY+18, helpStyle, "q      quit")

	screen.Show()
}

// drawCell は1マスを横2文字分の背景色ブロックとして描きます。
func drawCell(screen tcell.Screen, x, y int, color model.Cell) {
	c, ok := cellColors[color]
	if !ok {
		c = tcell.ColorWhite
	}
	style := tcell.StyleDefault.Background(c)
	screen.SetContent(x, y, ' ', nil, style)
	screen.SetContent(x+1, y, ' ', nil, style)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func statusLine(status tetris.Status) string {
	switch status {
	case tetris.StatusIdle:
		return "PRESS ENTER TO START"
	case tetris.StatusPaused:
		return "PAUSED"
	case tetris.StatusGameOver:
		return "GAME OVER - R TO RESTART"
	default:
		return "PLAYING"
	}
}

// printRanking は終了時に上位スコアを標準出力に表示します。
func printRanking(repo database.ScoreRepository) {
	if repo == nil {
		return
	}
	results, err := repo.GetTopResults(10)
	if err != nil {
		log.Printf("[Main] ランキングの取得に失敗しました: %v", err)
		return
	}
	if len(results) == 0 {
		return
	}
	fmt.Println("=== RANKING ===")
	for _, r := range results {
		fmt.Printf("%2d. %-12s %7d  (lines %d, level %d)\n", r.Rank, r.Player, r.Score, r.LinesCleared, r.Level)
	}
}
