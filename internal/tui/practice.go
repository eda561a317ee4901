// Package tui renders the practice loop on a terminal screen. It only
// calls the engine's queries and commands; all judging and rotation
// logic stays in the session package.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/session"
)

var (
	styleDefault = tcell.StyleDefault
	styleBold    = tcell.StyleDefault.Bold(true)
	styleCorrect = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWrong   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Run drives the session until it finishes or the user quits with
// Ctrl-Q or Escape. Partial progress stays on the store either way.
func Run(sess *session.Session, title string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	var message string
	msgStyle := styleDefault

	for {
		term, ok := sess.NextTerm()
		if !ok {
			return nil
		}
		ask, answer, _ := sess.Prompt()

		input, quit := readAnswer(screen, sess, title, ask, message, msgStyle)
		if quit {
			return nil
		}

		judgment, err := sess.SubmitAnswer(term.ID, input)
		if err != nil {
			return err
		}
		if judgment == domain.JudgmentCorrect {
			message = fmt.Sprintf("Correct! %s -> %s", ask, answer)
			msgStyle = styleCorrect
		} else {
			message = fmt.Sprintf("Wrong! %s -> %s (you typed %q)", ask, answer, input)
			msgStyle = styleWrong
		}
	}
}

// readAnswer runs the input loop for one prompt
func readAnswer(screen tcell.Screen, sess *session.Session, title, ask, message string, msgStyle tcell.Style) (string, bool) {
	input := make([]rune, 0, 32)
	for {
		draw(screen, sess, title, ask, message, msgStyle, string(input))

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return string(input), false
			case tcell.KeyEscape, tcell.KeyCtrlQ, tcell.KeyCtrlC:
				return "", true
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tcell.KeyRune:
				input = append(input, ev.Rune())
			}
		}
	}
}

func draw(screen tcell.Screen, sess *session.Session, title, ask, message string, msgStyle tcell.Style, input string) {
	screen.Clear()

	settled, total := sess.Progress()
	drawText(screen, 0, 0, styleBold, title)
	drawText(screen, 0, 1, styleDefault, fmt.Sprintf("%d / %d", settled, total))
	if message != "" {
		drawText(screen, 0, 3, msgStyle, message)
	}
	drawText(screen, 0, 5, styleBold, ask)
	drawText(screen, 0, 7, styleDefault, "> "+input)
	screen.ShowCursor(len([]rune(input))+2, 7)

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
