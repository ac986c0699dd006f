// Package tui draws a game in the terminal with tview.
package tui

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/render"
)

// Columns is the width of the card grid
const Columns = 4

const overlayPage = "overlay"

// Renderer implements render.Renderer on a tview table.
// Every draw is queued onto the application's event loop.
type Renderer struct {
	app   *tview.Application
	pages *tview.Pages
	table *tview.Table
	timer *tview.TextView
	score *tview.TextView
	modal *tview.Modal

	// queue runs a UI mutation on the event loop
	queue func(func())

	mu        sync.Mutex
	cards     []model.Card
	index     map[model.CardID]int
	faces     map[model.CardID]model.CardFace
	handler   render.ClickHandler
	onRestart func()
	onQuit    func()
}

// Ensure Renderer implements Clickable
var _ render.Clickable = (*Renderer)(nil)

// New creates a Renderer whose draws are queued on app
func New(app *tview.Application) *Renderer {
	r := newRenderer(func(f func()) { app.QueueUpdateDraw(f) })
	r.app = app
	app.SetRoot(r.pages, true).SetFocus(r.table)
	return r
}

func newRenderer(queue func(func())) *Renderer {
	r := &Renderer{
		pages: tview.NewPages(),
		table: tview.NewTable(),
		timer: tview.NewTextView().SetTextAlign(tview.AlignLeft),
		score: tview.NewTextView().SetTextAlign(tview.AlignRight),
		modal: tview.NewModal(),
		queue: queue,
		index: make(map[model.CardID]int),
		faces: make(map[model.CardID]model.CardFace),
	}

	r.timer.SetDynamicColors(true)
	r.table.SetBorders(true).SetSelectable(true, true)
	r.table.SetSelectedFunc(r.selected)

	r.modal.AddButtons([]string{"Play again", "Quit"}).
		SetDoneFunc(func(buttonIndex int, _ string) {
			r.mu.Lock()
			restart, quit := r.onRestart, r.onQuit
			r.mu.Unlock()

			// Off the event loop: the handlers draw through the queue
			switch {
			case buttonIndex == 0 && restart != nil:
				go restart()
			case buttonIndex == 1 && quit != nil:
				go quit()
			}
		})

	status := tview.NewFlex().
		AddItem(r.timer, 0, 1, false).
		AddItem(r.score, 0, 1, false)
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(status, 1, 0, false).
		AddItem(r.table, 0, 1, true)

	r.pages.AddPage("board", layout, true, true)
	r.pages.AddPage(overlayPage, r.modal, false, false)
	return r
}

// OnRestart sets what the overlay's "Play again" button does
func (r *Renderer) OnRestart(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRestart = fn
}

// OnQuit sets what the overlay's "Quit" button does
func (r *Renderer) OnQuit(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onQuit = fn
}

// RenderBoard lays the cards out face down, Columns to a row
func (r *Renderer) RenderBoard(cards []model.Card) {
	r.mu.Lock()
	r.cards = append([]model.Card(nil), cards...)
	r.index = make(map[model.CardID]int, len(cards))
	r.faces = make(map[model.CardID]model.CardFace, len(cards))
	for i, c := range cards {
		r.index[c.ID] = i
		r.faces[c.ID] = model.FaceDown
	}
	score := r.scoreLocked()
	r.mu.Unlock()

	r.queue(func() {
		r.table.Clear()
		for i := range cards {
			r.table.SetCell(i/Columns, i%Columns, cardCell(model.CardView{Face: model.FaceDown}))
		}
		r.table.Select(0, 0)
		r.score.SetText(score)
	})
}

func (r *Renderer) Flip(id model.CardID) {
	r.setFace(id, model.FaceUp)
}

func (r *Renderer) Unflip(id model.CardID) {
	r.setFace(id, model.FaceDown)
}

func (r *Renderer) MarkMatched(id model.CardID) {
	r.setFace(id, model.FaceMatched)
}

func (r *Renderer) setFace(id model.CardID, face model.CardFace) {
	r.mu.Lock()
	i, ok := r.index[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	r.faces[id] = face
	view := model.CardView{ID: id, Face: face}
	if face != model.FaceDown {
		view.Symbol = r.cards[i].Symbol
	}
	score := r.scoreLocked()
	r.mu.Unlock()

	r.queue(func() {
		r.table.SetCell(i/Columns, i%Columns, cardCell(view))
		r.score.SetText(score)
	})
}

func (r *Renderer) scoreLocked() string {
	matched := 0
	for _, f := range r.faces {
		if f == model.FaceMatched {
			matched++
		}
	}
	return fmt.Sprintf("Pairs %d/%d", matched/2, len(r.cards)/2)
}

// OnCardClick subscribes handler to Enter presses on a card
func (r *Renderer) OnCardClick(handler render.ClickHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = handler
}

// Click notifies the subscribed handler, if any
func (r *Renderer) Click(id model.CardID) {
	r.mu.Lock()
	handler := r.handler
	r.mu.Unlock()
	if handler != nil {
		handler(id)
	}
}

// selected runs on the event loop when Enter is pressed on a cell
func (r *Renderer) selected(row, col int) {
	i := row*Columns + col
	r.mu.Lock()
	if i < 0 || i >= len(r.cards) {
		r.mu.Unlock()
		return
	}
	id := r.cards[i].ID
	r.mu.Unlock()

	go r.Click(id)
}

func (r *Renderer) ShowTime(remaining int) {
	r.queue(func() {
		color := "white"
		if remaining <= 10 {
			color = "red"
		}
		r.timer.SetText(fmt.Sprintf("[%s]Time %d", color, remaining))
	})
}

func (r *Renderer) ShowOverlayImage(asset string) {
	r.queue(func() {
		r.modal.SetText(overlayText(asset))
	})
}

func (r *Renderer) ShowOverlay() {
	r.queue(func() {
		r.pages.ShowPage(overlayPage)
		if r.app != nil {
			r.app.SetFocus(r.modal)
		}
	})
}

func (r *Renderer) HideOverlay() {
	r.queue(func() {
		r.pages.HidePage(overlayPage)
		if r.app != nil {
			r.app.SetFocus(r.table)
		}
	})
}

func overlayText(asset string) string {
	switch asset {
	case model.VictoryAsset:
		return "You found every pair!"
	case model.DefeatAsset:
		return "Time's up!"
	default:
		return ""
	}
}

// cardCell draws one card; face down cards show their back
func cardCell(v model.CardView) *tview.TableCell {
	text := "  ??  "
	color := tcell.ColorGray
	switch v.Face {
	case model.FaceUp:
		text = symbolLabel(v.Symbol)
		color = tcell.ColorYellow
	case model.FaceMatched:
		text = symbolLabel(v.Symbol)
		color = tcell.ColorGreen
	}
	return tview.NewTableCell(text).
		SetAlign(tview.AlignCenter).
		SetTextColor(color).
		SetExpansion(1)
}

// symbolLabel strips the image extension: "4.jpeg" is drawn as " 4 "
func symbolLabel(s model.Symbol) string {
	name := string(s)
	name = strings.TrimSuffix(name, path.Ext(name))
	return fmt.Sprintf("  %s  ", name)
}
