package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/web/templates/layout"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestGamePageWiresEventStream(t *testing.T) {
	doc := render(t, Game(GameData{
		PageData: layout.PageData{Title: "Game"},
		Snapshot: model.Snapshot{GameID: "g1", Status: model.StatusAwaitingFirstFlip},
	}))

	section := doc.Find("section.game")
	connect, _ := section.Attr("sse-connect")
	assert.Equal(t, "/game/g1/events", connect)
	status, _ := section.Attr("data-status")
	assert.Equal(t, string(model.StatusAwaitingFirstFlip), status)
	events, _ := doc.Find(".sse-sink").Attr("sse-swap")
	assert.Equal(t, "board,card,timer,overlay", events)
	quit, _ := doc.Find("footer form").Last().Attr("action")
	assert.Equal(t, "/game/g1/quit", quit)
	assert.Equal(t, "Game - Memory", doc.Find("title").Text())
}

func TestGamePageEscapesAttributes(t *testing.T) {
	status := model.Status(`won" onload="alert(1)`)
	doc := render(t, Game(GameData{Snapshot: model.Snapshot{GameID: "g1", Status: status}}))

	section := doc.Find("section.game")
	got, _ := section.Attr("data-status")
	assert.Equal(t, string(status), got)
	_, hasHandler := section.Attr("onload")
	assert.False(t, hasHandler)
}

func TestFlashClassIsEscaped(t *testing.T) {
	doc := render(t, Home(HomeData{PageData: layout.PageData{
		Flash: &layout.FlashMessage{Type: `error" onclick="x`, Message: "<b>nope</b>"},
	}}))

	flash := doc.Find("div.flash")
	require.Equal(t, 1, flash.Length())
	_, hasHandler := flash.Attr("onclick")
	assert.False(t, hasHandler)
	assert.Equal(t, "<b>nope</b>", flash.Text())
}

func TestHomeOffersResumeForActiveGame(t *testing.T) {
	player := &model.Player{ID: "p1", DisplayName: "Alice"}
	doc := render(t, Home(HomeData{PageData: layout.PageData{Player: player}, ActiveGameID: "g1"}))

	href, ok := doc.Find("a.resume-link").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/game/g1", href)
	assert.Equal(t, "Alice", doc.Find(".nav-player").Text())
	assert.Zero(t, doc.Find("form.guest-form").Length())
}

func TestHomeGuestFormCarriesNext(t *testing.T) {
	doc := render(t, Home(HomeData{Next: "/game/g1"}))

	next, _ := doc.Find("form.guest-form input[name='next']").Attr("value")
	assert.Equal(t, "/game/g1", next)
}
