package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame/internal/model"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestCardFaceDownPostsFlip(t *testing.T) {
	doc := render(t, CardSlot("g1", model.CardView{ID: "c1", Face: model.FaceDown}))

	button := doc.Find("#card-c1 form button.card-down")
	require.Equal(t, 1, button.Length())
	id, _ := button.Attr("data-card-id")
	assert.Equal(t, "c1", id)
	action, _ := doc.Find("#card-c1 form").Attr("action")
	assert.Equal(t, "/game/g1/cards/c1/flip", action)
	src, _ := button.Find("img").Attr("src")
	assert.Equal(t, ImagePath(model.CardBackAsset), src)
}

func TestCardFaceUpShowsSymbol(t *testing.T) {
	doc := render(t, Card("g1", model.CardView{ID: "c1", Symbol: "3.gif", Face: model.FaceMatched}))

	card := doc.Find("div.card.card-matched")
	require.Equal(t, 1, card.Length())
	assert.Zero(t, doc.Find("form").Length())
	src, _ := card.Find("img").Attr("src")
	assert.Equal(t, "/static/img/3.gif", src)
}

func TestCardEscapesIdentifiers(t *testing.T) {
	id := model.CardID(`c1" onclick="alert(1)`)
	doc := render(t, Card("g1", model.CardView{ID: id, Symbol: `x"><script>`, Face: model.FaceUp}))

	card := doc.Find("div.card")
	got, _ := card.Attr("data-card-id")
	assert.Equal(t, string(id), got)
	_, hasHandler := card.Attr("onclick")
	assert.False(t, hasHandler)
	assert.Zero(t, doc.Find("script").Length())
}

func TestTimerMarksLowTime(t *testing.T) {
	assert.True(t, render(t, Timer(10)).Find("span.timer-value").HasClass("timer-low"))
	assert.False(t, render(t, Timer(11)).Find("span.timer-value").HasClass("timer-low"))
	assert.Equal(t, "11", render(t, Timer(11)).Find("span").Text())
}

func TestScoreSlot(t *testing.T) {
	doc := render(t, ScoreSlot(3, 8))
	assert.Equal(t, "3/8", doc.Find("#score .score-value").Text())
}

func TestOverlayHiddenUntilShown(t *testing.T) {
	doc := render(t, OverlaySlot("g1", OverlayState{}))
	_, hidden := doc.Find("#overlay .overlay-panel").Attr("hidden")
	assert.True(t, hidden)
	assert.Zero(t, doc.Find("img").Length())

	doc = render(t, OverlaySlot("g1", OverlayState{Visible: true, Image: model.DefeatAsset}))
	_, hidden = doc.Find(".overlay-panel").Attr("hidden")
	assert.False(t, hidden)
	alt, _ := doc.Find("img.overlay-image").Attr("alt")
	assert.Equal(t, "Time's up!", alt)
	action, _ := doc.Find("form").Attr("action")
	assert.Equal(t, "/game/g1/restart", action)
}
