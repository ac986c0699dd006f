package web_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashMessageDisplayedOnSuccess(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"display_name": {"Alice"}}
	rr := ts.post("/auth/guest", form)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-success", "Welcome, Alice!")

	// Flash is shown once
	doc = parseHTML(ts.get("/").Body)
	assertNotContainsElement(t, doc, ".flash")
}

func TestFlashMessageDisplayedOnError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")

	rr := ts.get("/game/does-not-exist")
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Game not found")
}

func TestAccessDeniedForProtectedRoute(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/game", "/game/x/restart", "/game/x/quit", "/game/x/cards/y/flip"} {
		rr := ts.post(path, nil)
		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.True(t, strings.HasPrefix(rr.Header().Get("Location"), "/?next="), path)
	}
}

func TestHTMXActionWithoutSessionRedirectsHome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.postHTMX("/game/x/cards/y/flip", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("HX-Redirect"))
	assert.Empty(t, rr.Header().Get("Location"))
}

func TestActionsOnMissingGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")

	rr := ts.postHTMX("/game/missing/cards/c/flip", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("HX-Redirect"))

	rr = ts.post("/game/missing/restart", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestInvalidSessionTreatedAsSignedOut(t *testing.T) {
	ts := newWebTestServer(t)
	ts.cookies.cookies["session"] = &http.Cookie{Name: "session", Value: "sess_bogus"}

	doc := parseHTML(ts.get("/").Body)
	assertContainsElement(t, doc, "form.guest-form")
}

func TestWrongMethodRejected(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")

	rr := ts.get("/game/x/restart")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStaticFileServing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	css := strings.Repeat(".card { width: 100px; }\n", 200)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "game.css"), []byte(css), 0o644))

	ts := newWebTestServerWithStatic(t, dir)

	// Plain request
	rr := ts.get("/static/css/game.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, css, rr.Body.String())

	// Gzip when accepted
	req := httptest.NewRequest(http.MethodGet, "/static/css/game.css", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	gz := httptest.NewRecorder()
	ts.handler.ServeHTTP(gz, req)
	require.Equal(t, http.StatusOK, gz.Code)
	assert.Equal(t, "gzip", gz.Header().Get("Content-Encoding"))

	reader, err := gzip.NewReader(gz.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, css, string(body))
}
