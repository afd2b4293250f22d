package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/palabra/internal/config"
	"github.com/robalobadob/palabra/internal/game"
	"github.com/robalobadob/palabra/internal/store"
	"github.com/robalobadob/palabra/internal/words"
)

var testWords = []string{"MANGO", "PERAS", "LIMON", "NIÑOS", "GATOS"}

func newLibrary(t *testing.T, list []string) *words.Library {
	t.Helper()
	dict := words.NewDictionary(5, words.DefaultAlphabet())
	for _, w := range list {
		dict.Add(w)
	}
	return words.NewLibrary(dict, nil)
}

func newTestServer(t *testing.T, lib *words.Library, mutate ...func(*Options)) *Server {
	t.Helper()
	opts := Options{
		Game:   game.DefaultConfig(),
		Picker: game.FixedPicker("MANGO"),
		Session: config.SessionConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: "palabra_game",
		},
		ClientOrigin: "http://localhost:5173",
	}
	for _, m := range mutate {
		m(&opts)
	}
	return New(store.NewMemoryStore(), lib, opts)
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func startGame(t *testing.T, s *Server) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[newGameRes](t, rec)
}

func command(t *testing.T, s *Server, g newGameRes, body any) commandRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/"+g.GameID+"/command", g.Token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[commandRes](t, rec)
}

func typeWord(t *testing.T, s *Server, g newGameRes, w string) commandRes {
	t.Helper()
	for _, r := range w {
		command(t, s, g, commandReq{Type: game.CmdLetter, Letter: string(r)})
	}
	return command(t, s, g, commandReq{Type: game.CmdSubmit})
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	got := decode[map[string]any](t, rec)
	assert.EqualValues(t, len(testWords), got["words"])
	assert.EqualValues(t, 5, got["wordLength"])

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewGame(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))

	rec := do(t, s, http.MethodPost, "/game/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[newGameRes](t, rec)

	assert.NotEmpty(t, res.GameID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, game.PhaseInProgress, res.State.Phase)
	assert.Equal(t, 6, res.State.MaxAttempts)
	assert.Empty(t, res.State.Secret, "secret is hidden while playing")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "palabra_game", cookies[0].Name)
	assert.Equal(t, res.Token, cookies[0].Value)
}

func TestNewGame_EmptyDictionary(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, nil))

	rec := do(t, s, http.MethodPost, "/game/new", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"empty_dictionary"}`, rec.Body.String())
}

func TestGame_WinOverHTTP(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	g := startGame(t, s)

	res := typeWord(t, s, g, "gatos")
	require.Len(t, res.Effects, 3)
	assert.Equal(t, game.EffectResult, res.Effects[0].Kind)
	assert.Equal(t, []game.Mark{game.MarkPresent, game.MarkCorrect, game.MarkAbsent, game.MarkPresent, game.MarkAbsent}, res.Effects[0].Marks)
	assert.Equal(t, game.EffectKeys, res.Effects[1].Kind)
	assert.Equal(t, game.EffectRow, res.Effects[2].Kind)
	assert.Equal(t, 1, res.State.Attempt)

	res = typeWord(t, s, g, "MANGO")
	last := res.Effects[len(res.Effects)-1]
	assert.Equal(t, game.NoticeWon, last.Notice)
	assert.Equal(t, "MANGO", last.Word)
	assert.Equal(t, game.PhaseWon, res.State.Phase)
	assert.Equal(t, "MANGO", res.State.Secret)

	// after the game is over input is ignored
	res = command(t, s, g, commandReq{Type: game.CmdLetter, Letter: "A"})
	assert.Empty(t, res.Effects)

	rec := do(t, s, http.MethodGet, "/game/"+g.GameID, g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[game.Snapshot](t, rec)
	assert.Len(t, snap.Results, 2)
	assert.Equal(t, game.MarkCorrect, snap.Keys["M"])
}

func TestGame_KeysAndNotices(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	g := startGame(t, s)

	res := command(t, s, g, commandReq{Key: "ENTER"})
	require.Len(t, res.Effects, 1)
	assert.Equal(t, game.NoticeIncompleteWord, res.Effects[0].Notice)

	for _, k := range []string{"z", "o", "r", "r", "o"} {
		command(t, s, g, commandReq{Key: k})
	}
	res = command(t, s, g, commandReq{Key: "ENTER"})
	require.Len(t, res.Effects, 1)
	assert.Equal(t, game.NoticeUnknownWord, res.Effects[0].Notice)
	assert.Equal(t, "ZORRO", res.Effects[0].Word)

	res = command(t, s, g, commandReq{Key: "BACKSPACE"})
	require.Len(t, res.Effects, 1)
	assert.Equal(t, []string{"Z", "O", "R", "R", ""}, res.Effects[0].Cells)

	// outside the alphabet
	res = command(t, s, g, commandReq{Type: game.CmdLetter, Letter: "1"})
	assert.Empty(t, res.Effects)
}

func TestGame_Reset(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	g := startGame(t, s)

	typeWord(t, s, g, "PERAS")
	res := command(t, s, g, commandReq{Type: game.CmdReset})
	require.Len(t, res.Effects, 1)
	assert.Equal(t, game.EffectReset, res.Effects[0].Kind)
	assert.Equal(t, 0, res.State.Attempt)
	assert.Empty(t, res.State.Results)
}

func TestGame_Auth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	a := startGame(t, s)
	b := startGame(t, s)

	rec := do(t, s, http.MethodGet, "/game/"+a.GameID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/game/"+a.GameID, b.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token of another game")

	rec = do(t, s, http.MethodGet, "/game/"+a.GameID, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := newTestServer(t, newLibrary(t, testWords), func(o *Options) { o.Session.Secret = "other" })
	forged, _, err := other.signGameToken(a.GameID)
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/game/"+a.GameID, forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "wrong signing key")

	tok, _, err := s.signGameToken("missing")
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/game/missing", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGame_CookieToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))

	rec := do(t, s, http.MethodPost, "/game/new", "", nil)
	res := decode[newGameRes](t, rec)

	req := httptest.NewRequest(http.MethodGet, "/game/"+res.GameID, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	s.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestGame_BadJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	g := startGame(t, s)

	rec := do(t, s, http.MethodPost, "/game/"+g.GameID+"/command", g.Token, "{oops")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad_json"}`, rec.Body.String())
}

func TestDictionary_AddWord(t *testing.T) {
	t.Parallel()
	lib := newLibrary(t, testWords)
	s := newTestServer(t, lib)

	rec := do(t, s, http.MethodPost, "/dictionary/words", "", addWordReq{Word: " zorro "})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, addWordRes{Word: "ZORRO", Added: true}, decode[addWordRes](t, rec))
	assert.True(t, lib.Dictionary().Contains("zorro"))

	rec = do(t, s, http.MethodPost, "/dictionary/words", "", addWordReq{Word: "ZORRO"})
	assert.Equal(t, addWordRes{Word: "ZORRO", Added: false, Reason: "duplicate"}, decode[addWordRes](t, rec))

	rec = do(t, s, http.MethodPost, "/dictionary/words", "", addWordReq{Word: "ZORROS"})
	assert.Equal(t, addWordRes{Word: "ZORROS", Added: false, Reason: "invalid"}, decode[addWordRes](t, rec))

	rec = do(t, s, http.MethodGet, "/dictionary", "", nil)
	assert.JSONEq(t, `{"count":6,"wordLength":5}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/dictionary/words", "", "nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDictionary_AddedWordIsPlayable(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	g := startGame(t, s)

	res := typeWord(t, s, g, "ZORRO")
	assert.Equal(t, game.NoticeUnknownWord, res.Effects[0].Notice)

	do(t, s, http.MethodPost, "/dictionary/words", "", addWordReq{Word: "ZORRO"})
	res = command(t, s, g, commandReq{Type: game.CmdSubmit})
	assert.Equal(t, game.EffectResult, res.Effects[0].Kind)
}

func TestDictionary_EditKey(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	s := newTestServer(t, newLibrary(t, testWords), func(o *Options) { o.EditKeyHash = string(hash) })

	body := addWordReq{Word: "ZORRO"}
	rec := do(t, s, http.MethodPost, "/dictionary/words", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/dictionary/words", strings.NewReader(`{"word":"ZORRO"}`))
	req.Header.Set(dictionaryKeyHeader, "wrong")
	out := httptest.NewRecorder()
	s.ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	req = httptest.NewRequest(http.MethodPost, "/dictionary/words", strings.NewReader(`{"word":"ZORRO"}`))
	req.Header.Set(dictionaryKeyHeader, "open-sesame")
	out = httptest.NewRecorder()
	s.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)
	assert.True(t, decode[addWordRes](t, out).Added)
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))

	rec := do(t, s, http.MethodOptions, "/game/new", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), dictionaryKeyHeader)
}

func TestWebSocket(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	ts := httptest.NewServer(s)
	defer ts.Close()
	g := startGame(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + g.GameID + "/ws?token=" + g.Token
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	var first commandRes
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, game.PhaseInProgress, first.State.Phase)

	for _, k := range []string{"M", "A", "N", "G", "O", "ENTER"} {
		require.NoError(t, conn.WriteJSON(commandReq{Key: k}))
		var res commandRes
		require.NoError(t, conn.ReadJSON(&res))
		if k == "ENTER" {
			assert.Equal(t, game.PhaseWon, res.State.Phase)
		}
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{bad")))
	var errRes map[string]string
	require.NoError(t, conn.ReadJSON(&errRes))
	assert.Equal(t, "bad_json", errRes["error"])
}

func TestWebSocket_RequiresToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, newLibrary(t, testWords))
	ts := httptest.NewServer(s)
	defer ts.Close()
	g := startGame(t, s)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + g.GameID + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
