package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/config"
	"github.com/vovakirdan/tui-brush/internal/storage"
)

// testConfig gives a 100x50 stage with the selection at x 10..30, y 10..20.
func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Stage.Series = "walk"
	cfg.Remote.StageWidth = 100
	cfg.Remote.StageHeight = 50
	cfg.Brush.Initial = config.ExtentFractions{X0: 0.1, X1: 0.3, Y0: 0.2, Y1: 0.4}
	return cfg
}

func startServer(t *testing.T, cfg config.Config, store *storage.Store) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(cfg, store, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	ws, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })

	// The server greets with the current state.
	r := readReply(t, ws)
	if r.T != ReplyState || r.State == nil {
		t.Fatalf("greeting = %+v, expected a state reply", r)
	}
	return ws
}

func readReply(t *testing.T, ws *websocket.Conn) Reply {
	t.Helper()
	if err := ws.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline() failed: %v", err)
	}
	var r Reply
	if err := ws.ReadJSON(&r); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return r
}

// readUntil reads replies up to and including the first one of type typ.
func readUntil(t *testing.T, ws *websocket.Conn, typ string) (Reply, []Reply) {
	t.Helper()
	var seen []Reply
	for i := 0; i < 64; i++ {
		r := readReply(t, ws)
		seen = append(seen, r)
		if r.T == typ {
			return r, seen
		}
	}
	t.Fatalf("no %q reply in %d frames", typ, len(seen))
	return Reply{}, nil
}

func send(t *testing.T, ws *websocket.Conn, msgs ...Message) {
	t.Helper()
	for _, msg := range msgs {
		if err := ws.WriteJSON(msg); err != nil {
			t.Fatalf("WriteJSON() failed: %v", err)
		}
	}
}

func TestInitialState(t *testing.T) {
	st, err := InitialState(testConfig())
	if err != nil {
		t.Fatalf("InitialState() failed: %v", err)
	}
	if st.Start != (brush.Point{X: 10, Y: 10}) || st.End != (brush.Point{X: 30, Y: 20}) {
		t.Errorf("initial selection %+v..%+v", st.Start, st.End)
	}

	cfg := testConfig()
	cfg.Remote.StageWidth = -1
	if _, err := InitialState(cfg); err == nil {
		t.Error("InitialState() should reject inverted bounds")
	}
}

func TestServerDragClampsToBounds(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "remote.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	_, ts := startServer(t, testConfig(), store)
	ws := dial(t, ts, "/ws")

	send(t, ws, Message{T: MsgDown, X: 20, Y: 15})
	start := readReply(t, ws)
	if start.T != ReplyMove || start.Coords == nil || start.Coords.PageX != 20 {
		t.Fatalf("drag start reply = %+v, expected move with coords", start)
	}

	send(t, ws,
		Message{T: MsgMove, X: 50, Y: 15},
		Message{T: MsgMove, X: 140, Y: 15},
		Message{T: MsgUp, X: 140, Y: 15},
	)
	end, seen := readUntil(t, ws, ReplyEnd)

	for _, r := range seen {
		if r.T == ReplyState && r.State.IsBrushing {
			if r.State.Extent.X1 > 100 || r.State.Extent.X0 < 0 {
				t.Errorf("extent %+v left the bounds", r.State.Extent)
			}
		}
	}

	st := end.State
	if st == nil {
		t.Fatal("end reply without state")
	}
	if st.IsBrushing {
		t.Error("end state still brushing")
	}
	if st.Start != (brush.Point{X: 80, Y: 10}) || st.End != (brush.Point{X: 100, Y: 20}) {
		t.Errorf("final selection %+v..%+v, expected {80 10}..{100 20}", st.Start, st.End)
	}
	if end.Saved == "" {
		t.Fatal("end reply should carry the saved selection ID")
	}

	last := readReply(t, ws)
	if last.T != ReplyMove || last.Move != "" {
		t.Errorf("after end got %+v, expected the bare drag-end move reply", last)
	}

	saved, err := store.SelectionByID(end.Saved)
	if err != nil {
		t.Fatalf("SelectionByID() failed: %v", err)
	}
	if saved == nil || saved.Series != "walk" || saved.Start.X != 80 {
		t.Errorf("stored selection = %+v", saved)
	}
}

func TestServerTouchBrushesNewSelection(t *testing.T) {
	_, ts := startServer(t, testConfig(), nil)
	ws := dial(t, ts, "/ws")

	send(t, ws,
		Message{T: MsgDown, Kind: KindTouch, X: 70, Y: 40, ID: 3},
		Message{T: MsgMove, Kind: KindTouch, X: 90, Y: 45, ID: 4}, // second finger, ignored
		Message{T: MsgMove, Kind: KindTouch, X: 60, Y: 30, ID: 3},
		Message{T: MsgUp, Kind: KindTouch, X: 60, Y: 30, ID: 3},
	)
	end, _ := readUntil(t, ws, ReplyEnd)

	if end.State.Start != (brush.Point{X: 60, Y: 30}) || end.State.End != (brush.Point{X: 70, Y: 40}) {
		t.Errorf("brushed selection %+v..%+v, expected {60 30}..{70 40}", end.State.Start, end.State.End)
	}
}

func TestServerLeaveEndsDrag(t *testing.T) {
	_, ts := startServer(t, testConfig(), nil)
	ws := dial(t, ts, "/ws")

	send(t, ws,
		Message{T: MsgDown, X: 20, Y: 15},
		Message{T: MsgMove, X: 25, Y: 15},
		Message{T: MsgLeave, X: 101, Y: 15},
		Message{T: MsgMove, X: 60, Y: 15},
		Message{T: MsgState},
	)
	end, _ := readUntil(t, ws, ReplyEnd)
	if end.State.Start.X != 15 {
		t.Errorf("selection after leave starts at %g, expected 15", end.State.Start.X)
	}

	// The move after the leave is dropped; the next state is the answer to "state".
	r, _ := readUntil(t, ws, ReplyState)
	if r.State.Start.X != 15 || r.State.IsBrushing {
		t.Errorf("state after leave = %+v", r.State)
	}
}

func TestServerFollowsFirstPointer(t *testing.T) {
	_, ts := startServer(t, testConfig(), nil)
	ws := dial(t, ts, "/ws")

	send(t, ws,
		Message{T: MsgDown, X: 20, Y: 15, ID: 1},
		Message{T: MsgMove, X: 25, Y: 15, ID: 1},
		Message{T: MsgLeave, X: 101, Y: 15, ID: 2}, // another pointer leaving
		Message{T: MsgUp, X: 90, Y: 15, ID: 2},
		Message{T: MsgMove, X: 30, Y: 15, ID: 1},
		Message{T: MsgUp, X: 30, Y: 15, ID: 1},
	)
	end, _ := readUntil(t, ws, ReplyEnd)
	if end.State.Start.X != 20 || end.State.End.X != 40 {
		t.Errorf("selection %+v..%+v, expected x 20..40", end.State.Start, end.State.End)
	}
}

func TestServerSelectionEvents(t *testing.T) {
	_, ts := startServer(t, testConfig(), nil)
	ws := dial(t, ts, "/ws")

	send(t, ws, Message{T: MsgMove, X: 20, Y: 15})
	hover, _ := readUntil(t, ws, ReplySelection)
	if hover.Event != EventMouseMove || hover.Point == nil || *hover.Point != (brush.Point{X: 20, Y: 15}) {
		t.Errorf("hover reply = %+v", hover)
	}

	// A press and release without motion is a click.
	send(t, ws,
		Message{T: MsgDown, X: 20, Y: 15},
		Message{T: MsgUp, X: 20, Y: 15},
	)
	_, seen := readUntil(t, ws, ReplyEnd)
	var events []string
	for _, r := range seen {
		if r.T == ReplySelection {
			events = append(events, r.Event)
		}
	}
	if strings.Join(events, ",") != "mouseup,click" {
		t.Errorf("selection events = %v, expected mouseup then click", events)
	}

	send(t, ws, Message{T: MsgMove, X: 60, Y: 15})
	leave, _ := readUntil(t, ws, ReplySelection)
	if leave.Event != EventMouseLeave {
		t.Errorf("leave reply = %+v", leave)
	}
}

func TestServerWindowModeIgnoresLeave(t *testing.T) {
	cfg := testConfig()
	cfg.Brush.UseWindowMoveEvents = true
	_, ts := startServer(t, cfg, nil)
	ws := dial(t, ts, "/ws")

	send(t, ws,
		Message{T: MsgDown, X: 20, Y: 15},
		Message{T: MsgLeave, X: 101, Y: 15},
		Message{T: MsgMove, X: 30, Y: 15},
		Message{T: MsgUp, X: 30, Y: 15},
	)
	end, _ := readUntil(t, ws, ReplyEnd)
	if end.State.Start.X != 20 || end.State.End.X != 40 {
		t.Errorf("selection %+v..%+v, expected x 20..40", end.State.Start, end.State.End)
	}
}

func TestServerProtocolErrors(t *testing.T) {
	_, ts := startServer(t, testConfig(), nil)
	ws := dial(t, ts, "/ws")

	send(t, ws, Message{T: "teleport"})
	if r := readReply(t, ws); r.T != ReplyError || !strings.Contains(r.Error, "teleport") {
		t.Errorf("unknown type reply = %+v", r)
	}

	send(t, ws, Message{T: MsgDown, Kind: "pen"})
	if r := readReply(t, ws); r.T != ReplyError || !strings.Contains(r.Error, "pen") {
		t.Errorf("unknown kind reply = %+v", r)
	}

	if err := ws.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage() failed: %v", err)
	}
	if r := readReply(t, ws); r.T != ReplyError {
		t.Errorf("bad frame reply = %+v", r)
	}

	for _, frame := range []string{`{"t":"down"`, ""} {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			t.Fatalf("WriteMessage(%q) failed: %v", frame, err)
		}
		if r := readReply(t, ws); r.T != ReplyError {
			t.Errorf("reply to %q = %+v, expected an error", frame, r)
		}
	}

	// The connection survives protocol errors.
	send(t, ws, Message{T: MsgState})
	if r := readReply(t, ws); r.T != ReplyState {
		t.Errorf("state reply = %+v", r)
	}
}

func TestServerReset(t *testing.T) {
	_, ts := startServer(t, testConfig(), nil)
	ws := dial(t, ts, "/ws")

	send(t, ws, Message{T: MsgReset})
	r := readReply(t, ws)
	if r.T != ReplyState || !r.State.Empty() {
		t.Errorf("reset reply = %+v, expected an empty state", r)
	}
}

func TestServerHealthz(t *testing.T) {
	srv, ts := startServer(t, testConfig(), nil)
	dial(t, ts, "/ws")

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Status != "ok" || body.Connections != 1 {
		t.Errorf("healthz = %+v, expected ok with one connection", body)
	}
	if srv.Connections() != 1 {
		t.Errorf("Connections() = %d", srv.Connections())
	}
}

func TestServerUnknownPath(t *testing.T) {
	_, ts := startServer(t, testConfig(), nil)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", resp.StatusCode)
	}
}
