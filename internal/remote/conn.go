package remote

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/drag"
	"github.com/vovakirdan/tui-brush/internal/storage"
)

type pointerMode int

const (
	modeIdle  pointerMode = iota
	modeMove              // dragging the selection
	modeBrush             // drawing a new selection
)

// conn is one websocket client and the selection it owns. All of its
// methods run on the connection's read goroutine.
type conn struct {
	ws      *websocket.Conn
	id      string
	series  string
	opts    brush.Options
	store   *storage.Store
	logger  *log.Logger
	state   *brush.Store
	ctrl    *brush.Controller
	tracker *drag.Tracker
	pointer *brush.SelectionPointer

	mode           pointerMode
	pointerID      int
	windowDragging bool

	err error // first write error; the read loop stops on it
}

func newConn(ws *websocket.Conn, initial brush.State, opts brush.Options, series string, store *storage.Store, logger *log.Logger) *conn {
	id := "ws-" + uuid.NewString()[:8]
	c := &conn{
		ws:     ws,
		id:     id,
		series: series,
		opts:   opts,
		store:  store,
		logger: logger.With("conn", id),
		state:  brush.NewStore(initial),
	}
	c.ctrl = brush.NewController(c.state.Update, c.onMove, c.onEnd)

	var trackerOpts []drag.Option
	if opts.UseWindowMoveEvents {
		trackerOpts = append(trackerOpts, drag.WithExternalDragging(func() bool {
			return c.windowDragging
		}))
	}
	c.tracker = drag.NewTracker(drag.Handlers{
		OnDragStart: c.ctrl.DragStart,
		OnDragMove:  c.ctrl.DragMove,
		OnDragEnd:   c.ctrl.DragEnd,
	}, trackerOpts...)

	c.pointer = brush.NewSelectionPointer(brush.SelectionHooks{
		OnMouseMove:  c.selectionEvent(EventMouseMove),
		OnMouseLeave: c.selectionEvent(EventMouseLeave),
		OnMouseUp:    c.selectionEvent(EventMouseUp),
		OnClick:      c.selectionEvent(EventClick),
	})

	c.state.Subscribe(func(st brush.State) {
		c.send(stateReply(st))
	})
	return c
}

// send writes a reply, remembering the first failure.
func (c *conn) send(r Reply) {
	if c.err != nil {
		return
	}
	if err := c.ws.WriteJSON(r); err != nil {
		c.err = fmt.Errorf("remote: write %s reply: %w", r.T, err)
	}
}

func (c *conn) onMove(ev brush.MoveEvent) {
	c.send(moveReply(ev))
}

// selectionEvent returns a hook that forwards one selection pointer event.
func (c *conn) selectionEvent(event string) func(brush.Point) {
	return func(p brush.Point) {
		c.send(selectionReply(event, p))
	}
}

// onEnd reports the settled selection and stores it.
func (c *conn) onEnd(st brush.State) {
	r := Reply{T: ReplyEnd, State: &st}

	if c.store != nil && !st.Empty() {
		sel := storage.SelectionFromState(c.id, c.series, st)
		sel.SelectionID = uuid.NewString()
		if _, err := c.store.SaveSelection(sel); err != nil {
			c.logger.Error("could not save selection", "error", err)
		} else {
			r.Saved = sel.SelectionID
			c.logger.Info("selection saved", "selection", sel.SelectionID, "series", c.series)
		}
	}
	c.send(r)
}

// handle applies one client frame. Protocol errors are answered with an
// error frame and do not close the connection.
func (c *conn) handle(msg Message) {
	switch msg.T {
	case MsgState:
		c.send(stateReply(c.state.State()))
	case MsgReset:
		c.finish()
		c.ctrl.Reset()
	case MsgDown, MsgMove, MsgUp, MsgLeave:
		g, err := msg.Gesture()
		if err != nil {
			c.send(errorReply(err))
			return
		}
		c.gesture(msg.T, msg.ID, g)
	default:
		c.send(errorReply(fmt.Errorf("%w: %q", ErrUnknownType, msg.T)))
	}
}

// gesture routes a gesture frame to the drag tracker or to stage brushing.
// Once a gesture is open only the pointer that pressed is followed until
// it is released; frames from other ids are dropped.
func (c *conn) gesture(t string, id int, g brush.Gesture) {
	if c.mode != modeIdle && id != c.pointerID {
		return
	}

	x, y := g.Page()
	p := brush.Point{X: x, Y: y}
	st := c.state.State()
	route := brush.Routing(st, c.opts, c.tracker.Dragging())
	hit := !st.Empty() && st.Selection().Contains(p)

	switch t {
	case MsgDown:
		if c.mode != modeIdle || !st.Bounds.Contains(p) {
			return
		}
		c.pointerID = id
		c.pointer.Press(route, hit)
		if route.SelectionReceivesPointer && hit {
			if route.SelectionStartsDrag {
				c.mode = modeMove
				c.windowDragging = c.opts.UseWindowMoveEvents
				c.tracker.Start(g)
			}
			return
		}
		c.mode = modeBrush
		c.ctrl.BrushStart(p)

	case MsgMove:
		c.pointer.Move(route, hit, p)
		switch c.mode {
		case modeMove:
			c.tracker.Move(g)
		case modeBrush:
			c.ctrl.BrushMove(p)
		}

	case MsgLeave:
		c.pointer.Leave(p)
		if c.mode == modeMove && route.OverlayEndsDrag {
			c.finish()
		}

	case MsgUp:
		// The overlay, or in window mode the window listener, sees every release.
		c.pointer.Release(route, hit, p)
		c.finish()
	}
}

// finish settles whatever gesture is open.
func (c *conn) finish() {
	switch c.mode {
	case modeMove:
		c.mode = modeIdle
		c.windowDragging = false
		c.tracker.End()
	case modeBrush:
		c.mode = modeIdle
		c.ctrl.BrushEnd()
	}
}
