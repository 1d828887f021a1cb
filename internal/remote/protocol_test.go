package remote

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-brush/internal/brush"
)

func TestMessageGesture(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		want    brush.Gesture
		wantErr error
	}{
		{"default is pointer", Message{X: 1, Y: 2}, brush.Pointer{PageX: 1, PageY: 2}, nil},
		{"pointer", Message{Kind: KindPointer, X: 3, Y: 4}, brush.Pointer{PageX: 3, PageY: 4}, nil},
		{"touch", Message{Kind: KindTouch, X: 5, Y: 6}, brush.Touch{PageX: 5, PageY: 6}, nil},
		{"pen", Message{Kind: "pen"}, nil, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.msg.Gesture()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Gesture() error = %v, expected %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Gesture() = %#v, expected %#v", got, tt.want)
			}
		})
	}
}

func TestMessageDecode(t *testing.T) {
	var msg Message
	raw := `{"t":"down","kind":"touch","x":12.5,"y":3,"id":7}`
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	want := Message{T: MsgDown, Kind: KindTouch, X: 12.5, Y: 3, ID: 7}
	if msg != want {
		t.Errorf("decoded %+v, expected %+v", msg, want)
	}
}

func TestMoveReply(t *testing.T) {
	start := moveReply(brush.MoveEvent{
		Type:   brush.MoveTypeMove,
		Coords: &brush.PageCoords{PageX: 4, PageY: 5},
	})
	if start.T != ReplyMove || start.Move != "move" || start.Coords == nil {
		t.Errorf("start reply = %+v", start)
	}

	end := moveReply(brush.MoveEvent{Type: brush.MoveNone})
	if end.Move != "" || end.Coords != nil {
		t.Errorf("end reply = %+v, expected no type and no coords", end)
	}

	data, err := json.Marshal(end)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `{"t":"move"}` {
		t.Errorf("end reply encodes as %s", data)
	}
}

func TestSelectionReply(t *testing.T) {
	data, err := json.Marshal(selectionReply(EventClick, brush.Point{X: 3, Y: 4}))
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	want := `{"t":"selection","event":"click","point":{"x":3,"y":4}}`
	if string(data) != want {
		t.Errorf("selection reply encodes as %s, expected %s", data, want)
	}
}
