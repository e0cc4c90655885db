package game

import (
	"encoding/json"
	"testing"
)

func TestSquareIDWireFormat(t *testing.T) {
	cases := []struct {
		sq   SquareID
		want string
	}{
		{TrackSquare(42), `42`},
		{LaneSquare(ColorBlue, 3), `["pas","BLUE",3]`},
		{GoalSquare(ColorYellow), `["cielo","YELLOW",0]`},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.sq)
		if err != nil {
			t.Fatalf("marshal %v: %v", c.sq, err)
		}
		if string(b) != c.want {
			t.Fatalf("marshal %v = %s, want %s", c.sq, b, c.want)
		}
		var back SquareID
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != c.sq {
			t.Fatalf("round trip %v -> %v", c.sq, back)
		}
	}

	var sq SquareID
	if err := json.Unmarshal([]byte(`["nube","RED",0]`), &sq); err == nil {
		t.Fatal("unknown tag must be rejected")
	}
}

func TestMoveWireFormat(t *testing.T) {
	m := Move{Dest: LaneSquare(ColorRed, 1), Kind: MoveLaneEntry, Steps: 4}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `[["pas","RED",1],"lane_entry",4]` {
		t.Fatalf("wire form = %s", b)
	}
	var back Move
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != m {
		t.Fatalf("round trip %+v -> %+v", m, back)
	}
}
