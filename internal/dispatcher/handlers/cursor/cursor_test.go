package cursor

import (
	"testing"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine"
	"github.com/dshills/sentencenav/internal/input"
)

func TestMovements(t *testing.T) {
	tests := []struct {
		name   string
		action string
		count  int
		from   engine.Point
		want   engine.Point
	}{
		{"left", ActionMoveLeft, 1, engine.Point{Line: 0, Column: 3}, engine.Point{Line: 0, Column: 2}},
		{"left wraps", ActionMoveLeft, 1, engine.Point{Line: 1, Column: 0}, engine.Point{Line: 0, Column: 5}},
		{"right wraps", ActionMoveRight, 1, engine.Point{Line: 0, Column: 5}, engine.Point{Line: 1, Column: 0}},
		{"right count", ActionMoveRight, 3, engine.Point{Line: 0, Column: 1}, engine.Point{Line: 0, Column: 4}},
		{"down clamps column", ActionMoveDown, 1, engine.Point{Line: 0, Column: 5}, engine.Point{Line: 1, Column: 0}},
		{"down past end", ActionMoveDown, 9, engine.Point{Line: 0, Column: 2}, engine.Point{Line: 2, Column: 2}},
		{"up", ActionMoveUp, 1, engine.Point{Line: 2, Column: 4}, engine.Point{Line: 1, Column: 0}},
		{"line start", ActionMoveLineStart, 1, engine.Point{Line: 2, Column: 4}, engine.Point{Line: 2, Column: 0}},
		{"line end", ActionMoveLineEnd, 1, engine.Point{Line: 2, Column: 1}, engine.Point{Line: 2, Column: 9}},
		{"first line", ActionMoveFirstLine, 1, engine.Point{Line: 2, Column: 4}, engine.Point{}},
		{"last line", ActionMoveLastLine, 1, engine.Point{}, engine.Point{Line: 2, Column: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := engine.New(engine.WithContent("héllo\n\nsécond ln"))
			eng.SetCursor(tt.from)
			ctx := execctx.New().WithEngine(eng).WithCount(tt.count)

			res := NewHandler().HandleAction(input.Action{Name: tt.action}, ctx)
			if res.IsError() {
				t.Fatalf("error = %v", res.Error)
			}
			if eng.Cursor() != tt.want {
				t.Errorf("Cursor() = %v, want %v", eng.Cursor(), tt.want)
			}
		})
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	eng := engine.New(engine.WithContent("abc"))
	eng.SetSelection(engine.Point{Column: 0}, engine.Point{Column: 3})
	ctx := execctx.New().WithEngine(eng)

	res := NewHandler().HandleAction(input.Action{Name: ActionMoveLineEnd}, ctx)
	if res.Status != handler.StatusOK {
		t.Errorf("status = %v", res.Status)
	}
	if !eng.Selection().IsEmpty() {
		t.Error("selection should collapse")
	}

	res = NewHandler().HandleAction(input.Action{Name: ActionMoveLineEnd}, ctx)
	if res.Status != handler.StatusNoOp {
		t.Errorf("repeated move status = %v, want no-op", res.Status)
	}
}
