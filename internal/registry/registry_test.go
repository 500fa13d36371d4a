package registry

import (
	"testing"

	"github.com/vovakirdan/tui-flood/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string    { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }

func (g stubGame) Reset(core.RuntimeConfig) {}

func (g stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (g stubGame) Render(*core.Screen) {}

func (g stubGame) State() core.GameState {
	return core.GameState{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("ID() = %q", g.ID())
	}

	var seenA, seenB int
	list := List()
	for i, info := range list {
		switch info.ID {
		case "zz_stub_a":
			seenA = i + 1
			if info.Title != "Stub zz_stub_a" {
				t.Errorf("Title = %q", info.Title)
			}
		case "zz_stub_b":
			seenB = i + 1
		}
	}
	if seenA == 0 || seenB == 0 || seenA > seenB {
		t.Errorf("List() not sorted or missing entries: %+v", list)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("no-such-game") {
		t.Error("unknown game should not exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return stubGame{id: "zz_dup"} })
}
