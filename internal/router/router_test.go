package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/arjunv/praktis/internal/screen"
)

type stubScreen struct {
	title string
	left  bool
}

func (s *stubScreen) Init() tea.Cmd                              { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd)    { return s, nil }
func (s *stubScreen) View(width, height int) string              { return s.title }
func (s *stubScreen) Title() string                              { return s.title }
func (s *stubScreen) Leave()                                     { s.left = true }

func TestPushAndPop(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)

	top := &stubScreen{title: "top"}
	r.Push(top)
	if r.Depth() != 2 || r.Active() != top {
		t.Fatalf("Depth = %d, Active = %v", r.Depth(), r.Active())
	}

	r.Pop()
	if r.Depth() != 1 || r.Active() != root {
		t.Fatalf("Depth = %d after pop", r.Depth())
	}
	if !top.left {
		t.Error("popped screen should be notified of teardown")
	}
}

func TestPopRefusesToEmptyStack(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)

	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", r.Depth())
	}
	if root.left {
		t.Error("root screen must not be torn down")
	}
}

func TestUpdateHandlesNavigationMessages(t *testing.T) {
	r := New(&stubScreen{title: "root"})
	top := &stubScreen{title: "top"}

	r.Update(PushScreenMsg{Screen: top})
	if r.Active() != top {
		t.Fatal("PushScreenMsg should push the screen")
	}
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Error("PopScreenMsg should pop the screen")
	}
}
