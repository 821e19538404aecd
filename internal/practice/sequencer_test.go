package practice

import (
	"testing"

	"github.com/arjunv/praktis/internal/api"
)

func singleStepPayload() *api.ServePayload {
	return &api.ServePayload{
		Version:   "1.0",
		SessionID: "s_1",
		Item: api.Item{
			ID:      "i_1",
			Kind:    "mcq",
			Content: api.Markup{HTML: "Find \\(m\\)"},
		},
		Choices: []api.Choice{
			{ID: "A", Text: "1"},
			{ID: "B", Text: "2"},
			{ID: "C", Text: "3"},
		},
		Serve: api.ServeInfo{ID: "sv1", ChoiceOrder: []string{"C", "A", "B"}},
	}
}

func twoStepPayload() *api.ServePayload {
	return &api.ServePayload{
		Version:   "1.0",
		SessionID: "s_1",
		Item: api.Item{
			ID: "i_2",
			Steps: []api.Step{
				{
					StepID:  "step_1",
					Prompt:  api.Markup{HTML: "First"},
					Choices: []api.Choice{{ID: "A", Text: "a"}, {ID: "B", Text: "b"}},
					Serve:   &api.StepServe{ChoiceOrder: []string{"B", "A"}},
				},
				{
					StepID:  "step_2",
					Prompt:  api.Markup{HTML: "Second"},
					Choices: []api.Choice{{ID: "X", Text: "x"}, {ID: "Y", Text: "y"}},
					Serve:   &api.StepServe{ChoiceOrder: []string{"X", "Y"}},
				},
			},
		},
		Serve: api.ServeInfo{ID: "sv2"},
	}
}

func TestActiveStepSynthesizesSingleStep(t *testing.T) {
	var seq Sequencer
	seq.SetItem(singleStepPayload())

	step := seq.ActiveStep()
	if step.StepID != SingleStepID {
		t.Errorf("StepID = %q, want %q", step.StepID, SingleStepID)
	}
	if step.Prompt.HTML != "Find \\(m\\)" {
		t.Errorf("Prompt = %q, want item content", step.Prompt.HTML)
	}
	if len(step.Choices) != 3 {
		t.Fatalf("got %d choices, want 3", len(step.Choices))
	}
	if seq.StepCount() != 1 {
		t.Errorf("StepCount = %d, want 1", seq.StepCount())
	}
	if !seq.OnLastStep() {
		t.Error("single-step item should be on its last step")
	}
}

func TestOrderedChoicesFollowsServeOrder(t *testing.T) {
	var seq Sequencer
	seq.SetItem(singleStepPayload())

	got := seq.OrderedChoices()
	want := []string{"C", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("got %d choices, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("choice[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestOrderedChoicesDropsUnknownAndDuplicateIDs(t *testing.T) {
	payload := singleStepPayload()
	payload.Serve.ChoiceOrder = []string{"B", "ZZZ", "A", "B"}
	var seq Sequencer
	seq.SetItem(payload)

	got := seq.OrderedChoices()
	if len(got) != 2 {
		t.Fatalf("got %d choices, want 2", len(got))
	}
	if got[0].ID != "B" || got[1].ID != "A" {
		t.Errorf("got order %q, %q; want B, A", got[0].ID, got[1].ID)
	}
}

func TestOrderedChoicesFallsBackToNaturalOrder(t *testing.T) {
	payload := singleStepPayload()
	payload.Serve.ChoiceOrder = nil
	var seq Sequencer
	seq.SetItem(payload)

	got := seq.OrderedChoices()
	if len(got) != 3 {
		t.Fatalf("got %d choices, want 3", len(got))
	}
	for i, id := range []string{"A", "B", "C"} {
		if got[i].ID != id {
			t.Errorf("choice[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestAdvanceStepClampsAtLastStep(t *testing.T) {
	var seq Sequencer
	seq.SetItem(twoStepPayload())

	if !seq.AdvanceStep() {
		t.Fatal("first advance should move the pointer")
	}
	if seq.StepIndex() != 1 {
		t.Errorf("StepIndex = %d, want 1", seq.StepIndex())
	}
	if seq.AdvanceStep() {
		t.Error("advance past the last step should report no movement")
	}
	if seq.StepIndex() != 1 {
		t.Errorf("StepIndex = %d after clamped advance, want 1", seq.StepIndex())
	}
}

func TestAdvanceStepOnSingleStepItem(t *testing.T) {
	var seq Sequencer
	seq.SetItem(singleStepPayload())

	if seq.AdvanceStep() {
		t.Error("single-step item should never advance")
	}
}

func TestActiveStepClampsOutOfRangePointer(t *testing.T) {
	var seq Sequencer
	seq.SetItem(twoStepPayload())
	seq.stepIndex = 5 // defensive path: server never causes this

	step := seq.ActiveStep()
	if step.StepID != "step_2" {
		t.Errorf("StepID = %q, want step_2", step.StepID)
	}
}

func TestSetItemResetsStepPointer(t *testing.T) {
	var seq Sequencer
	seq.SetItem(twoStepPayload())
	seq.AdvanceStep()

	seq.SetItem(twoStepPayload())
	if seq.StepIndex() != 0 {
		t.Errorf("StepIndex = %d after SetItem, want 0", seq.StepIndex())
	}
}
