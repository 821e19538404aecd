package practice

import "github.com/arjunv/praktis/internal/api"

// SingleStepID is the reserved id for the implicit step of items whose
// steps list is empty.
const SingleStepID = "step_1"

// Sequencer owns the current item and the active step pointer. The item
// is replaced wholesale on every fetch, never mutated in place.
type Sequencer struct {
	payload   *api.ServePayload
	stepIndex int
}

// SetItem replaces the current item and resets the step pointer.
func (s *Sequencer) SetItem(payload *api.ServePayload) {
	s.payload = payload
	s.stepIndex = 0
}

// Payload returns the current serve payload, or nil before the first load.
func (s *Sequencer) Payload() *api.ServePayload {
	return s.payload
}

// HasItem reports whether an item is loaded.
func (s *Sequencer) HasItem() bool {
	return s.payload != nil
}

// ServeID returns the opaque serving-instance id to echo on submission.
func (s *Sequencer) ServeID() string {
	if s.payload == nil {
		return ""
	}
	return s.payload.Serve.ID
}

// StepIndex returns the current step pointer.
func (s *Sequencer) StepIndex() int {
	return s.stepIndex
}

// StepCount returns the number of steps, counting the implicit single
// step of a step-less item.
func (s *Sequencer) StepCount() int {
	if s.payload == nil {
		return 0
	}
	if n := len(s.payload.Item.Steps); n > 0 {
		return n
	}
	return 1
}

// MultiStep reports whether the item has more than one gradable step.
func (s *Sequencer) MultiStep() bool {
	return s.payload != nil && len(s.payload.Item.Steps) > 1
}

// OnLastStep reports whether the step pointer sits on the final step.
func (s *Sequencer) OnLastStep() bool {
	return s.payload != nil && s.clampedIndex() >= s.StepCount()-1
}

// ActiveStep resolves the step the learner is answering. Step-less items
// synthesize a single step from the item's top-level content and the
// payload's top-level choices; an out-of-range pointer clamps to the
// last valid step.
func (s *Sequencer) ActiveStep() api.Step {
	if s.payload == nil {
		return api.Step{}
	}
	steps := s.payload.Item.Steps
	if len(steps) == 0 {
		return syntheticStep(s.payload)
	}
	return steps[s.clampedIndex()]
}

// OrderedChoices maps the active step's choice order through its choice
// set. Ids absent from the set are dropped, duplicates collapse to their
// first occurrence, and a missing order falls back to the natural order
// of the choices.
func (s *Sequencer) OrderedChoices() []api.Choice {
	step := s.ActiveStep()
	if step.Serve == nil || len(step.Serve.ChoiceOrder) == 0 {
		return step.Choices
	}

	byID := make(map[string]api.Choice, len(step.Choices))
	for _, c := range step.Choices {
		byID[c.ID] = c
	}

	ordered := make([]api.Choice, 0, len(step.Serve.ChoiceOrder))
	seen := make(map[string]bool, len(step.Serve.ChoiceOrder))
	for _, id := range step.Serve.ChoiceOrder {
		if seen[id] {
			continue
		}
		seen[id] = true
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// AdvanceStep moves the step pointer forward, clamped to the last step.
// Returns whether the pointer actually moved.
func (s *Sequencer) AdvanceStep() bool {
	if s.payload == nil {
		return false
	}
	if s.stepIndex >= s.StepCount()-1 {
		s.stepIndex = s.StepCount() - 1
		return false
	}
	s.stepIndex++
	return true
}

func (s *Sequencer) clampedIndex() int {
	last := s.StepCount() - 1
	if s.stepIndex > last {
		return last
	}
	if s.stepIndex < 0 {
		return 0
	}
	return s.stepIndex
}

// syntheticStep builds the implicit single step of a step-less item.
func syntheticStep(payload *api.ServePayload) api.Step {
	step := api.Step{
		StepID:  SingleStepID,
		Prompt:  payload.Item.Content,
		Choices: payload.Choices,
	}
	if len(payload.Serve.ChoiceOrder) > 0 {
		step.Serve = &api.StepServe{ChoiceOrder: payload.Serve.ChoiceOrder}
	}
	return step
}
