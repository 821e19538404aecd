package practice

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/arjunv/praktis/internal/api"
	"github.com/arjunv/praktis/internal/hints"
	"github.com/arjunv/praktis/internal/mathtext"
	prac "github.com/arjunv/praktis/internal/practice"
	"github.com/arjunv/praktis/internal/router"
	"github.com/arjunv/praktis/internal/screen"
	"github.com/arjunv/praktis/internal/screens/playlist"
	"github.com/arjunv/praktis/internal/store"
	"github.com/arjunv/praktis/internal/ui/components"
	"github.com/arjunv/praktis/internal/ui/layout"
)

// Options carries the optional dependencies of the practice screen.
// Events and Hinter may be nil; the related features degrade quietly.
type Options struct {
	Events       store.EventRepo
	Hinter       hints.Provider
	Renderer     mathtext.Renderer
	Log          *zap.Logger
	PollInterval time.Duration
}

// PracticeScreen drives an attempt loop against the remote service:
// bootstrap a session, fetch items, submit answers, poll progress.
type PracticeScreen struct {
	svc    api.Service
	events store.EventRepo
	hinter hints.Provider
	render mathtext.Renderer
	log    *zap.Logger

	pollInterval time.Duration

	sess    api.Session
	seq     prac.Sequencer
	engine  *prac.Engine
	sub     prac.SubmissionState
	tracker prac.ProgressTracker
	filter  prac.SelectionFilter

	types   []string
	typeIdx int // 0 = all types, i>0 = types[i-1]

	choices components.ChoiceList

	loading         bool
	submitting      bool
	showingFeedback bool
	pendingAdvance  bool
	pendingLoadNext bool
	securityTripped bool

	hintText    string
	hintLoading bool

	itemStart    time.Time
	sessionStart time.Time
	itemsServed  int
	correctCount int

	cooldownSeq int
	leaving     bool

	errMsg   string // fatal, screen unusable
	transMsg string // transient, cleared on the next action
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.Teardown = (*PracticeScreen)(nil)

// New creates a practice screen over the given service.
func New(svc api.Service, opts Options) *PracticeScreen {
	if opts.Renderer == nil {
		opts.Renderer = mathtext.Terminal{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = prac.ProgressPollInterval
	}
	return &PracticeScreen{
		svc:          svc,
		events:       opts.Events,
		hinter:       opts.Hinter,
		render:       opts.Renderer,
		log:          opts.Log,
		pollInterval: opts.PollInterval,
		engine:       prac.NewEngine(svc, opts.Log),
		loading:      true,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.bootstrap()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

// Leave stops the poll and cooldown tick chains and records the end of
// the local session.
func (s *PracticeScreen) Leave() {
	s.leaving = true
	if s.events == nil || s.sessionStart.IsZero() {
		return
	}
	_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:      s.sess.ID,
		Action:         "end",
		ItemsServed:    s.itemsServed,
		CorrectAnswers: s.correctCount,
		DurationSecs:   int(time.Since(s.sessionStart).Seconds()),
	})
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.showingFeedback {
		hintsOut := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
		if s.canHint() {
			hintsOut = append(hintsOut, layout.KeyHint{Key: "H", Description: "Hint"})
		}
		return hintsOut
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "N", Description: "Next item"},
		{Key: "T", Description: "Type filter"},
		{Key: "P", Description: "Playlist"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bootstrapMsg:
		return s.handleBootstrap(msg)

	case typesMsg:
		if msg.Err == nil {
			s.types = msg.Types
		}
		return s, nil

	case itemMsg:
		return s.handleItem(msg)

	case submitMsg:
		return s.handleSubmit(msg)

	case progressTickMsg:
		if s.leaving {
			return s, nil
		}
		return s, s.fetchProgress()

	case progressMsg:
		s.tracker.Record(msg.Snap, msg.Err)
		if s.leaving {
			return s, nil
		}
		return s, s.pollTick()

	case cooldownTickMsg:
		return s.handleCooldownTick(msg)

	case hintMsg:
		s.hintLoading = false
		if msg.Err != nil {
			s.transMsg = "hint unavailable"
			return s, nil
		}
		s.hintText = msg.Text
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *PracticeScreen) handleBootstrap(msg bootstrapMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// The session could not be established. Items may still be
		// viewable; submissions stay suppressed without a token.
		s.log.Warn("session bootstrap failed", zap.Error(msg.Err))
		s.transMsg = "session unavailable, answers disabled"
	} else {
		s.sess = *msg.Session
		s.sessionStart = time.Now()
		if s.events != nil {
			_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
				SessionID: s.sess.ID,
				Action:    "start",
			})
		}
	}
	return s, tea.Batch(
		s.fetchTypes(),
		s.loadNext(),
		s.pollTick(),
	)
}

func (s *PracticeScreen) handleItem(msg itemMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.seq.SetItem(msg.Payload)
	s.itemsServed++
	s.sub.Reset()
	s.resetStepView()
	s.showingFeedback = false
	s.pendingAdvance = false
	s.pendingLoadNext = false
	s.itemStart = time.Now()
	return s, nil
}

func (s *PracticeScreen) handleSubmit(msg submitMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	out := s.engine.Apply(msg.Result, msg.Err, &s.seq, &s.sub)

	switch out.Kind {
	case prac.OutcomeGraded:
		if out.Correct {
			s.correctCount++
		}
		s.choices.SetGraded(msg.ChoiceID, out.Correct)
		s.choices.Locked = true
		s.showingFeedback = true
		s.pendingAdvance = out.AdvancedStep
		s.pendingLoadNext = out.LoadNext
		return s, s.recordAnswer(msg, out.Correct)

	case prac.OutcomeRateLimited:
		s.cooldownSeq++
		return s, s.cooldownTick(s.cooldownSeq)

	case prac.OutcomeSecurityRejected:
		s.securityTripped = true
		return s, nil

	default:
		s.transMsg = out.Err.Error()
		return s, nil
	}
}

func (s *PracticeScreen) handleCooldownTick(msg cooldownTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.cooldownSeq || s.leaving {
		return s, nil
	}
	if s.sub.CoolingDown(time.Now()) {
		return s, s.cooldownTick(msg.Seq)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.transMsg = ""

	if s.showingFeedback {
		switch key {
		case "h", "H":
			return s, s.requestHint()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s.dismissFeedback()
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "enter":
		return s, s.submit()

	case "n", "N":
		s.loading = true
		return s, s.loadNext()

	case "t", "T":
		s.cycleTypeFilter()
		return s, nil

	case "p", "P":
		return s, s.openPlaylist()

	case "up", "down", "k", "j":
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		s.sub.SelectedChoiceID = s.choices.SelectedID()
		return s, cmd
	}

	return s, nil
}

// dismissFeedback leaves the feedback overlay. A pending step advance
// rebuilds the choice view for the already-advanced step; a pending
// load-next fetches a fresh item.
func (s *PracticeScreen) dismissFeedback() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.hintText = ""

	switch {
	case s.pendingAdvance:
		s.pendingAdvance = false
		s.sub.Reset()
		s.resetStepView()
		return s, nil
	case s.pendingLoadNext:
		s.pendingLoadNext = false
		s.loading = true
		return s, s.loadNext()
	default:
		// Incorrect with no advance: retry the same step.
		s.choices.ClearGrade()
		s.choices.Locked = false
		s.sub.LastResult = prac.ResultNone
		s.sub.Explanation = ""
		return s, nil
	}
}

// resetStepView rebuilds the choice list from the active step.
func (s *PracticeScreen) resetStepView() {
	s.choices = components.NewChoiceList(s.seq.OrderedChoices())
	s.sub.SelectedChoiceID = s.choices.SelectedID()
}

func (s *PracticeScreen) cycleTypeFilter() {
	if len(s.types) == 0 {
		return
	}
	s.typeIdx = (s.typeIdx + 1) % (len(s.types) + 1)
	if s.typeIdx == 0 {
		s.filter.ClearType()
		return
	}
	s.filter.SetType(s.types[s.typeIdx-1])
}

func (s *PracticeScreen) canHint() bool {
	return s.hinter != nil && s.sub.LastResult == prac.ResultIncorrect && !s.hintLoading
}

func (s *PracticeScreen) canSubmit() bool {
	return !s.submitting &&
		!s.securityTripped &&
		s.sess.Ready() &&
		s.seq.HasItem() &&
		s.sub.SelectedChoiceID != "" &&
		!s.sub.CoolingDown(time.Now())
}

func (s *PracticeScreen) bootstrap() tea.Cmd {
	return func() tea.Msg {
		sess, err := s.svc.CreateSession(context.Background())
		return bootstrapMsg{Session: sess, Err: err}
	}
}

func (s *PracticeScreen) fetchTypes() tea.Cmd {
	return func() tea.Msg {
		types, err := s.svc.AvailableTypes(context.Background())
		return typesMsg{Types: types, Err: err}
	}
}

func (s *PracticeScreen) loadNext() tea.Cmd {
	itemType := s.filter.Type
	return func() tea.Msg {
		payload, err := s.svc.NextItem(context.Background(), itemType)
		return itemMsg{Payload: payload, Err: err}
	}
}

// submit builds the request on the update loop and dispatches only the
// network call from the command; the response is applied back on the
// loop in handleSubmit, so the sequencer and submission state are never
// touched off it.
func (s *PracticeScreen) submit() tea.Cmd {
	if !s.canSubmit() {
		return nil
	}
	req, ok := s.engine.Request(s.sess, &s.seq, &s.sub)
	if !ok {
		return nil
	}
	s.submitting = true
	token := s.sess.CSRFToken
	return func() tea.Msg {
		res, err := s.svc.SubmitAnswer(context.Background(), req, token)
		return submitMsg{Result: res, Err: err, ChoiceID: req.ChoiceID, StepID: req.StepID}
	}
}

// recordAnswer appends the graded submission to the local history log.
// The step id comes from the message, not the sequencer: by the time
// the grade lands a next_step response has already advanced the active
// step. Best effort: a failed append never disturbs the attempt loop.
func (s *PracticeScreen) recordAnswer(msg submitMsg, correct bool) tea.Cmd {
	if s.events == nil || !s.seq.HasItem() {
		return nil
	}
	payload := s.seq.Payload()
	data := store.AnswerEventData{
		SessionID: s.sess.ID,
		ItemID:    payload.Item.ID,
		ItemType:  payload.Item.Kind,
		StepID:    msg.StepID,
		ChoiceID:  msg.ChoiceID,
		ServeID:   s.seq.ServeID(),
		Correct:   correct,
		TimeMs:    int(time.Since(s.itemStart).Milliseconds()),
	}
	return func() tea.Msg {
		if err := s.events.AppendAnswerEvent(context.Background(), data); err != nil {
			s.log.Debug("answer event append failed", zap.Error(err))
		}
		return nil
	}
}

func (s *PracticeScreen) fetchProgress() tea.Cmd {
	return func() tea.Msg {
		snap, err := s.svc.Progress(context.Background())
		return progressMsg{Snap: snap, Err: err}
	}
}

func (s *PracticeScreen) pollTick() tea.Cmd {
	return tea.Tick(s.pollInterval, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

func (s *PracticeScreen) cooldownTick(seq int) tea.Cmd {
	return tea.Tick(prac.CooldownTick, func(time.Time) tea.Msg {
		return cooldownTickMsg{Seq: seq}
	})
}

func (s *PracticeScreen) requestHint() tea.Cmd {
	if !s.canHint() {
		return nil
	}
	s.hintLoading = true

	step := s.seq.ActiveStep()
	req := hints.Request{
		Question: mathtext.RenderMarkup(s.render, step.Prompt.HTML),
	}
	for _, c := range s.seq.OrderedChoices() {
		text := mathtext.RenderMarkup(s.render, c.Text)
		req.Choices = append(req.Choices, text)
		if c.ID == s.choices.SelectedID() {
			req.Chosen = text
		}
	}

	return func() tea.Msg {
		hint, err := s.hinter.Hint(context.Background(), req)
		if err != nil {
			return hintMsg{Err: err}
		}
		return hintMsg{Text: strings.TrimSpace(hint.Text)}
	}
}

func (s *PracticeScreen) openPlaylist() tea.Cmd {
	pl := playlist.New(s.svc, s.sess, playlist.Callbacks{
		Applied: func(ids []string) { s.filter.SetPlaylist(ids) },
		Cleared: func() { s.filter.ClearPlaylist() },
	})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: pl}
	}
}
