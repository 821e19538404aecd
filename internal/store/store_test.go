package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAppendAndQueryAnswerEvents(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := context.Background()

	events := []AnswerEventData{
		{SessionID: "s_1", ItemID: "i_1", ItemType: "algebra", StepID: "step_1", ChoiceID: "A", ServeID: "sv1", Correct: true, TimeMs: 1200},
		{SessionID: "s_1", ItemID: "i_2", ItemType: "geometry", StepID: "step_1", ChoiceID: "B", Correct: false, TimeMs: 900},
	}
	for _, e := range events {
		if err := repo.AppendAnswerEvent(ctx, e); err != nil {
			t.Fatalf("AppendAnswerEvent: %v", err)
		}
	}

	records, err := repo.RecentAnswers(ctx, 10)
	if err != nil {
		t.Fatalf("RecentAnswers: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.ID == "" || rec.SessionID != "s_1" {
			t.Errorf("unexpected record: %+v", rec)
		}
	}
}

func TestRecentAnswersLimit(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "s_1", ItemID: "i_1", StepID: "step_1", ChoiceID: "A",
		}); err != nil {
			t.Fatalf("AppendAnswerEvent: %v", err)
		}
	}

	records, err := repo.RecentAnswers(ctx, 3)
	if err != nil {
		t.Fatalf("RecentAnswers: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}

func TestPurge(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s_1", ItemID: "i_1", StepID: "step_1", ChoiceID: "A"}); err != nil {
		t.Fatalf("AppendAnswerEvent: %v", err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s_1", Action: "start"}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}

	if err := repo.Purge(ctx); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	records, err := repo.RecentAnswers(ctx, 10)
	if err != nil {
		t.Fatalf("RecentAnswers: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after purge, want 0", len(records))
	}
}
