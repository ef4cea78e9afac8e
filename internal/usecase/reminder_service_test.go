package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"
)

type stubSMSSender struct {
	mu     sync.Mutex
	phones []string
	fail   bool
}

func (s *stubSMSSender) SendSMS(_ context.Context, phone, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail {
		return context.DeadlineExceeded
	}
	s.phones = append(s.phones, phone)
	return nil
}

func (s *stubSMSSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]string(nil), s.phones...)
	sort.Strings(out)
	return out
}

func newReminderFixture(t *testing.T, sender smsSender) (*serviceFixture, *ReminderService) {
	t.Helper()

	f := newServiceFixture(t)
	svc := NewReminderService(f.leagueRepo, f.seasonRepo, f.pickRepo, f.userRepo, sender, 24*time.Hour, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }
	return f, svc
}

func TestReminderService_SendPickReminders(t *testing.T) {
	sender := &stubSMSSender{}
	f, svc := newReminderFixture(t, sender)

	item := f.createLeagueWithMembers(t, "user-2", "user-3")
	if _, err := f.drafts.RunDraft(t.Context(), item.ID, "user-1"); err != nil {
		t.Fatalf("run draft: %v", err)
	}

	// Ana already has a starter; Ben and Cam do not, and Cam has no phone.
	if _, err := f.picks.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:   item.ID,
		UserID:     "user-1",
		EpisodeID:  "ep-48-01",
		CastawayID: "cast-48-mara",
	}); err != nil {
		t.Fatalf("submit pick: %v", err)
	}

	result, err := svc.SendPickReminders(t.Context(), SendPickRemindersInput{})
	if err != nil {
		t.Fatalf("send pick reminders: %v", err)
	}

	if result.EpisodeID != "ep-48-01" || result.EpisodeNumber != 1 {
		t.Fatalf("unexpected episode: %+v", result)
	}
	if result.RecipientCount != 2 || result.SentCount != 1 || result.SkippedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if got := sender.sent(); len(got) != 1 || got[0] != "+15550100002" {
		t.Fatalf("unexpected recipients: %v", got)
	}
}

func TestReminderService_SendPickReminders_OutsideWindow(t *testing.T) {
	sender := &stubSMSSender{}
	f, svc := newReminderFixture(t, sender)
	svc.now = func() time.Time { return beforeFirstLock }

	item := f.createLeagueWithMembers(t, "user-2")
	if _, err := f.drafts.RunDraft(t.Context(), item.ID, "user-1"); err != nil {
		t.Fatalf("run draft: %v", err)
	}

	result, err := svc.SendPickReminders(t.Context(), SendPickRemindersInput{})
	if err != nil {
		t.Fatalf("send pick reminders: %v", err)
	}
	if result.EpisodeID != "" || result.RecipientCount != 0 {
		t.Fatalf("expected no reminder window, got %+v", result)
	}
	if got := sender.sent(); len(got) != 0 {
		t.Fatalf("unexpected sends: %v", got)
	}
}

func TestReminderService_SendPickReminders_DryRun(t *testing.T) {
	sender := &stubSMSSender{}
	f, svc := newReminderFixture(t, sender)

	item := f.createLeagueWithMembers(t, "user-2")
	if _, err := f.drafts.RunDraft(t.Context(), item.ID, "user-1"); err != nil {
		t.Fatalf("run draft: %v", err)
	}

	result, err := svc.SendPickReminders(t.Context(), SendPickRemindersInput{DryRun: true})
	if err != nil {
		t.Fatalf("send pick reminders: %v", err)
	}
	if result.SentCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected dry run counts: %+v", result)
	}
	if got := sender.sent(); len(got) != 0 {
		t.Fatalf("dry run must not send: %v", got)
	}
}

func TestReminderService_SendPickReminders_CountsFailures(t *testing.T) {
	sender := &stubSMSSender{fail: true}
	f, svc := newReminderFixture(t, sender)

	item := f.createLeagueWithMembers(t, "user-2")
	if _, err := f.drafts.RunDraft(t.Context(), item.ID, "user-1"); err != nil {
		t.Fatalf("run draft: %v", err)
	}

	result, err := svc.SendPickReminders(t.Context(), SendPickRemindersInput{})
	if err != nil {
		t.Fatalf("send pick reminders: %v", err)
	}
	if result.FailedCount != 2 || result.SentCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestReminderService_SkipsLeaguesBeforeDraft(t *testing.T) {
	sender := &stubSMSSender{}
	f, svc := newReminderFixture(t, sender)

	f.createLeagueWithMembers(t, "user-2")

	result, err := svc.SendPickReminders(t.Context(), SendPickRemindersInput{})
	if err != nil {
		t.Fatalf("send pick reminders: %v", err)
	}
	if result.LeagueCount != 0 || result.RecipientCount != 0 {
		t.Fatalf("pending leagues must be skipped, got %+v", result)
	}
}
