// internal/scheduler/scheduler_test.go
package scheduler

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user/ircwire/internal/state"
)

func TestSchedulerFiresAnnouncement(t *testing.T) {
	dir := t.TempDir()
	store := state.NewAnnouncementStore(filepath.Join(dir, "announcements.json"))

	item := &state.Announcement{
		Name:     "every-second",
		Target:   "#team",
		Text:     "tick",
		Schedule: "* * * * * *",
		Enabled:  true,
	}
	if err := store.Add(item); err != nil {
		t.Fatal(err)
	}

	var fires atomic.Int32
	handler := func(target, text string) {
		fires.Add(1)
	}

	sched := New(store, handler)
	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	defer sched.Stop()

	// Wait up to 2.5 seconds for at least one fire
	deadline := time.After(2500 * time.Millisecond)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			t.Fatalf("handler did not fire within 2.5s, fires=%d", fires.Load())
		case <-ticker.C:
			if fires.Load() > 0 {
				return
			}
		}
	}
}

func TestSchedulerSkipsDisabled(t *testing.T) {
	dir := t.TempDir()
	store := state.NewAnnouncementStore(filepath.Join(dir, "announcements.json"))

	item := &state.Announcement{
		Name:     "disabled",
		Target:   "#team",
		Text:     "should not fire",
		Schedule: "* * * * * *",
		Enabled:  false,
	}
	if err := store.Add(item); err != nil {
		t.Fatal(err)
	}

	var fires atomic.Int32
	handler := func(target, text string) {
		fires.Add(1)
	}

	sched := New(store, handler)
	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	defer sched.Stop()

	time.Sleep(2 * time.Second)

	if n := fires.Load(); n != 0 {
		t.Errorf("expected 0 fires for disabled announcement, got %d", n)
	}
}

func TestSchedulerNoSchedule(t *testing.T) {
	dir := t.TempDir()
	store := state.NewAnnouncementStore(filepath.Join(dir, "announcements.json"))

	item := &state.Announcement{
		Name:    "manual-only",
		Target:  "#team",
		Text:    "sent by hand",
		Enabled: true,
	}
	if err := store.Add(item); err != nil {
		t.Fatal(err)
	}

	var fires atomic.Int32
	handler := func(target, text string) {
		fires.Add(1)
	}

	sched := New(store, handler)
	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	defer sched.Stop()

	time.Sleep(2 * time.Second)

	if n := fires.Load(); n != 0 {
		t.Errorf("expected 0 fires for announcement with no schedule, got %d", n)
	}
}

func TestSchedulerKeepalive(t *testing.T) {
	dir := t.TempDir()
	store := state.NewAnnouncementStore(filepath.Join(dir, "announcements.json"))

	var pings atomic.Int32
	sched := New(store, func(target, text string) {})
	sched.SetKeepalive("* * * * * *", func() {
		pings.Add(1)
	})
	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	defer sched.Stop()

	deadline := time.After(2500 * time.Millisecond)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			t.Fatalf("keepalive did not fire within 2.5s, pings=%d", pings.Load())
		case <-ticker.C:
			if pings.Load() > 0 {
				return
			}
		}
	}
}
