// internal/scheduler/scheduler.go
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/user/ircwire/internal/state"
)

// Handler is the callback invoked when a scheduled announcement fires.
type Handler func(target, text string)

// Scheduler evaluates cron expressions from the announcement store and
// fires announcements through a handler callback. An optional keep-alive
// entry pings the server on its own schedule.
type Scheduler struct {
	store   *state.AnnouncementStore
	handler Handler
	cron    *cron.Cron

	keepaliveSpec string
	keepaliveFn   func()
}

// cronParser accepts both standard 5-field cron expressions and 6-field
// expressions with an optional seconds field.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// New creates a new Scheduler backed by the given announcement store. The
// handler is called each time a scheduled announcement fires.
func New(store *state.AnnouncementStore, handler Handler) *Scheduler {
	return &Scheduler{
		store:   store,
		handler: handler,
		cron:    cron.New(cron.WithParser(cronParser)),
	}
}

// SetKeepalive registers a function to run on the given cron schedule,
// typically a server PING. Must be called before Start.
func (s *Scheduler) SetKeepalive(spec string, fn func()) {
	s.keepaliveSpec = spec
	s.keepaliveFn = fn
}

// Start loads announcements from the store, registers enabled ones that
// have a schedule as cron entries, and starts the cron ticker.
func (s *Scheduler) Start() error {
	items, err := s.store.List()
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.Schedule == "" || !item.Enabled {
			continue
		}

		// Capture loop variables for the closure.
		target := item.Target
		text := item.Text
		schedule := item.Schedule
		name := item.Name

		_, err := s.cron.AddFunc(schedule, func() {
			slog.Info("cron firing announcement", "name", name, "target", target)
			s.handler(target, text)
		})
		if err != nil {
			slog.Error("invalid cron schedule", "name", name, "schedule", schedule, "error", err)
			continue
		}
		slog.Info("scheduled announcement", "name", name, "schedule", schedule)
	}

	if s.keepaliveSpec != "" && s.keepaliveFn != nil {
		if _, err := s.cron.AddFunc(s.keepaliveSpec, s.keepaliveFn); err != nil {
			slog.Error("invalid keepalive schedule", "schedule", s.keepaliveSpec, "error", err)
		} else {
			slog.Info("scheduled keepalive", "schedule", s.keepaliveSpec)
		}
	}

	s.cron.Start()
	return nil
}

// Reload stops the existing cron, creates a new one, and calls Start()
// again.
func (s *Scheduler) Reload() error {
	s.cron.Stop()
	s.cron = cron.New(cron.WithParser(cronParser))
	return s.Start()
}

// Stop stops the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
