package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs report jobs on cron schedules. A job that is still running
// when its next tick fires is skipped for that tick.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID // report_id -> entry_id
	jobsMux sync.RWMutex
}

// NewScheduler creates a new scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(), // Support seconds in cron expressions
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		jobs: make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	log.Println("⏰ Starting report scheduler...")
	s.cron.Start()
	log.Println("✅ Report scheduler started")
}

// Stop stops the scheduler and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	log.Println("⏰ Stopping report scheduler...")
	ctx := s.cron.Stop()
	log.Println("✅ Report scheduler stopped")
	return ctx
}

// AddReport schedules job under reportID, replacing any previous schedule.
// schedule is a cron expression with seconds (e.g. "0 0 7 * * MON" for
// Mondays at 07:00).
func (s *Scheduler) AddReport(reportID string, schedule string, job func()) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	// Remove existing job if any
	if entryID, exists := s.jobs[reportID]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, reportID)
	}

	entryID, err := s.cron.AddFunc(schedule, job)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.jobs[reportID] = entryID
	log.Printf("   ✅ Scheduled report %s: %s", reportID, schedule)

	return nil
}

// RemoveReport removes a report from the scheduler
func (s *Scheduler) RemoveReport(reportID string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[reportID]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, reportID)
		log.Printf("   ✅ Removed scheduled report: %s", reportID)
	}
}

// GetScheduledReports returns all currently scheduled report IDs, sorted
func (s *Scheduler) GetScheduledReports() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	reportIDs := make([]string, 0, len(s.jobs))
	for reportID := range s.jobs {
		reportIDs = append(reportIDs, reportID)
	}
	sort.Strings(reportIDs)

	return reportIDs
}

// NextRun returns the next activation time of a report. It is zero before
// Start or when the report is not scheduled.
func (s *Scheduler) NextRun(reportID string) time.Time {
	s.jobsMux.RLock()
	entryID, exists := s.jobs[reportID]
	s.jobsMux.RUnlock()

	if !exists {
		return time.Time{}
	}
	return s.cron.Entry(entryID).Next
}
