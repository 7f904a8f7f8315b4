package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/gamification"
	"github.com/dafibh/finwise/finwise-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ChallengeService keeps a user's challenges and progress in step with their records
type ChallengeService struct {
	snapshots  *SnapshotService
	challenges domain.RecordStore[*domain.Challenge]
	progress   domain.DocumentStore[domain.UserProgress]
	daily      domain.RecordStore[*domain.DailyEntry]
	publisher  websocket.EventPublisher
	now        func() time.Time
	logger     zerolog.Logger
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(snapshots *SnapshotService, stores domain.Stores, publisher websocket.EventPublisher) *ChallengeService {
	return &ChallengeService{
		snapshots:  snapshots,
		challenges: stores.Challenges,
		progress:   stores.Progress,
		daily:      stores.DailyEntries,
		publisher:  publisher,
		now:        time.Now,
		logger:     log.With().Str("component", "challenge_service").Logger(),
	}
}

// RefreshResult summarizes one refresh
type RefreshResult struct {
	Challenges []*domain.Challenge `json:"challenges"`
	Generated  []*domain.Challenge `json:"generated"`
	Completed  []*domain.Challenge `json:"completed"`
	Expired    []*domain.Challenge `json:"expired"`
	Progress   domain.UserProgress `json:"progress"`
}

// List returns the user's challenges, live ones first and newest first within each group
func (s *ChallengeService) List(ctx context.Context, userID uuid.UUID, liveOnly bool) ([]*domain.Challenge, error) {
	all, err := s.challenges.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Challenge, 0, len(all))
	for _, c := range all {
		if !liveOnly || c.IsLive() {
			out = append(out, c)
		}
	}
	sortChallenges(out)
	return out, nil
}

// Refresh recomputes progress on existing challenges, awards points for newly
// completed ones and generates new challenges where none is live.
func (s *ChallengeService) Refresh(ctx context.Context, userID uuid.UUID) (*RefreshResult, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.challenges.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}
	now := s.now()

	result := &RefreshResult{
		Generated: []*domain.Challenge{},
		Completed: []*domain.Challenge{},
		Expired:   []*domain.Challenge{},
	}
	current := make([]*domain.Challenge, 0, len(existing))
	for _, u := range gamification.UpdateChallengeProgress(existing, snap.Records, now) {
		c := u.Challenge
		if u.Changed {
			if c, err = s.challenges.Update(ctx, userID, c); err != nil {
				return nil, fmt.Errorf("save challenge: %w", err)
			}
		}
		if u.JustCompleted {
			result.Completed = append(result.Completed, c)
		}
		if u.Expired {
			result.Expired = append(result.Expired, c)
		}
		current = append(current, c)
	}

	progress, found, err := s.progress.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if !found {
		progress = gamification.NewProgress()
	}
	updated := gamification.ApplyProgress(progress, result.Completed, snap.Records.DailyEntries, now)
	progressChanged := !sameProgress(updated, progress)
	if !found || progressChanged {
		if err := s.progress.Put(ctx, userID, updated); err != nil {
			return nil, fmt.Errorf("save progress: %w", err)
		}
	}
	result.Progress = updated

	for _, c := range gamification.GenerateChallenges(snap.Records, current, now) {
		created, err := s.challenges.Create(ctx, userID, c)
		if err != nil {
			return nil, fmt.Errorf("save challenge: %w", err)
		}
		result.Generated = append(result.Generated, created)
		current = append(current, created)
	}

	sortChallenges(current)
	result.Challenges = current

	s.publish(userID, result, progressChanged)

	s.logger.Debug().
		Str("user_id", userID.String()).
		Int("generated", len(result.Generated)).
		Int("completed", len(result.Completed)).
		Int("expired", len(result.Expired)).
		Msg("Challenges refreshed")
	return result, nil
}

// Progress returns the user's progress with streaks recomputed for today
func (s *ChallengeService) Progress(ctx context.Context, userID uuid.UUID) (domain.UserProgress, error) {
	progress, found, err := s.progress.Get(ctx, userID)
	if err != nil {
		return domain.UserProgress{}, err
	}
	if !found {
		progress = gamification.NewProgress()
	}
	entries, err := s.daily.List(ctx, userID)
	if err != nil {
		return domain.UserProgress{}, err
	}
	return gamification.ApplyProgress(progress, nil, entries, s.now()), nil
}

func (s *ChallengeService) publish(userID uuid.UUID, result *RefreshResult, progressChanged bool) {
	for _, c := range result.Completed {
		s.publisher.Publish(userID, websocket.ChallengeCompleted(c))
	}
	for _, c := range result.Expired {
		s.publisher.Publish(userID, websocket.ChallengeExpired(c))
	}
	if len(result.Generated) > 0 {
		s.publisher.Publish(userID, websocket.ChallengesGenerated(result.Generated))
	}
	if progressChanged {
		s.publisher.Publish(userID, websocket.ProgressUpdated(result.Progress))
	}
}

func sortChallenges(cs []*domain.Challenge) {
	sort.SliceStable(cs, func(i, j int) bool {
		li, lj := cs[i].IsLive(), cs[j].IsLive()
		if li != lj {
			return li
		}
		return cs[i].CreatedAt.After(cs[j].CreatedAt)
	})
}

func sameProgress(a, b domain.UserProgress) bool {
	if a.TotalPoints != b.TotalPoints || a.Level != b.Level ||
		a.CurrentStreak != b.CurrentStreak || a.LongestStreak != b.LongestStreak ||
		a.ChallengesCompleted != b.ChallengesCompleted {
		return false
	}
	if a.LastActivityDate == nil || b.LastActivityDate == nil {
		return a.LastActivityDate == b.LastActivityDate
	}
	return a.LastActivityDate.Equal(*b.LastActivityDate)
}
