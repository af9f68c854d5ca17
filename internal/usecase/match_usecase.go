package usecase

import (
	"context"
	"log"

	"skill-match/internal/domain/matching"
	"skill-match/internal/repository"
)

type MatchInput struct {
	Skills        []string
	JobPreference string
}

type MatchOutput struct {
	SessionID string
	Matches   []matching.Result
}

type MatchUsecase interface {
	FindMatches(ctx context.Context, in MatchInput) (MatchOutput, error)
}

type Match struct {
	engine   MatchEngine
	sessions repository.SessionRepository
	observer Observer
	logger   *log.Logger
}

func NewMatchUsecase(engine MatchEngine, sessions repository.SessionRepository, observer Observer, logger *log.Logger) *Match {
	return &Match{engine: engine, sessions: sessions, observer: observer, logger: logger}
}

// FindMatches ranks jobs for the skill set and records the request as a
// session. A failed session write is logged and does not fail the match.
func (u *Match) FindMatches(ctx context.Context, in MatchInput) (MatchOutput, error) {
	skills := matching.SkillSet(in.Skills).Clean()
	if len(skills) == 0 {
		return MatchOutput{}, ErrInvalidInput
	}

	results, err := u.engine.FindMatches(ctx, skills, in.JobPreference)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Match] find matches failed skills=%d err=%v", len(skills), err)
		}
		return MatchOutput{}, engineError(err)
	}
	if u.observer != nil {
		u.observer.ObserveResults("match", len(results))
	}

	out := MatchOutput{Matches: results}
	if u.sessions == nil {
		return out, nil
	}

	summaries := make([]repository.MatchSummary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, repository.MatchSummary{
			JobID:      r.JobID,
			Title:      r.Title,
			Score:      r.Score,
			Similarity: r.Similarity,
		})
	}
	s, err := u.sessions.Create(ctx, repository.NewSession{
		Skills:        skills,
		JobPreference: in.JobPreference,
		Matches:       summaries,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Match] session persist failed err=%v", err)
		}
		if u.observer != nil {
			u.observer.SessionPersistFailed()
		}
		return out, nil
	}
	out.SessionID = s.ID.String()
	return out, nil
}
