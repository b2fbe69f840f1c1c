package services

import (
	"context"
	"fmt"
	"math"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchService computes founder-DNA compatibility between surveyed users.
type MatchService struct {
	repo     MatchStore
	userRepo UserStore
}

func NewMatchService(repo MatchStore, userRepo UserStore) *MatchService {
	return &MatchService{repo: repo, userRepo: userRepo}
}

// CompatibilityScore scores two answer maps over the fixed survey questions:
// one point per question where both answers are set and equal, scaled to a
// rounded percentage. Missing answers simply don't match. Symmetric and
// bounded to 0..100 by construction.
func CompatibilityScore(a, b map[string]string) int {
	score := 0
	for _, q := range models.SurveyQuestions {
		av, aok := a[q]
		bv, bok := b[q]
		if aok && bok && av != "" && av == bv {
			score++
		}
	}
	return int(math.Round(float64(score) / float64(len(models.SurveyQuestions)) * 100))
}

// SubmitSurvey stores the user's answers and recomputes their matches
// against every other surveyed user.
func (s *MatchService) SubmitSurvey(ctx context.Context, userID primitive.ObjectID, answers map[string]string) error {
	if len(answers) == 0 {
		return fmt.Errorf("survey answers are required")
	}

	// Keep only the known questions; the survey shape is fixed.
	filtered := make(map[string]string, len(models.SurveyQuestions))
	for _, q := range models.SurveyQuestions {
		if v, ok := answers[q]; ok && v != "" {
			filtered[q] = v
		}
	}
	if len(filtered) == 0 {
		return fmt.Errorf("no valid survey answers provided")
	}

	if _, err := s.userRepo.UpdateUser(ctx, userID, map[string]interface{}{"survey_answers": filtered}); err != nil {
		return fmt.Errorf("failed to save survey answers: %v", err)
	}

	return s.recomputeFor(ctx, userID, filtered)
}

// ListMatches returns the user's matches best-first, with partner profiles
// resolved in one batched read.
func (s *MatchService) ListMatches(ctx context.Context, userID primitive.ObjectID, limit int64) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	matches, err := s.repo.GetMatchesForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []MatchResult{}, nil
	}

	partnerIDs := make([]primitive.ObjectID, 0, len(matches))
	for _, m := range matches {
		partnerIDs = append(partnerIDs, matchPartner(m, userID))
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve match partners: %v", err)
	}
	byID := make(map[primitive.ObjectID]models.PublicUser, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Public()
	}

	results := make([]MatchResult, 0, len(matches))
	for _, m := range matches {
		pid := matchPartner(m, userID)
		partner, found := byID[pid]
		if !found {
			continue // partner account deleted
		}
		results = append(results, MatchResult{Partner: partner, Score: m.Score})
	}
	return results, nil
}

// MatchResult is a match joined with the partner's public profile.
type MatchResult struct {
	Partner models.PublicUser `json:"partner"`
	Score   int               `json:"score"`
}

// RefreshAllMatches recomputes every pair among surveyed users. Run nightly
// by the scheduler to repair matches left stale by partial failures.
func (s *MatchService) RefreshAllMatches(ctx context.Context) error {
	users, err := s.userRepo.GetSurveyedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch surveyed users: %v", err)
	}

	for i := range users {
		for j := i + 1; j < len(users); j++ {
			score := CompatibilityScore(users[i].SurveyAnswers, users[j].SurveyAnswers)
			if err := s.repo.UpsertMatch(ctx, users[i].ID, users[j].ID, score); err != nil {
				logrus.WithError(err).Warn("Failed to refresh match")
			}
		}
	}

	logrus.Infof("Refreshed matches for %d surveyed users", len(users))
	return nil
}

func (s *MatchService) recomputeFor(ctx context.Context, userID primitive.ObjectID, answers map[string]string) error {
	others, err := s.userRepo.GetSurveyedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch surveyed users: %v", err)
	}

	for i := range others {
		if others[i].ID == userID {
			continue
		}
		score := CompatibilityScore(answers, others[i].SurveyAnswers)
		if err := s.repo.UpsertMatch(ctx, userID, others[i].ID, score); err != nil {
			logrus.WithError(err).Warn("Failed to upsert match")
		}
	}
	return nil
}

func matchPartner(m models.DNAMatch, userID primitive.ObjectID) primitive.ObjectID {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}
