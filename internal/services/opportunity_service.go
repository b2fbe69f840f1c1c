package services

import (
	"context"
	"fmt"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OpportunityService handles the job-like opportunities board.
type OpportunityService struct {
	repo     OpportunityStore
	notifier Notifier
}

func NewOpportunityService(repo OpportunityStore, notifier Notifier) *OpportunityService {
	return &OpportunityService{repo: repo, notifier: notifier}
}

// CreateOpportunity posts a new opening.
func (s *OpportunityService) CreateOpportunity(ctx context.Context, posterID primitive.ObjectID, title, description, roleSought, location string) (*models.Opportunity, error) {
	if title == "" || description == "" || roleSought == "" {
		return nil, fmt.Errorf("title, description and role are required")
	}

	opp := &models.Opportunity{
		Title:       title,
		Description: description,
		RoleSought:  roleSought,
		Location:    location,
		PosterID:    posterID,
		Status:      models.OpportunityOpen,
	}
	return s.repo.CreateOpportunity(ctx, opp)
}

func (s *OpportunityService) GetOpportunity(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error) {
	return s.repo.GetOpportunityByID(ctx, id)
}

func (s *OpportunityService) GetOpenOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	return s.repo.GetOpenOpportunities(ctx)
}

// Apply records an application and notifies the poster. Applying to a closed
// opportunity or your own posting is rejected.
func (s *OpportunityService) Apply(ctx context.Context, oppID, userID primitive.ObjectID) error {
	opp, err := s.repo.GetOpportunityByID(ctx, oppID)
	if err != nil {
		return fmt.Errorf("failed to get opportunity: %v", err)
	}
	if opp.Status != models.OpportunityOpen {
		return fmt.Errorf("opportunity is closed")
	}
	if opp.PosterID == userID {
		return fmt.Errorf("cannot apply to your own opportunity")
	}

	if err := s.repo.AddApplicant(ctx, oppID, userID); err != nil {
		return err
	}

	s.notifier.Notify(ctx, opp.PosterID, models.NotifTypeApplication,
		"New application", fmt.Sprintf("applied to \"%s\"", opp.Title), &userID, &oppID)
	return nil
}

// Withdraw removes a previous application.
func (s *OpportunityService) Withdraw(ctx context.Context, oppID, userID primitive.ObjectID) error {
	return s.repo.RemoveApplicant(ctx, oppID, userID)
}

// Close marks the opportunity closed; only the poster may do so.
func (s *OpportunityService) Close(ctx context.Context, oppID, requesterID primitive.ObjectID) error {
	opp, err := s.repo.GetOpportunityByID(ctx, oppID)
	if err != nil {
		return fmt.Errorf("failed to get opportunity: %v", err)
	}
	if opp.PosterID != requesterID {
		return fmt.Errorf("only the poster can close an opportunity")
	}
	return s.repo.UpdateStatus(ctx, oppID, models.OpportunityClosed)
}

// Delete removes the posting; only the poster or an admin may do so.
func (s *OpportunityService) Delete(ctx context.Context, oppID, requesterID primitive.ObjectID, requesterRole string) error {
	opp, err := s.repo.GetOpportunityByID(ctx, oppID)
	if err != nil {
		return fmt.Errorf("failed to get opportunity: %v", err)
	}
	if opp.PosterID != requesterID && requesterRole != models.RoleAdmin {
		return fmt.Errorf("only the poster or an admin can delete an opportunity")
	}
	return s.repo.DeleteOpportunity(ctx, oppID)
}
