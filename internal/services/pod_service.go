package services

import (
	"context"
	"fmt"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PodService handles cooperative project groups.
type PodService struct {
	repo     PodStore
	notifier Notifier
}

func NewPodService(repo PodStore, notifier Notifier) *PodService {
	return &PodService{repo: repo, notifier: notifier}
}

// CreatePod creates a pod with the creator as its first member.
func (s *PodService) CreatePod(ctx context.Context, creatorID primitive.ObjectID, title, goal, compensation string) (*models.Pod, error) {
	if title == "" || goal == "" {
		return nil, fmt.Errorf("pod title and goal are required")
	}
	switch compensation {
	case models.PodCompEquity, models.PodCompPaid, models.PodCompRevShare, models.PodCompVolunteer:
	default:
		return nil, fmt.Errorf("invalid compensation type: %s", compensation)
	}

	pod := &models.Pod{
		Title:        title,
		Goal:         goal,
		Compensation: compensation,
		CreatorID:    creatorID,
		Members:      []primitive.ObjectID{creatorID},
	}
	return s.repo.CreatePod(ctx, pod)
}

func (s *PodService) GetPod(ctx context.Context, id primitive.ObjectID) (*models.Pod, error) {
	return s.repo.GetPodByID(ctx, id)
}

func (s *PodService) GetAllPods(ctx context.Context) ([]models.Pod, error) {
	return s.repo.GetAllPods(ctx)
}

// JoinPod adds the user to the pod's members and notifies the creator.
func (s *PodService) JoinPod(ctx context.Context, podID, userID primitive.ObjectID) error {
	pod, err := s.repo.GetPodByID(ctx, podID)
	if err != nil {
		return fmt.Errorf("failed to get pod: %v", err)
	}

	if err := s.repo.AddMember(ctx, podID, userID); err != nil {
		return err
	}

	s.notifier.Notify(ctx, pod.CreatorID, models.NotifTypePodInterest,
		"Pod interest", fmt.Sprintf("joined your pod \"%s\"", pod.Title), &userID, &podID)
	return nil
}

// LeavePod removes the user from the pod's members.
func (s *PodService) LeavePod(ctx context.Context, podID, userID primitive.ObjectID) error {
	return s.repo.RemoveMember(ctx, podID, userID)
}
