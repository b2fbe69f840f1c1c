package services

import (
	"context"
	"testing"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePod(t *testing.T) {
	ctx := context.Background()
	pods := newFakePodStore()
	svc := NewPodService(pods, &fakeNotifier{})
	users := newFakeUserStore()
	creator := users.addUser("Alice")

	pod, err := svc.CreatePod(ctx, creator.ID, "MVP sprint", "Ship the landing page", models.PodCompEquity)
	require.NoError(t, err)

	// The creator is the first member.
	assert.Equal(t, creator.ID, pod.CreatorID)
	assert.Contains(t, pod.Members, creator.ID)

	all, err := svc.GetAllPods(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreatePodValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewPodService(newFakePodStore(), &fakeNotifier{})
	creator := newFakeUserStore().addUser("Alice")

	_, err := svc.CreatePod(ctx, creator.ID, "", "goal", models.PodCompPaid)
	assert.Error(t, err)

	_, err = svc.CreatePod(ctx, creator.ID, "title", "goal", "exposure")
	assert.Error(t, err)
}

func TestJoinAndLeavePod(t *testing.T) {
	ctx := context.Background()
	pods := newFakePodStore()
	notifier := &fakeNotifier{}
	svc := NewPodService(pods, notifier)
	users := newFakeUserStore()

	creator := users.addUser("Alice")
	joiner := users.addUser("Bob")

	pod, err := svc.CreatePod(ctx, creator.ID, "MVP sprint", "Ship it", models.PodCompVolunteer)
	require.NoError(t, err)

	require.NoError(t, svc.JoinPod(ctx, pod.ID, joiner.ID))
	assert.Contains(t, pods.pods[pod.ID].Members, joiner.ID)

	// The creator hears about the new member.
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, creator.ID, notifier.calls[0].Target)
	assert.Equal(t, models.NotifTypePodInterest, notifier.calls[0].Type)

	require.NoError(t, svc.LeavePod(ctx, pod.ID, joiner.ID))
	assert.NotContains(t, pods.pods[pod.ID].Members, joiner.ID)
}
