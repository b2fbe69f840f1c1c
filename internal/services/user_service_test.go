package services

import (
	"context"
	"testing"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (*UserService, *fakeUserStore) {
	users := newFakeUserStore()
	svc := NewUserService(users, newFakeNotificationStore(), newFakeMatchStore(), newFakePushStore(), "http://localhost:8080")
	svc.sendMail = func(to, subject, body string) error { return nil }
	return svc, users
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture()

	var sentTo string
	svc.sendMail = func(to, subject, body string) error {
		sentTo = to
		return nil
	}

	created, err := svc.RegisterUser(ctx, &models.User{
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "s3cret-pass",
	})
	require.NoError(t, err)

	// Password is stored hashed, the account starts unverified and roleless.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.HashedPassword), []byte("s3cret-pass")))
	assert.False(t, created.IsVerified)
	assert.Empty(t, created.Role)
	assert.NotEmpty(t, created.VerifyToken)
	assert.Equal(t, "alice@example.com", sentTo)
}

func TestRegisterUserValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture()

	_, err := svc.RegisterUser(ctx, &models.User{Email: "a@b.com", HashedPassword: "x"})
	assert.Error(t, err)

	_, err = svc.RegisterUser(ctx, &models.User{Name: "A", Email: "not-an-email", HashedPassword: "x"})
	assert.Error(t, err)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture()

	first := &models.User{Name: "Alice", Email: "alice@example.com", HashedPassword: "pw"}
	_, err := svc.RegisterUser(ctx, first)
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, &models.User{Name: "Imposter", Email: "alice@example.com", HashedPassword: "pw"})
	assert.Error(t, err)
}

func TestVerifyAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture()

	created, err := svc.RegisterUser(ctx, &models.User{
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "s3cret-pass",
	})
	require.NoError(t, err)

	// Unverified accounts can't log in.
	_, err = svc.AuthenticateUser(ctx, "alice@example.com", "s3cret-pass")
	assert.Error(t, err)

	require.NoError(t, svc.VerifyEmail(ctx, created.VerifyToken))

	user, err := svc.AuthenticateUser(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.AuthenticateUser(ctx, "alice@example.com", "wrong")
	assert.Error(t, err)
}

func TestVerifyEmailBadToken(t *testing.T) {
	svc, _ := newUserFixture()
	assert.Error(t, svc.VerifyEmail(context.Background(), "nope"))
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture()

	created, err := svc.RegisterUser(ctx, &models.User{
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "old-pass",
	})
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, created.VerifyToken))

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@example.com"))
	token := users.users[created.ID].ResetToken
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(ctx, token, "new-pass"))

	_, err = svc.AuthenticateUser(ctx, "alice@example.com", "new-pass")
	assert.NoError(t, err)
	_, err = svc.AuthenticateUser(ctx, "alice@example.com", "old-pass")
	assert.Error(t, err)
}

func TestChooseRole(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture()

	u := users.addUser("Newbie")
	users.users[u.ID].Role = ""

	// Admin can't be self-assigned, junk is rejected.
	_, err := svc.ChooseRole(ctx, u.ID, models.RoleAdmin)
	assert.Error(t, err)
	_, err = svc.ChooseRole(ctx, u.ID, "wizard")
	assert.Error(t, err)

	updated, err := svc.ChooseRole(ctx, u.ID, models.RoleInvestor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInvestor, updated.Role)

	// The role is chosen once.
	_, err = svc.ChooseRole(ctx, u.ID, models.RoleFounder)
	assert.Error(t, err)
}

func TestUpdateProfileAllowlist(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture()
	u := users.addUser("Alice")

	updated, err := svc.UpdateProfile(ctx, u.ID.Hex(), map[string]interface{}{
		"bio":  "building things",
		"role": models.RoleAdmin, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, "building things", updated.Bio)
	assert.NotEqual(t, models.RoleAdmin, updated.Role)

	_, err = svc.UpdateProfile(ctx, u.ID.Hex(), map[string]interface{}{"coins": 9999})
	assert.Error(t, err)
}

func TestDeleteAccountCleansUp(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	notifs := newFakeNotificationStore()
	matches := newFakeMatchStore()
	pushes := newFakePushStore()
	svc := NewUserService(users, notifs, matches, pushes, "http://localhost:8080")
	svc.sendMail = func(to, subject, body string) error { return nil }

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")
	require.NoError(t, users.AddFollow(ctx, bob.ID, alice.ID))
	require.NoError(t, notifs.CreateNotification(ctx, &models.Notification{UserID: alice.ID, Type: models.NotifTypeLike}))
	require.NoError(t, matches.UpsertMatch(ctx, alice.ID, bob.ID, 50))

	require.NoError(t, svc.DeleteAccount(ctx, alice.ID))

	_, err := users.GetUserByID(ctx, alice.ID)
	assert.Error(t, err)
	assert.Empty(t, users.users[bob.ID].Following)
	assert.Empty(t, notifs.notifications)
	assert.Empty(t, matches.matches)
}

func TestSearchUsersEmptyQuery(t *testing.T) {
	svc, users := newUserFixture()
	users.addUser("Alice")

	results, err := svc.SearchUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, results)
}
