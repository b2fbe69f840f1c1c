package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the store interfaces. They implement just enough
// semantics for the services under test; anything a test doesn't exercise
// stays trivial.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) addUser(name string) *models.User {
	u := &models.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Email:      strings.ToLower(name) + "@example.com",
		Role:       models.RoleFounder,
		IsVerified: true,
		CreatedAt:  time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserStore) GetUserByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range f.users {
		if token != "" && u.VerifyToken == token {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserStore) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range f.users {
		if token != "" && u.ResetToken == token {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	for k, v := range updates {
		switch k {
		case "name":
			u.Name, _ = v.(string)
		case "bio":
			u.Bio, _ = v.(string)
		case "role":
			u.Role, _ = v.(string)
		case "avatar_url":
			u.AvatarURL, _ = v.(string)
		case "is_verified":
			u.IsVerified, _ = v.(bool)
		case "verify_token":
			u.VerifyToken, _ = v.(string)
		case "reset_token":
			u.ResetToken, _ = v.(string)
		case "reset_token_exp":
			u.ResetTokenExp, _ = v.(time.Time)
		case "hashed_password":
			u.HashedPassword, _ = v.(string)
		case "survey_answers":
			u.SurveyAnswers, _ = v.(map[string]string)
		}
	}
	u.UpdatedAt = time.Now()
	return u, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	all := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	return all, nil
}

func (f *fakeUserStore) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(query)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) AddFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	actor, ok := f.users[actorID]
	target, ok2 := f.users[targetID]
	if !ok || !ok2 {
		return fmt.Errorf("user not found")
	}
	actor.Following = addID(actor.Following, targetID)
	target.Followers = addID(target.Followers, actorID)
	return nil
}

func (f *fakeUserStore) RemoveFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	actor, ok := f.users[actorID]
	target, ok2 := f.users[targetID]
	if !ok || !ok2 {
		return fmt.Errorf("user not found")
	}
	actor.Following = removeID(actor.Following, targetID)
	target.Followers = removeID(target.Followers, actorID)
	return nil
}

func (f *fakeUserStore) RemoveUserFromGraph(ctx context.Context, id primitive.ObjectID) error {
	for _, u := range f.users {
		u.Followers = removeID(u.Followers, id)
		u.Following = removeID(u.Following, id)
	}
	return nil
}

func (f *fakeUserStore) IncrementCoins(ctx context.Context, id primitive.ObjectID, delta int64) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.Coins += delta
	return nil
}

func (f *fakeUserStore) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	if u, ok := f.users[id]; ok {
		u.LastActiveAt = time.Now()
	}
	return nil
}

func (f *fakeUserStore) GetSurveyedUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if len(u.SurveyAnswers) > 0 {
			out = append(out, *u)
		}
	}
	return out, nil
}

func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

type fakePostStore struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (f *fakePostStore) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakePostStore) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, fmt.Errorf("post not found")
	}
	return p, nil
}

func (f *fakePostStore) GetFeed(ctx context.Context, before time.Time, limit int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if before.IsZero() || p.CreatedAt.Before(before) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostStore) GetPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	p, ok := f.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	p.Likes = addID(p.Likes, userID)
	return nil
}

func (f *fakePostStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	p, ok := f.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	p.Likes = removeID(p.Likes, userID)
	return nil
}

func (f *fakePostStore) AddRepost(ctx context.Context, postID, userID primitive.ObjectID) error {
	p, ok := f.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	p.Reposts = addID(p.Reposts, userID)
	return nil
}

func (f *fakePostStore) RemoveRepost(ctx context.Context, postID, userID primitive.ObjectID) error {
	p, ok := f.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	p.Reposts = removeID(p.Reposts, userID)
	return nil
}

func (f *fakePostStore) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	p, ok := f.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	p.Comments = append(p.Comments, *comment)
	return nil
}

func (f *fakePostStore) AddReply(ctx context.Context, postID, commentID primitive.ObjectID, reply *models.Reply) error {
	p, ok := f.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			reply.ID = primitive.NewObjectID()
			reply.CreatedAt = time.Now()
			p.Comments[i].Replies = append(p.Comments[i].Replies, *reply)
			return nil
		}
	}
	return fmt.Errorf("comment not found")
}

func (f *fakePostStore) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) Leaderboard(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	totals := make(map[primitive.ObjectID]*models.LeaderboardEntry)
	for _, p := range f.posts {
		e, ok := totals[p.AuthorID]
		if !ok {
			e = &models.LeaderboardEntry{AuthorID: p.AuthorID, AuthorName: p.AuthorName}
			totals[p.AuthorID] = e
		}
		e.Likes += int64(len(p.Likes))
	}
	out := make([]models.LeaderboardEntry, 0, len(totals))
	for _, e := range totals {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeChatStore struct {
	chats    map[string]*models.Chat
	messages map[primitive.ObjectID][]models.Message
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		chats:    make(map[string]*models.Chat),
		messages: make(map[primitive.ObjectID][]models.Message),
	}
}

func (f *fakeChatStore) GetOrCreateChat(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, error) {
	key := models.ChatPairKey(a, b)
	if chat, ok := f.chats[key]; ok {
		return chat, nil
	}
	chat := &models.Chat{
		ID:           primitive.NewObjectID(),
		PairKey:      key,
		Participants: []primitive.ObjectID{a, b},
		CreatedAt:    time.Now(),
	}
	f.chats[key] = chat
	return chat, nil
}

func (f *fakeChatStore) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	for _, chat := range f.chats {
		if chat.ID == id {
			return chat, nil
		}
	}
	return nil, fmt.Errorf("chat not found")
}

func (f *fakeChatStore) GetUserChats(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	var out []models.Chat
	for _, chat := range f.chats {
		for _, p := range chat.Participants {
			if p == userID {
				out = append(out, *chat)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	return out, nil
}

func (f *fakeChatStore) InsertMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	f.messages[msg.ChatID] = append(f.messages[msg.ChatID], *msg)

	for _, chat := range f.chats {
		if chat.ID == msg.ChatID {
			chat.LastMessage = msg.Content
			chat.LastSenderID = msg.SenderID
			chat.LastMessageAt = msg.CreatedAt
		}
	}
	return msg, nil
}

func (f *fakeChatStore) GetMessages(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error) {
	return f.messages[chatID], nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
	failWrites    bool
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (f *fakeNotificationStore) CreateNotification(ctx context.Context, notif *models.Notification) error {
	if f.failWrites {
		return fmt.Errorf("write failed")
	}
	notif.ID = primitive.NewObjectID()
	notif.CreatedAt = time.Now()
	f.notifications = append(f.notifications, notif)
	return nil
}

func (f *fakeNotificationStore) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, before time.Time, limit int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && (before.IsZero() || n.CreatedAt.Before(before)) {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return fmt.Errorf("notification not found")
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	kept := f.notifications[:0]
	var deleted int64
	for _, n := range f.notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return deleted, nil
}

func (f *fakeNotificationStore) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

type fakePodStore struct {
	pods map[primitive.ObjectID]*models.Pod
}

func newFakePodStore() *fakePodStore {
	return &fakePodStore{pods: make(map[primitive.ObjectID]*models.Pod)}
}

func (f *fakePodStore) CreatePod(ctx context.Context, pod *models.Pod) (*models.Pod, error) {
	pod.ID = primitive.NewObjectID()
	pod.CreatedAt = time.Now()
	f.pods[pod.ID] = pod
	return pod, nil
}

func (f *fakePodStore) GetPodByID(ctx context.Context, id primitive.ObjectID) (*models.Pod, error) {
	p, ok := f.pods[id]
	if !ok {
		return nil, fmt.Errorf("pod not found")
	}
	return p, nil
}

func (f *fakePodStore) GetAllPods(ctx context.Context) ([]models.Pod, error) {
	var out []models.Pod
	for _, p := range f.pods {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePodStore) AddMember(ctx context.Context, podID, userID primitive.ObjectID) error {
	p, ok := f.pods[podID]
	if !ok {
		return fmt.Errorf("pod not found")
	}
	p.Members = addID(p.Members, userID)
	return nil
}

func (f *fakePodStore) RemoveMember(ctx context.Context, podID, userID primitive.ObjectID) error {
	p, ok := f.pods[podID]
	if !ok {
		return fmt.Errorf("pod not found")
	}
	p.Members = removeID(p.Members, userID)
	return nil
}

type fakeOpportunityStore struct {
	opportunities map[primitive.ObjectID]*models.Opportunity
}

func newFakeOpportunityStore() *fakeOpportunityStore {
	return &fakeOpportunityStore{opportunities: make(map[primitive.ObjectID]*models.Opportunity)}
}

func (f *fakeOpportunityStore) CreateOpportunity(ctx context.Context, opp *models.Opportunity) (*models.Opportunity, error) {
	opp.ID = primitive.NewObjectID()
	opp.CreatedAt = time.Now()
	f.opportunities[opp.ID] = opp
	return opp, nil
}

func (f *fakeOpportunityStore) GetOpportunityByID(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error) {
	o, ok := f.opportunities[id]
	if !ok {
		return nil, fmt.Errorf("opportunity not found")
	}
	return o, nil
}

func (f *fakeOpportunityStore) GetOpenOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, o := range f.opportunities {
		if o.Status == models.OpportunityOpen {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOpportunityStore) AddApplicant(ctx context.Context, oppID, userID primitive.ObjectID) error {
	o, ok := f.opportunities[oppID]
	if !ok {
		return fmt.Errorf("opportunity not found")
	}
	o.Applicants = addID(o.Applicants, userID)
	return nil
}

func (f *fakeOpportunityStore) RemoveApplicant(ctx context.Context, oppID, userID primitive.ObjectID) error {
	o, ok := f.opportunities[oppID]
	if !ok {
		return fmt.Errorf("opportunity not found")
	}
	o.Applicants = removeID(o.Applicants, userID)
	return nil
}

func (f *fakeOpportunityStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	o, ok := f.opportunities[id]
	if !ok {
		return fmt.Errorf("opportunity not found")
	}
	o.Status = status
	return nil
}

func (f *fakeOpportunityStore) DeleteOpportunity(ctx context.Context, id primitive.ObjectID) error {
	delete(f.opportunities, id)
	return nil
}

type fakeMatchStore struct {
	matches map[string]*models.DNAMatch
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{matches: make(map[string]*models.DNAMatch)}
}

func (f *fakeMatchStore) UpsertMatch(ctx context.Context, userA, userB primitive.ObjectID, score int) error {
	key := models.ChatPairKey(userA, userB)
	if m, ok := f.matches[key]; ok {
		m.Score = score
		return nil
	}
	f.matches[key] = &models.DNAMatch{
		ID:      primitive.NewObjectID(),
		PairKey: key,
		UserA:   userA,
		UserB:   userB,
		Score:   score,
	}
	return nil
}

func (f *fakeMatchStore) GetMatchesForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.DNAMatch, error) {
	var out []models.DNAMatch
	for _, m := range f.matches {
		if m.UserA == userID || m.UserB == userID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMatchStore) DeleteMatchesForUser(ctx context.Context, userID primitive.ObjectID) error {
	for key, m := range f.matches {
		if m.UserA == userID || m.UserB == userID {
			delete(f.matches, key)
		}
	}
	return nil
}

type fakePushStore struct {
	subs map[primitive.ObjectID]*models.PushSubscription
}

func newFakePushStore() *fakePushStore {
	return &fakePushStore{subs: make(map[primitive.ObjectID]*models.PushSubscription)}
}

func (f *fakePushStore) UpsertSubscription(ctx context.Context, sub *models.PushSubscription) error {
	f.subs[sub.UserID] = sub
	return nil
}

func (f *fakePushStore) GetSubscription(ctx context.Context, userID primitive.ObjectID) (*models.PushSubscription, error) {
	s, ok := f.subs[userID]
	if !ok {
		return nil, fmt.Errorf("subscription not found")
	}
	return s, nil
}

func (f *fakePushStore) DeleteSubscription(ctx context.Context, userID primitive.ObjectID) error {
	delete(f.subs, userID)
	return nil
}

// fakeNotifier records fan-out calls so tests can assert on who got notified.
type fakeNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	Target  primitive.ObjectID
	Type    string
	Message string
	Actor   *primitive.ObjectID
}

func (f *fakeNotifier) Notify(ctx context.Context, targetUserID primitive.ObjectID, notifType, title, message string, actorID, refID *primitive.ObjectID) {
	f.calls = append(f.calls, notifyCall{Target: targetUserID, Type: notifType, Message: message, Actor: actorID})
}
