package repositories

import (
	"context"

	"github.com/coucou-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business-rule messages rendered back into the friend search form.
// They are result values, not errors.
const (
	MsgAlreadyFriend = "That user is already your friend."
	MsgNoMatch       = "No one with that information was found."
)

// FriendshipManager maintains the symmetric friend relation between
// user documents. An edge between A and B exists iff A's friend list
// contains B and B's contains A; the manager keeps both sides in step
// and implements friend search with exclusion.
type FriendshipManager struct {
	users UserRepository
}

// NewFriendshipManager creates a new FriendshipManager
func NewFriendshipManager(users UserRepository) *FriendshipManager {
	return &FriendshipManager{users: users}
}

// SearchCandidates finds addable users matching the criteria, excluding
// the current user and anyone already on their friend list. Query
// insertion order is preserved. The returned message is non-empty only
// when the candidate list is empty for a business reason: every raw
// match was filtered out, or nothing matched at all.
func (m *FriendshipManager) SearchCandidates(ctx context.Context, currentUser *models.User, criteria models.SearchCriteria) ([]models.User, string, error) {
	if !criteria.HasAny() {
		return nil, "", models.NewValidationError("no search criteria")
	}

	found, err := m.users.SearchUsers(ctx, criteria)
	if err != nil {
		return nil, "", err
	}
	if len(found) == 0 {
		return []models.User{}, MsgNoMatch, nil
	}

	candidates := make([]models.User, 0, len(found))
	removedFriend := false
	for _, user := range found {
		if user.ID == currentUser.ID {
			continue
		}
		if currentUser.HasFriend(user.ID) {
			removedFriend = true
			continue
		}
		candidates = append(candidates, user)
	}

	if len(candidates) == 0 {
		if removedFriend {
			return candidates, MsgAlreadyFriend, nil
		}
		return candidates, MsgNoMatch, nil
	}
	return candidates, "", nil
}

// AddFriends links the current user with each target, one target at a
// time in input order: the target's side of the edge is written first,
// then the current user's. $addToSet semantics make a re-add a no-op,
// so friend lists never accumulate duplicates. A failure aborts the
// remaining targets; targets already processed stay linked. Returns a
// fresh snapshot of the current user.
func (m *FriendshipManager) AddFriends(ctx context.Context, currentUserID primitive.ObjectID, targetIDs []primitive.ObjectID) (*models.User, error) {
	for _, targetID := range targetIDs {
		if targetID == currentUserID {
			return nil, models.NewValidationError("cannot add yourself as a friend")
		}

		// Fetch first so a bad id fails before either side is touched.
		target, err := m.users.GetUserByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if err := m.users.AddFriendID(ctx, target.ID, currentUserID); err != nil {
			return nil, err
		}
		if err := m.users.AddFriendID(ctx, currentUserID, target.ID); err != nil {
			return nil, err
		}
	}
	return m.users.GetUserByID(ctx, currentUserID)
}

// RemoveFriends is the mirror of AddFriends: for each target the
// current user is pulled from the target's list, then the target from
// the current user's. Removing a non-friend is a no-op, not an error.
func (m *FriendshipManager) RemoveFriends(ctx context.Context, currentUserID primitive.ObjectID, targetIDs []primitive.ObjectID) (*models.User, error) {
	for _, targetID := range targetIDs {
		if err := m.users.RemoveFriendID(ctx, targetID, currentUserID); err != nil {
			return nil, err
		}
		if err := m.users.RemoveFriendID(ctx, currentUserID, targetID); err != nil {
			return nil, err
		}
	}
	return m.users.GetUserByID(ctx, currentUserID)
}

// Friends returns the current user's friends sorted for display:
// ascending by lowercase last name, stable on ties. The friend list on
// the user document is the canonical direction for "who are my
// friends"; the atomic edge updates keep it symmetric.
func (m *FriendshipManager) Friends(ctx context.Context, user *models.User) ([]models.User, error) {
	friends, err := m.users.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, err
	}
	models.SortFriendsByLastName(friends)
	return friends, nil
}
