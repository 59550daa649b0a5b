package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeriveShadowFields(t *testing.T) {
	user := User{
		FirstName: "Élodie",
		LastName:  "DuPont",
		Username:  "Elo75",
	}
	user.DeriveShadowFields()

	assert.Equal(t, "élodie", user.FirstNameLower)
	assert.Equal(t, "dupont", user.LastNameLower)
	assert.Equal(t, "elo75", user.UsernameLower)
}

func TestFullNameAndProfileURL(t *testing.T) {
	user := User{
		ID:        primitive.NewObjectID(),
		FirstName: "Alice",
		LastName:  "Martin",
	}

	assert.Equal(t, "Alice Martin", user.FullName())
	assert.Equal(t, "/profile/"+user.ID.Hex(), user.ProfileURL())
}

func TestHasFriendAndHasPost(t *testing.T) {
	friendID := primitive.NewObjectID()
	postID := primitive.NewObjectID()
	user := User{
		Friends: []primitive.ObjectID{friendID},
		Posts:   []primitive.ObjectID{postID},
	}

	assert.True(t, user.HasFriend(friendID))
	assert.False(t, user.HasFriend(primitive.NewObjectID()))
	assert.True(t, user.HasPost(postID))
	assert.False(t, user.HasPost(primitive.NewObjectID()))
}

func TestSortFriendsByLastName(t *testing.T) {
	users := []User{
		{Username: "c", LastNameLower: "moreau"},
		{Username: "a", LastNameLower: "albert"},
		{Username: "b", LastNameLower: "durand"},
	}
	SortFriendsByLastName(users)

	assert.Equal(t, "a", users[0].Username)
	assert.Equal(t, "b", users[1].Username)
	assert.Equal(t, "c", users[2].Username)
}

func TestSortFriendsByLastNameStable(t *testing.T) {
	users := []User{
		{Username: "first", LastNameLower: "martin"},
		{Username: "second", LastNameLower: "martin"},
		{Username: "third", LastNameLower: "albert"},
	}
	SortFriendsByLastName(users)

	assert.Equal(t, "third", users[0].Username)
	// Equal keys keep their input order.
	assert.Equal(t, "first", users[1].Username)
	assert.Equal(t, "second", users[2].Username)
}

func TestSearchCriteriaHasAny(t *testing.T) {
	assert.False(t, SearchCriteria{}.HasAny())
	assert.True(t, SearchCriteria{Username: "alice"}.HasAny())
	assert.True(t, SearchCriteria{FirstName: "Alice"}.HasAny())
	assert.True(t, SearchCriteria{LastName: "Martin"}.HasAny())
}
