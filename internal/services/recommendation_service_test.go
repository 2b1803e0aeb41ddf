package services

import (
	"context"
	"testing"

	"github.com/Madina2067/LinguaLink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func recommendNames(t *testing.T, svc *RecommendationService, user *models.User) []string {
	t.Helper()
	recommended, err := svc.Recommend(context.Background(), user)
	require.NoError(t, err)
	names := make([]string, 0, len(recommended))
	for _, u := range recommended {
		names = append(names, u.Name)
	}
	return names
}

// Directory = [B (interest overlap), C (same location), D (no overlap)]
// → order must be [B, C, D].
func TestRecommend_TierOrdering(t *testing.T) {
	alice := &models.User{
		Name:           "Alice",
		Interests:      []string{"music", "travel"},
		NativeLanguage: "english",
		Location:       "Almaty",
	}
	b := &models.User{Name: "B", Interests: []string{"music"}, NativeLanguage: "spanish", Location: "Madrid"}
	c := &models.User{Name: "C", Interests: []string{"chess"}, NativeLanguage: "german", Location: "Almaty"}
	d := &models.User{Name: "D", Interests: []string{"chess"}, NativeLanguage: "german", Location: "Berlin"}

	users := newFakeUserStore(alice, b, c, d)
	svc := NewRecommendationService(users)

	assert.Equal(t, []string{"B", "C", "D"}, recommendNames(t, svc, alice))
}

func TestRecommend_ExcludesSelfAndFriends(t *testing.T) {
	alice := &models.User{Name: "Alice", Interests: []string{"music"}}
	b := &models.User{Name: "B", Interests: []string{"music"}}
	c := &models.User{Name: "C"}

	users := newFakeUserStore(alice, b, c)
	alice.Friends = []primitive.ObjectID{b.ID}
	svc := NewRecommendationService(users)

	names := recommendNames(t, svc, alice)
	assert.NotContains(t, names, "Alice")
	assert.NotContains(t, names, "B")
	assert.Equal(t, []string{"C"}, names)
}

// A candidate with interest overlap belongs to Tier 1 only, even when it
// also matches language or location.
func TestRecommend_NoDuplicatesAcrossTiers(t *testing.T) {
	alice := &models.User{
		Name:           "Alice",
		Interests:      []string{"music"},
		NativeLanguage: "english",
		Location:       "Almaty",
	}
	b := &models.User{Name: "B", Interests: []string{"music"}, NativeLanguage: "english", Location: "Almaty"}

	users := newFakeUserStore(alice, b)
	svc := NewRecommendationService(users)

	assert.Equal(t, []string{"B"}, recommendNames(t, svc, alice))
}

func TestRecommend_EmptyInterestsFallsThrough(t *testing.T) {
	alice := &models.User{Name: "Alice", NativeLanguage: "english", Location: "Almaty"}
	b := &models.User{Name: "B", Interests: []string{"music"}, NativeLanguage: "english"}
	c := &models.User{Name: "C", Interests: []string{"travel"}, NativeLanguage: "german", Location: "Berlin"}

	users := newFakeUserStore(alice, b, c)
	svc := NewRecommendationService(users)

	// Tier 1 empty; B matches on language, C is the remainder.
	assert.Equal(t, []string{"B", "C"}, recommendNames(t, svc, alice))
}

func TestRecommend_NoFriendsSeesWholeDirectory(t *testing.T) {
	alice := &models.User{Name: "Alice"}
	b := &models.User{Name: "B"}
	c := &models.User{Name: "C"}
	d := &models.User{Name: "D"}

	users := newFakeUserStore(alice, b, c, d)
	svc := NewRecommendationService(users)

	names := recommendNames(t, svc, alice)
	assert.Len(t, names, 3)
	assert.NotContains(t, names, "Alice")
}

func TestRecommend_StableWithinTier(t *testing.T) {
	alice := &models.User{Name: "Alice", Interests: []string{"music"}}
	b := &models.User{Name: "B", Interests: []string{"music"}}
	c := &models.User{Name: "C", Interests: []string{"music"}}
	d := &models.User{Name: "D", Interests: []string{"music"}}

	users := newFakeUserStore(alice, b, c, d)
	svc := NewRecommendationService(users)

	assert.Equal(t, []string{"B", "C", "D"}, recommendNames(t, svc, alice))
}
