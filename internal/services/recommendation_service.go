package services

import (
	"context"

	"github.com/Madina2067/LinguaLink/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationService produces the tiered partner suggestions shown on
// the home page: interest overlap first, then language or location match,
// then everyone else. Self and existing friends never appear.
type RecommendationService struct {
	users UserStore
}

func NewRecommendationService(users UserStore) *RecommendationService {
	return &RecommendationService{users: users}
}

// Recommend returns the candidate list for the given user, ordered
// Tier1 ++ Tier2 ++ Tier3, stable within each tier by directory order.
func (s *RecommendationService) Recommend(ctx context.Context, user *models.User) ([]models.User, error) {
	exclude := make([]primitive.ObjectID, 0, len(user.Friends)+1)
	exclude = append(exclude, user.ID)
	exclude = append(exclude, user.Friends...)

	tier1, err := s.users.FindByAnyInterest(ctx, user.Interests, exclude)
	if err != nil {
		return nil, err
	}
	for i := range tier1 {
		exclude = append(exclude, tier1[i].ID)
	}

	tier2, err := s.users.FindByLanguageOrLocation(ctx, user.NativeLanguage, user.Location, exclude)
	if err != nil {
		return nil, err
	}
	for i := range tier2 {
		exclude = append(exclude, tier2[i].ID)
	}

	tier3, err := s.users.FindExcluding(ctx, exclude)
	if err != nil {
		return nil, err
	}

	recommended := make([]models.User, 0, len(tier1)+len(tier2)+len(tier3))
	recommended = append(recommended, tier1...)
	recommended = append(recommended, tier2...)
	recommended = append(recommended, tier3...)

	logrus.WithFields(logrus.Fields{
		"userID": user.ID.Hex(),
		"tier1":  len(tier1),
		"tier2":  len(tier2),
		"tier3":  len(tier3),
	}).Debug("Computed recommendations")
	return recommended, nil
}
