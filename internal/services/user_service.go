package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minInterests = 5

// UserService encapsulates signup, login and profile operations.
type UserService struct {
	repo UserStore
}

func NewUserService(repo UserStore) *UserService {
	return &UserService{repo: repo}
}

// SignupInput carries the minimal fields collected at registration.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardInput carries the profile detail collected at onboarding.
type OnboardInput struct {
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	ProfilePic     string   `json:"profilePic"`
	NativeLanguage string   `json:"nativeLanguage"`
	Location       string   `json:"location"`
	Interests      []string `json:"interests"`
}

// Signup registers a new user with a hashed password and a random avatar.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.Validation("password must be at least 6 characters long")
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, apperrors.Validation("invalid email format")
	}

	if existing, _ := s.repo.GetUserByEmail(ctx, input.Email); existing != nil {
		return nil, apperrors.Conflict("user already exists with this email")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:           input.Name,
		Email:          input.Email,
		HashedPassword: string(hashedPwd),
		ProfilePic:     randomAvatarURL(),
		Interests:      []string{},
		Friends:        []primitive.ObjectID{},
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// Authenticate verifies credentials and returns the user when valid.
// Invalid email and invalid password report the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Authorization("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, apperrors.Authorization("invalid email or password")
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// Onboard completes the profile and marks the user onboarded.
func (s *UserService) Onboard(ctx context.Context, userID primitive.ObjectID, input OnboardInput) (*models.User, error) {
	if input.Name == "" || input.Bio == "" || input.ProfilePic == "" ||
		input.NativeLanguage == "" || input.Location == "" {
		return nil, apperrors.Validation("all profile fields are required")
	}

	valid := 0
	for _, interest := range input.Interests {
		if strings.TrimSpace(interest) != "" {
			valid++
		}
	}
	if valid < minInterests {
		return nil, apperrors.Validation(fmt.Sprintf("you should add at least %d interests", minInterests))
	}

	update := map[string]interface{}{
		"name":            input.Name,
		"bio":             input.Bio,
		"profile_pic":     input.ProfilePic,
		"native_language": input.NativeLanguage,
		"location":        input.Location,
		"interests":       input.Interests,
		"is_onboarded":    true,
	}

	updated, err := s.repo.UpdateUser(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	logrus.WithField("userID", userID.Hex()).Info("User onboarded successfully")
	return updated, nil
}

// GetUser retrieves a user by their hex id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("invalid user id")
	}
	return s.repo.GetUserByID(ctx, objID)
}

func randomAvatarURL() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}
