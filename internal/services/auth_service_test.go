package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kritika/internal/apperrors"
	"kritika/internal/models"
	"kritika/internal/services"
	"kritika/pkg/mailer"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(search string, page, pageSize int) ([]models.User, error) {
	args := m.Called(search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByUsername(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

const testSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository, capture *mailer.Capture) *services.AuthService {
	return services.NewAuthService(repo, capture, services.TokenConfig{
		Secret:     testSecret,
		CodeTTL:    time.Hour,
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
}

// codeFromMail extracts the signed confirmation code from the mail body.
func codeFromMail(t *testing.T, capture *mailer.Capture) string {
	t.Helper()
	msg, ok := capture.Last()
	require.True(t, ok, "no mail was dispatched")
	idx := strings.LastIndex(msg.Body, ": ")
	require.Greater(t, idx, 0)
	return msg.Body[idx+2:]
}

func signCode(t *testing.T, email string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	code := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(expiresIn).Unix(),
	})
	signed, err := code.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthService_RequestConfirmationCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	capture := mailer.NewCapture()
	authService := newAuthService(mockRepo, capture)

	alice := &models.User{ID: "u-1", Username: "alice", Email: "alice@x.com", Role: models.RoleUser}

	// Unknown email fails with NotFound and nothing is mailed.
	mockRepo.On("GetByEmail", "ghost@x.com").Return(nil, apperrors.NotFound("user not found")).Once()
	err := authService.RequestConfirmationCode(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, apperrors.NotFound(""))
	assert.Empty(t, capture.Messages())

	// Existing account gets a code mailed to its address.
	mockRepo.On("GetByEmail", alice.Email).Return(alice, nil).Once()
	err = authService.RequestConfirmationCode(context.Background(), alice.Email)
	assert.NoError(t, err)
	msg, ok := capture.Last()
	require.True(t, ok)
	assert.Equal(t, alice.Email, msg.To)
	assert.Equal(t, "Verify your account", msg.Subject)
	assert.Contains(t, msg.Body, "alice")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RequestConfirmationCode_MailFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	capture := mailer.NewCapture()
	capture.Err = assert.AnError
	authService := newAuthService(mockRepo, capture)

	alice := &models.User{ID: "u-1", Username: "alice", Email: "alice@x.com"}
	mockRepo.On("GetByEmail", alice.Email).Return(alice, nil).Once()

	// Transport failures propagate instead of being swallowed.
	err := authService.RequestConfirmationCode(context.Background(), alice.Email)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAuthService_ExchangeCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	capture := mailer.NewCapture()
	authService := newAuthService(mockRepo, capture)

	alice := &models.User{ID: "u-1", Username: "alice", Email: "alice@x.com", Role: models.RoleUser}

	mockRepo.On("GetByEmail", alice.Email).Return(alice, nil)
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	require.NoError(t, authService.RequestConfirmationCode(context.Background(), alice.Email))
	code := codeFromMail(t, capture)

	credential, err := authService.ExchangeCode(context.Background(), alice.Email, code)
	require.NoError(t, err)
	assert.NotEmpty(t, credential.AccessToken)
	assert.NotEmpty(t, credential.RefreshToken)
	assert.True(t, alice.IsVerified, "first exchange must flip is_verified")

	// The minted access token asserts alice's identity.
	identity, err := authService.ValidateAccess(credential.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, models.RoleUser, identity.Role)

	// Repeating the exchange is a no-op on verification state but still
	// returns a valid credential (Update was expected exactly once).
	credential, err = authService.ExchangeCode(context.Background(), alice.Email, code)
	require.NoError(t, err)
	assert.True(t, alice.IsVerified)
	assert.NotEmpty(t, credential.AccessToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ExchangeCode_EmailMismatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, mailer.NewCapture())

	// Both accounts exist; the code is bound to bob, not alice.
	code := signCode(t, "bob@x.com", time.Hour)
	_, err := authService.ExchangeCode(context.Background(), "alice@x.com", code)
	assert.ErrorIs(t, err, apperrors.EmailMismatch(""))
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestAuthService_ExchangeCode_Expired(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, mailer.NewCapture())

	code := signCode(t, "alice@x.com", -time.Hour)
	_, err := authService.ExchangeCode(context.Background(), "alice@x.com", code)
	assert.ErrorIs(t, err, apperrors.ExpiredCode(""))
}

func TestAuthService_ExchangeCode_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, mailer.NewCapture())

	_, err := authService.ExchangeCode(context.Background(), "alice@x.com", "not.a.code")
	assert.ErrorIs(t, err, apperrors.InvalidCode(""))
}

func TestAuthService_Refresh(t *testing.T) {
	mockRepo := new(MockUserRepository)
	capture := mailer.NewCapture()
	authService := newAuthService(mockRepo, capture)

	alice := &models.User{ID: "u-1", Username: "alice", Email: "alice@x.com", Role: models.RoleUser, IsVerified: true}
	mockRepo.On("GetByEmail", alice.Email).Return(alice, nil)
	mockRepo.On("GetByID", alice.ID).Return(alice, nil)

	require.NoError(t, authService.RequestConfirmationCode(context.Background(), alice.Email))
	credential, err := authService.ExchangeCode(context.Background(), alice.Email, codeFromMail(t, capture))
	require.NoError(t, err)

	refreshed, err := authService.Refresh(context.Background(), credential.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted on the refresh path.
	_, err = authService.Refresh(context.Background(), credential.AccessToken)
	assert.ErrorIs(t, err, apperrors.Unauthorized(""))

	// A refresh token is not accepted as an access token.
	_, err = authService.ValidateAccess(credential.RefreshToken)
	assert.ErrorIs(t, err, apperrors.Unauthorized(""))
}
