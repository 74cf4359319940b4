package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	apierrors "github.com/jeroginaca/threads/internal/errors"
	"github.com/jeroginaca/threads/internal/models"
)

type UserDirectoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	users *UserDirectory
}

func (suite *UserDirectoryTestSuite) SetupSuite() {
	suite.db = newTestDB(suite.T(), "users_test")
}

func (suite *UserDirectoryTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM threads")
	suite.db.Exec("DELETE FROM users")
	suite.users = NewUserDirectory(suite.db)
}

func (suite *UserDirectoryTestSuite) TestUpsertCreatesUser() {
	t := suite.T()

	user, err := suite.users.Upsert(context.Background(), UpsertParams{
		ExternalID: "ext_1",
		Username:   "Alice",
		Name:       "Alice Smith",
		Bio:        "hello",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ext_1", user.ExternalID)
	assert.Equal(t, "alice", user.Username, "username should be lowercased")
	assert.True(t, user.Onboarded, "onboarding completes on upsert")
}

func (suite *UserDirectoryTestSuite) TestUpsertUpdatesExistingUser() {
	t := suite.T()
	ctx := context.Background()

	first, err := suite.users.Upsert(ctx, UpsertParams{ExternalID: "ext_1", Username: "alice", Name: "Alice"})
	require.NoError(t, err)

	second, err := suite.users.Upsert(ctx, UpsertParams{ExternalID: "ext_1", Username: "alice2", Name: "Alice Updated", Bio: "new bio"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same external id updates the same record")

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var stored models.User
	require.NoError(t, suite.db.First(&stored, "external_id = ?", "ext_1").Error)
	assert.Equal(t, "alice2", stored.Username)
	assert.Equal(t, "Alice Updated", stored.Name)
	assert.Equal(t, "new bio", stored.Bio)
}

func (suite *UserDirectoryTestSuite) TestUpsertRejectsEmptyUsername() {
	t := suite.T()

	_, err := suite.users.Upsert(context.Background(), UpsertParams{ExternalID: "ext_1", Username: "   "})
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.ErrValidation, apiErr.Code)
	assert.Equal(t, "username", apiErr.Field)
}

func (suite *UserDirectoryTestSuite) TestUpsertRejectsTakenUsername() {
	t := suite.T()
	ctx := context.Background()

	_, err := suite.users.Upsert(ctx, UpsertParams{ExternalID: "ext_1", Username: "alice"})
	require.NoError(t, err)

	_, err = suite.users.Upsert(ctx, UpsertParams{ExternalID: "ext_2", Username: "ALICE"})
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.ErrValidation, apiErr.Code)
}

func (suite *UserDirectoryTestSuite) TestUpsertKeepsOwnUsername() {
	t := suite.T()
	ctx := context.Background()

	_, err := suite.users.Upsert(ctx, UpsertParams{ExternalID: "ext_1", Username: "alice"})
	require.NoError(t, err)

	// Re-submitting the same username for the same account is not a collision
	_, err = suite.users.Upsert(ctx, UpsertParams{ExternalID: "ext_1", Username: "alice", Bio: "updated"})
	require.NoError(t, err)
}

func (suite *UserDirectoryTestSuite) TestGetByExternalIDNotFound() {
	t := suite.T()

	_, err := suite.users.GetByExternalID(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.ErrNotFound, apiErr.Code)
}

func (suite *UserDirectoryTestSuite) TestSearchExcludesCaller() {
	t := suite.T()
	ctx := context.Background()

	createTestUser(t, suite.db, "ext_me", "me")
	createTestUser(t, suite.db, "ext_other", "other")

	users, hasMore, err := suite.users.Search(ctx, SearchParams{ExcludeExternalID: "ext_me"})
	require.NoError(t, err)

	assert.False(t, hasMore)
	require.Len(t, users, 1)
	assert.Equal(t, "other", users[0].Username)
}

func (suite *UserDirectoryTestSuite) TestSearchMatchesUsernameOrNameCaseInsensitive() {
	t := suite.T()
	ctx := context.Background()

	createTestUser(t, suite.db, "ext_1", "alicewonder")
	bob := createTestUser(t, suite.db, "ext_2", "bob")
	bob.Name = "Alice Cooper"
	require.NoError(t, suite.db.Save(bob).Error)
	createTestUser(t, suite.db, "ext_3", "carol")

	users, _, err := suite.users.Search(ctx, SearchParams{ExcludeExternalID: "ext_caller", Query: "ALiCe"})
	require.NoError(t, err)

	require.Len(t, users, 2, "matches on username and on display name")
	usernames := []string{users[0].Username, users[1].Username}
	assert.Contains(t, usernames, "alicewonder")
	assert.Contains(t, usernames, "bob")
}

func (suite *UserDirectoryTestSuite) TestSearchEmptyQueryMatchesEveryone() {
	t := suite.T()

	for i := 0; i < 5; i++ {
		createTestUser(t, suite.db, fmt.Sprintf("ext_%d", i), fmt.Sprintf("user%d", i))
	}

	users, hasMore, err := suite.users.Search(context.Background(), SearchParams{ExcludeExternalID: "ext_0"})
	require.NoError(t, err)

	assert.Len(t, users, 4)
	assert.False(t, hasMore)
}

func (suite *UserDirectoryTestSuite) TestSearchPaginationWalksAllResults() {
	t := suite.T()
	ctx := context.Background()

	// 45 matches with page size 20 paginate as 20/20/5
	for i := 0; i < 45; i++ {
		createTestUser(t, suite.db, fmt.Sprintf("ext_%d", i), fmt.Sprintf("user%02d", i))
	}

	seen := make(map[string]bool)
	expectations := []struct {
		page    int
		count   int
		hasMore bool
	}{
		{1, 20, true},
		{2, 20, true},
		{3, 5, false},
	}

	for _, exp := range expectations {
		users, hasMore, err := suite.users.Search(ctx, SearchParams{
			ExcludeExternalID: "ext_caller",
			Page:              exp.page,
			PageSize:          20,
		})
		require.NoError(t, err)
		assert.Len(t, users, exp.count, "page %d", exp.page)
		assert.Equal(t, exp.hasMore, hasMore, "page %d", exp.page)

		for _, u := range users {
			assert.False(t, seen[u.ID], "user %s appeared on two pages", u.Username)
			seen[u.ID] = true
		}
	}

	assert.Len(t, seen, 45, "every user appears exactly once across pages")
}

func (suite *UserDirectoryTestSuite) TestSearchPagePastEndIsEmpty() {
	t := suite.T()

	createTestUser(t, suite.db, "ext_1", "alice")

	users, hasMore, err := suite.users.Search(context.Background(), SearchParams{
		ExcludeExternalID: "ext_caller",
		Page:              5,
		PageSize:          20,
	})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.False(t, hasMore)
}

func TestUserDirectoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserDirectoryTestSuite))
}
