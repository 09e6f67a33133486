package services

import (
	"testing"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticateUser(t *testing.T) {
	middleware.SetSecretKey("test-secret")
	db := newTestDB(t)
	service := NewUserService(db, nil)

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: "maria", Password: string(hashed), IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	token, err := service.AuthenticateUser("maria", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = service.AuthenticateUser("maria", "wrong")
	assert.EqualError(t, err, "invalid username or password")

	_, err = service.AuthenticateUser("nobody", "whatever")
	assert.EqualError(t, err, "invalid username or password")
}

func TestAuthenticateUserDisabledAccount(t *testing.T) {
	middleware.SetSecretKey("test-secret")
	db := newTestDB(t)
	service := NewUserService(db, nil)

	hashed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: "dormant", Password: string(hashed), IsActive: false}
	require.NoError(t, db.Create(&user).Error)

	_, err = service.AuthenticateUser("dormant", "pw")
	assert.EqualError(t, err, "account is disabled")
}

// A false IsActive must survive the insert; a gorm default tag on the column
// would silently replace it with true.
func TestInactiveFlagPersistedOnCreate(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Username: "ghost", Password: "x", IsActive: false}
	require.NoError(t, db.Create(&user).Error)

	var stored models.User
	require.NoError(t, db.First(&stored, user.Id).Error)
	assert.False(t, stored.IsActive)
}

func TestRegisterUserCreatesProfile(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)

	user, err := service.RegisterUser(models.RegisterRequest{
		Username:    "giulia",
		Email:       "giulia@example.org",
		Password:    "secret",
		Name:        "Giulia",
		Surname:     "Bianchi",
		Affiliation: "University of Pisa",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.Id).First(&profile).Error)
	assert.Equal(t, "Bianchi", profile.Surname)
	assert.Equal(t, "University of Pisa", profile.Affiliation)

	_, err = service.RegisterUser(models.RegisterRequest{Username: "giulia", Password: "other"})
	assert.EqualError(t, err, "username already taken")
}

func TestResolveAuthorUserSelf(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)
	submitter := createTestUser(t, db, "submitter", false)

	id, err := service.ResolveAuthorUser(submitter.Id, dtos.AuthorSpec{IsSelf: true})
	require.NoError(t, err)
	assert.Equal(t, submitter.Id, id)
}

func TestResolveAuthorUserByEmailLookup(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)
	submitter := createTestUser(t, db, "submitter", false)
	coauthor := createTestUser(t, db, "marco", false)

	id, err := service.ResolveAuthorUser(submitter.Id, dtos.AuthorSpec{
		Name:    "Marco",
		Surname: "Rossi",
		Email:   "MARCO@Example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, coauthor.Id, id)

	// The lookup fills empty profile fields on the matched user.
	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", coauthor.Id).First(&profile).Error)
	assert.Equal(t, "Rossi", profile.Surname)
}

func TestResolveAuthorUserCreatesInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)
	submitter := createTestUser(t, db, "submitter", false)

	id, err := service.ResolveAuthorUser(submitter.Id, dtos.AuthorSpec{
		Name:        "Anna",
		Surname:     "Verdi",
		Email:       "anna.verdi@unibo.it",
		Affiliation: "University of Bologna",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	assert.False(t, user.IsActive)
	assert.Equal(t, "anna.verdi", user.Username)
	assert.NotEmpty(t, user.Password)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", id).First(&profile).Error)
	assert.Equal(t, "University of Bologna", profile.Affiliation)
}

func TestResolveAuthorUserUsernameCollision(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)
	submitter := createTestUser(t, db, "submitter", false)
	createTestUser(t, db, "anna.verdi", false)

	id, err := service.ResolveAuthorUser(submitter.Id, dtos.AuthorSpec{
		Name:    "Anna",
		Surname: "Verdi",
		Email:   "anna.verdi@other.org",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	assert.Equal(t, "anna.verdi1", user.Username)
}

func TestResolveAuthorUserRequiresFields(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)

	_, err := service.ResolveAuthorUser(1, dtos.AuthorSpec{Name: "OnlyName"})
	assert.Error(t, err)
}

func TestResolveAuthorUserUnknownID(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)

	missing := 9999
	_, err := service.ResolveAuthorUser(1, dtos.AuthorSpec{UserID: &missing})
	assert.Error(t, err)
}

func TestSearchAuthorsTiers(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)

	bySurname := createTestUser(t, db, "user1", false)
	require.NoError(t, db.Create(&models.Profile{UserID: bySurname.Id, Surname: "Ferrara"}).Error)
	byUsername := createTestUser(t, db, "ferrara.paolo", false)
	byEmail := models.User{Username: "other", Email: "team.ferrara@example.org", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&byEmail).Error)

	results, err := service.SearchAuthors("ferrara")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "surname", results[0].MatchType)
	assert.Equal(t, bySurname.Id, results[0].UserID)
	assert.Equal(t, "username", results[1].MatchType)
	assert.Equal(t, byUsername.Id, results[1].UserID)
	assert.Equal(t, "email", results[2].MatchType)
	assert.Equal(t, byEmail.Id, results[2].UserID)
}

func TestSearchAuthorsShortQuery(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)
	createTestUser(t, db, "ab", false)

	results, err := service.SearchAuthors("ab")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchAuthorsDeduplicates(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)

	user := createTestUser(t, db, "ferrara", false)
	require.NoError(t, db.Create(&models.Profile{UserID: user.Id, Surname: "Ferrara"}).Error)

	results, err := service.SearchAuthors("ferrara")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "surname", results[0].MatchType)
}

func TestSearchUsers(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db, nil)

	a := createTestUser(t, db, "paolo", false)
	b := models.User{Username: "x1", FirstName: "Paolo", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&b).Error)
	createTestUser(t, db, "unrelated", false)

	results, err := service.SearchUsers("pao")
	require.NoError(t, err)
	require.Len(t, results, 2)
	ids := []int{results[0].UserID, results[1].UserID}
	assert.Contains(t, ids, a.Id)
	assert.Contains(t, ids, b.Id)

	results, err = service.SearchUsers("p")
	require.NoError(t, err)
	assert.Empty(t, results)
}
