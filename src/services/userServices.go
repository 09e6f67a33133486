package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/middleware"
	"github.com/ergin84/ShareLand/src/models"
	"github.com/ergin84/ShareLand/src/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db     *gorm.DB
	mailer *utils.Mailer
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB, mailer *utils.Mailer) *UserService {
	return &UserService{db: db, mailer: mailer}
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#$%&*+-=?@_"

func randomPassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}

// AuthenticateUser checks user credentials and returns a JWT token if valid
func (s *UserService) AuthenticateUser(username, password string) (string, error) {
	var user models.User
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", errors.New("invalid username or password")
		}
		return "", result.Error
	}

	if !user.IsActive {
		return "", errors.New("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid username or password")
	}

	claims := jwt.MapClaims{
		"id":    user.Id,
		"staff": user.IsStaff,
		"exp":   time.Now().Add(time.Hour * 12).Unix(), // Token expires in 12 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(middleware.GetSecretKey()))
}

// RegisterUser creates an active account with its profile.
func (s *UserService) RegisterUser(req models.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}

	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, errors.New("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.Name,
		LastName:  req.Surname,
		IsActive:  true,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:       user.Id,
			Name:         req.Name,
			Surname:      req.Surname,
			Affiliation:  req.Affiliation,
			Orcid:        req.Orcid,
			ContactEmail: req.Email,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile returns the profile for a user, creating an empty one on first
// access.
func (s *UserService) GetProfile(userID int) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		err = s.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile overwrites the editable profile fields.
func (s *UserService) UpdateProfile(userID int, updated models.Profile) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	profile.Name = updated.Name
	profile.Surname = updated.Surname
	profile.Affiliation = updated.Affiliation
	profile.Orcid = updated.Orcid
	profile.ContactEmail = updated.ContactEmail
	profile.Qualification = updated.Qualification
	profile.BirthDate = updated.BirthDate
	if err := s.db.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// fillProfile sets the given profile fields only where they are still empty.
func (s *UserService) fillProfile(tx *gorm.DB, userID int, name, surname, email, affiliation, orcid string) error {
	var profile models.Profile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			UserID:       userID,
			Name:         name,
			Surname:      surname,
			ContactEmail: email,
			Affiliation:  affiliation,
			Orcid:        orcid,
		}
		return tx.Create(&profile).Error
	}
	if err != nil {
		return err
	}

	changed := false
	if profile.Name == "" && name != "" {
		profile.Name = name
		changed = true
	}
	if profile.Surname == "" && surname != "" {
		profile.Surname = surname
		changed = true
	}
	if profile.ContactEmail == "" && email != "" {
		profile.ContactEmail = email
		changed = true
	}
	if profile.Affiliation == "" && affiliation != "" {
		profile.Affiliation = affiliation
		changed = true
	}
	if profile.Orcid == "" && orcid != "" {
		profile.Orcid = orcid
		changed = true
	}
	if !changed {
		return nil
	}
	return tx.Save(&profile).Error
}

// uniqueUsername derives a username from the email local part (falling back to
// name.surname) and appends a counter until it is free.
func (s *UserService) uniqueUsername(tx *gorm.DB, name, surname, email string) (string, error) {
	base := ""
	if email != "" {
		base = strings.Split(email, "@")[0]
	}
	if base == "" {
		base = strings.ToLower(name) + "." + strings.ToLower(surname)
	}

	username := base
	counter := 1
	for {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
		counter++
	}
}

// ResolveAuthorUser turns one submitted author block into a user id, creating
// an inactive account with a temporary password when the email is unknown.
// The credential email is best-effort and never fails the resolution.
func (s *UserService) ResolveAuthorUser(submitterID int, spec dtos.AuthorSpec) (int, error) {
	if spec.IsSelf {
		return submitterID, nil
	}

	if spec.UserID != nil {
		var user models.User
		if err := s.db.First(&user, *spec.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("author user %d not found", *spec.UserID)
			}
			return 0, err
		}
		if err := s.fillProfile(s.db, user.Id, spec.Name, spec.Surname, user.Email, spec.Affiliation, spec.Orcid); err != nil {
			return 0, err
		}
		return user.Id, nil
	}

	if spec.Name == "" || spec.Surname == "" || spec.Email == "" {
		return 0, errors.New("name, surname and email are required for a new author")
	}

	var existing models.User
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(spec.Email)).First(&existing).Error
	if err == nil {
		if err := s.fillProfile(s.db, existing.Id, spec.Name, spec.Surname, spec.Email, spec.Affiliation, spec.Orcid); err != nil {
			return 0, err
		}
		return existing.Id, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	password, err := randomPassword(16)
	if err != nil {
		return 0, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	var user models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		username, err := s.uniqueUsername(tx, spec.Name, spec.Surname, spec.Email)
		if err != nil {
			return err
		}
		user = models.User{
			Username:  username,
			Email:     spec.Email,
			Password:  string(hashed),
			FirstName: spec.Name,
			LastName:  spec.Surname,
			IsActive:  false,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return s.fillProfile(tx, user.Id, spec.Name, spec.Surname, spec.Email, spec.Affiliation, spec.Orcid)
	})
	if err != nil {
		return 0, err
	}

	if s.mailer != nil {
		s.mailer.SendWelcomeEmail(user.Email, user.Username, password)
	}
	return user.Id, nil
}

// AuthorSearchResult is one entry in the author autocomplete dropdown.
type AuthorSearchResult struct {
	UserID      int    `json:"userId"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Orcid       string `json:"orcid"`
	MatchType   string `json:"matchType"`
}

func (s *UserService) searchResult(user models.User, matchType string) AuthorSearchResult {
	result := AuthorSearchResult{
		UserID:    user.Id,
		Username:  user.Username,
		Name:      user.FirstName,
		Surname:   user.LastName,
		Email:     user.Email,
		MatchType: matchType,
	}
	var profile models.Profile
	if err := s.db.Where("user_id = ?", user.Id).First(&profile).Error; err == nil {
		if profile.Name != "" {
			result.Name = profile.Name
		}
		if profile.Surname != "" {
			result.Surname = profile.Surname
		}
		result.Affiliation = profile.Affiliation
		result.Orcid = profile.Orcid
	}
	return result
}

// SearchAuthors matches the query against profile surnames first, then
// usernames, then emails, each tier filling the remaining slots up to 10.
// Queries shorter than 3 characters return no results.
func (s *UserService) SearchAuthors(query string) ([]AuthorSearchResult, error) {
	results := []AuthorSearchResult{}
	query = strings.TrimSpace(query)
	if len(query) < 3 {
		return results, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"
	seen := map[int]bool{}

	appendMatches := func(users []models.User, matchType string) {
		for _, user := range users {
			if len(results) >= 10 || seen[user.Id] {
				continue
			}
			seen[user.Id] = true
			results = append(results, s.searchResult(user, matchType))
		}
	}

	var surnameMatches []models.User
	err := s.db.
		Select("users.*").
		Joins("JOIN profile ON profile.user_id = users.id").
		Where("LOWER(profile.surname) LIKE ?", pattern).
		Limit(10).
		Find(&surnameMatches).Error
	if err != nil {
		return nil, err
	}
	appendMatches(surnameMatches, "surname")

	if len(results) < 10 {
		var usernameMatches []models.User
		err := s.db.Where("LOWER(username) LIKE ?", pattern).Limit(10).Find(&usernameMatches).Error
		if err != nil {
			return nil, err
		}
		appendMatches(usernameMatches, "username")
	}

	if len(results) < 10 {
		var emailMatches []models.User
		err := s.db.Where("LOWER(email) LIKE ?", pattern).Limit(10).Find(&emailMatches).Error
		if err != nil {
			return nil, err
		}
		appendMatches(emailMatches, "email")
	}

	return results, nil
}

// SearchUsers is the generic autocomplete: OR-match across username, names and
// email, minimum 2 characters, at most 10 rows.
func (s *UserService) SearchUsers(query string) ([]AuthorSearchResult, error) {
	results := []AuthorSearchResult{}
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return results, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	var users []models.User
	err := s.db.
		Where("LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern, pattern).
		Limit(10).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		results = append(results, s.searchResult(user, "any"))
	}
	return results, nil
}
