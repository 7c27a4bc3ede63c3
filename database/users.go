package database

import (
	"errors"
	"fmt"
	"strings"

	"cadrebook/types"

	"gorm.io/gorm"
)

// Register creates an account and returns it with a fresh access token. The request is
// expected to have passed validation already.
func Register(db *gorm.DB, hasher PasswordHasher, tokens TokenIssuer, req types.RegisterRequest) (*types.AuthView, error) {
	username := normalizeUsername(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := checkAvailable(db, username, email); err != nil {
		return nil, err
	}

	hashed, err := hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := types.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			if err := checkAvailable(db, username, email); err != nil {
				return nil, err
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return authView(tokens, &user)
}

func checkAvailable(db *gorm.DB, username, email string) error {
	var count int64
	if err := db.Model(&types.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	if err := db.Model(&types.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}

	return nil
}

// Login checks a username/password pair. Unknown users and wrong passwords fail the
// same way.
func Login(db *gorm.DB, hasher PasswordHasher, tokens TokenIssuer, username, password string) (*types.AuthView, error) {
	user, err := findUserByUsername(db, username)
	if errors.Is(err, ErrUserNotFound) {
		hasher.Verify("", password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !hasher.Verify(user.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}

	return authView(tokens, user)
}

func authView(tokens TokenIssuer, user *types.User) (*types.AuthView, error) {
	token, err := tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &types.AuthView{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserView(user),
	}, nil
}

func GetCurrentUser(db *gorm.DB, userID uint) (*types.UserView, error) {
	user, err := findUserByID(db, userID)
	if err != nil {
		return nil, err
	}

	view := toUserView(user)
	return &view, nil
}

// GetProfile returns a user's public profile. viewerID is 0 for anonymous callers.
func GetProfile(db *gorm.DB, username string, viewerID uint) (*types.ProfileView, error) {
	user, err := findUserByUsername(db, username)
	if err != nil {
		return nil, err
	}

	following, err := isFollowing(db, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	view := toProfileView(user, following)
	return &view, nil
}

// UpdateProfile writes only the fields present in upd.
func UpdateProfile(db *gorm.DB, userID uint, upd types.ProfileUpdate) (*types.ProfileView, error) {
	if cols := upd.Columns(); len(cols) > 0 {
		res := db.Model(&types.User{}).Where("id = ?", userID).Updates(cols)
		if res.Error != nil {
			return nil, fmt.Errorf("update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}

	user, err := findUserByID(db, userID)
	if err != nil {
		return nil, err
	}

	view := toProfileView(user, false)
	return &view, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchUsers matches query as a case-insensitive substring of the username or display
// name. A blank query returns nothing without touching the database. The viewer is
// never part of their own results.
func SearchUsers(db *gorm.DB, query string, viewerID uint, limit int) ([]types.UserSummary, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []types.UserSummary{}, nil
	}

	_, limit = clampPage(0, limit, 50)
	pattern := "%" + likeEscaper.Replace(q) + "%"

	tx := db.Where(`(LOWER(username) LIKE ? ESCAPE '\' OR LOWER(display_name) LIKE ? ESCAPE '\')`, pattern, pattern)
	if viewerID != 0 {
		tx = tx.Where("id <> ?", viewerID)
	}

	var users []types.User
	if err := tx.Order("username ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	return summaries(db, users, viewerID)
}
