package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primary_key;size:36" json:"id"`
	Email     string    `gorm:"size:100;not null;unique" json:"email" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

type NewShopAccount struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	ShopName string `json:"shop_name" binding:"required"`
}

type LoginInfo struct {
	Token    string `json:"token"`
	UserId   string `json:"user_id"`
	Email    string `json:"email"`
	ShopName string `json:"shop_name"`
}

/*
caches:
	Token:$token   -> user id (session allowlist)
	Tokens:$userId -> set of live tokens
*/

// RegisterShop creates the account row and its shop row in one
// transaction; a failure on either side persists nothing.
//
// Email normalization policy: trimmed + lowercased before both storage
// and lookup, so the duplicate check and sign-in always agree.
func RegisterShop(ctx context.Context, input *NewShopAccount) (*User, error) {
	db := config.GetDB()

	email := utils.NormalizeEmail(input.Email)

	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, utils.StoreUnavailable(err)
	}
	if count > 0 {
		return nil, utils.ErrorDuplicateAccount
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashedPassword),
	}
	shop := Shop{
		ID:       user.ID,
		ShopName: input.ShopName,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&shop).Error
	})
	if err != nil {
		// A concurrent sign-up can slip past the count check; the unique
		// index on email is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrorDuplicateAccount
		}
		return nil, utils.StoreUnavailable(err)
	}

	user.Password = ""
	return &user, nil
}

// SignIn verifies credentials and opens a session. Unknown email and
// wrong password return the same error.
func SignIn(ctx context.Context, email string, password string) (*LoginInfo, error) {
	db := config.GetDB()

	email = utils.NormalizeEmail(email)

	// Always read the user row: the hash must never sit in redis, and
	// User's JSON form drops it anyway (Password is json:"-").
	user := User{}
	if err := db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorInvalidCredentials
		}
		return nil, utils.StoreUnavailable(err)
	}

	err := utils.ComparePassword(user.Password, password)
	if err != nil && errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, utils.ErrorInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	shop, err := GetShop(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := utils.JwtGenerate(user.ID)
	if err != nil {
		return nil, err
	}

	// session allowlist in redis (best-effort, nil-safe): sign-out
	// revokes the token across instances
	if err := config.AddRedisSet("Tokens:"+user.ID, token); err != nil {
		return nil, err
	}
	if err := config.SetRedisValue("Token:"+token, user.ID, utils.TokenLifespan()); err != nil {
		return nil, err
	}

	// prime the session cache so the first resolve needs no store lookup
	Sessions.Prime(&Identity{
		Id:       user.ID,
		Email:    user.Email,
		ShopName: shop.ShopName,
	})

	return &LoginInfo{
		Token:    token,
		UserId:   user.ID,
		Email:    user.Email,
		ShopName: shop.ShopName,
	}, nil
}

// Logout destroys the current session: revokes the redis token and drops
// the cached identity.
func Logout(ctx context.Context) (bool, error) {
	// No token or user in context means the caller was never
	// authenticated; report it as such, not as a server fault.
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, ErrorNotAuthenticated
	}
	userId, ok := utils.GetShopIdFromContext(ctx)
	if !ok || userId == "" {
		return false, ErrorNotAuthenticated
	}
	if err := config.RemoveRedisKey("Token:" + token); err != nil {
		return false, err
	}
	if err := config.RemoveRedisSetMember("Tokens:"+userId, token); err != nil {
		return false, err
	}
	Sessions.SignOut(userId)
	return true, nil
}

// DestroyAllSessions revokes every live token for the user.
func (user *User) DestroyAllSessions(ctx context.Context) error {
	allTokens, err := config.GetRedisSetMembers("Tokens:" + user.ID)
	if err != nil {
		return err
	}
	for _, token := range allTokens {
		if err := config.RemoveRedisKey("Token:" + token); err != nil {
			return err
		}
	}
	if err := config.RemoveRedisKey("Tokens:" + user.ID); err != nil {
		return err
	}
	Sessions.SignOut(user.ID)
	return nil
}
