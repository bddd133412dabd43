package main

import (
	"errors"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/models"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, utils.ErrorDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, utils.ErrorInvalidCredentials), errors.Is(err, models.ErrorNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, utils.ErrorInvalidRange), errors.Is(err, utils.ErrorReferentialMismatch):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrorRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrorStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

func abortWithBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

func signUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		if config.SignupDisabled() {
			c.JSON(http.StatusForbidden, gin.H{"error": "sign up is currently disabled"})
			return
		}

		var req models.NewShopAccount
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}
		if !utils.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
			return
		}
		if ok, reason := utils.ValidatePassword(req.Password); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": reason})
			return
		}

		// Best-effort: serialize sign-ups per email so concurrent submits
		// surface as DuplicateAccount rather than a constraint error.
		// The unique index on users.email remains the authority; if Redis
		// is unavailable we proceed without the lock.
		email := utils.NormalizeEmail(req.Email)
		if redisLock := config.GetRedisLock(); redisLock != nil {
			lock, err := redisLock.Obtain(c.Request.Context(), "signup:"+email, 10*time.Second, nil)
			if err == redislock.ErrNotObtained {
				logger.WithFields(logrus.Fields{
					"field": "signUpHandler",
				}).Warn("could not obtain signup lock; proceeding without it")
			} else if err != nil {
				logger.WithFields(logrus.Fields{
					"field": "signUpHandler",
				}).Warn("error obtaining signup lock; proceeding without it: " + err.Error())
			} else {
				defer func() {
					if releaseErr := lock.Release(c.Request.Context()); releaseErr != nil {
						logger.WithFields(logrus.Fields{
							"field": "signUpHandler",
						}).Warn("failed to release signup lock: " + releaseErr.Error())
					}
				}()
			}
		}

		user, err := models.RegisterShop(c.Request.Context(), &req)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":    user.ID,
			"email": user.Email,
		})
	}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signInHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}

		info, err := models.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func signOutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetShopIdFromContext(c.Request.Context()); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ok, err := models.Logout(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"signed_out": ok})
	}
}

// signOutAllHandler revokes every live token for the caller, not just
// the one on this request.
func signOutAllHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}
		identity, err := models.Sessions.Resolve(c.Request.Context(), shopId)
		if err != nil {
			abortWithError(c, err)
			return
		}
		user := models.User{ID: identity.Id, Email: identity.Email}
		if err := user.DestroyAllSessions(c.Request.Context()); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"signed_out": true})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := utils.GetShopIdFromContext(c.Request.Context())
		if !ok || shopId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		identity, err := models.Sessions.Resolve(c.Request.Context(), shopId)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, identity)
	}
}

// requireShop extracts the caller's shop id or writes a 401.
func requireShop(c *gin.Context) (string, bool) {
	shopId, ok := utils.GetShopIdFromContext(c.Request.Context())
	if !ok || shopId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return shopId, true
}
