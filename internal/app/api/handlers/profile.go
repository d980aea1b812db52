package handlers

import (
	"net/http"

	profilesvc "github.com/atomictrack/atomictrack/internal/app/service/profile"
	subsvc "github.com/atomictrack/atomictrack/internal/app/service/subscription"
	models "github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/levels"
	"github.com/atomictrack/atomictrack/pkg/response"
	"github.com/atomictrack/atomictrack/pkg/types"

	"github.com/gin-gonic/gin"
)

// ProfileResponse is the composed profile view: stored state, derived level
// progress, and current subscription.
type ProfileResponse struct {
	Profile      *models.Profile             `json:"profile"`
	Progress     levels.Progress             `json:"progress"`
	Subscription *types.UserSubscriptionInfo `json:"subscription,omitempty"`
}

// @Summary      Get Profile
// @Description  Returns the user's profile with level progress and subscription state.
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  handlers.RespProfile
// @Router       /api/v1/profile [get]
func ApiGetProfile(pSvc *profilesvc.Service, sSvc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := userIDFrom(c)
		p, err := pSvc.Get(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		sub, err := sSvc.Current(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&ProfileResponse{
			Profile:      p,
			Progress:     levels.ForXP(p.XP),
			Subscription: sub,
		}))
	}
}

// @Summary      Update Profile
// @Description  Updates the profile's display name.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body handlers.UpdateProfileRequest true "Profile fields"
// @Success      200  {object}  handlers.RespProfile
// @Router       /api/v1/profile [patch]
func ApiUpdateProfile(pSvc *profilesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p, err := pSvc.UpdateDisplayName(c.Request.Context(), userIDFrom(c), req.DisplayName)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&ProfileResponse{Profile: p, Progress: levels.ForXP(p.XP)}))
	}
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// @Summary      Level Table
// @Description  Returns the full level tier table.
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  handlers.RespLevels
// @Router       /api/v1/levels [get]
func ApiListLevels() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(levels.Tiers()))
	}
}

func RegisterProfileRoutes(r gin.IRouter, pSvc *profilesvc.Service, sSvc *subsvc.Service) {
	r.GET("/profile", ApiGetProfile(pSvc, sSvc))
	r.PATCH("/profile", ApiUpdateProfile(pSvc))
	r.GET("/levels", ApiListLevels())
}
