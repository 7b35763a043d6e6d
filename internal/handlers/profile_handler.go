package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relense/influencer-markt-sub001/internal/middleware"
	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
)

type ProfileHandler struct {
	*BaseHandler
	profileService *services.ProfileService
	reviewService  *services.ReviewService
}

func NewProfileHandler(base *BaseHandler, profileService *services.ProfileService, reviewService *services.ReviewService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		reviewService:  reviewService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/profiles")
	{
		public.GET("", h.Browse)
		public.GET("/:profileId", h.GetProfile)
		public.GET("/:profileId/reviews", h.ListReviews)
	}

	protected := r.Group("/profiles")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateProfile)
		protected.GET("/me", h.GetMyProfile)
		protected.PUT("/me", h.UpdateProfile)
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.CreateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileService.GetMyProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.profileService.GetProfile(h.GetDB(c), c.Param("profileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Browse(c *gin.Context) {
	var req dto.BrowseProfilesRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	profiles, total, next, err := h.profileService.Browse(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profiles":    profiles,
		"total":       total,
		"next_cursor": next,
	})
}

func (h *ProfileHandler) ListReviews(c *gin.Context) {
	var req dto.PageRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	reviews, total, rating, next, err := h.reviewService.ListForProfile(h.GetDB(c), c.Param("profileId"), req.Cursor, req.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":     reviews,
		"total":       total,
		"rating":      rating,
		"next_cursor": next,
	})
}
