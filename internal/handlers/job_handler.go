package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/middleware"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

type JobHandler struct {
	*BaseHandler
	jobService *services.JobService
}

func NewJobHandler(base *BaseHandler, jobService *services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/jobs")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("", h.Browse)
		public.GET("/:jobId", h.GetJob)
	}

	// Posting lifecycle - brand only
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAdmin))
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("/my", h.ListMyJobs)
		jobs.PUT("/:jobId", h.UpdateJob)
		jobs.DELETE("/:jobId", h.DeleteJob)
		jobs.POST("/:jobId/publish", h.PublishJob)
		jobs.POST("/:jobId/archive", h.ArchiveJob)
		jobs.POST("/:jobId/duplicate", h.DuplicateJob)
		jobs.POST("/:jobId/start", h.StartJob)

		// Applicant router
		jobs.GET("/:jobId/applicants", h.ListApplicants)
		jobs.POST("/:jobId/applicants/:profileId/accept", h.AcceptApplicant)
		jobs.POST("/:jobId/applicants/:profileId/reject", h.RejectApplicant)
		jobs.POST("/:jobId/applicants/:profileId/unaccept", h.UnacceptApplicant)
		jobs.POST("/:jobId/applicants/:profileId/unreject", h.UnrejectApplicant)
	}

	// Applying - influencer only
	applying := r.Group("/jobs")
	applying.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleInfluencer))
	{
		applying.POST("/:jobId/apply", h.Apply)
		applying.DELETE("/:jobId/apply", h.Withdraw)
		applying.GET("/applications/my", h.ListMyApplications)
	}
}

// --- Public handlers ---

// Browse godoc
// @Summary Browse published jobs
// @Description Lists open, published postings newest first with cursor pagination
// @Tags jobs
// @Produce json
// @Param platform query string false "Platform filter"
// @Param category query string false "Category filter"
// @Param cursor query string false "Pagination cursor from the previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /jobs [get]
func (h *JobHandler) Browse(c *gin.Context) {
	var req dto.BrowseJobsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	jobs, total, next, err := h.jobService.Browse(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":        jobs,
		"total":       total,
		"next_cursor": next,
	})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	resp, err := h.jobService.GetJob(h.GetDB(c), c.Param("jobId"), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Posting lifecycle ---

// CreateJob godoc
// @Summary Create a job posting
// @Description Creates an unpublished draft in the open status
// @Tags jobs
// @Accept json
// @Produce json
// @Param body body dto.CreateJobRequest true "Posting data"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.jobService.CreateJob(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.jobService.UpdateJob(h.GetDB(c), c.Param("jobId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) PublishJob(c *gin.Context) {
	h.lifecycleAction(c, h.jobService.PublishJob)
}

func (h *JobHandler) ArchiveJob(c *gin.Context) {
	h.lifecycleAction(c, h.jobService.ArchiveJob)
}

func (h *JobHandler) DuplicateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobService.DuplicateJob(h.GetDB(c), c.Param("jobId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) StartJob(c *gin.Context) {
	h.lifecycleAction(c, h.jobService.StartJob)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(h.GetDB(c), c.Param("jobId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMyJobs(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// --- Applicant router ---

func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// An apply body is optional; an empty one is a bare application.
	var req dto.ApplyRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.jobService.Apply(h.GetDB(c), c.Param("jobId"), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *JobHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.Withdraw(h.GetDB(c), c.Param("jobId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) ListMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.jobService.ListMyApplications(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *JobHandler) ListApplicants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bucket := models.ApplicationBucket(c.DefaultQuery("bucket", string(models.BucketApplied)))
	switch bucket {
	case models.BucketApplied, models.BucketAccepted, models.BucketRejected, models.BucketSent:
	default:
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown applicant bucket"))
		return
	}

	applicants, err := h.jobService.ListApplicants(h.GetDB(c), c.Param("jobId"), userID, bucket)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicants": applicants, "bucket": bucket})
}

func (h *JobHandler) AcceptApplicant(c *gin.Context) {
	h.routeApplicant(c, h.jobService.AcceptApplicant)
}

func (h *JobHandler) RejectApplicant(c *gin.Context) {
	h.routeApplicant(c, h.jobService.RejectApplicant)
}

func (h *JobHandler) UnacceptApplicant(c *gin.Context) {
	h.routeApplicant(c, h.jobService.UnacceptApplicant)
}

func (h *JobHandler) UnrejectApplicant(c *gin.Context) {
	h.routeApplicant(c, h.jobService.UnrejectApplicant)
}

// lifecycleAction wraps the publish/archive/start pattern: owner-checked
// status flip with no request body.
func (h *JobHandler) lifecycleAction(c *gin.Context, action func(db *gorm.DB, jobID, userID string) (*dto.JobResponse, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := action(h.GetDB(c), c.Param("jobId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) routeApplicant(c *gin.Context, move func(db *gorm.DB, jobID, applicantProfileID, userID string) error) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := move(h.GetDB(c), c.Param("jobId"), c.Param("profileId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
