package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"
)

// JobService owns the posting lifecycle and the applicant router. Applicants
// move between four disjoint buckets (applied, accepted, rejected, sent); the
// unique index on the join table guarantees a profile sits in exactly one.
type JobService struct {
	jobRepo         *repositories.JobRepository
	applicationRepo *repositories.ApplicationRepository
	profileRepo     *repositories.ProfileRepository
	notifications   *NotificationService
}

func NewJobService(jobRepo *repositories.JobRepository, applicationRepo *repositories.ApplicationRepository, profileRepo *repositories.ProfileRepository, notifications *NotificationService) *JobService {
	return &JobService{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		notifications:   notifications,
	}
}

// --- Posting lifecycle ---

func (s *JobService) CreateJob(db *gorm.DB, userID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ProfileID:           profile.ID,
		Summary:             req.Summary,
		Details:             req.Details,
		Platform:            req.Platform,
		PriceCents:          req.PriceCents,
		NumberOfInfluencers: req.NumberOfInfluencers,
		Country:             req.Country,
		City:                req.City,
		Gender:              req.Gender,
		MinFollowers:        req.MinFollowers,
		Published:           false,
		StatusID:            models.JobStatusOpen,
	}
	if job.ContentQuantities, err = toJSON(req.ContentQuantities); err != nil {
		return nil, err
	}
	if job.Categories, err = toJSON(req.Categories); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, err
	}
	return s.toResponse(db, job, false)
}

func (s *JobService) UpdateJob(db *gorm.DB, jobID, userID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return nil, err
	}
	// Edits are only allowed while the posting is an open draft.
	if job.StatusID != models.JobStatusOpen || job.Published {
		return nil, apperrors.ErrInvalidJobStatus
	}

	if req.Summary != nil {
		job.Summary = *req.Summary
	}
	if req.Details != nil {
		job.Details = *req.Details
	}
	if req.Platform != nil {
		job.Platform = *req.Platform
	}
	if req.ContentQuantities != nil {
		if job.ContentQuantities, err = toJSON(req.ContentQuantities); err != nil {
			return nil, err
		}
	}
	if req.Categories != nil {
		if job.Categories, err = toJSON(req.Categories); err != nil {
			return nil, err
		}
	}
	if req.PriceCents != nil {
		job.PriceCents = *req.PriceCents
	}
	if req.NumberOfInfluencers != nil {
		job.NumberOfInfluencers = *req.NumberOfInfluencers
	}
	if req.Country != nil {
		job.Country = *req.Country
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.Gender != nil {
		job.Gender = *req.Gender
	}
	if req.MinFollowers != nil {
		job.MinFollowers = *req.MinFollowers
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, err
	}
	return s.toResponse(db, job, true)
}

func (s *JobService) PublishJob(db *gorm.DB, jobID, userID string) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return nil, err
	}
	if job.StatusID != models.JobStatusOpen || job.Published {
		return nil, apperrors.ErrInvalidJobStatus
	}

	job.Published = true
	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, err
	}
	return s.toResponse(db, job, true)
}

// ArchiveJob retires a posting. Archiving is one-way and allowed from any
// non-archived state; the posting disappears from the public listing.
func (s *JobService) ArchiveJob(db *gorm.DB, jobID, userID string) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return nil, err
	}
	if job.StatusID == models.JobStatusArchived {
		return nil, apperrors.ErrInvalidJobStatus
	}

	job.StatusID = models.JobStatusArchived
	job.Published = false
	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, err
	}
	return s.toResponse(db, job, true)
}

// DeleteJob removes a posting and its applicant rows. Live published postings
// must be archived first.
func (s *JobService) DeleteJob(db *gorm.DB, jobID, userID string) error {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return err
	}
	if job.Published && job.StatusID != models.JobStatusArchived {
		return apperrors.ErrJobNotDeletable
	}
	return s.jobRepo.DeleteWithApplications(db, job.ID)
}

// DuplicateJob clones the posting's content into a fresh unpublished draft.
// Applicant buckets do not carry over.
func (s *JobService) DuplicateJob(db *gorm.DB, jobID, userID string) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return nil, err
	}

	clone := &models.Job{
		ProfileID:           job.ProfileID,
		Summary:             job.Summary,
		Details:             job.Details,
		Platform:            job.Platform,
		ContentQuantities:   job.ContentQuantities,
		Categories:          job.Categories,
		PriceCents:          job.PriceCents,
		NumberOfInfluencers: job.NumberOfInfluencers,
		Country:             job.Country,
		City:                job.City,
		Gender:              job.Gender,
		MinFollowers:        job.MinFollowers,
		Published:           false,
		StatusID:            models.JobStatusOpen,
	}
	if err := s.jobRepo.Create(db, clone); err != nil {
		return nil, err
	}
	return s.toResponse(db, clone, false)
}

// StartJob moves an open posting into in-progress. Requires at least one
// accepted applicant; an in-progress posting no longer accepts applications.
func (s *JobService) StartJob(db *gorm.DB, jobID, userID string) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return nil, err
	}
	if job.StatusID != models.JobStatusOpen {
		return nil, apperrors.ErrInvalidJobStatus
	}

	accepted, err := s.applicationRepo.CountByJobAndBucket(db, job.ID, models.BucketAccepted)
	if err != nil {
		return nil, err
	}
	if accepted == 0 {
		return nil, apperrors.ErrNoAcceptedApplicants
	}

	job.StatusID = models.JobStatusInProgress
	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, err
	}
	return s.toResponse(db, job, true)
}

// GetJob returns a posting. Unpublished drafts are visible to their owner
// only; userID may be empty for anonymous requests.
func (s *JobService) GetJob(db *gorm.DB, jobID, userID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, wrapNotFound(err)
	}

	requesterProfileID := ""
	if userID != "" {
		if profile, err := s.profileRepo.FindByUserID(db, userID); err == nil {
			requesterProfileID = profile.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if !job.Published && job.ProfileID != requesterProfileID {
		return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound)
	}
	return s.toResponse(db, job, job.ProfileID == requesterProfileID)
}

func (s *JobService) ListMyJobs(db *gorm.DB, userID string) ([]dto.JobResponse, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.ListByProfile(db, profile.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp, err := s.toResponse(db, &jobs[i], true)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *JobService) Browse(db *gorm.DB, req *dto.BrowseJobsRequest) ([]dto.JobResponse, int64, string, error) {
	cursor, err := pagination.Decode(req.Cursor)
	if err != nil {
		return nil, 0, "", err
	}
	limit := pagination.ClampLimit(req.Limit)

	criteria := repositories.JobBrowseCriteria{
		Platform:      req.Platform,
		Category:      req.Category,
		Country:       req.Country,
		City:          req.City,
		Gender:        req.Gender,
		MinPriceCents: req.MinPriceCents,
		MaxPriceCents: req.MaxPriceCents,
	}
	jobs, total, err := s.jobRepo.Browse(db, criteria, cursor, limit)
	if err != nil {
		return nil, 0, "", err
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp, err := s.toResponse(db, &jobs[i], false)
		if err != nil {
			return nil, 0, "", err
		}
		out = append(out, *resp)
	}

	next := ""
	if len(jobs) == limit {
		last := jobs[len(jobs)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return out, total, next, nil
}

// --- Applicant router ---

// Apply puts the caller's profile into the applied bucket. Only open,
// published postings accept applicants, and never from their own poster.
func (s *JobService) Apply(db *gorm.DB, jobID, userID string, req *dto.ApplyRequest) error {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return err
	}

	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return wrapNotFound(err)
	}
	if !job.Published || job.StatusID != models.JobStatusOpen {
		return apperrors.ErrJobNotPublished
	}
	if job.ProfileID == profile.ID {
		return apperrors.ErrCannotApplyToOwnJob
	}

	if _, err := s.applicationRepo.FindByJobAndProfile(db, job.ID, profile.ID); err == nil {
		return apperrors.ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	application := &models.JobApplication{
		JobID:     job.ID,
		ProfileID: profile.ID,
		Bucket:    models.BucketApplied,
	}
	if err := s.applicationRepo.Create(db, application); err != nil {
		return err
	}

	data := map[string]any{"job_summary": job.Summary}
	if req != nil && req.Message != "" {
		data["message"] = req.Message
	}
	s.notifications.Emit(db, job.ProfileID, &profile.ID, "job", job.ID, models.ActionJobApplicationReceived, data)
	return nil
}

// ListMyApplications returns the caller's applications across postings,
// newest first.
func (s *JobService) ListMyApplications(db *gorm.DB, userID string) ([]dto.MyApplicationResponse, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByProfile(db, profile.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MyApplicationResponse, 0, len(applications))
	for _, a := range applications {
		out = append(out, dto.MyApplicationResponse{
			ApplicationID: a.ID,
			JobID:         a.JobID,
			JobSummary:    a.Job.Summary,
			Bucket:        string(a.Bucket),
			OrderID:       a.OrderID,
			AppliedAt:     a.CreatedAt,
		})
	}
	return out, nil
}

// Withdraw removes the caller from the applied bucket. Applicants the poster
// already routed cannot withdraw themselves.
func (s *JobService) Withdraw(db *gorm.DB, jobID, userID string) error {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return err
	}

	application, err := s.applicationRepo.FindByJobAndProfile(db, jobID, profile.ID)
	if err != nil {
		return wrapNotFound(err)
	}
	if application.Bucket != models.BucketApplied {
		return apperrors.ErrNotInBucket
	}
	return s.applicationRepo.Delete(db, application)
}

func (s *JobService) ListApplicants(db *gorm.DB, jobID, userID string, bucket models.ApplicationBucket) ([]dto.ApplicantResponse, error) {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByJobAndBucket(db, job.ID, bucket)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ApplicantResponse, 0, len(applications))
	for _, a := range applications {
		out = append(out, dto.ApplicantResponse{
			ApplicationID: a.ID,
			ProfileID:     a.ProfileID,
			ProfileName:   a.Profile.Name,
			Bucket:        string(a.Bucket),
			OrderID:       a.OrderID,
			AppliedAt:     a.CreatedAt,
		})
	}
	return out, nil
}

// AcceptApplicant moves applied -> accepted. Capacity is enforced here: the
// accepted bucket can never exceed the posting's influencer target, and the
// check and move run in one transaction.
func (s *JobService) AcceptApplicant(db *gorm.DB, jobID, applicantProfileID, userID string) error {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		application, err := s.applicationRepo.FindByJobAndProfile(tx, job.ID, applicantProfileID)
		if err != nil {
			return wrapNotFound(err)
		}
		if application.Bucket != models.BucketApplied {
			return apperrors.ErrNotInBucket
		}

		accepted, err := s.applicationRepo.CountByJobAndBucket(tx, job.ID, models.BucketAccepted)
		if err != nil {
			return err
		}
		if accepted >= int64(job.NumberOfInfluencers) {
			return apperrors.ErrCapacityExceeded
		}

		application.Bucket = models.BucketAccepted
		if err := s.applicationRepo.Save(tx, application); err != nil {
			return err
		}

		return s.notifications.EmitTx(tx, applicantProfileID, &job.ProfileID, "job", job.ID, models.ActionApplicantAccepted, map[string]any{"job_summary": job.Summary})
	})
}

// RejectApplicant moves applied -> rejected.
func (s *JobService) RejectApplicant(db *gorm.DB, jobID, applicantProfileID, userID string) error {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return err
	}

	application, err := s.applicationRepo.FindByJobAndProfile(db, job.ID, applicantProfileID)
	if err != nil {
		return wrapNotFound(err)
	}
	if application.Bucket != models.BucketApplied {
		return apperrors.ErrNotInBucket
	}

	application.Bucket = models.BucketRejected
	if err := s.applicationRepo.Save(db, application); err != nil {
		return err
	}

	s.notifications.Emit(db, applicantProfileID, &job.ProfileID, "job", job.ID, models.ActionApplicantRejected, map[string]any{"job_summary": job.Summary})
	return nil
}

// UnacceptApplicant moves accepted -> applied, freeing a capacity slot.
func (s *JobService) UnacceptApplicant(db *gorm.DB, jobID, applicantProfileID, userID string) error {
	return s.moveApplicant(db, jobID, applicantProfileID, userID, models.BucketAccepted, models.BucketApplied)
}

// UnrejectApplicant moves rejected -> applied.
func (s *JobService) UnrejectApplicant(db *gorm.DB, jobID, applicantProfileID, userID string) error {
	return s.moveApplicant(db, jobID, applicantProfileID, userID, models.BucketRejected, models.BucketApplied)
}

func (s *JobService) moveApplicant(db *gorm.DB, jobID, applicantProfileID, userID string, from, to models.ApplicationBucket) error {
	job, err := s.findOwnedJob(db, jobID, userID)
	if err != nil {
		return err
	}

	application, err := s.applicationRepo.FindByJobAndProfile(db, job.ID, applicantProfileID)
	if err != nil {
		return wrapNotFound(err)
	}
	if application.Bucket != from {
		return apperrors.ErrNotInBucket
	}

	application.Bucket = to
	return s.applicationRepo.Save(db, application)
}

func (s *JobService) findOwnedJob(db *gorm.DB, jobID, userID string) (*models.Job, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if job.ProfileID != profile.ID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return job, nil
}

func (s *JobService) toResponse(db *gorm.DB, job *models.Job, withStats bool) (*dto.JobResponse, error) {
	resp := &dto.JobResponse{
		ID:                  job.ID,
		ProfileID:           job.ProfileID,
		ProfileName:         job.Profile.Name,
		Summary:             job.Summary,
		Details:             job.Details,
		Platform:            job.Platform,
		PriceCents:          job.PriceCents,
		NumberOfInfluencers: job.NumberOfInfluencers,
		Country:             job.Country,
		City:                job.City,
		Gender:              job.Gender,
		MinFollowers:        job.MinFollowers,
		Published:           job.Published,
		StatusID:            int(job.StatusID),
		Status:              job.StatusID.String(),
		CreatedAt:           job.CreatedAt,
	}
	if err := fromJSON(job.ContentQuantities, &resp.ContentQuantities); err != nil {
		return nil, err
	}
	if err := fromJSON(job.Categories, &resp.Categories); err != nil {
		return nil, err
	}

	if withStats {
		stats := &dto.JobStatsResponse{}
		var err error
		if stats.Applied, err = s.applicationRepo.CountByJobAndBucket(db, job.ID, models.BucketApplied); err != nil {
			return nil, err
		}
		if stats.Accepted, err = s.applicationRepo.CountByJobAndBucket(db, job.ID, models.BucketAccepted); err != nil {
			return nil, err
		}
		if stats.Rejected, err = s.applicationRepo.CountByJobAndBucket(db, job.ID, models.BucketRejected); err != nil {
			return nil, err
		}
		if stats.Sent, err = s.applicationRepo.CountByJobAndBucket(db, job.ID, models.BucketSent); err != nil {
			return nil, err
		}
		resp.Stats = stats
	}
	return resp, nil
}
