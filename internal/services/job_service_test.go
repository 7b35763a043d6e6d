package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

func TestJobLifecycle_DraftPublishArchiveDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")

	job, err := c.Job.CreateJob(db, brandID, &dto.CreateJobRequest{
		Summary:             "Product review video",
		Platform:            "youtube",
		ContentQuantities:   map[string]int{"video": 1},
		PriceCents:          120_000,
		NumberOfInfluencers: 2,
	})
	require.NoError(t, err)
	assert.False(t, job.Published)
	assert.Equal(t, "open", job.Status)

	// Drafts are editable.
	newSummary := "Product review video (updated)"
	updated, err := c.Job.UpdateJob(db, job.ID, brandID, &dto.UpdateJobRequest{Summary: &newSummary})
	require.NoError(t, err)
	assert.Equal(t, newSummary, updated.Summary)

	published, err := c.Job.PublishJob(db, job.ID, brandID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	// Publishing twice is rejected, and a live posting is no longer editable.
	_, err = c.Job.PublishJob(db, job.ID, brandID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobStatus)
	_, err = c.Job.UpdateJob(db, job.ID, brandID, &dto.UpdateJobRequest{Summary: &newSummary})
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobStatus)

	// A live published posting cannot be deleted outright.
	err = c.Job.DeleteJob(db, job.ID, brandID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotDeletable)

	archived, err := c.Job.ArchiveJob(db, job.ID, brandID)
	require.NoError(t, err)
	assert.Equal(t, "archived", archived.Status)
	assert.False(t, archived.Published)

	// Archiving is one-way.
	_, err = c.Job.ArchiveJob(db, job.ID, brandID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobStatus)

	// Archived postings can be deleted.
	require.NoError(t, c.Job.DeleteJob(db, job.ID, brandID))
	_, err = c.Job.GetJob(db, job.ID, brandID)
	assert.Error(t, err)

	// The deletion is soft: the row survives with a deletion timestamp.
	var trashed models.Job
	require.NoError(t, db.Unscoped().First(&trashed, "id = ?", job.ID).Error)
	assert.True(t, trashed.DeletedAt.Valid)
}

func TestJobDelete_RemovesApplications(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	infID, _ := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	job := createPublishedJob(t, db, c, brandID, 1)
	require.NoError(t, c.Job.Apply(db, job.ID, infID, nil))

	archived, err := c.Job.ArchiveJob(db, job.ID, brandID)
	require.NoError(t, err)
	require.NoError(t, c.Job.DeleteJob(db, archived.ID, brandID))

	var count int64
	require.NoError(t, db.Model(&models.JobApplication{}).Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestJobDuplicate_FreshDraftWithoutApplicants(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	infID, _ := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	job := createPublishedJob(t, db, c, brandID, 3)
	require.NoError(t, c.Job.Apply(db, job.ID, infID, nil))

	clone, err := c.Job.DuplicateJob(db, job.ID, brandID)
	require.NoError(t, err)

	assert.NotEqual(t, job.ID, clone.ID)
	assert.Equal(t, job.Summary, clone.Summary)
	assert.Equal(t, job.PriceCents, clone.PriceCents)
	assert.False(t, clone.Published)
	assert.Equal(t, "open", clone.Status)
	require.NotNil(t, clone.Stats)
	assert.Zero(t, clone.Stats.Applied)
}

func TestApply_Guards(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	infID, _ := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	draft, err := c.Job.CreateJob(db, brandID, &dto.CreateJobRequest{
		Summary:             "Unpublished draft",
		Platform:            "tiktok",
		ContentQuantities:   map[string]int{"video": 2},
		PriceCents:          30_000,
		NumberOfInfluencers: 1,
	})
	require.NoError(t, err)

	// Drafts do not accept applicants.
	err = c.Job.Apply(db, draft.ID, infID, nil)
	assert.ErrorIs(t, err, apperrors.ErrJobNotPublished)

	job := createPublishedJob(t, db, c, brandID, 1)

	// The poster cannot apply to its own posting.
	err = c.Job.Apply(db, job.ID, brandID, nil)
	assert.ErrorIs(t, err, apperrors.ErrCannotApplyToOwnJob)

	require.NoError(t, c.Job.Apply(db, job.ID, infID, nil))
	err = c.Job.Apply(db, job.ID, infID, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestApplicantRouter_BucketMoves(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, brandProfileID := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	infID, infProfileID := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	job := createPublishedJob(t, db, c, brandID, 2)
	require.NoError(t, c.Job.Apply(db, job.ID, infID, &dto.ApplyRequest{Message: "Would love to work on this"}))
	assert.Equal(t, int64(1), countNotifications(t, db, brandProfileID, models.ActionJobApplicationReceived))

	// applied -> accepted
	require.NoError(t, c.Job.AcceptApplicant(db, job.ID, infProfileID, brandID))
	accepted, err := c.Job.ListApplicants(db, job.ID, brandID, models.BucketAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, infProfileID, accepted[0].ProfileID)
	assert.Equal(t, int64(1), countNotifications(t, db, infProfileID, models.ActionApplicantAccepted))

	// Accepting again fails: the profile left the applied bucket.
	err = c.Job.AcceptApplicant(db, job.ID, infProfileID, brandID)
	assert.ErrorIs(t, err, apperrors.ErrNotInBucket)

	// accepted -> applied -> rejected -> applied
	require.NoError(t, c.Job.UnacceptApplicant(db, job.ID, infProfileID, brandID))
	require.NoError(t, c.Job.RejectApplicant(db, job.ID, infProfileID, brandID))
	require.NoError(t, c.Job.UnrejectApplicant(db, job.ID, infProfileID, brandID))

	applied, err := c.Job.ListApplicants(db, job.ID, brandID, models.BucketApplied)
	require.NoError(t, err)
	require.Len(t, applied, 1)

	// Only the poster can route applicants.
	err = c.Job.AcceptApplicant(db, job.ID, infProfileID, infID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestAcceptApplicant_CapacityEnforced(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	firstID, firstProfileID := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")
	secondID, secondProfileID := createUserWithProfile(t, db, models.UserRoleInfluencer, "Eli")

	job := createPublishedJob(t, db, c, brandID, 1)
	require.NoError(t, c.Job.Apply(db, job.ID, firstID, nil))
	require.NoError(t, c.Job.Apply(db, job.ID, secondID, nil))

	require.NoError(t, c.Job.AcceptApplicant(db, job.ID, firstProfileID, brandID))
	err := c.Job.AcceptApplicant(db, job.ID, secondProfileID, brandID)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	// Freeing the slot makes the second acceptance possible.
	require.NoError(t, c.Job.UnacceptApplicant(db, job.ID, firstProfileID, brandID))
	require.NoError(t, c.Job.AcceptApplicant(db, job.ID, secondProfileID, brandID))
}

func TestStartJob_RequiresAcceptedApplicant(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	infID, infProfileID := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	job := createPublishedJob(t, db, c, brandID, 1)

	_, err := c.Job.StartJob(db, job.ID, brandID)
	assert.ErrorIs(t, err, apperrors.ErrNoAcceptedApplicants)

	require.NoError(t, c.Job.Apply(db, job.ID, infID, nil))
	require.NoError(t, c.Job.AcceptApplicant(db, job.ID, infProfileID, brandID))

	started, err := c.Job.StartJob(db, job.ID, brandID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", started.Status)

	// An in-progress posting no longer accepts applicants.
	otherID, _ := createUserWithProfile(t, db, models.UserRoleInfluencer, "Finn")
	err = c.Job.Apply(db, job.ID, otherID, nil)
	assert.ErrorIs(t, err, apperrors.ErrJobNotPublished)

	// And it disappears from the public listing.
	jobs, total, _, err := c.Job.Browse(db, &dto.BrowseJobsRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, jobs)
}

func TestBrowse_OnlyOpenPublished(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")

	createPublishedJob(t, db, c, brandID, 1)
	_, err := c.Job.CreateJob(db, brandID, &dto.CreateJobRequest{
		Summary:             "Hidden draft",
		Platform:            "instagram",
		ContentQuantities:   map[string]int{"post": 1},
		PriceCents:          10_000,
		NumberOfInfluencers: 1,
	})
	require.NoError(t, err)

	jobs, total, _, err := c.Job.Browse(db, &dto.BrowseJobsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, jobs, 1)
	assert.NotEqual(t, "Hidden draft", jobs[0].Summary)
}

func TestBrowse_DeletedAnchorSkipsForward(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")

	// Distinct creation times keep the keyset order deterministic.
	base := time.Now().UTC().Add(-time.Hour)
	ids := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		job := createPublishedJob(t, db, c, brandID, 1)
		require.NoError(t, db.Model(&models.Job{}).
			Where("id = ?", job.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, job.ID)
	}

	page, _, cursor, err := c.Job.Browse(db, &dto.BrowseJobsRequest{Limit: 5})
	require.NoError(t, err)
	require.Len(t, page, 5)
	require.NotEmpty(t, cursor)

	seen := map[string]int{}
	for _, j := range page {
		seen[j.ID]++
	}

	// Remove the row the cursor anchors on before fetching the next page.
	anchorID := page[len(page)-1].ID
	_, err = c.Job.ArchiveJob(db, anchorID, brandID)
	require.NoError(t, err)
	require.NoError(t, c.Job.DeleteJob(db, anchorID, brandID))

	for pages := 0; cursor != ""; pages++ {
		require.Less(t, pages, 10, "cursor walk did not terminate")

		page, _, cursor, err = c.Job.Browse(db, &dto.BrowseJobsRequest{Cursor: cursor, Limit: 5})
		require.NoError(t, err)
		for _, j := range page {
			seen[j.ID]++
		}
	}

	// Every surviving posting shows up exactly once; the walk resumes past
	// the vanished anchor instead of stalling or repeating rows.
	for _, id := range ids {
		if id == anchorID {
			continue
		}
		assert.Equal(t, 1, seen[id])
	}
	assert.Equal(t, 1, seen[anchorID])
}

func TestGetJob_DraftVisibleToOwnerOnly(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	infID, _ := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	draft, err := c.Job.CreateJob(db, brandID, &dto.CreateJobRequest{
		Summary:             "Secret campaign",
		Platform:            "instagram",
		ContentQuantities:   map[string]int{"post": 1},
		PriceCents:          10_000,
		NumberOfInfluencers: 1,
	})
	require.NoError(t, err)

	_, err = c.Job.GetJob(db, draft.ID, infID)
	assert.Error(t, err)

	_, err = c.Job.GetJob(db, draft.ID, "")
	assert.Error(t, err)

	got, err := c.Job.GetJob(db, draft.ID, brandID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestListMyApplications(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, "Acme")
	infID, infProfileID := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	first := createPublishedJob(t, db, c, brandID, 1)
	second := createPublishedJob(t, db, c, brandID, 1)
	require.NoError(t, c.Job.Apply(db, first.ID, infID, nil))
	require.NoError(t, c.Job.Apply(db, second.ID, infID, nil))
	require.NoError(t, c.Job.AcceptApplicant(db, first.ID, infProfileID, brandID))

	applications, err := c.Job.ListMyApplications(db, infID)
	require.NoError(t, err)
	require.Len(t, applications, 2)

	byJob := map[string]string{}
	for _, a := range applications {
		byJob[a.JobID] = a.Bucket
		assert.NotEmpty(t, a.JobSummary)
	}
	assert.Equal(t, "accepted", byJob[first.ID])
	assert.Equal(t, "applied", byJob[second.ID])
}
