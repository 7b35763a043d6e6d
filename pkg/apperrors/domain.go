package apperrors

import (
	"net/http"
)

/*
Factories and predeclared variables for the marketplace domain errors.
*/

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Postings ---

// ErrInvalidJobStatus - the operation is not allowed for the posting's current status.
var ErrInvalidJobStatus = New(
	CodeInvalidStatus,
	"job",
	"Operation not allowed for the current job status",
	http.StatusConflict,
)

// ErrJobNotPublished - only open, published postings accept applicants.
var ErrJobNotPublished = New(
	CodeInvalidStatus,
	"job",
	"Job is not open for applications",
	http.StatusConflict,
)

// ErrJobNotDeletable - live published postings cannot be deleted.
var ErrJobNotDeletable = New(
	CodeInvalidOperation,
	"job",
	"Only unpublished or archived jobs can be deleted",
	http.StatusConflict,
)

// ErrCapacityExceeded - accepting would exceed the posting's influencer target.
var ErrCapacityExceeded = New(
	CodeCapacityExceeded,
	"job",
	"Accepted applicants would exceed the configured influencer target",
	http.StatusConflict,
)

// ErrNotInBucket - the profile is not in the bucket the operation requires.
var ErrNotInBucket = New(
	CodeInvalidOperation,
	"job",
	"Profile is not in the required applicant bucket",
	http.StatusConflict,
)

// ErrAlreadyApplied - the profile already sits in one of the four buckets.
var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"job",
	"Profile has already applied to this job",
	http.StatusConflict,
)

// ErrNoAcceptedApplicants - starting a posting requires at least one accepted applicant.
var ErrNoAcceptedApplicants = New(
	CodeInvalidOperation,
	"job",
	"At least one accepted applicant is required to start this job",
	http.StatusConflict,
)

// ErrCannotApplyToOwnJob - the poster cannot apply to its own posting.
var ErrCannotApplyToOwnJob = New(
	CodeInvalidOperation,
	"job",
	"Cannot apply to your own job",
	http.StatusBadRequest,
)

// --- Orders ---

// ErrInvalidOrderTransition - the requested status change is not in the transition table.
var ErrInvalidOrderTransition = New(
	CodeInvalidTransition,
	"order",
	"Order status transition not allowed",
	http.StatusConflict,
)

// ErrOrderNotEditable - delivery-date edits are only allowed pre-delivery.
var ErrOrderNotEditable = New(
	CodeInvalidStatus,
	"order",
	"Order can no longer be modified in its current status",
	http.StatusConflict,
)

// ErrNotOrderParty - the requester is neither buyer nor influencer on the order.
var ErrNotOrderParty = New(
	CodeForbidden,
	"order",
	"You are not a party to this order",
	http.StatusForbidden,
)

// --- Reviews & payouts ---

// ErrReviewAlreadyExists - reviews are one-to-one with confirmed orders.
var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"This order has already been reviewed",
	http.StatusConflict,
)

// ErrOrderNotConfirmed - reviews require a confirmed order.
var ErrOrderNotConfirmed = New(
	CodeInvalidStatus,
	"review",
	"Reviews can only be left on confirmed orders",
	http.StatusConflict,
)

// ErrPayoutAlreadyPaid - payout rows are settled once.
var ErrPayoutAlreadyPaid = New(
	CodeInvalidOperation,
	"payout",
	"Payout has already been settled",
	http.StatusConflict,
)

// --- Auth & profiles ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrProfileRequired = New(
	CodeInvalidOperation,
	"profile",
	"A profile is required before performing this action",
	http.StatusConflict,
)

// --- Pagination ---

// ErrInvalidCursor - the pagination cursor could not be decoded.
var ErrInvalidCursor = New(
	CodeValidationFailed,
	"pagination",
	"Invalid pagination cursor",
	http.StatusBadRequest,
)
