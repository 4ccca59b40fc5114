// Package businessflow contains the core business logic and use cases of the vendor campaign portal
package businessflow

import (
	"errors"
	"fmt"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/utils"
)

// Business flow error constants
var (
	// OAuth errors
	ErrStateMismatch       = errors.New("OAuth state mismatch")
	ErrMissingCode         = errors.New("missing authorization code")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrProfileFetchFailed  = errors.New("profile fetch failed")
	ErrNotAVendor          = errors.New("account is not a vendor")

	// Campaign errors
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrTitleRequired     = errors.New("campaign title is required")
	ErrInvalidDateFormat = utils.ErrInvalidDateFormat
	ErrInvalidDateRange  = errors.New("start date must be before end date")

	// Selection errors
	ErrMinDiscountViolation = errors.New("discount below the minimum is not allowed")
	ErrNoSelections         = errors.New("no products found for this campaign")

	// Catalog errors
	ErrCatalogUnavailable = errors.New("catalog is unavailable")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// UpstreamFailure wraps a failed OAuth step together with the remote HTTP status, 0 when none
type UpstreamFailure struct {
	Kind       error
	StatusCode int
	Err        error
}

func (e *UpstreamFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *UpstreamFailure) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// MinDiscountError lists the selections rejected for being under the minimum discount
type MinDiscountError struct {
	Items []dto.InvalidDiscount
}

func (e *MinDiscountError) Error() string {
	return fmt.Sprintf("%v: %d item(s)", ErrMinDiscountViolation, len(e.Items))
}

func (e *MinDiscountError) Unwrap() error {
	return ErrMinDiscountViolation
}

func IsStateMismatch(err error) bool {
	return errors.Is(err, ErrStateMismatch)
}

func IsMissingCode(err error) bool {
	return errors.Is(err, ErrMissingCode)
}

func IsTokenExchangeFailed(err error) bool {
	return errors.Is(err, ErrTokenExchangeFailed)
}

func IsProfileFetchFailed(err error) bool {
	return errors.Is(err, ErrProfileFetchFailed)
}

func IsNotAVendor(err error) bool {
	return errors.Is(err, ErrNotAVendor)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsTitleRequired(err error) bool {
	return errors.Is(err, ErrTitleRequired)
}

func IsInvalidDateFormat(err error) bool {
	return errors.Is(err, ErrInvalidDateFormat)
}

func IsInvalidDateRange(err error) bool {
	return errors.Is(err, ErrInvalidDateRange)
}

func IsMinDiscountViolation(err error) bool {
	return errors.Is(err, ErrMinDiscountViolation)
}

func IsNoSelections(err error) bool {
	return errors.Is(err, ErrNoSelections)
}

func IsCatalogUnavailable(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}

// UpstreamStatusOf returns the remote status carried by an OAuth failure, or 0
func UpstreamStatusOf(err error) int {
	var uf *UpstreamFailure
	if errors.As(err, &uf) {
		return uf.StatusCode
	}
	return 0
}
