package engagement

import "errors"

// Sentinel errors for the engagement service layer.
var (
	ErrNotFound        = errors.New("recipient not found")
	ErrMissingOrg      = errors.New("organization id is required")
	ErrMissingCampaign = errors.New("campaign id is required")
)
