// Package engagement serves recipient and campaign touchpoint analytics.
//
// The service loads a campaign's recipient feed through the Repository
// defined here and runs it through the pure analytics core (touchpoint,
// timeline, stage, analytics). It owns no state beyond the optional memo
// cache and never writes to the feed.
//
// Repository implementations live in repository/postgres/.
package engagement
