// Package feedback records user interactions with tenders.
//
// Each (user, tender, type) triple is stored at most once: recording the same
// type again refreshes the reason, score and timestamp in place, while
// different types on the same tender coexist. Every recorded interaction also
// bumps the engagement counters of the user's profile.
//
// Interactions carry a snapshot of the tender's category, region and budget so
// they remain meaningful after the tender itself is deleted.
package feedback
