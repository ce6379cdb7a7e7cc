package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RecommendationStatus tracks whether a tender takes part in matching.
type RecommendationStatus string

const (
	// StatusPending marks a tender that has not been embedded yet.
	StatusPending RecommendationStatus = ""
	// StatusActive marks an embedded tender that is eligible for matching.
	StatusActive RecommendationStatus = "active"
	// StatusExpired marks a tender whose deadline passed without any saves.
	StatusExpired RecommendationStatus = "expired"
	// StatusExpiredSaved marks a tender whose deadline passed while saved by at least one user.
	StatusExpiredSaved RecommendationStatus = "expired_saved"
	// StatusHistorical is part of the stored vocabulary but nothing transitions into it.
	StatusHistorical RecommendationStatus = "historical"
)

// IsTerminal reports whether the status can no longer return to active.
func (s RecommendationStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusExpiredSaved || s == StatusHistorical
}

// CompanySize is a coarse headcount band declared on a profile.
type CompanySize string

// YearsInOperation is a coarse age band declared on a profile.
type YearsInOperation string

// ScoringWeights holds the per-component point budget used by the scorer.
// Weights need not sum to 100.
type ScoringWeights struct {
	Semantic       float64
	ActiveSectors  float64
	Keywords       float64
	SubSectors     float64
	Region         float64
	Budget         float64
	Certifications float64
}

// DefaultWeights returns the weight table used when a profile has none.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Semantic:       25,
		ActiveSectors:  25,
		Keywords:       20,
		SubSectors:     15,
		Region:         8,
		Budget:         4,
		Certifications: 3,
	}
}

// Profile holds a company's declared capabilities and matching preferences.
type Profile struct {
	Id                ID
	CompanyId         ID
	UserId            ID // Owner of the company account; dismissals are looked up for this user
	PrimarySector     string
	ActiveSectors     []string
	SubSectors        []string
	PreferredRegions  []string
	Keywords          []string
	Certifications    []string
	BudgetMin         *float64
	BudgetMax         *float64
	BudgetCurrency    string
	CompanySize       CompanySize
	YearsInOperation  YearsInOperation
	Weights           *ScoringWeights // nil means DefaultWeights
	MinMatchThreshold float64
	Vector            []float32 // Embedding vector (populated by the profile builder)
	EmbeddedAt        time.Time
	InteractionCount  int64
	LastInteractionAt time.Time
	InsertedAt        time.Time
	UpdatedAt         time.Time
}

// EffectiveWeights returns the profile's weight table or the defaults.
func (p *Profile) EffectiveWeights() ScoringWeights {
	if p.Weights == nil {
		return DefaultWeights()
	}
	return *p.Weights
}

// HasEmbedding reports whether the profile has been embedded at least once.
func (p *Profile) HasEmbedding() bool {
	return len(p.Vector) > 0
}

// Tender is a procurement opportunity.
type Tender struct {
	Id          ID
	Title       string
	Description string
	Category    string
	Region      string
	Budget      *float64
	Currency    string
	Deadline    time.Time
	Status      RecommendationStatus
	Summary     string    // Curated summary, appended to the embedding text when present
	Tags        []string  // Optional keyword metadata; empty means no keyword contribution
	Vector      []float32 // Embedding vector (populated by the tender builder)
	EmbeddedAt  time.Time
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// HasEmbedding reports whether the tender has been embedded at least once.
func (t *Tender) HasEmbedding() bool {
	return len(t.Vector) > 0
}

// InteractionType enumerates the user actions recorded against a tender.
type InteractionType string

const (
	InteractionView         InteractionType = "view"
	InteractionSave         InteractionType = "save"
	InteractionApply        InteractionType = "apply"
	InteractionDismiss      InteractionType = "dismiss"
	InteractionRatePositive InteractionType = "rate_positive"
	InteractionRateNegative InteractionType = "rate_negative"
)

// InteractionTypes lists every valid interaction type.
var InteractionTypes = []InteractionType{
	InteractionView,
	InteractionSave,
	InteractionApply,
	InteractionDismiss,
	InteractionRatePositive,
	InteractionRateNegative,
}

var interactionWeights = map[InteractionType]float64{
	InteractionView:         0.1,
	InteractionSave:         0.5,
	InteractionApply:        1.0,
	InteractionDismiss:      -0.3,
	InteractionRatePositive: 0.8,
	InteractionRateNegative: -0.8,
}

// feedbackAliases maps the external feedback vocabulary onto interaction types.
var feedbackAliases = map[string]InteractionType{
	"relevant":     InteractionRatePositive,
	"not_relevant": InteractionRateNegative,
	"applied":      InteractionApply,
	"saved":        InteractionSave,
	"dismissed":    InteractionDismiss,
}

// Weight returns the fixed signal weight of the interaction type.
func (t InteractionType) Weight() float64 {
	return interactionWeights[t]
}

// Interaction is a recorded user action against a tender.
// It is unique per (UserId, TenderId, Type).
type Interaction struct {
	Id               ID
	UserId           ID
	TenderId         ID
	Type             InteractionType
	Weight           float64
	Reason           string
	MatchScoreAtTime *float64
	TenderCategory   string // Snapshot so the record stays meaningful after the tender is deleted
	TenderRegion     string
	TenderBudget     *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InteractionID derives the deterministic ID of the (user, tender, type) triple.
func InteractionID(userID, tenderID ID, interactionType InteractionType) ID {
	key := strconv.FormatUint(uint64(userID), 10) + ":" +
		strconv.FormatUint(uint64(tenderID), 10) + ":" + string(interactionType)
	return IDFromContent(key)
}

// ReasonType names the scoring rule that produced a Reason.
type ReasonType string

const (
	ReasonSemantic  ReasonType = "semantic"
	ReasonSector    ReasonType = "sector"
	ReasonSubSector ReasonType = "sub_sector"
	ReasonRegion    ReasonType = "region"
	ReasonKeyword   ReasonType = "keyword"
	ReasonBudget    ReasonType = "budget"
	ReasonUrgency   ReasonType = "urgency"
)

// Reason explains one contribution to a match score.
type Reason struct {
	Type    ReasonType
	Message string
	Weight  float64
}

// MatchResult is a scored recommendation. It is never persisted.
type MatchResult struct {
	Tender            *Tender
	Score             float64
	Reasons           []Reason
	Similarity        float64
	DaysUntilDeadline int
}

// TenderMatch pairs a tender with its raw cosine similarity to a query vector.
type TenderMatch struct {
	Tender     *Tender
	Similarity float64
}

// SimilarTender is a result of a content-only "more like this" query.
type SimilarTender = TenderMatch

// EntityKind distinguishes the two embeddable entities.
type EntityKind string

const (
	EntityTender  EntityKind = "tender"
	EntityProfile EntityKind = "profile"
)

// EntityRef identifies an embeddable entity.
type EntityRef struct {
	Kind EntityKind
	Id   ID
}

// ExpiryReport summarizes one expiry sweep.
type ExpiryReport struct {
	Expired      int
	ExpiredSaved int
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of calendar days (UTC) from now until deadline.
// It is negative when the deadline has passed.
func DaysUntil(now, deadline time.Time) int {
	return int(StartOfDay(deadline).Sub(StartOfDay(now)).Hours() / 24)
}
