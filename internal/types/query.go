package types

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Level distinguishes a state-level sweep query from a district-level
// drill-down query.
type Level string

const (
	LevelState    Level = "state"
	LevelDistrict Level = "district"
)

// ProviderHint identifies which news provider a Query targets.
type ProviderHint string

const (
	ProviderGoogle   ProviderHint = "google"
	ProviderNewsdata ProviderHint = "newsdata"
	ProviderGNews    ProviderHint = "gnews"
)

// ProviderOrder is the fixed google -> newsdata -> gnews iteration order
// design note 9(b) requires whenever two providers are equally eligible.
var ProviderOrder = []ProviderHint{ProviderGoogle, ProviderNewsdata, ProviderGNews}

// Query is an immutable description of one intended provider request.
// Two Querys built from identical inputs always produce identical
// Fingerprints.
type Query struct {
	QueryString    string
	Language       string
	RegionSlug     string
	RegionDisplay  string
	Level          Level
	Category       *TermCategory // nil for broad (newsdata/gnews) and district queries
	DistrictBatch  []DistrictName
	ProviderHint   ProviderHint
	Fingerprint    string
}

// NewQuery constructs a Query and computes its Fingerprint. Callers pass
// already-finalized fields; NewQuery does not validate query-string
// construction rules (that's the Generator's job) — it only derives the
// checkpoint key.
func NewQuery(queryString, language, regionSlug, regionDisplay string, level Level, category *TermCategory, districts []DistrictName, provider ProviderHint) Query {
	q := Query{
		QueryString:   queryString,
		Language:      language,
		RegionSlug:    regionSlug,
		RegionDisplay: regionDisplay,
		Level:         level,
		Category:      category,
		DistrictBatch: districts,
		ProviderHint:  provider,
	}
	q.Fingerprint = q.computeFingerprint()
	return q
}

// computeFingerprint hashes (provider_hint, level, region_slug, language,
// category, district_batch) — never the free-text query_string, which
// may be re-derived differently across term-dictionary revisions without
// changing the logical identity of "this region/language/category/batch
// at this level for this provider". Truncated to 128 bits, matching the
// teacher's dedup.go hashURL pattern.
func (q Query) computeFingerprint() string {
	var sb strings.Builder
	sb.WriteString(string(q.ProviderHint))
	sb.WriteByte(0)
	sb.WriteString(string(q.Level))
	sb.WriteByte(0)
	sb.WriteString(q.RegionSlug)
	sb.WriteByte(0)
	sb.WriteString(q.Language)
	sb.WriteByte(0)
	if q.Category != nil {
		sb.WriteString(string(*q.Category))
	}
	sb.WriteByte(0)

	districts := make([]string, len(q.DistrictBatch))
	for i, d := range q.DistrictBatch {
		districts[i] = string(d)
	}
	sort.Strings(districts)
	sb.WriteString(strings.Join(districts, ","))

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:16]) // 128 bits
}

// Outcome is the terminal classification of a QueryResult. Every Query
// dispatch ends in exactly one of these — the Scheduler's never-raise
// contract guarantees a QueryResult is always produced.
type Outcome string

const (
	OutcomeOK                  Outcome = "ok"
	OutcomeSkippedBudget       Outcome = "skipped_budget"
	OutcomeSkippedLanguage     Outcome = "skipped_language"
	OutcomeSkippedBreakerOpen  Outcome = "skipped_breaker_open"
	OutcomeFailedTransient     Outcome = "failed_transient"
	OutcomeFailedPermanent     Outcome = "failed_permanent"
)

// IsTerminal reports whether outcome represents a final, checkpoint-worthy
// state (all current Outcome values are terminal; the type exists so
// call sites read as intent rather than "always true").
func (o Outcome) IsTerminal() bool { return o != "" }

// QueryResult is the outcome of dispatching one Query. Constructed even
// on failure — the never-raise contract means this type has no "error"
// return path of its own.
type QueryResult struct {
	Query        Query
	ProviderName string
	Articles     []ArticleRef
	Outcome      Outcome
	ErrorDetail  string
}

// ArticleRef is opaque to the core except for these fields; the core
// neither mutates nor interprets article content.
type ArticleRef struct {
	Title       string
	URL         string
	Source      string
	PublishedAt string
	Language    string
	RegionSlug  string
	SearchTerm  string
}
