package models

// Factor is a single contribution to a probability estimate
type Factor struct {
	Name        string `json:"name"`
	Value       int    `json:"value"`
	Description string `json:"desc"`
}

// ProbabilityEstimate is the model's view of a two-player match
type ProbabilityEstimate struct {
	ProbA     int      `json:"probA"`
	ProbB     int      `json:"probB"`
	Factors   []Factor `json:"factors"`
	Dominance bool     `json:"dominance"`
	Momentum  bool     `json:"momentum"`
}

// ValueAnalysis is the outcome of the rule based value check
type ValueAnalysis struct {
	IsValue bool     `json:"isValue"`
	Reasons []string `json:"reason"`
	Score   int      `json:"score"`
}

// NoSignal returns the fixed empty analysis
func NoSignal() ValueAnalysis {
	return ValueAnalysis{Reasons: []string{}}
}

// PlayerSummary is the self-describing player view attached to a listing
type PlayerSummary struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// MatchStats holds the resolved identities of both sides
type MatchStats struct {
	P1 PlayerSummary `json:"p1"`
	P2 PlayerSummary `json:"p2"`
}

// AnnotatedListing is a listing plus everything the presentation layer needs
type AnnotatedListing struct {
	Listing
	Stats    *MatchStats          `json:"stats,omitempty"`
	Analysis ValueAnalysis        `json:"analysis"`
	Estimate *ProbabilityEstimate `json:"estimate,omitempty"`
}

// Resolved reports whether both sides were matched to known players
func (a *AnnotatedListing) Resolved() bool {
	return a.Stats != nil
}
