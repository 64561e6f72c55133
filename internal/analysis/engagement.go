package analysis

// FallbackReach stands in for the denominator when a post has no view data.
// The resulting rate is an approximation, not a true percentage of reach.
const FallbackReach = 1000

// EngagementRate returns the engagement percentage for a post's interaction
// counts: (reactions + comments + shares) / views * 100, with views replaced
// by FallbackReach when zero or missing.
func EngagementRate(totalReactions, comments, shares, views int) float64 {
	denominator := views
	if denominator <= 0 {
		denominator = FallbackReach
	}
	return float64(totalReactions+comments+shares) / float64(denominator) * 100
}
