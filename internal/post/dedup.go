package post

// Deduplicator folds normalized posts that share a dedup key into a single
// canonical Post. The first-seen copy is the representative and is mutated in
// place by later merges; incoming duplicates are discarded.
type Deduplicator struct {
	order []*Post
	byKey map[string]*Post
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{byKey: make(map[string]*Post)}
}

// Add inserts a normalized post or merges it into an existing representative.
// It reports whether the post was kept as a new representative.
func (d *Deduplicator) Add(p *Post) bool {
	key := p.DedupKey()
	if existing, ok := d.byKey[key]; ok {
		merge(existing, p)
		return false
	}
	d.byKey[key] = p
	d.order = append(d.order, p)
	return true
}

// Len reports the number of representatives collected so far.
func (d *Deduplicator) Len() int {
	return len(d.order)
}

// Posts returns the canonical collection sorted descending by vitality score,
// with ties kept in insertion order.
func (d *Deduplicator) Posts() []*Post {
	out := make([]*Post, len(d.order))
	copy(out, d.order)
	SortByVitality(out)
	return out
}

// merge applies the cross-platform merge policy: platform and source lists
// grow by unique append, numeric metrics take the maximum observed value, and
// missing media is adopted from the incoming copy. The representative's
// engagement rate is deliberately left as computed from its own metrics.
func merge(existing, incoming *Post) {
	if !containsString(existing.Platforms, incoming.PlatformInfo.Name) {
		existing.Platforms = append(existing.Platforms, incoming.PlatformInfo.Name)
		existing.PlatformsInfo = append(existing.PlatformsInfo, incoming.PlatformInfo)
	}

	if incoming.sourceFromFeed && len(incoming.Sources) > 0 {
		if source := incoming.Sources[0]; source != "" && !containsString(existing.Sources, source) {
			existing.Sources = append(existing.Sources, source)
		}
	}

	existing.Reactions.Total = maxInt(existing.Reactions.Total, incoming.Reactions.Total)
	existing.Comments = maxInt(existing.Comments, incoming.Comments)
	existing.Shares = maxInt(existing.Shares, incoming.Shares)
	existing.Views = maxInt(existing.Views, incoming.Views)
	if incoming.VitalityScore > existing.VitalityScore {
		existing.VitalityScore = incoming.VitalityScore
	}

	if existing.FeaturedImage == "" && incoming.FeaturedImage != "" {
		existing.FeaturedImage = incoming.FeaturedImage
	}
	if existing.Screenshot == "" && incoming.Screenshot != "" {
		existing.Screenshot = incoming.Screenshot
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
