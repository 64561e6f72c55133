package post

import "encoding/json"

// RawPost is one platform post payload as delivered by the feed API. Shape
// varies per platform and field presence is not guaranteed, so every field is
// resolved independently during decoding and malformed values degrade to
// absence instead of failing the payload.
type RawPost struct {
	ID            string
	Platform      string
	Text          string
	URL           string
	WebURL        string
	Reactions     map[string]int
	TotalReacts   int
	TotalComments int
	TotalShares   int
	TotalViews    int
	VitalityScore float64
	FeaturedImage []string
	URLScreenshot string
	Source        string
	SourceID      string
	Entities      []json.RawMessage
	PostedAt      string
}

// UnmarshalJSON decodes a raw post with per-field tolerance. Only a payload
// that is not a JSON object at all is an error; that case is a feed failure,
// not a sparse post.
func (r *RawPost) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.ID = stringField(fields, "_id")
	if r.ID == "" {
		r.ID = stringField(fields, "id")
	}
	r.Platform = stringField(fields, "platform")
	r.Text = stringField(fields, "post_text")
	r.URL = stringField(fields, "post_url")
	r.WebURL = stringField(fields, "post_url_web")
	r.Reactions = countMapField(fields, "reactions")
	r.TotalReacts = intField(fields, "total_reactions")
	r.TotalComments = intField(fields, "total_comments")
	r.TotalShares = intField(fields, "total_shares")
	r.TotalViews = intField(fields, "total_views")
	r.VitalityScore = floatField(fields, "vitality_score")
	r.FeaturedImage = stringListField(fields, "featured_image")
	r.URLScreenshot = stringField(fields, "url_screenshot")
	r.Source = stringField(fields, "source")
	r.SourceID = stringField(fields, "source_id")
	r.Entities = rawListField(fields, "ner")
	r.PostedAt = stringField(fields, "posted_at")

	return nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

func intField(fields map[string]json.RawMessage, key string) int {
	return int(floatField(fields, key))
}

func floatField(fields map[string]json.RawMessage, key string) float64 {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}
	return value
}

func countMapField(fields map[string]json.RawMessage, key string) map[string]int {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	counts := make(map[string]int, len(entries))
	for name, entry := range entries {
		var value float64
		if err := json.Unmarshal(entry, &value); err != nil {
			continue
		}
		counts[name] = int(value)
	}
	return counts
}

func stringListField(fields map[string]json.RawMessage, key string) []string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	values := make([]string, 0, len(entries))
	for _, entry := range entries {
		var value string
		if err := json.Unmarshal(entry, &value); err != nil {
			continue
		}
		values = append(values, value)
	}
	return values
}

func rawListField(fields map[string]json.RawMessage, key string) []json.RawMessage {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}
