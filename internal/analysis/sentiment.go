package analysis

import "strings"

// SentimentLabel classifies a post's overall tone.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Sentiment is the result of scoring a piece of text.
type Sentiment struct {
	Score int            `json:"score"`
	Label SentimentLabel `json:"label"`
}

var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "love", "happy", "best",
	"awesome", "wonderful", "perfect",
)

var negativeWords = wordSet(
	"bad", "poor", "terrible", "horrible", "hate", "sad", "worst",
	"awful", "disappointing", "useless",
)

// AnalyzeSentiment scores text by counting matches against fixed positive and
// negative word lists: +1 per positive token, -1 per negative token. Tokens are
// lower-cased whitespace splits; no punctuation stripping, so a token like
// "great!" does not match. Empty text is neutral with score 0.
func AnalyzeSentiment(text string) Sentiment {
	if text == "" {
		return Sentiment{Score: 0, Label: SentimentNeutral}
	}

	score := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := positiveWords[word]; ok {
			score++
		}
		if _, ok := negativeWords[word]; ok {
			score--
		}
	}

	label := SentimentNeutral
	if score > 0 {
		label = SentimentPositive
	}
	if score < 0 {
		label = SentimentNegative
	}

	return Sentiment{Score: score, Label: label}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
