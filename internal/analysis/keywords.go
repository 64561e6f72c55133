package analysis

import (
	"regexp"
	"strings"
)

// KeywordType tags where an extracted keyword came from.
type KeywordType string

const (
	KeywordHashtag KeywordType = "hashtag"
	KeywordPhrase  KeywordType = "phrase"
	KeywordEntity  KeywordType = "entity"
	KeywordGeneric KeywordType = "keyword"
)

// Keyword is a single extracted term with its weight for aggregation.
type Keyword struct {
	Text       string      `json:"text"`
	Type       KeywordType `json:"type"`
	Importance float64     `json:"importance"`
}

var stopWords = wordSet(
	"the", "and", "is", "in", "to", "a", "of", "for", "on", "with", "as",
	"by", "that", "this", "it", "at", "from", "be", "are", "have", "has",
	"was", "were", "they", "their", "an", "we", "us", "you", "your", "he",
	"she", "his", "her", "him", "would", "could", "should", "will", "may",
	"can", "just", "but", "not", "what", "all", "who", "when", "where",
	"which", "how", "than", "then", "now", "some", "like", "other", "into",
	"more", "been", "about", "there", "only", "also", "out", "up", "my",
	"through", "much", "many", "such", "those", "these", "them", "own",
	"myself", "yourself", "himself", "herself", "itself", "each", "few",
	"both", "between", "very", "too", "most", "any", "same", "here",
	"after", "before", "while", "why", "way", "our", "well", "even",
	"still", "every", "since", "against", "under", "over", "again",
	"never", "always", "sometimes",
)

var (
	hashtagPattern    = regexp.MustCompile(`#(\w+)`)
	nonWordPattern    = regexp.MustCompile(`[^\w\s#]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	entityPattern     = regexp.MustCompile(`\b[A-Z][a-zA-Z']+\b`)
)

// ExtractKeywords pulls hashtags, 2-3 word phrases, capitalized entities, and
// generic keywords out of free text. The four candidate sets are produced
// independently and concatenated in that order; duplicates are kept and folded
// together later during aggregation.
func ExtractKeywords(text string) []Keyword {
	if text == "" {
		return nil
	}

	keywords := make([]Keyword, 0, 16)

	for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		keywords = append(keywords, Keyword{Text: match[1], Type: KeywordHashtag, Importance: 3})
	}

	cleaned := strings.ToLower(text)
	cleaned = nonWordPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	tokens := strings.Split(cleaned, " ")

	for i := 0; i < len(tokens)-1; i++ {
		if isStopWord(tokens[i]) || len(tokens[i]) <= 3 {
			continue
		}
		if !isStopWord(tokens[i+1]) && len(tokens[i+1]) > 3 {
			keywords = append(keywords, Keyword{
				Text:       tokens[i] + " " + tokens[i+1],
				Type:       KeywordPhrase,
				Importance: 2,
			})
		}
		if i < len(tokens)-2 && !isStopWord(tokens[i+2]) && len(tokens[i+2]) > 3 {
			keywords = append(keywords, Keyword{
				Text:       tokens[i] + " " + tokens[i+1] + " " + tokens[i+2],
				Type:       KeywordPhrase,
				Importance: 2.5,
			})
		}
	}

	keywords = append(keywords, extractEntities(text)...)

	for _, token := range tokens {
		if len(token) > 4 && !isStopWord(token) && !strings.HasPrefix(token, "#") {
			keywords = append(keywords, Keyword{Text: token, Type: KeywordGeneric, Importance: 1})
		}
	}

	return keywords
}

// extractEntities reports capitalized words that are not at the start of the
// text and are not immediately followed by a period (sentence-start and
// abbreviation heuristics).
func extractEntities(text string) []Keyword {
	var entities []Keyword
	for _, loc := range entityPattern.FindAllStringIndex(text, -1) {
		if loc[0] == 0 {
			continue
		}
		if loc[1] < len(text) && text[loc[1]] == '.' {
			continue
		}
		candidate := text[loc[0]:loc[1]]
		if len(candidate) <= 3 || isStopWord(strings.ToLower(candidate)) {
			continue
		}
		entities = append(entities, Keyword{Text: candidate, Type: KeywordEntity, Importance: 2})
	}
	return entities
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
