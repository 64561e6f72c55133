package analysis

import "strings"

// CategoryGeneral is the fallback when no topical category matches.
const CategoryGeneral = "General"

type category struct {
	name     string
	patterns []string
}

// Declaration order is the tie-break: pattern vocabularies overlap (for
// example "corruption" appears under both Politics and Crime) and the first
// matching category wins.
var categories = []category{
	{"Politics", []string{
		"politics", "government", "election", "policy", "president", "vote",
		"candidate", "political", "campaign", "senate", "congress", "democrat",
		"republican", "liberal", "conservative", "legislation", "ballot",
		"parliament", "referendum", "constitution", "democracy", "diplomatic",
		"minister", "governor", "administration", "law", "bill", "council",
		"judiciary", "court", "rights", "mayor", "lawmaker", "official",
		"senator", "representative", "politician", "corruption", "scandal",
		"cabinet", "embassy", "protest", "reform",
	}},
	{"Crime", []string{
		"crime", "criminal", "police", "arrest", "murder", "theft", "robbery",
		"assault", "investigation", "detective", "suspect", "victim",
		"prosecution", "prison", "jail", "sentence", "convict", "felony",
		"misdemeanor", "violence", "homicide", "burglary", "fraud", "kidnap",
		"smuggling", "trafficking", "bribery", "corruption", "lawsuit",
		"custody", "forensic", "evidence", "verdict", "justice", "trial",
		"court", "witness", "testimony", "offense", "violation", "warrant",
		"illegal", "fugitive", "shooting", "attorney", "judge", "report",
		"arson",
	}},
	{"Technology", []string{
		"tech", "digital", "software", "app", "online", "website", "internet",
		"computer", "mobile", "phone", "device", "electronic", "smart",
		"virtual", "cyber", "network", "system", "data", "code", "program",
		"hardware", "gaming", "innovation", "algorithm", "interface",
		"automation", "robot", "artificial intelligence", "machine learning",
		"blockchain", "cloud", "server", "gadget", "sensor", "processor",
		"connectivity", "wifi", "streaming", "email", "browser", "platform",
		"startup", "privacy", "security", "encryption", "development",
		"programming", "coding", "database", "framework", "update", "version",
		"release", "prototype", "beta", "analytics", "engineering",
	}},
	{"Business", []string{
		"business", "company", "corporate", "market", "industry", "brand",
		"startup", "entrepreneur", "finance", "money", "investment", "economy",
		"trade", "commerce", "profit", "revenue", "sales", "retail",
		"wholesale", "product", "service", "customer", "client", "consumer",
		"vendor", "supplier", "transaction", "capital", "asset", "liability",
		"equity", "stock", "share", "dividend", "merger", "acquisition",
		"partnership", "corporation", "enterprise", "franchise", "commercial",
		"management", "executive", "strategy", "growth", "expansion",
		"bankruptcy", "inflation", "recession", "economic", "financial",
		"budget", "forecast", "investor", "wealth", "banking",
	}},
	{"Health", []string{
		"health", "medical", "doctor", "hospital", "patient", "disease",
		"medicine", "treatment", "diagnosis", "symptom", "illness", "wellness",
		"fitness", "diet", "nutrition", "exercise", "therapy", "vaccine",
		"virus", "bacteria", "mental", "psychology", "surgery", "emergency",
		"pandemic", "epidemic", "outbreak", "infection", "immunity",
		"healthcare", "pharmaceutical", "pharmacy", "clinic", "physician",
		"nurse", "specialist", "cancer", "diabetes", "asthma", "obesity",
		"depression", "anxiety", "addiction", "rehabilitation", "anatomy",
		"physiology", "genetic", "prescription", "remedy", "recovery", "aid",
		"vitamin", "supplement", "prevention", "protocol",
	}},
	{"Environment", []string{
		"environment", "climate", "green", "sustainable", "ecology", "nature",
		"conservation", "renewable", "pollution", "emission", "carbon",
		"recycling", "biodiversity", "wildlife", "fossil", "solar", "wind",
		"energy", "resource", "natural", "organic", "planet", "earth", "waste",
		"habitat", "ecosystem", "endangered", "extinction", "deforestation",
		"glacier", "ocean", "sea", "river", "forest", "desert", "mountain",
		"agriculture", "farming", "harvest", "crop", "sustainability",
		"plastic", "toxic", "clean", "protection", "preservation",
		"restoration", "weather", "storm", "hurricane", "flood", "drought",
		"wildfire",
	}},
	{"Social Media", []string{
		"social", "media", "facebook", "instagram", "twitter", "linkedin",
		"tiktok", "youtube", "platform", "followers", "post", "share", "like",
		"comment", "viral", "trending", "hashtag", "influencer", "content",
		"creator", "stream", "live", "profile", "story", "feed",
		"notification", "engagement", "audience", "subscribe", "follow",
		"mention", "tag", "algorithm", "filter", "timeline", "thread", "meme",
		"community", "group", "connection", "network", "status", "update",
		"messaging", "privacy", "setting", "account", "user", "handle",
	}},
	{"Entertainment", []string{
		"entertainment", "movie", "film", "music", "show", "performance",
		"television", "tv", "series", "actor", "actress", "celebrity",
		"channel", "stream", "video", "youtube", "podcast", "broadcast",
		"studio", "producer", "director", "script", "scene", "documentary",
		"drama", "comedy", "thriller", "action", "horror", "romance",
		"fantasy", "sci-fi", "genre", "album", "song", "artist", "band",
		"concert", "festival", "theater", "stage", "audience", "award",
		"nominee", "winner", "premiere", "trailer", "teaser", "release",
		"box office", "critic", "review", "rating", "streaming",
		"subscription", "media",
	}},
	{"Sports", []string{
		"sports", "game", "play", "team", "player", "match", "tournament",
		"competition", "championship", "score", "ball", "win", "lose",
		"victory", "defeat", "soccer", "football", "basketball", "baseball",
		"hockey", "tennis", "golf", "swimming", "track", "field", "olympic",
		"medal", "athlete", "coach", "manager", "stadium", "arena", "court",
		"league", "division", "season", "playoff", "final", "qualifying",
		"fan", "supporter", "fitness", "training", "practice", "performance",
		"record", "title", "champion", "amateur", "professional", "referee",
		"umpire", "penalty", "foul", "strategy", "tactics", "highlight",
	}},
	{"Education", []string{
		"education", "school", "student", "learn", "teaching", "academic",
		"university", "college", "class", "course", "lecture", "study",
		"research", "knowledge", "professor", "teacher", "instructor",
		"curriculum", "syllabus", "assignment", "homework", "exam", "test",
		"grade", "degree", "diploma", "certificate", "graduate",
		"undergraduate", "major", "minor", "thesis", "dissertation",
		"semester", "quarter", "campus", "faculty", "department",
		"administration", "scholarship", "tuition", "admission", "enrollment",
		"distance learning", "online learning", "remote learning", "workshop",
		"seminar", "conference", "training", "skill", "literacy", "tutor",
		"mentor",
	}},
	{"Travel", []string{
		"travel", "tourism", "vacation", "holiday", "trip", "journey",
		"adventure", "destination", "tourist", "hotel", "resort",
		"accommodation", "booking", "reservation", "flight", "airport",
		"airline", "cruise", "ship", "beach", "mountain", "hiking", "camping",
		"exploration", "sightseeing", "excursion", "tour", "guide",
		"itinerary", "passport", "visa", "luggage", "backpack", "souvenir",
		"photography", "landscape", "international", "domestic", "local",
		"foreign", "exotic", "tropical", "island", "city", "urban", "rural",
		"map", "navigation", "transport", "road trip", "backpacking",
		"landmark", "monument", "attraction",
	}},
}

// CategorizeKeyword maps a keyword or phrase to a topical category. An exact
// case-insensitive match against any category's pattern list wins first; then
// the first category with a pattern contained in the keyword. Unmatched
// keywords land in General.
func CategorizeKeyword(keyword string) string {
	lower := strings.ToLower(keyword)

	for _, cat := range categories {
		for _, pattern := range cat.patterns {
			if pattern == lower {
				return cat.name
			}
		}
	}

	for _, cat := range categories {
		for _, pattern := range cat.patterns {
			if strings.Contains(lower, pattern) {
				return cat.name
			}
		}
	}

	return CategoryGeneral
}

// CategoryNames returns the fixed category set in declaration order, with the
// General fallback last.
func CategoryNames() []string {
	names := make([]string, 0, len(categories)+1)
	for _, cat := range categories {
		names = append(names, cat.name)
	}
	return append(names, CategoryGeneral)
}
