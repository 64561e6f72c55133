package platform

import "strings"

// Code is the single-letter platform identifier used by the upstream feed API.
type Code string

const (
	Facebook  Code = "F"
	Instagram Code = "I"
	X         Code = "X"
	YouTube   Code = "Y"
	Telegram  Code = "T"
)

// Codes lists every platform the service ingests, in fetch order.
var Codes = []Code{Facebook, Instagram, X, YouTube, Telegram}

// Info is the human-readable descriptor a dashboard renders for a platform.
type Info struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DefaultInfo describes platform codes the feed reports that we do not recognize.
var DefaultInfo = Info{Name: "Unknown", Color: "#888", Icon: "fas fa-question"}

var infoByCode = map[Code]Info{
	Facebook:  {Name: "Facebook", Color: "#4267B2", Icon: "fab fa-facebook"},
	Instagram: {Name: "Instagram", Color: "#E1306C", Icon: "fab fa-instagram"},
	X:         {Name: "X", Color: "#000000", Icon: "fab fa-x-twitter"},
	YouTube:   {Name: "YouTube", Color: "#FF0000", Icon: "fab fa-youtube"},
	Telegram:  {Name: "Telegram", Color: "#229ED9", Icon: "fab fa-telegram"},
}

// Lookup resolves a code to its descriptor, falling back to DefaultInfo.
func Lookup(code Code) Info {
	if info, ok := infoByCode[code]; ok {
		return info
	}
	return DefaultInfo
}

// Known reports whether the code is one of the fixed platform enumeration.
func Known(code Code) bool {
	_, ok := infoByCode[code]
	return ok
}

// Normalize upper-cases and trims a raw platform field from a feed payload.
func Normalize(raw string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(raw)))
}
