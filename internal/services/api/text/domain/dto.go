// Package domain holds DTOs for the text http and service contracts
package domain

// MatchInput extracts one capture group of a regular expression
type MatchInput struct {
	// Text is optional, a missing text behaves like no match
	Text    *string `json:"text,omitempty" example:"<b>id=42</b> id=7"`
	Pattern string  `json:"pattern" validate:"required,max=4096,regexp" example:"id=(\\d+)"`
	Group   int     `json:"group" validate:"min=0,max=99" example:"1"`
	Trim    bool    `json:"trim" example:"true"`
	Last    bool    `json:"last" example:"false"`
	Default string  `json:"default,omitempty" validate:"max=4096" example:"none"`
}

// MatchOutput is the extracted value
type MatchOutput struct {
	Value   string `json:"value"   example:"42"`
	Matched bool   `json:"matched" example:"true"`
}

// Normalization operations
const (
	OpWhitespace = "whitespace"
	OpControl    = "control"
	OpTrim       = "trim"
	OpPlain      = "plain"
)

// NormalizeInput applies one normalization to text
type NormalizeInput struct {
	Text string `json:"text" validate:"max=1048576" example:"  a \t b  "`
	Op   string `json:"op"   validate:"required,oneof=whitespace control trim plain" example:"whitespace"`
}

// NormalizeOutput is the normalized text
type NormalizeOutput struct {
	Value string `json:"value" example:"a b "`
}

// InspectInput describes a text to inspect
type InspectInput struct {
	Text string `json:"text" validate:"max=1048576" example:"<p>Hello</p>"`
}

// InspectOutput reports cheap facts about a text
type InspectOutput struct {
	ContainsHTML bool   `json:"contains_html" example:"true"`
	Checksum     uint32 `json:"checksum"      example:"3421780262"`
	ChecksumHex  string `json:"checksum_hex"  example:"cbf43926"`
	Length       int    `json:"length"        example:"12"`
}

// SortInput orders strings for display
type SortInput struct {
	Items  []string `json:"items"            validate:"required,max=10000" example:"Zebra,äpfel,Apfel"`
	Locale string   `json:"locale,omitempty" validate:"omitempty,bcp47_language_tag" example:"de"`
}

// SortOutput is the ordered copy of the input
type SortOutput struct {
	Items []string `json:"items"`
}
