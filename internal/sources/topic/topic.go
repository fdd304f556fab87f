// Package topic maps free text from source adapters onto the shared
// topic vocabulary, so findings from different sources can corroborate.
package topic

import "strings"

// General is used when text matches no keyword.
const General = "general"

// keywords maps text keywords to topics, first match wins.
var keywords = []struct {
	topic string
	words []string
}{
	{"pricing", []string{"price", "pricing", "discount", "cost"}},
	{"funding", []string{"funding", "raised", "investment", "series a", "series b"}},
	{"hiring", []string{"hiring", "careers", "jobs", "headcount"}},
	{"security", []string{"breach", "vulnerability", "security", "outage"}},
	{"partnership", []string{"partner", "partnership", "integration"}},
	{"product", []string{"launch", "release", "feature", "announce", "roadmap"}},
	{"customer", []string{"customer", "review", "complaint", "churn"}},
}

// Detect returns the first topic whose keywords appear in text.
func Detect(text string) string {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(lower, w) {
				return k.topic
			}
		}
	}
	return General
}
