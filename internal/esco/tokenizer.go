package esco

import (
	"regexp"
	"strings"
)

// Tokenization bounds. MaxPhrases caps downstream embedding cost.
const (
	minPhraseLen = 4
	maxPhraseLen = 200
	MaxPhrases   = 100
)

var (
	urlRe        = regexp.MustCompile(`https?://[^\s]+`)
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	phoneRe      = regexp.MustCompile(`[+]?[(]?[\d\s\-()]{10,}`)
	disallowedRe = regexp.MustCompile(`[^\w\s.,;:!?\-()&+/|]`)
	spaceRe      = regexp.MustCompile(`[ \t]+`)

	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`[.!?]+\s+|[\n\r]+\s*[-•*]\s+|[\n\r]+\s*\d+\.\s+`)
	subPhraseRe = regexp.MustCompile(`[,;]\s+|\s+and\s+|\s+or\s+|\s*\|\s*`)

	strippableRe = regexp.MustCompile(`[0-9\s\-().,]`)

	noiseRes = []*regexp.Regexp{
		regexp.MustCompile(`^\s*\d+\s*$`),                           // bare numbers
		regexp.MustCompile(`^\s*[^\w\s]+\s*$`),                      // bare punctuation
		regexp.MustCompile(`^\s*\w{1,2}\s*$`),                       // 1-2 letter tokens
		regexp.MustCompile(`^\s*\d{1,4}[-/]\d{1,4}[-/]\d{2,4}\s*$`), // date-like
		regexp.MustCompile(`(?i)^\s*page\s+\d+\s*$`),                // page numbers
	}
)

// Tokenize splits free text (a CV, a job description) into candidate phrases
// suitable for embedding comparison. The output is deterministic, deduplicated
// in first-seen order and capped at MaxPhrases. Empty or whitespace-only input
// yields an empty slice.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cleaned := cleanText(text)

	var phrases []string
	seen := make(map[string]bool)

	for _, paragraph := range paragraphRe.Split(cleaned, -1) {
		for _, sentence := range sentenceRe.Split(paragraph, -1) {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			for _, phrase := range subPhraseRe.Split(sentence, -1) {
				phrase = strings.Join(strings.Fields(phrase), " ")
				phrase = strings.TrimRight(phrase, ".,;:!?")
				if len(phrase) < minPhraseLen || !isMeaningful(phrase) {
					continue
				}
				if seen[phrase] {
					continue
				}
				seen[phrase] = true
				phrases = append(phrases, phrase)
				if len(phrases) == MaxPhrases {
					return phrases
				}
			}
		}
	}

	return phrases
}

// cleanText strips URLs, emails and phone-like digit runs, drops characters
// outside the allowlist and collapses runs of spaces. Newlines survive so the
// paragraph and bullet splits still see document structure.
func cleanText(text string) string {
	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = phoneRe.ReplaceAllString(text, "")
	text = disallowedRe.ReplaceAllString(text, "")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func isMeaningful(phrase string) bool {
	if len(phrase) > maxPhraseLen {
		return false
	}
	// Mostly digits and punctuation carries no skill signal.
	if len(strippableRe.ReplaceAllString(phrase, "")) < 3 {
		return false
	}
	for _, re := range noiseRes {
		if re.MatchString(phrase) {
			return false
		}
	}
	return true
}
