package esco

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \n\t  "))
}

func TestTokenizeStripsContactNoise(t *testing.T) {
	text := "Experienced developer. Contact me at john.doe@example.com or https://example.com/cv or +7 (900) 123-45-67 anytime."

	phrases := Tokenize(text)

	for _, p := range phrases {
		assert.NotContains(t, p, "@")
		assert.NotContains(t, p, "http")
		assert.NotContains(t, p, "123-45-67")
	}
	assert.Contains(t, phrases, "Experienced developer")
}

func TestTokenizeSplitsSentencesAndSubPhrases(t *testing.T) {
	text := "Strong Python programming, data analysis and machine learning. Also worked with SQL databases or NoSQL stores."

	phrases := Tokenize(text)

	assert.Contains(t, phrases, "Strong Python programming")
	assert.Contains(t, phrases, "data analysis")
	assert.Contains(t, phrases, "machine learning")
	assert.Contains(t, phrases, "Also worked with SQL databases")
	assert.Contains(t, phrases, "NoSQL stores")
}

func TestTokenizeSplitsBulletLists(t *testing.T) {
	text := "Skills:\n- project management\n- team leadership\n1. public speaking\n2. budget planning"

	phrases := Tokenize(text)

	assert.Contains(t, phrases, "project management")
	assert.Contains(t, phrases, "team leadership")
	assert.Contains(t, phrases, "public speaking")
	assert.Contains(t, phrases, "budget planning")
}

func TestTokenizeFiltersNoise(t *testing.T) {
	text := "ab. 12345. 2021-03-15. Page 3. ok. real engineering experience."

	phrases := Tokenize(text)

	assert.NotContains(t, phrases, "ab")
	assert.NotContains(t, phrases, "12345")
	assert.NotContains(t, phrases, "2021-03-15")
	assert.NotContains(t, phrases, "Page 3")
	assert.NotContains(t, phrases, "ok")
	assert.Contains(t, phrases, "real engineering experience")
}

func TestTokenizeRejectsOverlongPhrases(t *testing.T) {
	long := strings.Repeat("very long skill description ", 20) // > 200 chars, no split points
	phrases := Tokenize(long)
	assert.Empty(t, phrases)
}

func TestTokenizeDeduplicatesFirstSeen(t *testing.T) {
	text := "Python programming. Java development. Python programming."

	phrases := Tokenize(text)

	require.Equal(t, []string{"Python programming", "Java development"}, phrases)
}

func TestTokenizeNormalizesWhitespace(t *testing.T) {
	phrases := Tokenize("data  \t analysis\nand reporting skills.")

	assert.Contains(t, phrases, "data analysis")
	assert.Contains(t, phrases, "reporting skills")
}

func TestTokenizeCapsPhraseCount(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&b, "unique skill number %d. ", i)
	}

	phrases := Tokenize(b.String())

	assert.Len(t, phrases, MaxPhrases)
	// First-seen order survives the cap.
	assert.Equal(t, "unique skill number 0", phrases[0])
}

func TestTokenizeIsDeterministic(t *testing.T) {
	text := "Go development, Kubernetes operations and incident response. SQL tuning."
	first := Tokenize(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Tokenize(text))
	}
}
