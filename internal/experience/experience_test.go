// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experience

import (
	"errors"
	"iter"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/experience-extractor/internal/segment"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

// --- fakes ---

type failingSegmenter struct{ err error }

func (f failingSegmenter) Segment(string) (iter.Seq[segment.Sentence], error) {
	return nil, f.err
}

// --- parseNumber ---

func TestParseNumber(t *testing.T) {
	tests := []struct {
		token string
		want  int
		ok    bool
	}{
		{"5", 5, true},
		{"five", 5, true},
		{"ten", 10, true},
		{"(3)", 3, true},
		{"5,", 5, true},
		{"+5", 5, true},
		{"12.", 12, true},
		{"eleven", 0, false},
		{"Five", 0, false},
		{"3yrs", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
		{strconv.Itoa(maxNumber), maxNumber, true},
		{strconv.Itoa(maxNumber + 1), 0, false},
		{strconv.Itoa(math.MaxInt), 0, false},
		{"١٢", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := parseNumber(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstituteNumberWords(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"at least three years", []string{"at", "least", "3", "years"}},
		{"(three) to five,", []string{"(3)", "to", "5,"}},
		{"ten+ years", []string{"10+", "years"}},
		{"three-5 years", []string{"three-5", "years"}},
		{"someone with seven\tyears", []string{"someone", "with", "7", "years"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := substituteNumberWords(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasKeyword(t *testing.T) {
	assert.True(t, hasKeyword("5 years of go"))
	assert.True(t, hasKeyword("at least a degree"))
	assert.True(t, hasKeyword("our expo was fun"), "substring match inside unrelated words")
	assert.False(t, hasKeyword("we build great software with go"))
	assert.False(t, hasKeyword("require a degree"))
}

// --- rule chain ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     types.Range
		rule     string
	}{
		{"to range", "3 to 5 years of experience", types.Range{Low: 3, High: 5}, "to-range"},
		{"to range reversed words", "five to two years experience", types.Range{Low: 2, High: 5}, "to-range"},
		{"to range with punctuation", "(three) to five years", types.Range{Low: 3, High: 5}, "to-range"},
		{"hyphen range", "experience: 3-5 years", types.Range{Low: 3, High: 5}, "hyphen-range"},
		{"hyphen range reversed", "7-4 years experience", types.Range{Low: 4, High: 7}, "hyphen-range"},
		{"hyphen word number", "three-5 years experience", types.Range{Low: 3, High: 5}, "hyphen-range"},
		{"hyphen skips words", "well-known company, 2-3 years experience", types.Range{Low: 2, High: 3}, "hyphen-range"},
		{"minimum", "minimum 5 years experience required", types.Range{Low: 5, High: 7}, "minimum"},
		{"minimum second occurrence", "minimum qualification: minimum two years", types.Range{Low: 2, High: 4}, "minimum"},
		{"maximum", "maximum 10 years experience", types.Range{Low: 8, High: 10}, "maximum"},
		{"maximum below band", "maximum 1 year experience", types.Range{Low: -1, High: 1}, "maximum"},
		{"at least", "at least three years of experience", types.Range{Low: 3, High: 5}, "at-least"},
		{"plus", "5+ years experience", types.Range{Low: 5, High: 7}, "plus"},
		{"plus glued", "ten+yrs in backend", types.Range{Low: 10, High: 12}, "plus"},
		{"bare years", "4 years of professional experience", types.Range{Low: 4, High: 6}, "bare-years"},
		{"bare yrs", "6 yrs. in industry", types.Range{Low: 6, High: 8}, "bare-years"},
		{"bare word year", "one year experience", types.Range{Low: 1, High: 3}, "bare-years"},
		{"to falls through", "willing to learn, 4 years experience", types.Range{Low: 4, High: 6}, "bare-years"},
		{"only first to is tried", "go to market with 3 to 5 years experience", types.Range{Low: 5, High: 7}, "bare-years"},
		{"only first at is tried", "look at us: at least 3 years", types.Range{Low: 3, High: 5}, "bare-years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule, ok := normalize(tt.sentence)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestNormalizeNoMatch(t *testing.T) {
	for _, sentence := range []string{
		"experience with kubernetes required",
		"minimum qualification is a degree",
		"at least some exposure",
		"+ years",
		"years",
		"minimum 9223372036854775807 years experience",
		"9223372036854775806+ years experience",
		"",
	} {
		t.Run(sentence, func(t *testing.T) {
			_, _, ok := normalize(sentence)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeHyphenBeatsBareYears(t *testing.T) {
	// The bare-years rule alone would read "3-5" as 35.
	got, rule, ok := normalize("3-5 years experience")
	require.True(t, ok)
	assert.Equal(t, "hyphen-range", rule)
	assert.Equal(t, "3 - 5 Years", got.String())

	got, ok = matchBareYears(substituteNumberWords("3-5 years experience"))
	require.True(t, ok)
	assert.Equal(t, "35 - 37 Years", got.String())
}

func TestRuleOrder(t *testing.T) {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	assert.Equal(t, []string{
		"to-range", "hyphen-range", "minimum", "maximum", "at-least", "plus", "bare-years",
	}, names)
}

// --- merge ---

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		ranges []types.Range
		want   types.Range
		ok     bool
	}{
		{"empty", nil, types.Range{}, false},
		{"single", []types.Range{{Low: 5, High: 10}}, types.Range{Low: 5, High: 10}, true},
		{"narrowest wins", []types.Range{{Low: 5, High: 10}, {Low: 2, High: 4}}, types.Range{Low: 2, High: 4}, true},
		{"first wins ties", []types.Range{{Low: 1, High: 3}, {Low: 4, High: 6}}, types.Range{Low: 1, High: 3}, true},
		{"zero span", []types.Range{{Low: 2, High: 4}, {Low: 3, High: 3}}, types.Range{Low: 3, High: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Merge(tt.ranges)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- Extract ---

func TestExtractString(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"hyphen range", "experience: 3-5 years", "3 - 5 Years"},
		{"minimum", "minimum 5 years experience required", "5 - 7 Years"},
		{"at least word number", "at least three years of experience", "3 - 5 Years"},
		{"plus", "5+ years experience", "5 - 7 Years"},
		{"maximum", "maximum 10 years experience", "8 - 10 Years"},
		{"mixed case input", "Experience: 3-5 Years", "3 - 5 Years"},
		{
			"narrowest of two sentences",
			"we need 2-4 years of experience. senior roles require 5-10 years.",
			"2 - 4 Years",
		},
		{
			"narrowest regardless of order",
			"senior roles require 5-10 years. we need 2-4 years of experience.",
			"2 - 4 Years",
		},
		{
			"non candidate sentences ignored",
			"minimum 5 years. we offer lunch for 1-2 people. 3 to 4 years experience is ideal.",
			"3 - 4 Years",
		},
		{"keyword inside unrelated word", "our expo lasted 3-4 days", "3 - 4 Years"},
		{"already normalized input", "3 - 5 Years", "5 - 7 Years"},
		{"keyword without number", "experience with go is required", types.NotFound},
		{"empty", "", types.NotFound},
		{"whitespace", "   \n\t", types.NotFound},
	}

	ext := New(segment.Simple{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ext.ExtractString(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractWithoutKeywordIsNotFound(t *testing.T) {
	ext := New(segment.Simple{})
	for _, text := range []string{
		"3-5 in go",
		"we build great software with go. 10+ engineers.",
		"team of five to ten",
		"salary 100-120k",
	} {
		t.Run(text, func(t *testing.T) {
			_, ok, err := ext.Extract(text)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestExtractRangeIsOrdered(t *testing.T) {
	ext := New(nil)
	rng, ok, err := ext.Extract("9 to 4 years experience")
	require.NoError(t, err)
	require.True(t, ok)
	assert.LessOrEqual(t, rng.Low, rng.High)
	assert.Equal(t, types.Range{Low: 4, High: 9}, rng)
}

func TestExtractWithPunkt(t *testing.T) {
	seg, err := segment.NewPunkt()
	require.NoError(t, err)
	ext := New(seg)

	got, err := ext.ExtractString("Minimum 5 years of experience required. We are a fast-growing startup.")
	require.NoError(t, err)
	assert.Equal(t, "5 - 7 Years", got)

	got, err = ext.ExtractString("We are hiring a backend engineer.")
	require.NoError(t, err)
	assert.Equal(t, types.NotFound, got)

	// Bullet lines without final periods are separate sentences.
	got, err = ext.ExtractString("Requirements:\n- 2-10 years experience in software\n- At least 3 years with Go\n- Degree required")
	require.NoError(t, err)
	assert.Equal(t, "3 - 5 Years", got)
}

func TestExtractLargeNumbersStayOrdered(t *testing.T) {
	ext := New(nil)
	n := strconv.Itoa(maxNumber)
	for _, text := range []string{
		"minimum " + n + " years experience",
		n + "+ years experience",
		n + " years experience",
	} {
		rng, ok, err := ext.Extract(text)
		require.NoError(t, err)
		require.True(t, ok, text)
		assert.LessOrEqual(t, rng.Low, rng.High, text)
	}
}

func TestExtractSegmenterError(t *testing.T) {
	boom := errors.New("model unavailable")
	ext := New(failingSegmenter{err: boom})

	_, _, err := ext.Extract("5+ years experience")
	require.ErrorIs(t, err, boom)

	// Empty input never reaches the segmenter.
	_, ok, err := ext.Extract("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCandidates(t *testing.T) {
	ext := New(segment.Simple{})
	got, err := ext.Candidates("Minimum 5 years. We offer lunch. 3 to 4 years experience is ideal.")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "minimum 5 years.", got[0].Sentence)
	assert.Equal(t, "minimum", got[0].Rule)
	assert.Equal(t, types.Range{Low: 5, High: 7}, got[0].Range)

	assert.Equal(t, "to-range", got[1].Rule)
	assert.Equal(t, types.Range{Low: 3, High: 4}, got[1].Range)
}

func TestExtractConcurrent(t *testing.T) {
	ext := New(segment.Simple{})
	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = ext.ExtractString("at least three years of experience")
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, "3 - 5 Years", r)
	}
}
