package naming

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation removed", "Hello,_world!", "Hello_world"},
		{"whitespace runs collapse", "a   b\t\tc", "a_b_c"},
		{"hyphens become underscores", "well-known - fact", "well_known_fact"},
		{"mixed separator run", "a -\t- b", "a_b"},
		{"punctuation inside separator run", "a -!- b", "a_b"},
		{"underscores kept", "snake__case", "snake__case"},
		{"edges trimmed", "__ hello __", "hello"},
		{"digits kept", "call 555-1234", "call_555_1234"},
		{"cyrillic kept", "Привіт, світе!", "Привіт_світе"},
		{"accents kept", "café crème", "café_crème"},
		{"only punctuation", "?!...", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanFilename(tt.input))
		})
	}
}

func TestCleanFilename_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello_world_This_is_a_test",
		"Hello, world! This is   a test run today",
		" -leading and trailing- ",
		"Добрий день - як справи?",
		"a__b",
		"",
	}
	for _, input := range inputs {
		once := CleanFilename(input)
		assert.Equal(t, once, CleanFilename(once), "input %q", input)
	}
}

func TestSynthesizeName(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		text     string
		ext      string
		maxWords int
		want     string
	}{
		{
			name:     "reference example",
			index:    3,
			text:     "Hello, world! This is   a test run today",
			ext:      ".wav",
			maxWords: 8,
			want:     "3_Hello_world_This_is_a_test_run_today.wav",
		},
		{
			name:     "only the first words are used",
			index:    1,
			text:     "one two three four five six seven eight nine ten",
			ext:      ".mp3",
			maxWords: 8,
			want:     "1_one_two_three_four_five_six_seven_eight.mp3",
		},
		{
			name:     "fewer words than the limit",
			index:    12,
			text:     "short memo",
			ext:      ".m4a",
			maxWords: 8,
			want:     "12_short_memo.m4a",
		},
		{
			name:     "empty transcription",
			index:    4,
			text:     "",
			ext:      ".wav",
			maxWords: 8,
			want:     "4_.wav",
		},
		{
			name:     "punctuation only",
			index:    5,
			text:     "... ?!",
			ext:      ".wav",
			maxWords: 8,
			want:     "5_.wav",
		},
		{
			name:     "ukrainian",
			index:    2,
			text:     "Нагадай мені купити хліб, будь ласка.",
			ext:      ".ogg",
			maxWords: 8,
			want:     "2_Нагадай_мені_купити_хліб_будь_ласка.ogg",
		},
		{
			name:     "no limit",
			index:    1,
			text:     "a b c d e f g h i j",
			ext:      ".wav",
			maxWords: 0,
			want:     "1_a_b_c_d_e_f_g_h_i_j.wav",
		},
		{
			name:     "extension case preserved",
			index:    7,
			text:     "voice note",
			ext:      ".WAV",
			maxWords: 8,
			want:     "7_voice_note.WAV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SynthesizeName(tt.index, tt.text, tt.ext, tt.maxWords))
		})
	}
}

func TestSynthesizeName_Truncation(t *testing.T) {
	t.Run("ascii", func(t *testing.T) {
		word := strings.Repeat("x", 100)
		name := SynthesizeName(1, strings.Join([]string{word, word, word}, " "), ".flac", 8)

		assert.Len(t, name, MaxFilenameLength)
		assert.True(t, strings.HasPrefix(name, "1_"))
		assert.True(t, strings.HasSuffix(name, ".flac"))
	})

	t.Run("multibyte runes are not split", func(t *testing.T) {
		word := strings.Repeat("ж", 60) // 120 bytes
		name := SynthesizeName(42, strings.Join([]string{word, word, word}, " "), ".wav", 8)

		assert.LessOrEqual(t, len(name), MaxFilenameLength)
		assert.True(t, utf8.ValidString(name))
		assert.True(t, strings.HasPrefix(name, "42_"))
		assert.True(t, strings.HasSuffix(name, ".wav"))
	})

	t.Run("no trailing underscore after cut", func(t *testing.T) {
		// the cut lands right after the separator between the two words
		first := strings.Repeat("a", MaxFilenameLength-len("1_")-len(".wav")-1)
		name := SynthesizeName(1, first+" b", ".wav", 8)

		assert.Equal(t, "1_"+first+".wav", name)
	})

	t.Run("short names untouched", func(t *testing.T) {
		assert.Equal(t, "1_hi.wav", SynthesizeName(1, "hi", ".wav", 8))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "abcdef", truncate("abcdef", 10))
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "", truncate("abc", -1))
	assert.Equal(t, "ж", truncate("жж", 3))
	assert.Equal(t, "", truncate("ж", 1))
}
