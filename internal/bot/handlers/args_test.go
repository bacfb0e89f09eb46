package handlers

import (
	"testing"
)

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{"bare command", "/info", 1},
		{"command with argument", "/info 123", 2},
		{"extra whitespace", "  /extend   123   base   30  ", 4},
		{"empty", "", 0},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := splitArgs(tc.input); len(got) != tc.expected {
				t.Errorf("splitArgs(%q) returned %d tokens, expected %d", tc.input, len(got), tc.expected)
			}
		})
	}
}

func TestParseTelegramID(t *testing.T) {
	t.Parallel()

	valid := map[string]int64{
		"1":         1,
		"123456789": 123456789,
	}
	for input, expected := range valid {
		got, err := parseTelegramID(input)
		if err != nil {
			t.Errorf("parseTelegramID(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Errorf("parseTelegramID(%q) = %d, expected %d", input, got, expected)
		}
	}

	invalid := []string{"", "abc", "12a3", "-5", "+7", "12.3", "１２３"}
	for _, input := range invalid {
		if _, err := parseTelegramID(input); err == nil {
			t.Errorf("parseTelegramID(%q) should have been rejected", input)
		}
	}
}

func TestParseDays(t *testing.T) {
	t.Parallel()

	if got, err := parseDays("30"); err != nil || got != 30 {
		t.Errorf("parseDays(30) = %d, %v", got, err)
	}
	for _, input := range []string{"", "abc", "0", "-7", "1.5"} {
		if _, err := parseDays(input); err == nil {
			t.Errorf("parseDays(%q) should have been rejected", input)
		}
	}
}

func TestParseOnOff(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"on", true, false},
		{"off", false, false},
		{"ON", true, false},
		{"Off", false, false},
		{"", false, true},
		{"enable", false, true},
		{"true", false, true},
	}
	for _, tc := range testCases {
		got, err := parseOnOff(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseOnOff(%q) should have been rejected", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOnOff(%q) returned error: %v", tc.input, err)
		}
		if got != tc.expected {
			t.Errorf("parseOnOff(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}
