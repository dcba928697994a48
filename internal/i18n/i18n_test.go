package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNewPrinter_Korean(t *testing.T) {
	p := NewPrinter("ko")

	tests := []struct {
		key  string
		args []any
		want string
	}{
		{KeyTitle, nil, "Vector DB Search by Review"},
		{KeyPlaceholder, nil, "리뷰 내용을 입력하세요"},
		{KeyButton, nil, "검색"},
		{KeyButtonLoading, nil, "검색중..."},
		{KeyResultCount, []any{3}, "검색 결과: 3건"},
		{KeyEmpty, nil, "검색 결과가 없습니다."},
		{KeySimilarity, []any{"93.00"}, "유사도: 93.00%"},
		{KeyProductID, []any{"42"}, "Product ID: 42"},
		{KeyFailed, nil, "검색 중 오류가 발생했습니다."},
	}
	for _, tc := range tests {
		if got := p.Sprintf(tc.key, tc.args...); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestNewPrinter_English(t *testing.T) {
	p := NewPrinter("en-US,en;q=0.9")
	if got := p.Sprintf(KeyEmpty); got != "No results found." {
		t.Errorf("unexpected empty-state text %q", got)
	}
	if got := p.Sprintf(KeyFailed); got != "An error occurred while searching." {
		t.Errorf("unexpected failure text %q", got)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.Korean},
		{"ko", language.Korean},
		{"ko-KR", language.Korean},
		{"en", language.English},
		{"en-GB", language.English},
		{"fr", language.Korean},
		{"!!", language.Korean},
	}
	for _, tc := range tests {
		if got := Match(tc.in); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
