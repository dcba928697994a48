// Package i18n holds the search page message catalog.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/failure"
)

// Message keys.
const (
	KeyTitle         = "page.title"
	KeyPlaceholder   = "search.placeholder"
	KeyButton        = "search.button"
	KeyButtonLoading = "search.button.loading"
	KeyResultCount   = "results.count" // arg: count (int)
	KeyEmpty         = "results.empty"
	KeySimilarity    = "result.similarity" // arg: percent with two decimals (string)
	KeyProductID     = "result.product_id" // arg: id (string)
	KeyFailed        = failure.MessageKey
)

// DefaultLanguage is used when no supported language matches.
var DefaultLanguage = language.Korean

var messages = map[language.Tag]map[string]string{
	language.Korean: {
		KeyTitle:         "Vector DB Search by Review",
		KeyPlaceholder:   "리뷰 내용을 입력하세요",
		KeyButton:        "검색",
		KeyButtonLoading: "검색중...",
		KeyResultCount:   "검색 결과: %d건",
		KeyEmpty:         "검색 결과가 없습니다.",
		KeySimilarity:    "유사도: %s%%",
		KeyProductID:     "Product ID: %s",
		KeyFailed:        "검색 중 오류가 발생했습니다.",
	},
	language.English: {
		KeyTitle:         "Vector DB Search by Review",
		KeyPlaceholder:   "Enter review text",
		KeyButton:        "Search",
		KeyButtonLoading: "Searching...",
		KeyResultCount:   "Results: %d",
		KeyEmpty:         "No results found.",
		KeySimilarity:    "Similarity: %s%%",
		KeyProductID:     "Product ID: %s",
		KeyFailed:        "An error occurred while searching.",
	},
}

var (
	cat     catalog.Catalog
	matcher language.Matcher
)

func init() {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLanguage))
	tags := []language.Tag{DefaultLanguage}
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", tag, key, err))
			}
		}
		if tag != DefaultLanguage {
			tags = append(tags, tag)
		}
	}
	cat = b
	matcher = language.NewMatcher(tags)
}

// NewPrinter returns a printer for lang, a BCP 47 tag or an Accept-Language
// header value. Unknown or empty values fall back to Korean.
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(Match(lang), message.Catalog(cat))
}

// Match resolves lang to the closest supported language.
func Match(lang string) language.Tag {
	if lang == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	tag, _, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	base, _ := tag.Base()
	return language.Make(base.String())
}
