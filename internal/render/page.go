// Package render projects a search view state onto a displayable page.
package render

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/result"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/state"
	"github.com/kailas-cloud/reviewsearch/internal/i18n"
)

// Star is the glyph shown before a rating.
const Star = "★"

// Card is one rendered search hit.
type Card struct {
	Similarity string // "유사도: 93.00%"
	Comment    string
	ProductID  string // "Product ID: 42"
	Rating     string // "4.5"
}

// Page is the localized, fully formatted search page.
type Page struct {
	Title       string
	Placeholder string
	Query       string

	Button    string
	CanSubmit bool
	Loading   bool

	// Error is the failure banner, empty when there is none. It may be set
	// together with Cards.
	Error string

	Region state.Region
	Header string // set for RegionResults
	Cards  []Card
	Empty  string // set for RegionEmpty
}

// NewPage renders st with the messages of p.
func NewPage(st state.State, p *message.Printer) Page {
	page := Page{
		Title:       p.Sprintf(i18n.KeyTitle),
		Placeholder: p.Sprintf(i18n.KeyPlaceholder),
		Query:       st.Query,
		Button:      p.Sprintf(i18n.KeyButton),
		CanSubmit:   st.CanSubmit(),
		Loading:     st.Loading,
		Region:      st.MainRegion(),
	}
	if st.Loading {
		page.Button = p.Sprintf(i18n.KeyButtonLoading)
	}
	if st.ShowError() {
		page.Error = p.Sprintf(st.Err.MessageKey())
	}

	switch page.Region {
	case state.RegionResults:
		page.Header = p.Sprintf(i18n.KeyResultCount, len(st.Results))
		page.Cards = make([]Card, len(st.Results))
		for i, r := range st.Results {
			page.Cards[i] = newCard(r, p)
		}
	case state.RegionEmpty:
		page.Empty = p.Sprintf(i18n.KeyEmpty)
	}
	return page
}

func newCard(r result.Result, p *message.Printer) Card {
	return Card{
		Similarity: p.Sprintf(i18n.KeySimilarity, Percent(r.Similarity())),
		Comment:    r.Comment(),
		ProductID:  p.Sprintf(i18n.KeyProductID, strconv.FormatInt(r.ProductID(), 10)),
		Rating:     fixed(r.Rating(), 1),
	}
}

// Percent formats a [0,1] similarity as a percentage with two decimals.
func Percent(similarity float64) string {
	return fixed(similarity*100, 2)
}

// fixed formats x with prec decimals, rounding the exact binary value to the
// nearest and exact halves away from zero (4.25 -> "4.3").
func fixed(x float64, prec int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', prec, 64)
	}

	scaled := new(big.Float).SetPrec(256).SetFloat64(math.Abs(x))
	scaled.Mul(scaled, new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(prec)), nil)))

	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetPrec(256).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) <= prec {
		digits = strings.Repeat("0", prec-len(digits)+1) + digits
	}

	var b strings.Builder
	if math.Signbit(x) && x != 0 {
		b.WriteByte('-')
	}
	b.WriteString(digits[:len(digits)-prec])
	if prec > 0 {
		b.WriteByte('.')
		b.WriteString(digits[len(digits)-prec:])
	}
	return b.String()
}
