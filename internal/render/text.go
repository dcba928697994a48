package render

import (
	"fmt"
	"io"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/state"
)

// Text writes page as plain terminal text.
func Text(w io.Writer, page Page) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n", page.Title)
	if page.Query != "" {
		ew.printf("> %s\n", page.Query)
	}
	if page.Loading {
		ew.printf("%s\n", page.Button)
	}
	if page.Error != "" {
		ew.printf("\n! %s\n", page.Error)
	}

	switch page.Region {
	case state.RegionResults:
		ew.printf("\n%s\n", page.Header)
		for _, c := range page.Cards {
			ew.printf("\n  %s\n  %s\n  %s\n  %s %s\n", c.Similarity, c.Comment, c.ProductID, Star, c.Rating)
		}
	case state.RegionEmpty:
		ew.printf("\n%s\n", page.Empty)
	}
	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
