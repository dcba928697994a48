package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/message"

	"github.com/kailas-cloud/reviewsearch/internal/domain"
	"github.com/kailas-cloud/reviewsearch/internal/i18n"
	"github.com/kailas-cloud/reviewsearch/internal/render"
	searchuc "github.com/kailas-cloud/reviewsearch/internal/usecase/search"
)

func runSearch(ctx context.Context, env string, args []string, out io.Writer) error {
	a, err := bootstrap(env)
	if err != nil {
		return err
	}
	cfg, logger := a.cfg, a.logger
	defer func() { _ = logger.Sync() }()

	view, err := searchuc.New(newSearchClient(cfg.SearchAPI, logger), searchuc.WithLogger(logger.Named("view")))
	if err != nil {
		return err
	}
	defer view.Close()

	return searchAndPrint(ctx, view, strings.Join(args, " "), i18n.NewPrinter(cfg.UI.Language), out)
}

// searchAndPrint submits query through view and prints the rendered page.
// The page is printed for failures too; the error is returned afterwards.
func searchAndPrint(ctx context.Context, view *searchuc.View, query string, p *message.Printer, out io.Writer) error {
	submitErr := view.SubmitQuery(ctx, query)
	if errors.Is(submitErr, domain.ErrEmptyQuery) {
		return fmt.Errorf("query is empty")
	}

	if err := render.Text(out, render.NewPage(view.Snapshot(), p)); err != nil {
		return fmt.Errorf("print results: %w", err)
	}
	if submitErr != nil {
		return fmt.Errorf("search: %w", submitErr)
	}
	return nil
}
