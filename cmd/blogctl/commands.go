package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/service"
	"github.com/spf13/cobra"
)

// fetch runs q once for params, re-running failed fetches up to retries times
func fetch[P comparable, T any](ctx context.Context, s *session, q *service.Query[P, T], params P) (T, error) {
	defer q.Close()

	q.Set(ctx, params)
	st, err := q.Wait(ctx)
	for attempt := 0; err == nil && st.Status == service.StatusFailed && service.IsRetryable(st.Err) && attempt < s.retries; attempt++ {
		s.log.Debug().Int("attempt", attempt+1).Err(st.Err).Msg("Retrying fetch")
		q.Refetch(ctx)
		st, err = q.Wait(ctx)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return st.Data, st.Err
}

// NewPostsCommand creates the posts command
func NewPostsCommand() *cobra.Command {
	var page int
	var featured bool

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			q := service.NewPostsQuery(s.app.Services.Content, s.log)
			result, err := fetch(cmd.Context(), s, q, service.PostsParams{Page: page, Featured: featured, Source: s.source})
			if err != nil {
				printFailure(cmd.ErrOrStderr(), err)
				return err
			}
			printPage(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().BoolVarP(&featured, "featured", "f", false, "featured posts only")

	return cmd
}

// NewPostCommand creates the post command
func NewPostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "post <slug>",
		Short: "Show a single post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			q := service.NewPostQuery(s.app.Services.Content, s.log)
			post, err := fetch(cmd.Context(), s, q, service.PostParams{Slug: args[0], Source: s.source})
			if err != nil {
				printFailure(cmd.ErrOrStderr(), err)
				return err
			}
			printPost(cmd.OutOrStdout(), post)
			return nil
		},
	}
}

// NewCategoriesCommand creates the categories command
func NewCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			q := service.NewCategoriesQuery(s.app.Services.Content, s.log)
			cats, err := fetch(cmd.Context(), s, q, service.CategoriesParams{Source: s.source})
			if err != nil {
				printFailure(cmd.ErrOrStderr(), err)
				return err
			}
			printCategories(cmd.OutOrStdout(), cats)
			return nil
		},
	}
}

// NewCategoryCommand creates the category command
func NewCategoryCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "category <slug>",
		Short: "List posts in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			q := service.NewCategoryPostsQuery(s.app.Services.Content, s.log)
			result, err := fetch(cmd.Context(), s, q, service.CategoryPostsParams{Slug: args[0], Page: page, Source: s.source})
			if err != nil {
				printFailure(cmd.ErrOrStderr(), err)
				return err
			}
			printPage(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")

	return cmd
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	var page int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search posts",
		Long: `Search posts by title, excerpt, content and tag names.

With --interactive, every line read from stdin replaces the query; the
search runs once input has been quiet for SEARCH_DEBOUNCE. Enter :n or :p
to page, :q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			sq := service.NewSearchQuery(s.app.Services.Content, s.cfg.Content.SearchDebounce, s.source, s.log)

			if interactive {
				return runInteractiveSearch(cmd.Context(), sq, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			query := strings.Join(args, " ")
			result, err := fetch(cmd.Context(), s, sq.Query, service.SearchParams{Query: query, Page: page, Source: s.source})
			if err != nil {
				printFailure(cmd.ErrOrStderr(), err)
				return err
			}
			printPage(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read queries from stdin")

	return cmd
}

func runInteractiveSearch(ctx context.Context, sq *service.SearchQuery, in io.Reader, out io.Writer) error {
	defer sq.Close()

	sq.OnChange(func(st service.State[service.SearchParams, models.PostPage]) {
		switch st.Status {
		case service.StatusLoading:
			fmt.Fprintf(out, "%s\n", dimColor(fmt.Sprintf("searching %q (page %d)...", st.Params.Query, st.Params.Page)))
		case service.StatusSuccess:
			printPage(out, st.Data)
		case service.StatusFailed:
			printFailure(out, st.Err)
		}
	})

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case ":q":
			return nil
		case ":n":
			sq.SetPage(ctx, sq.State().Params.Page+1)
			continue
		case ":p":
			if p := sq.State().Params.Page; p > 1 {
				sq.SetPage(ctx, p-1)
			}
			continue
		}
		sq.Input(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// let the last input settle before exiting
	_, err := sq.Settle(ctx)
	return err
}
