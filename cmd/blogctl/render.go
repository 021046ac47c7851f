package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/service"
	"github.com/blog-content-api/pkg/htmltext"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleColor = color.New(color.Bold).SprintFunc()
	dimColor   = color.New(color.FgHiBlack).SprintFunc()
	okColor    = color.New(color.FgGreen).SprintFunc()
	errColor   = color.New(color.FgRed).SprintFunc()
	emptyColor = color.New(color.FgYellow).SprintFunc()
)

const emptyMessage = "nothing here yet"

func printPage(w io.Writer, page models.PostPage) {
	if len(page.Posts) == 0 {
		fmt.Fprintln(w, emptyColor(emptyMessage))
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Slug", "Published", "Read", "Featured"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	offset := (page.Page - 1) * page.PageSize
	for i, p := range page.Posts {
		featured := ""
		if p.IsFeatured {
			featured = "*"
		}
		table.Append([]string{
			strconv.Itoa(offset + i + 1),
			p.Title,
			p.Slug,
			shortDate(p),
			fmt.Sprintf("%d min", p.ReadingTime),
			featured,
		})
	}
	table.Render()

	fmt.Fprintln(w, dimColor(pageFooter(page)))
}

func pageFooter(page models.PostPage) string {
	switch {
	case page.TotalPages > 0:
		return fmt.Sprintf("page %d of %d (%d posts)", page.Page, page.TotalPages, page.Total)
	case page.HasMore:
		return fmt.Sprintf("page %d, more available", page.Page)
	default:
		return fmt.Sprintf("page %d", page.Page)
	}
}

func shortDate(p models.Post) string {
	t, err := p.PublishedTime()
	if err != nil {
		return p.PublishedDate
	}
	return t.Format("2006-01-02")
}

func printPost(w io.Writer, p *models.Post) {
	fmt.Fprintln(w, titleColor(p.Title))
	fmt.Fprintf(w, "%s · %s · %d min read\n", p.Author.Name, shortDate(*p), p.ReadingTime)

	if len(p.Categories) > 0 {
		names := make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			names = append(names, c.Name)
		}
		fmt.Fprintf(w, "%s %s\n", dimColor("categories:"), strings.Join(names, ", "))
	}
	if len(p.Tags) > 0 {
		names := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			names = append(names, "#"+t.Name)
		}
		fmt.Fprintf(w, "%s %s\n", dimColor("tags:"), strings.Join(names, " "))
	}
	if p.FeaturedImage != "" {
		fmt.Fprintf(w, "%s %s\n", dimColor("image:"), p.FeaturedImage)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Excerpt)
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Join(strings.Fields(htmltext.StripTags(p.Content)), " "))
}

func printCategories(w io.Writer, cats []models.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, emptyColor(emptyMessage))
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Slug", "Description"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, c := range cats {
		table.Append([]string{c.Name, c.Slug, c.Description})
	}
	table.Render()
}

func printPreferences(w io.Writer, prefs models.Preferences) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Preference", "Value"})
	table.SetBorder(false)
	table.Append([]string{"client", prefs.ClientID})
	table.Append([]string{models.PreferenceTheme, string(prefs.Theme)})
	table.Append([]string{models.PreferenceNewsletterDismissed, strconv.FormatBool(prefs.NewsletterDismissed)})
	table.Render()
}

func printFailure(w io.Writer, err error) {
	msg := errColor(err.Error())
	if service.IsRetryable(err) {
		msg += dimColor(" (try again, or pass --retries)")
	}
	fmt.Fprintln(w, msg)
}
