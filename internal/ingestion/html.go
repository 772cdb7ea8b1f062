package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches page chrome that never belongs to a posting
const noiseSelector = "nav, footer, header, script, style, noscript, form, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// JobPostingSelectors are tried in order to find the posting body
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// blockElements start a new line when flattened
const blockElements = "p, div, section, br, h1, h2, h3, h4, h5, h6, tr, ul, ol"

// HTMLToText extracts the readable text of a job posting page. Headings
// become Markdown headings and list items become "- " bullets so CleanText
// keeps their structure.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	var main *goquery.Selection
	for _, selector := range JobPostingSelectors() {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(goquery.NodeName(s)[1] - '0')
		s.SetText(strings.Repeat("#", level) + " " + strings.Join(strings.Fields(s.Text()), " "))
	})
	main.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.SetText("\n- " + strings.Join(strings.Fields(s.Text()), " ") + "\n")
	})
	main.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.BeforeHtml("\n")
		s.AfterHtml("\n")
	})

	return CleanText(flattenLines(main.Text())), nil
}

// ListItems returns the trimmed text of every <li> in the posting body
func ListItems(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	var items []string
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			items = append(items, text)
		}
	})
	return items, nil
}

// flattenLines trims every line and drops the indentation HTML source
// formatting leaves behind
func flattenLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
