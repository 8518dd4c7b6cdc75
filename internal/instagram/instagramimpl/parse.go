package instagramimpl

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/formatter"
)

const (
	pageUnavailableText = "Sorry, this page isn't available."
	// PlaceholderPicture stands in when a post has no readable image.
	PlaceholderPicture = "http://www.w3.org/2000/svg"
)

// ParseProfile reads an organization from a rendered profile page.
func ParseProfile(html, id string) (domain.Organization, error) {
	if strings.Contains(html, pageUnavailableText) {
		return domain.Organization{}, errors.ProfileNotFound(id)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.Organization{}, errors.Parse("invalid profile document", err)
	}

	meta, ok := doc.Find(`meta[name="description"]`).First().Attr("content")
	if !ok {
		return domain.Organization{}, errors.Parse("profile description not found for "+id, nil)
	}
	followers, following, posts, description, err := parseProfileMeta(meta)
	if err != nil {
		return domain.Organization{}, errors.Parse("bad profile counts for "+id, err)
	}

	avatar, ok := doc.Find(fmt.Sprintf(`img[alt="%s's profile picture"]`, id)).First().Attr("src")
	if !ok {
		return domain.Organization{}, errors.Parse("profile picture not found for "+id, nil)
	}

	org := domain.Organization{
		ID:          id,
		Name:        profileName(doc, id),
		Description: description,
		AvatarURL:   avatar,
		Followers:   followers,
		Following:   following,
		PostCount:   posts,
	}

	doc.Find(`a[rel*="me"][target="_blank"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		text := strings.TrimSpace(strings.ReplaceAll(s.Text(), "Link icon", ""))
		org.Links = append(org.Links, domain.Link{Text: text, URL: href})
	})

	seen := map[string]bool{}
	doc.Find(`a[href*="/p/"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "/") {
			href = instagram.BaseURL + href
		}
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		org.PostURLs = append(org.PostURLs, href)
	})

	return org, nil
}

// parseProfileMeta splits "1,234 Followers, 56 Following, 78 Posts - See ..." into its parts.
func parseProfileMeta(meta string) (followers, following, posts int, description string, err error) {
	head, rest, _ := strings.Cut(meta, " - ")
	description = strings.TrimSpace(rest)

	parts := strings.Split(head, ", ")
	if len(parts) < 3 {
		return 0, 0, 0, "", fmt.Errorf("expected three counts in %q", head)
	}

	counts := make([]int, 3)
	for i := range counts {
		fields := strings.Fields(parts[i])
		if len(fields) == 0 {
			return 0, 0, 0, "", fmt.Errorf("empty count in %q", head)
		}
		n, ok := formatter.ParseCount(fields[0])
		if !ok {
			return 0, 0, 0, "", fmt.Errorf("unreadable count %q", fields[0])
		}
		counts[i] = n
	}
	return counts[0], counts[1], counts[2], description, nil
}

// profileName prefers og:title ("Name (@id) • Instagram photos and videos") and falls back to the header.
func profileName(doc *goquery.Document, id string) string {
	if title, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if name, _, found := strings.Cut(title, " (@"); found && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}
	if name := strings.TrimSpace(doc.Find("header h2").First().Text()); name != "" {
		return name
	}
	return id
}

// ParsePost reads a post from a rendered post page. The timestamp is required.
func ParsePost(html, url string) (domain.PostItem, error) {
	if strings.Contains(html, pageUnavailableText) {
		return domain.PostItem{}, errors.Parse("post unavailable: "+url, nil)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.PostItem{}, errors.Parse("invalid post document", err)
	}

	stamp, ok := doc.Find("time[datetime]").First().Attr("datetime")
	if !ok {
		return domain.PostItem{}, errors.Parse("post timestamp not found: "+url, nil)
	}
	date, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return domain.PostItem{}, errors.Parse("bad post timestamp: "+stamp, err)
	}
	date = date.UTC().Truncate(time.Second)

	picture := PlaceholderPicture
	doc.Find("article img[src], main img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if alt, _ := s.Attr("alt"); strings.Contains(alt, "profile picture") {
			return true
		}
		picture, _ = s.Attr("src")
		return false
	})

	return domain.PostItem{
		ID:          domain.PostID(date),
		URL:         url,
		Description: strings.TrimSpace(doc.Find("h1").First().Text()),
		Date:        date,
		Picture:     picture,
	}, nil
}
