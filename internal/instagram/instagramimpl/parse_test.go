package instagramimpl

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/orgball2608/insta-event-calendar/pkg/errors"
)

const profileHTML = `<html><head>
<meta name="description" content="1,234 Followers, 56 Following, 7.5K Posts - See Instagram photos and videos from Board Game Club (@uci.boardgames)">
<meta property="og:title" content="Board Game Club (@uci.boardgames) • Instagram photos and videos">
</head><body><header>
<img alt="uci.boardgames's profile picture" src="https://cdn.example/avatar.jpg">
<a rel="me nofollow noopener noreferrer" target="_blank" href="https://linktr.ee/boardgames">Link icon linktr.ee/boardgames</a>
</header><main>
<a href="/p/AAA/">one</a><a href="/p/BBB/">two</a><a href="/p/AAA/">dup</a><a href="/explore/">x</a>
</main></body></html>`

func TestParseProfile(t *testing.T) {
	org, err := ParseProfile(profileHTML, "uci.boardgames")
	if err != nil {
		t.Fatalf("ParseProfile: %v", err)
	}

	if org.Name != "Board Game Club" {
		t.Errorf("Name = %q", org.Name)
	}
	if org.Followers != 1234 || org.Following != 56 || org.PostCount != 7500 {
		t.Errorf("counts = %d/%d/%d", org.Followers, org.Following, org.PostCount)
	}
	if org.AvatarURL != "https://cdn.example/avatar.jpg" {
		t.Errorf("AvatarURL = %q", org.AvatarURL)
	}
	if len(org.Links) != 1 || org.Links[0].Text != "linktr.ee/boardgames" || org.Links[0].URL != "https://linktr.ee/boardgames" {
		t.Errorf("Links = %+v", org.Links)
	}
	want := []string{"https://www.instagram.com/p/AAA/", "https://www.instagram.com/p/BBB/"}
	if len(org.PostURLs) != 2 || org.PostURLs[0] != want[0] || org.PostURLs[1] != want[1] {
		t.Errorf("PostURLs = %v, want %v", org.PostURLs, want)
	}
}

func TestParseProfileNotFound(t *testing.T) {
	_, err := ParseProfile(`<html><body><span>Sorry, this page isn't available.</span></body></html>`, "ghost")
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound, got %v", err)
	}
}

func TestParseProfileMissingMarkers(t *testing.T) {
	tests := map[string]string{
		"no description": `<html><body><img alt="club's profile picture" src="a.jpg"></body></html>`,
		"no avatar":      `<html><head><meta name="description" content="1 Followers, 2 Following, 3 Posts - x"></head></html>`,
		"bad counts":     `<html><head><meta name="description" content="lots of followers"></head></html>`,
	}
	for name, html := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProfile(html, "club")
			if !errors.Is(err, apperrors.ErrParse) {
				t.Fatalf("want ErrParse, got %v", err)
			}
		})
	}
}

func TestParsePost(t *testing.T) {
	html := `<html><body><article>
<img alt="club's profile picture" src="avatar.jpg">
<img alt="Photo by club" src="https://cdn.example/post.jpg">
<h1>Game night Friday 7pm, ~2 hours</h1>
<time datetime="2024-03-04T10:00:00.000Z">March 4</time>
</article></body></html>`

	item, err := ParsePost(html, "https://www.instagram.com/p/AAA/")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if item.ID != "2024-03-04T10:00:00Z" {
		t.Errorf("ID = %q", item.ID)
	}
	if !item.Date.Equal(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", item.Date)
	}
	if item.Description != "Game night Friday 7pm, ~2 hours" {
		t.Errorf("Description = %q", item.Description)
	}
	if item.Picture != "https://cdn.example/post.jpg" {
		t.Errorf("Picture = %q", item.Picture)
	}
}

func TestParsePostFallbacks(t *testing.T) {
	item, err := ParsePost(`<html><body><time datetime="2024-03-04T10:00:00Z"></time></body></html>`, "u")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if item.Picture != PlaceholderPicture || item.Description != "" {
		t.Errorf("unexpected fallbacks: %+v", item)
	}

	if _, err := ParsePost(`<html><body><h1>no time</h1></body></html>`, "u"); !errors.Is(err, apperrors.ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}
}

func TestDecodeCookieToken(t *testing.T) {
	// [{"name":"sessionid","value":"abc","domain":".instagram.com","path":"/","httpOnly":true,"secure":true}]
	token := "W3sibmFtZSI6InNlc3Npb25pZCIsInZhbHVlIjoiYWJjIiwiZG9tYWluIjoiLmluc3RhZ3JhbS5jb20iLCJwYXRoIjoiLyIsImh0dHBPbmx5Ijp0cnVlLCJzZWN1cmUiOnRydWV9XQ=="
	cookies, err := DecodeCookieToken(token)
	if err != nil {
		t.Fatalf("DecodeCookieToken: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "sessionid" || cookies[0].Value != "abc" || !cookies[0].Secure {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}

	if _, err := DecodeCookieToken("%%%"); err == nil {
		t.Fatal("expected error for non-base64 token")
	}
}
