package calendarimpl

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	mock_completion "github.com/orgball2608/insta-event-calendar/internal/completion/mocks"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/extractor/extractorimpl"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/artifact"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/organization"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/post"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/sqlitetest"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	posts     *post.SQLite
	artifacts *artifact.SQLite
	orgs      *organization.SQLite
	assembler *AssemblerImpl
}

func newFixture(t *testing.T) *fixture {
	db := sqlitetest.New(t)
	f := &fixture{
		posts:     post.NewSQLite(db, logger.NewNop()),
		artifacts: artifact.NewSQLite(db, logger.NewNop()),
		orgs:      organization.NewSQLite(db, logger.NewNop()),
	}
	f.assembler = New(Opts{PostRepo: f.posts, ArtifactRepo: f.artifacts, Logger: logger.NewNop()})
	if err := f.orgs.Upsert(context.Background(), domain.Organization{ID: "club", Name: "Club"}); err != nil {
		t.Fatal(err)
	}
	return f
}

// processedPost stores a post published at date and records events on it.
func (f *fixture) processedPost(t *testing.T, date time.Time, events ...domain.EventRecord) {
	t.Helper()
	ctx := context.Background()
	if err := f.posts.Create(ctx, domain.PostItem{OrganizationID: "club", Description: "post", Date: date}); err != nil {
		t.Fatal(err)
	}
	if err := f.posts.MarkProcessed(ctx, "club", domain.PostID(date), events); err != nil {
		t.Fatal(err)
	}
}

func event(name string, start time.Time, days, hours int) domain.EventRecord {
	return domain.EventRecord{
		Name:     name,
		Date:     start,
		Details:  name + " details",
		Duration: domain.EventDuration{Estimated: domain.Estimate{Days: days, Hours: hours}},
	}
}

var gameNight = time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC)

func TestAssembleSuppressesDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.processedPost(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), event("Game Night", gameNight, 0, 2))
	f.processedPost(t, time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
		event("Game Night", gameNight, 0, 3),
		event("Trivia", gameNight.Add(24*time.Hour), 0, 1),
	)

	got, err := f.assembler.Assemble(ctx, "club")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got.Entries), got.Entries)
	}

	keys := map[domain.EntryKey]int{}
	for _, entry := range got.Entries {
		keys[entry.Key()]++
	}
	for key, n := range keys {
		if n != 1 {
			t.Fatalf("key %v appears %d times", key, n)
		}
	}
	// first writer wins
	if got.Entries[0].Duration != 2*time.Hour {
		t.Fatalf("duplicate replaced the existing entry: %+v", got.Entries[0])
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.processedPost(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), event("Game Night", gameNight, 0, 2))

	if _, err := f.assembler.Assemble(ctx, "club"); err != nil {
		t.Fatal(err)
	}
	first, err := f.artifacts.Get(ctx, "club")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.assembler.Assemble(ctx, "club"); err != nil {
		t.Fatal(err)
	}
	second, err := f.artifacts.Get(ctx, "club")
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first.Body, second.Body) {
		t.Fatalf("calendar changed without new events:\n%s\n---\n%s", first.Body, second.Body)
	}
	if second.EntryCount != 1 {
		t.Fatalf("EntryCount = %d", second.EntryCount)
	}
}

func TestAssembleIsStableForEscapedText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	names := []string{`Install party C:\new`, `Back\\slash`, "Fair; food, drinks", `Literal \N`}
	events := make([]domain.EventRecord, 0, len(names))
	for i, name := range names {
		ev := event(name, gameNight.Add(time.Duration(i)*time.Hour), 0, 1)
		ev.Details = "line one\nline two; a, b \\ c"
		events = append(events, ev)
	}
	f.processedPost(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), events...)

	var bodies [][]byte
	for run := 1; run <= 3; run++ {
		got, err := f.assembler.Assemble(ctx, "club")
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if len(got.Entries) != len(names) {
			t.Fatalf("run %d: %d entries, want %d", run, len(got.Entries), len(names))
		}
		stored, err := f.artifacts.Get(ctx, "club")
		if err != nil {
			t.Fatal(err)
		}
		if stored.EntryCount != len(names) {
			t.Fatalf("run %d: EntryCount = %d", run, stored.EntryCount)
		}
		bodies = append(bodies, stored.Body)
	}

	if !bytes.Equal(bodies[0], bodies[2]) {
		t.Fatalf("calendar changed between runs:\n%s\n---\n%s", bodies[0], bodies[2])
	}
	if c := bytes.Count(bodies[2], []byte("BEGIN:VEVENT")); c != len(names) {
		t.Fatalf("stored %d VEVENTs, want %d", c, len(names))
	}
}

func TestAssembleKeepsEntriesAndSkipsMalformed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// a first run produced Game Night; the post behind it is gone now
	f.processedPost(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), event("Game Night", gameNight, 0, 2))
	if _, err := f.assembler.Assemble(ctx, "club"); err != nil {
		t.Fatal(err)
	}

	other := newFixture(t)
	other.assembler.artifactRepo = f.artifacts
	other.processedPost(t, time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
		event("", gameNight, 0, 1),
		event("Broken", gameNight, 0, -2),
		event("Trivia", gameNight.Add(24*time.Hour), 0, 1),
	)

	got, err := other.assembler.Assemble(ctx, "club")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 2 || got.Entries[0].Name != "Game Night" || got.Entries[1].Name != "Trivia" {
		t.Fatalf("unexpected entries: %+v", got.Entries)
	}
}

func TestAssembleMultiDayEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := time.Date(2024, 4, 5, 9, 0, 0, 0, time.UTC)
	last := time.Date(2024, 4, 7, 17, 0, 0, 0, time.UTC)
	f.processedPost(t, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
		event("Hackathon", first, 0, 0),
		event("Hackathon", last, 0, 0),
	)

	got, err := f.assembler.Assemble(ctx, "club")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("got %d entries", len(got.Entries))
	}
	for i, want := range []time.Time{first, last} {
		if got.Entries[i].Name != "Hackathon" || !got.Entries[i].Start.Equal(want) || got.Entries[i].Duration != 0 {
			t.Fatalf("entry %d: %+v", i, got.Entries[i])
		}
	}
}

func TestAssembleIgnoresUnprocessedPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.posts.Create(ctx, domain.PostItem{OrganizationID: "club", Description: "pending", Date: gameNight}); err != nil {
		t.Fatal(err)
	}

	got, err := f.assembler.Assemble(ctx, "club")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 0 {
		t.Fatalf("unexpected entries: %+v", got.Entries)
	}
}

func TestAssembleUnknownOrganization(t *testing.T) {
	f := newFixture(t)
	if _, err := f.assembler.Assemble(context.Background(), "ghost"); !errors.Is(err, post.ErrNotFound) {
		t.Fatalf("want post.ErrNotFound, got %v", err)
	}
}

func TestExtractThenAssemble(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	client := mock_completion.NewMockClient(ctrl)
	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(
		`[{"Name":"Game Night","Date":"2024-03-08T19:00:00Z","Details":"Game night Friday 7pm","Duration":{"estimated duration":{"days":0,"hours":2}}}]`, nil,
	)
	extractor := extractorimpl.New(extractorimpl.Opts{
		Completion: client,
		PostRepo:   f.posts,
		Config:     &config.Config{},
		Logger:     logger.NewNop(),
	})

	published := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	if err := f.posts.Create(ctx, domain.PostItem{
		OrganizationID: "club",
		Description:    "Game night Friday 7pm, ~2 hours",
		Date:           published,
	}); err != nil {
		t.Fatal(err)
	}

	summary, err := extractor.ExtractOrganization(ctx, "club")
	if err != nil || summary.Processed != 1 {
		t.Fatalf("extract: %+v, %v", summary, err)
	}

	got, err := f.assembler.Assemble(ctx, "club")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("got %d entries", len(got.Entries))
	}
	entry := got.Entries[0]
	if entry.Name != "Game Night" || !entry.Start.Equal(gameNight) || entry.Duration != 7200*time.Second {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	items, err := f.posts.List(ctx, "club")
	if err != nil {
		t.Fatal(err)
	}
	if !items[0].Processed {
		t.Fatal("post not marked processed")
	}
}
