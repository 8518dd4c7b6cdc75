package calendarimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/calendar"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/artifact"
	mock_artifact "github.com/orgball2608/insta-event-calendar/internal/repositories/artifact/mocks"
	mock_post "github.com/orgball2608/insta-event-calendar/internal/repositories/post/mocks"
	apperrors "github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/mock/gomock"
)

func newMockedAssembler(t *testing.T) (*AssemblerImpl, *mock_post.MockRepository, *mock_artifact.MockRepository) {
	ctrl := gomock.NewController(t)
	posts := mock_post.NewMockRepository(ctrl)
	artifacts := mock_artifact.NewMockRepository(ctrl)
	return New(Opts{PostRepo: posts, ArtifactRepo: artifacts, Logger: logger.NewNop()}), posts, artifacts
}

func TestAssembleWritesOneRecord(t *testing.T) {
	a, posts, artifacts := newMockedAssembler(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	artifacts.EXPECT().Get(gomock.Any(), "club").Return(nil, artifact.ErrNotFound)
	posts.EXPECT().List(gomock.Any(), "club").Return([]domain.PostItem{
		{ID: "p1", OrganizationID: "club", Processed: true, Events: []domain.EventRecord{event("Game Night", gameNight, 0, 2)}},
	}, nil)
	artifacts.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, record artifact.Record) error {
		if record.OrganizationID != "club" || record.EntryCount != 1 || !record.UpdatedAt.Equal(now) {
			t.Errorf("unexpected record: %+v", record)
		}
		decoded, err := calendar.Decode("club", record.Body)
		if err != nil || len(decoded.Entries) != 1 || decoded.Entries[0].Name != "Game Night" {
			t.Errorf("body does not hold the entry: %+v, %v", decoded, err)
		}
		return nil
	})

	if _, err := a.Assemble(context.Background(), "club"); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
}

func TestAssembleSurfacesRepositoryErrors(t *testing.T) {
	readErr := errors.New("read failed")
	writeErr := errors.New("write failed")

	t.Run("read", func(t *testing.T) {
		a, _, artifacts := newMockedAssembler(t)
		artifacts.EXPECT().Get(gomock.Any(), "club").Return(nil, readErr)

		_, err := a.Assemble(context.Background(), "club")
		if !errors.Is(err, apperrors.ErrRepository) || !errors.Is(err, readErr) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("write", func(t *testing.T) {
		a, posts, artifacts := newMockedAssembler(t)
		artifacts.EXPECT().Get(gomock.Any(), "club").Return(nil, artifact.ErrNotFound)
		posts.EXPECT().List(gomock.Any(), "club").Return([]domain.PostItem{}, nil)
		artifacts.EXPECT().Put(gomock.Any(), gomock.Any()).Return(writeErr)

		_, err := a.Assemble(context.Background(), "club")
		if !errors.Is(err, apperrors.ErrRepository) || !errors.Is(err, writeErr) {
			t.Fatalf("got %v", err)
		}
	})
}
