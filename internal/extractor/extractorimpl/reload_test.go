package extractorimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_completion "github.com/orgball2608/insta-event-calendar/internal/completion/mocks"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/post"
	mock_post "github.com/orgball2608/insta-event-calendar/internal/repositories/post/mocks"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	apperrors "github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/mock/gomock"
)

func TestExtractPostLosingRaceReloadsStoredEvents(t *testing.T) {
	date := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	stored := domain.EventRecord{Name: "Trivia", Date: date.Add(96 * time.Hour)}

	tests := []struct {
		name       string
		list       []domain.PostItem
		listErr    error
		wantEvents int
		wantErr    error
	}{
		{
			name:       "reloaded",
			list:       []domain.PostItem{{ID: domain.PostID(date), OrganizationID: "club", Processed: true, Events: []domain.EventRecord{stored}}},
			wantEvents: 1,
		},
		{
			name:    "list fails",
			listErr: errors.New("database is locked"),
			wantErr: apperrors.ErrRepository,
		},
		{
			name:    "post vanished",
			list:    []domain.PostItem{},
			wantErr: post.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_completion.NewMockClient(ctrl)
			repo := mock_post.NewMockRepository(ctrl)
			e := New(Opts{Completion: client, PostRepo: repo, Config: &config.Config{}, Logger: logger.NewNop()})

			item := &domain.PostItem{ID: domain.PostID(date), OrganizationID: "club", Description: "Trivia Friday", Date: date}

			client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(gameNightResponse, nil)
			repo.EXPECT().MarkProcessed(gomock.Any(), "club", item.ID, gomock.Any()).Return(post.ErrAlreadyProcessed)
			repo.EXPECT().List(gomock.Any(), "club").Return(tt.list, tt.listErr)

			result, err := e.ExtractPost(context.Background(), item)
			if !result.Skipped {
				t.Fatalf("want a skipped result, got %+v", result)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(result.Events) != tt.wantEvents || result.Events[0].Name != "Trivia" {
				t.Fatalf("result events = %+v", result.Events)
			}
			if !item.Processed || len(item.Events) != 1 || item.Events[0].Name != "Trivia" {
				t.Fatalf("item not refreshed: %+v", item)
			}
		})
	}
}
