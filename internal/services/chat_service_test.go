package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fitverse-app/FitVerseBack/internal/models"
	"github.com/fitverse-app/FitVerseBack/internal/repository"
)

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		switch target := dest[i].(type) {
		case *int64:
			*target = r.values[i].(int64)
		case *int:
			*target = r.values[i].(int)
		case *bool:
			*target = r.values[i].(bool)
		case *string:
			*target = r.values[i].(string)
		case *float64:
			*target = r.values[i].(float64)
		case *time.Time:
			*target = r.values[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type stubDBTX struct {
	queryRowFn func(ctx context.Context, query string, args ...any) stubRow
}

func (db *stubDBTX) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *stubDBTX) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *stubDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return db.queryRowFn(ctx, query, args...)
}

type stubUserReader struct {
	users map[int64]*models.User
}

func (r *stubUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

var chatTestTime = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func newChatTestService(users map[int64]*models.User) *ChatService {
	chatRepo := repository.NewChatRepository(&stubDBTX{
		queryRowFn: func(_ context.Context, _ string, args ...any) stubRow {
			return stubRow{values: []any{int64(5), args[0].(int64), args[1].(int64), chatTestTime, chatTestTime}}
		},
	})
	return NewChatService(chatRepo, &stubUserReader{users: users})
}

func TestFindOrCreateChatReturnsPairChat(t *testing.T) {
	service := newChatTestService(map[int64]*models.User{
		7: {ID: 7, Role: "client", FullName: "Milad"},
		9: {ID: 9, Role: "coach", FullName: "Sara"},
	})

	chat, err := service.FindOrCreateChat(context.Background(), 7, 9)
	if err != nil {
		t.Fatalf("FindOrCreateChat: %v", err)
	}
	if chat.ID != 5 || chat.ClientID != 7 || chat.CoachID != 9 {
		t.Fatalf("unexpected chat: %+v", chat)
	}
}

func TestFindOrCreateChatRejectsBadPairs(t *testing.T) {
	service := newChatTestService(map[int64]*models.User{
		7: {ID: 7, Role: "client"},
		9: {ID: 9, Role: "coach"},
	})

	if _, err := service.FindOrCreateChat(context.Background(), 0, 9); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero client, got %v", err)
	}
	if _, err := service.FindOrCreateChat(context.Background(), 7, 7); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self chat, got %v", err)
	}
}

func TestFindOrCreateChatChecksRoles(t *testing.T) {
	service := newChatTestService(map[int64]*models.User{
		7: {ID: 7, Role: "coach"},
		9: {ID: 9, Role: "coach"},
	})
	if _, err := service.FindOrCreateChat(context.Background(), 7, 9); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-client first participant, got %v", err)
	}

	service = newChatTestService(map[int64]*models.User{
		7: {ID: 7, Role: "client"},
		9: {ID: 9, Role: "client"},
	})
	if _, err := service.FindOrCreateChat(context.Background(), 7, 9); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-coach second participant, got %v", err)
	}
}

func TestFindOrCreateChatReportsMissingUsers(t *testing.T) {
	service := newChatTestService(map[int64]*models.User{
		9: {ID: 9, Role: "coach"},
	})
	if _, err := service.FindOrCreateChat(context.Background(), 7, 9); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	service = newChatTestService(map[int64]*models.User{
		7: {ID: 7, Role: "client"},
	})
	if _, err := service.FindOrCreateChat(context.Background(), 7, 9); !errors.Is(err, ErrCoachNotFound) {
		t.Fatalf("expected ErrCoachNotFound, got %v", err)
	}
}

func TestGetUserChatsRejectsBadUser(t *testing.T) {
	service := newChatTestService(nil)
	if _, err := service.GetUserChats(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
