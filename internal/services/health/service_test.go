package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStatusWithoutDatabase(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
		model      string
		wantModel  bool
	}{
		{name: "llm configured", configured: true, model: "mistral-small-latest", wantModel: true},
		{name: "offline hides model", configured: false, model: "mistral-small-latest", wantModel: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewService(tt.configured, tt.model, "memory", nil).Status(context.Background())
			if got.Status != "healthy" || got.Store != "memory" || got.Database != "" {
				t.Fatalf("unexpected status: %+v", got)
			}
			if (got.Model != nil) != tt.wantModel {
				t.Fatalf("model = %v, want present=%v", got.Model, tt.wantModel)
			}
		})
	}
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	svc := NewService(false, "", "postgres", db)

	mock.ExpectPing()
	if got := svc.Status(context.Background()); got.Status != "healthy" || got.Database != "ok" {
		t.Fatalf("unexpected status: %+v", got)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	if got := svc.Status(context.Background()); got.Status != "degraded" || got.Database != "unreachable" {
		t.Fatalf("unexpected status: %+v", got)
	}
}
