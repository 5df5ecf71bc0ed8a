package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tenxdevs/hymns-backend/internal/platform/apierr"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

type fakeSuggestionService struct {
	gotCmd types.GenerateSuggestionsCommand
	items  []types.SuggestionDTO
	err    error
}

func (f *fakeSuggestionService) Generate(ctx context.Context, cmd types.GenerateSuggestionsCommand) ([]types.SuggestionDTO, error) {
	f.gotCmd = cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func suggestionRouter(t *testing.T, svc *fakeSuggestionService) *gin.Engine {
	t.Helper()
	handler := NewSuggestionHandler(testLogger(t), svc)
	router := gin.New()
	router.POST("/api/suggestions", handler.Generate)
	return router
}

func TestSuggestionGenerateHandler(t *testing.T) {
	svc := &fakeSuggestionService{
		items: []types.SuggestionDTO{
			{Number: "142", Name: "Holy God We Praise Thy Name", Category: "Praise"},
			{Number: "88", Name: "Panis Angelicus", Category: "Communion"},
		},
	}
	router := suggestionRouter(t, svc)

	rec := performRequest(t, router, http.MethodPost, "/api/suggestions",
		`{"text":"second Sunday of Advent, penitential tone","count":2}`, nil)
	assertStatus(t, rec, http.StatusOK)

	if svc.gotCmd.Text != "second Sunday of Advent, penitential tone" || svc.gotCmd.Count != 2 {
		t.Fatalf("command: %+v", svc.gotCmd)
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("missing data envelope: %s", rec.Body.String())
	}
	if len(data) != 2 {
		t.Fatalf("items: want=2 got=%d", len(data))
	}
	first := data[0].(map[string]any)
	if first["number"] != "142" || first["category"] != "Praise" {
		t.Fatalf("first item: %v", first)
	}
}

func TestSuggestionGenerateHandlerOmittedCount(t *testing.T) {
	svc := &fakeSuggestionService{items: []types.SuggestionDTO{}}
	router := suggestionRouter(t, svc)

	rec := performRequest(t, router, http.MethodPost, "/api/suggestions", `{"text":"funeral"}`, nil)
	assertStatus(t, rec, http.StatusOK)
	if svc.gotCmd.Count != 0 {
		t.Fatalf("omitted count should reach the service as zero, got %d", svc.gotCmd.Count)
	}
}

func TestSuggestionGenerateHandlerValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing_text", `{"count":3}`, "text"},
		{"count_over_cap", `{"text":"wedding","count":11}`, "count"},
		{"negative_count", `{"text":"wedding","count":-1}`, "count"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeSuggestionService{}
			router := suggestionRouter(t, svc)

			rec := performRequest(t, router, http.MethodPost, "/api/suggestions", tc.body, nil)
			assertStatus(t, rec, http.StatusBadRequest)
			fields := fieldErrors(t, rec)
			if _, ok := fields[tc.field]; !ok {
				t.Fatalf("expected error on %q: %v", tc.field, fields)
			}
		})
	}
}

func TestSuggestionGenerateHandlerServiceError(t *testing.T) {
	svc := &fakeSuggestionService{
		err: apierr.Upstream("suggestion_search_failed", errors.New("Failed to fetch hymn suggestions")),
	}
	router := suggestionRouter(t, svc)

	rec := performRequest(t, router, http.MethodPost, "/api/suggestions", `{"text":"vigil"}`, nil)
	assertStatus(t, rec, http.StatusInternalServerError)
	assertErrorMessage(t, rec, "Failed to fetch hymn suggestions")
}
