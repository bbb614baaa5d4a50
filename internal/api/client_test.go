package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/log"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-token", log.Null()), srv
}

func TestGetNovels_PageTranslation(t *testing.T) {
	var gotPage, gotSize string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("size")
		w.Write([]byte(`{"content": [], "totalElements": 0, "currentPage": 2}`))
	})
	defer srv.Close()

	_, _, err := client.GetNovels(context.Background(), domain.NovelQuery{Page: 3, PageSize: 20})
	require.NoError(t, err)

	// UI page 3 is server page 2.
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "20", gotSize)
}

func TestGetNovels_BareContainer(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/novels", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"content": [
				{"id": "n1", "title": "The Iron Crown", "authorName": "R. Voss", "status": "ongoing", "wordCount": 120000},
				{"id": "n2", "title": "Ashfall", "authorName": "M. Lin"}
			],
			"totalElements": 37,
			"currentPage": 0
		}`))
	})
	defer srv.Close()

	novels, total, err := client.GetNovels(context.Background(), domain.NovelQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 37, total)
	require.Len(t, novels, 2)
	assert.Equal(t, "The Iron Crown", novels[0].Title)
	assert.Equal(t, domain.StatusOngoing, novels[0].Status)
	assert.Equal(t, int64(120000), novels[0].WordCount)
}

func TestGetNovels_DataEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"content": [{"id": "n1", "title": "Ashfall"}], "totalElements": 1, "currentPage": 0}}`))
	})
	defer srv.Close()

	novels, total, err := client.GetNovels(context.Background(), domain.NovelQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, novels, 1)
	assert.Equal(t, "Ashfall", novels[0].Title)
}

func TestGetNovels_KeywordSwitchesToSearch(t *testing.T) {
	var gotPath, gotKeyword string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKeyword = r.URL.Query().Get("keyword")
		w.Write([]byte(`{"content": [], "totalElements": 0}`))
	})
	defer srv.Close()

	_, _, err := client.GetNovels(context.Background(), domain.NovelQuery{Keyword: "dragons", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, "/api/novels/search", gotPath)
	assert.Equal(t, "dragons", gotKeyword)
}

func TestDoRequest_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrAuthFailed)
			},
		},
		{
			name:   "not_found",
			status: http.StatusNotFound,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:   "server_error_with_message",
			status: http.StatusInternalServerError,
			body:   `{"message": "novel is locked"}`,
			check: func(t *testing.T, err error) {
				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "novel is locked", apiErr.Message)
				assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
			},
		},
		{
			name:   "nested_error_message",
			status: http.StatusBadRequest,
			body:   `{"error": {"message": "invalid sort key"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "invalid sort key", apiErr.Message)
			},
		},
		{
			name:   "unparseable_error_body",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Empty(t, apiErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			_, _, err := client.GetNovels(context.Background(), domain.NovelQuery{Page: 1, PageSize: 20})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDoRequest_TransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", log.Null())

	_, _, err := client.GetNovels(context.Background(), domain.NovelQuery{Page: 1, PageSize: 20})
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestGetChapter_FallbackNovelID(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/novels/n1/chapters/c5", r.URL.Path)
		w.Write([]byte(`{"data": {"id": "c5", "chapterNumber": 5, "title": "The Pass", "content": "Snow fell.", "prevChapterId": "c4", "nextChapterId": "c6"}}`))
	})
	defer srv.Close()

	ch, err := client.GetChapter(context.Background(), "n1", "c5")
	require.NoError(t, err)
	assert.Equal(t, "n1", ch.NovelID, "missing novelId is filled from the request")
	assert.Equal(t, 5, ch.Index)
	assert.Equal(t, "c4", ch.PrevID)
	assert.Equal(t, "c6", ch.NextID)
}

func TestGetRankings_PositionBackfill(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rankings/novels", r.URL.Path)
		assert.Equal(t, "weekly", r.URL.Query().Get("timeRange"))
		// Server omits the rank field; positions come from order.
		w.Write([]byte(`{"content": [
			{"novelId": "n1", "title": "First"},
			{"novelId": "n2", "title": "Second"}
		], "totalElements": 2}`))
	})
	defer srv.Close()

	entries, _, err := client.GetRankings(context.Background(), domain.RankNovels, domain.RankQuery{
		TimeRange: "weekly", Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 2, entries[1].Position)
}

func TestSignIn_StoresToken(t *testing.T) {
	var sawAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"data": {"token": "fresh-token", "userId": "u1", "username": "alice"}}`))
		default:
			sawAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"content": [], "totalElements": 0}`))
		}
	})
	defer srv.Close()

	result, err := client.SignIn(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", result.Token)
	assert.Equal(t, "u1", result.UserID)

	// Subsequent requests carry the new token.
	_, _, err = client.GetNovels(context.Background(), domain.NovelQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, "Bearer fresh-token", sawAuth)
}
