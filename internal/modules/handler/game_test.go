package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arcadehq/arcade/internal/config"
	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/service"
	"github.com/arcadehq/arcade/internal/pkg/gamepkg"
	"github.com/arcadehq/arcade/internal/pkg/validate"
)

var registerValidatorsOnce sync.Once

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	registerValidatorsOnce.Do(func() { _ = validate.RegisterCustom() })
	return gin.New()
}

func testGameConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.MaxUploadMB = 1
	return cfg
}

// multipartBody builds a multipart request body with the given fields and
// files.
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, data := range files {
		fw, err := w.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestGameHandler_CreateGame(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		files          map[string][]byte
		setup          func(*MockGameService)
		expectedStatus int
	}{
		{
			name:   "successful creation",
			fields: map[string]string{"title": "Space Dodger", "slug": "space-dodger"},
			files:  map[string][]byte{"gameFile": []byte("zip-bytes")},
			setup: func(svc *MockGameService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateGameInput) bool {
					return in.Slug == "space-dodger" && len(in.Archive) > 0
				})).Return(&model.Game{ID: 1, Slug: "space-dodger"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing package file",
			fields:         map[string]string{"title": "No Zip", "slug": "no-zip"},
			setup:          func(svc *MockGameService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad slug",
			fields:         map[string]string{"title": "Bad", "slug": "Not A Slug!"},
			files:          map[string][]byte{"gameFile": []byte("zip-bytes")},
			setup:          func(svc *MockGameService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "invalid archive maps to 400",
			fields: map[string]string{"title": "Broken", "slug": "broken"},
			files:  map[string][]byte{"gameFile": []byte("not-a-zip")},
			setup: func(svc *MockGameService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, gamepkg.ErrInvalidArchive)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "no playable content maps to 400",
			fields: map[string]string{"title": "Empty", "slug": "empty"},
			files:  map[string][]byte{"gameFile": []byte("zip-bytes")},
			setup: func(svc *MockGameService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, gamepkg.ErrNoPlayableContent)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "duplicate slug maps to 409",
			fields: map[string]string{"title": "Dup", "slug": "dup"},
			files:  map[string][]byte{"gameFile": []byte("zip-bytes")},
			setup: func(svc *MockGameService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrSlugTaken)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "oversized package maps to 413",
			fields:         map[string]string{"title": "Huge", "slug": "huge"},
			files:          map[string][]byte{"gameFile": bytes.Repeat([]byte("a"), 2<<20)},
			setup:          func(svc *MockGameService) {},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockGameService{}
			tt.setup(svc)

			h := NewGameHandler(svc, testGameConfig())
			r := setupRouter()
			r.POST("/admin/games", h.CreateGame)

			body, contentType := multipartBody(t, tt.fields, tt.files)
			req := httptest.NewRequest("POST", "/admin/games", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestGameHandler_GetGame(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		setup          func(*MockGameService)
		expectedStatus int
	}{
		{
			name: "published game",
			slug: "space-dodger",
			setup: func(svc *MockGameService) {
				svc.On("GetBySlug", mock.Anything, "space-dodger").
					Return(&model.Game{ID: 1, Slug: "space-dodger", Status: model.GameStatusPublished}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "draft hidden from public",
			slug: "secret-draft",
			setup: func(svc *MockGameService) {
				svc.On("GetBySlug", mock.Anything, "secret-draft").
					Return(&model.Game{ID: 2, Slug: "secret-draft", Status: model.GameStatusDraft}, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "unknown slug",
			slug: "nope",
			setup: func(svc *MockGameService) {
				svc.On("GetBySlug", mock.Anything, "nope").Return(nil, service.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockGameService{}
			tt.setup(svc)

			h := NewGameHandler(svc, testGameConfig())
			r := setupRouter()
			r.GET("/games/:game", h.GetGame)

			req := httptest.NewRequest("GET", "/games/"+tt.slug, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestGameHandler_ListGames_PublishedOnly(t *testing.T) {
	svc := &MockGameService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListGamesInput) bool {
		return in.Status == model.GameStatusPublished
	})).Return(&service.ListGamesOutput{Items: []model.Game{}}, nil)

	h := NewGameHandler(svc, testGameConfig())
	r := setupRouter()
	r.GET("/games", h.ListGames)

	req := httptest.NewRequest("GET", "/games?limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
