package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performHandler(t *testing.T, fn gin.HandlerFunc) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	engine := gin.New()
	engine.GET("/probe", fn)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	w, resp := performHandler(t, func(c *gin.Context) {
		h.Success(c, gin.H{"name": "Luminara Studios"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w, resp := performHandler(t, func(c *gin.Context) {
		h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "already exists",
			err:        shared.NewDomainError("ALREADY_EXISTS", "email already registered"),
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
		},
		{
			name:       "invalid state",
			err:        shared.NewDomainError("INVALID_STATE", "booking is not pending"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_STATE",
		},
		{
			name:       "expired link hides as not found",
			err:        shared.ErrLinkExpired,
			wantStatus: http.StatusNotFound,
			wantCode:   "LINK_EXPIRED",
		},
		{
			name:       "field validation code",
			err:        shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_GSTIN",
		},
		{
			name:       "unknown error is opaque",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := performHandler(t, func(c *gin.Context) {
				h.HandleError(c, tt.err)
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleErrorNil(t *testing.T) {
	h := &BaseHandler{}

	engine := gin.New()
	engine.GET("/probe", func(c *gin.Context) {
		h.HandleError(c, nil)
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestBaseHandler_ErrorCarriesRequestID(t *testing.T) {
	h := &BaseHandler{}

	engine := gin.New()
	engine.GET("/probe", func(c *gin.Context) {
		c.Set("X-Request-ID", "req-123")
		h.NotFound(c, "no such booking")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
