package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/basketd/internal/mocks"
	"github.com/dtroode/basketd/internal/model"
	"github.com/dtroode/basketd/internal/testutil"
)

func TestProduct_List(t *testing.T) {
	t.Parallel()

	svc := mocks.NewCatalogService(t)
	svc.On("List", mock.Anything).Return([]model.Product{
		{ID: 1, Name: "Pomme", Price: decimal.RequireFromString("1.20")},
		{ID: 3, Name: "Fraise", Price: decimal.RequireFromString("3.80")},
	}, nil).Once()

	h := NewProduct(svc, testutil.MakeNoopLogger(), false)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"pid":1,"name":"Pomme","price":1.2},{"pid":3,"name":"Fraise","price":3.8}]`, rec.Body.String())
}

func TestProduct_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pid        string
		product    model.Product
		err        error
		callsSvc   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "existing product",
			pid:        "2",
			product:    model.Product{ID: 2, Name: "Poire", Price: decimal.RequireFromString("1.60")},
			callsSvc:   true,
			wantStatus: http.StatusOK,
			wantBody:   `{"pid":2,"name":"Poire","price":1.6}`,
		},
		{
			name:       "unknown product",
			pid:        "999",
			err:        model.ErrProductNotFound,
			callsSvc:   true,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "id out of range",
			pid:        "99999999999999999999",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store failure",
			pid:        "1",
			err:        assert.AnError,
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewCatalogService(t)
			if tt.callsSvc {
				svc.On("Get", mock.Anything, mock.AnythingOfType("int64")).Return(tt.product, tt.err).Once()
			}

			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/products/"+tt.pid, nil), map[string]string{"pid": tt.pid})
			h := NewProduct(svc, testutil.MakeNoopLogger(), false)
			rec := httptest.NewRecorder()
			h.Get(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantStatus == http.StatusNotFound {
				assert.Equal(t, "Not found", strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}
