package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldservice_quotes/internal/adapter/http/handlers"
	"fieldservice_quotes/internal/adapter/http/handlers/mocks"
	"fieldservice_quotes/internal/infrastructure/metrics"
	"fieldservice_quotes/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIQuoteUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	quotes := mocks.NewMockIQuoteUseCase(ctrl)

	reg := prometheus.NewRegistry()
	router := NewRouter(Handlers{
		Quotes:    handlers.NewQuoteHandler(quotes, nil, nil),
		LineItems: handlers.NewLineItemHandler(mocks.NewMockILineItemUseCase(ctrl), nil),
		Payments:  handlers.NewQuotePaymentHandler(mocks.NewMockIQuotePaymentUseCase(ctrl), false, nil),
	}, Options{Metrics: metrics.NewHTTPMetrics(reg), Gatherer: reg})
	return router, quotes
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestPing(t *testing.T) {
	r, _ := newTestRouter(t)
	w := serve(r, http.MethodGet, "/v1/ping")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestQuoteRoutesAreMounted(t *testing.T) {
	r, quotes := newTestRouter(t)
	quotes.EXPECT().Get(gomock.Any(), "q-1").Return(usecase.QuoteView{}, &usecase.NotFoundError{Resource: "quote", ID: "q-1"})

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/v1/quotes/q-1").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/v1/unknown").Code)
}

func TestMetricsEndpointExposesRequests(t *testing.T) {
	r, _ := newTestRouter(t)
	serve(r, http.MethodGet, "/v1/ping")

	w := serve(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `quotes_http_requests_total{method="GET",route="/v1/ping",status="200"} 1`)
}

func TestRecoveryWritesEnvelope(t *testing.T) {
	r, quotes := newTestRouter(t)
	quotes.EXPECT().Get(gomock.Any(), "boom").DoAndReturn(func(_ context.Context, _ string) (usecase.QuoteView, error) {
		panic("unexpected")
	})

	w := serve(r, http.MethodGet, "/v1/quotes/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
