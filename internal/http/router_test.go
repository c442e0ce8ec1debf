package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pay2post/pay2post/internal/models"
	mock_models "github.com/pay2post/pay2post/internal/models/mocks"
	"github.com/pay2post/pay2post/internal/services"
	"github.com/pay2post/pay2post/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authHeaders(t *testing.T, jwtService models.JWTService) map[string]string {
	token, err := jwtService.GenerateJWT("42", "alice")
	require.NoError(t, err)

	return map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	}
}

func TestBeginSubmissionRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionServiceMock := mock_models.NewMockSessionService(ctrl)
	orderServiceMock := mock_models.NewMockOrderService(ctrl)
	jwtService := services.NewJWTService("test-secret")

	testServer := httptest.NewServer(
		New(Config{}, sessionServiceMock, orderServiceMock, jwtService).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName        string
		headers         map[string]string
		body            func() io.Reader
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName:        "Should reject a request without a token",
			headers:         map[string]string{"Content-Type": "application/json"},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: "Authorization header is required\n",
		},
		{
			testName: "Should reject an invalid token",
			headers: map[string]string{
				"Authorization": "Bearer not-a-token",
				"Content-Type":  "application/json",
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			testName: "Should reject a non-JSON body",
			headers: func() map[string]string {
				headers := authHeaders(t, jwtService)
				headers["Content-Type"] = "text/plain"
				return headers
			}(),
			expectedCode:    http.StatusUnsupportedMediaType,
			expectedMessage: "Content-Type is not application/json\n",
		},
		{
			testName: "Should reject an unsupported content kind",
			headers:  authHeaders(t, jwtService),
			test: func(t *testing.T) {
				sessionServiceMock.EXPECT().
					Begin(models.Submitter{ID: "42", Username: "alice"}, models.Submission{Kind: "sticker"}).
					Return(decimal.Zero, services.ErrUnsupportedContent)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(models.Submission{Kind: "sticker"})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusUnprocessableEntity,
			expectedMessage: "Unsupported message type\n",
		},
		{
			testName: "Should quote a price for a text submission",
			headers:  authHeaders(t, jwtService),
			test: func(t *testing.T) {
				sessionServiceMock.EXPECT().
					Begin(models.Submitter{ID: "42", Username: "alice"}, models.Submission{Kind: models.ContentKindText, Text: "hello world"}).
					Return(decimal.NewFromFloat(1.10), nil)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(models.Submission{Kind: models.ContentKindText, Text: "hello world"})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: `{"price_usd":"1.10"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			var body io.Reader

			if tc.body != nil {
				body = tc.body()
			}

			if tc.test != nil {
				tc.test(t)
			}

			resp, respBody := utils.TestRequest(t, testServer, "POST", "/api/submissions", tc.headers, body)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedCode, resp.StatusCode)

			if tc.expectedMessage != "" {
				assert.Equal(t, tc.expectedMessage, respBody)
			}
		})
	}
}

func TestConfirmSubmissionRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionServiceMock := mock_models.NewMockSessionService(ctrl)
	orderServiceMock := mock_models.NewMockOrderService(ctrl)
	jwtService := services.NewJWTService("test-secret")

	testServer := httptest.NewServer(
		New(Config{}, sessionServiceMock, orderServiceMock, jwtService).get(),
	)
	defer testServer.Close()

	pending := models.PendingPost{
		SubmitterID: "42",
		DisplayName: "alice",
		Kind:        models.ContentKindText,
		Content:     "hello world",
		PriceUSD:    decimal.NewFromFloat(1.10),
		Anon:        true,
	}

	testCases := []struct {
		testName        string
		body            func() io.Reader
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName: "Should reject a reply that isn't yes or no",
			body: func() io.Reader {
				data, _ := json.Marshal(models.Confirmation{Reply: "maybe"})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusUnprocessableEntity,
			expectedMessage: "Reply with YES or NO\n",
		},
		{
			testName: "Should ask the submitter to resend when no session exists",
			test: func(t *testing.T) {
				sessionServiceMock.EXPECT().
					Confirm("42", true).
					Return(nil, services.ErrNoPendingSession)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(models.Confirmation{Reply: "YES"})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "Please send your message again\n",
		},
		{
			testName: "Should report a payment link failure",
			test: func(t *testing.T) {
				sessionServiceMock.EXPECT().
					Confirm("42", false).
					Return(&pending, nil)
				orderServiceMock.EXPECT().
					PlaceOrder(gomock.Any(), pending).
					Return("", assert.AnError)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(models.Confirmation{Reply: "no"})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusBadGateway,
			expectedMessage: "Error generating payment link\n",
		},
		{
			testName: "Should create the order and return the payment link",
			test: func(t *testing.T) {
				sessionServiceMock.EXPECT().
					Confirm("42", true).
					Return(&pending, nil)
				orderServiceMock.EXPECT().
					PlaceOrder(gomock.Any(), pending).
					Return("https://pay.example/inv/inv-1", nil)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(models.Confirmation{Reply: " Yes "})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: `{"invoice_url":"https://pay.example/inv/inv-1"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			var body io.Reader

			if tc.body != nil {
				body = tc.body()
			}

			if tc.test != nil {
				tc.test(t)
			}

			resp, respBody := utils.TestRequest(t, testServer, "POST", "/api/submissions/confirm", authHeaders(t, jwtService), body)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedCode, resp.StatusCode)

			if tc.expectedMessage != "" {
				assert.Equal(t, tc.expectedMessage, respBody)
			}
		})
	}
}

func TestGetOrdersRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionServiceMock := mock_models.NewMockSessionService(ctrl)
	orderServiceMock := mock_models.NewMockOrderService(ctrl)
	jwtService := services.NewJWTService("test-secret")

	testServer := httptest.NewServer(
		New(Config{}, sessionServiceMock, orderServiceMock, jwtService).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName     string
		test         func(t *testing.T)
		expectedCode int
		check        func(t *testing.T, body string)
	}{
		{
			testName: "Should return no content when the submitter has no orders",
			test: func(t *testing.T) {
				orderServiceMock.EXPECT().
					GetOrders(gomock.Any(), "42").
					Return([]models.Order{}, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			testName: "Should return the submitter's orders",
			test: func(t *testing.T) {
				orderServiceMock.EXPECT().
					GetOrders(gomock.Any(), "42").
					Return([]models.Order{
						{
							Kind:      models.ContentKindText,
							PriceUSD:  decimal.NewFromFloat(1.10),
							Anon:      true,
							InvoiceID: "inv-1",
							Status:    models.StatusWaiting,
						},
					}, nil)
			},
			expectedCode: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"invoice_id":"inv-1"`)
				assert.Contains(t, body, `"status":"waiting"`)
			},
		},
		{
			testName: "Should report a storage failure",
			test: func(t *testing.T) {
				orderServiceMock.EXPECT().
					GetOrders(gomock.Any(), "42").
					Return([]models.Order{}, assert.AnError)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			resp, respBody := utils.TestRequest(t, testServer, "GET", "/api/orders", authHeaders(t, jwtService), nil)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedCode, resp.StatusCode)

			if tc.check != nil {
				tc.check(t, respBody)
			}
		})
	}
}
