package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/i18n"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext builds a context that already went through RequestID.
func testContext(body, locale string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if locale != "" {
		c.Request.Header.Set("Accept-Language", locale)
	}
	middleware.RequestID()(c)
	return c, w
}

type plainRequest struct {
	Name string `json:"name"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantFunds int
		wantErr   bool
		wantValid bool
	}{
		{name: "valid request", body: `{"funds": 10, "assets": [{"name": "A", "price": 5, "yield": 1}]}`, wantFunds: 10},
		{name: "malformed JSON", body: `{"funds": invalid}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "funds missing", body: `{"assets": []}`, wantErr: true},
		{name: "negative funds", body: `{"funds": -1}`, wantErr: true, wantValid: true},
		{name: "asset without price", body: `{"funds": 10, "assets": [{"name": "A"}]}`, wantErr: true, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(tt.body, "")

			req, err := bindJSON[dto.OptimizeRequest](c)

			var vErr *dto.ValidationError
			assert.Equal(t, tt.wantValid, errors.As(err, &vErr))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, req.Funds)
			assert.Equal(t, tt.wantFunds, *req.Funds)
		})
	}
}

func TestBindJSON_WithoutValidator(t *testing.T) {
	c, _ := testContext(`{"name": ""}`, "")

	req, err := bindJSON[plainRequest](c)

	require.NoError(t, err)
	assert.Empty(t, req.Name)
}

func TestReply_OK(t *testing.T) {
	sel := model.NewSelection(model.AlgorithmDynamic, 300, []model.Asset{model.NewAsset("A", 100, 5)}, 5)

	tests := []struct {
		name        string
		status      int
		messageKey  string
		locale      string
		wantMessage string
	}{
		{name: "with message", status: http.StatusOK, messageKey: i18n.SuccessKeyOptimized, wantMessage: i18n.GetTranslator().Translate(i18n.SuccessKeyOptimized, "en")},
		{name: "localized message", status: http.StatusOK, messageKey: i18n.SuccessKeyCompared, locale: "nl", wantMessage: i18n.GetTranslator().Translate(i18n.SuccessKeyCompared, "nl")},
		{name: "no message", status: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("", tt.locale)

			replyTo(c).ok(tt.status, tt.messageKey, sel)

			assert.Equal(t, tt.status, w.Code)
			var resp struct {
				Data      model.Selection `json:"data"`
				Message   string          `json:"message"`
				RequestID string          `json:"request_id"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, middleware.GetRequestID(c), resp.RequestID)
			assert.Equal(t, 300, resp.Data.Funds)
		})
	}
}

func TestReply_Fail(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		key      string
		err      error
		details  map[string]string
		wantCode string
	}{
		{name: "bad request", status: http.StatusBadRequest, key: i18n.ErrKeyInvalidRequestBody, err: errors.New("invalid"), wantCode: dto.ErrCodeInvalidRequest},
		{name: "unprocessable without cause", status: http.StatusUnprocessableEntity, key: i18n.ErrKeyTooManyAssets, wantCode: dto.ErrCodeUnprocessable},
		{name: "timeout", status: http.StatusGatewayTimeout, key: i18n.ErrKeyTimeout, err: errors.New("deadline"), wantCode: dto.ErrCodeTimeout},
		{
			name:     "field details",
			status:   http.StatusBadRequest,
			key:      i18n.ErrKeyValidationFunds,
			err:      dto.ErrInvalidFunds,
			details:  map[string]string{"funds": "must not be negative"},
			wantCode: dto.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("", "pt")

			replyTo(c).fail(tt.status, tt.key, tt.err, tt.details)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, i18n.GetTranslator().Translate(tt.key, "pt"), resp.Message)
			assert.Equal(t, tt.details, resp.Details)
			assert.NotEmpty(t, resp.RequestID)
			assert.True(t, c.IsAborted())
			if tt.err != nil {
				assert.Len(t, c.Errors, 1)
			} else {
				assert.Empty(t, c.Errors)
			}
		})
	}
}
