package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dishes-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDishHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		mockReturn     []model.DishView
		mockError      error
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "Successful retrieval",
			mockReturn: []model.DishView{
				{ID: primitive.NewObjectID(), Name: "Uthappizza", Comments: []model.CommentView{}},
				{ID: primitive.NewObjectID(), Name: "Zucchipakoda", Comments: []model.CommentView{}},
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Empty collection",
			mockReturn:     []model.DishView{},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Store error",
			mockError:      errors.New("failed to list dishes: timeout"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDishService)
			if tt.mockError != nil {
				svc.On("List", mock.Anything).Return(nil, tt.mockError)
			} else {
				svc.On("List", mock.Anything).Return(tt.mockReturn, nil)
			}

			handler := NewDishHandler(svc, logger)

			req := httptest.NewRequest(http.MethodGet, "/dishes", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.expectedStatus == http.StatusOK {
				var dishes []model.DishView
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dishes))
				assert.Len(t, dishes, tt.expectedCount)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestDishHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	admin := model.Identity{UserID: primitive.NewObjectID(), Username: "admin", Admin: true}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockDishService)
		expectedStatus int
	}{
		{
			name: "Valid dish",
			body: `{"name":"Uthappizza","description":"d","image":"i.png","category":"mains","price":4.99}`,
			setupMock: func(m *MockDishService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(req model.DishRequest) bool {
					return req.Name == "Uthappizza" && req.Price != nil && *req.Price == 4.99
				})).Return(&model.Dish{ID: primitive.NewObjectID(), Name: "Uthappizza"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Malformed JSON",
			body:           `{"name":`,
			setupMock:      func(m *MockDishService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Validation failure",
			body: `{"name":"x"}`,
			setupMock: func(m *MockDishService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, model.NewDomainError(model.ErrCodeValidation, "description is required", http.StatusBadRequest))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDishService)
			tt.setupMock(svc)

			handler := NewDishHandler(svc, logger)

			req := httptest.NewRequest(http.MethodPost, "/dishes", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Create(w, req, admin)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestDishHandler_Get(t *testing.T) {
	logger := zerolog.Nop()
	id := primitive.NewObjectID()

	tests := []struct {
		name           string
		dishID         string
		mockReturn     *model.DishView
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Existing dish",
			dishID:         id.Hex(),
			mockReturn:     &model.DishView{ID: id, Name: "Uthappizza", Comments: []model.CommentView{}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Uthappizza"`,
		},
		{
			name:           "Missing dish",
			dishID:         id.Hex(),
			mockError:      model.ErrDishNotFound(id.Hex()),
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Dish " + id.Hex() + " not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDishService)
			if tt.mockError != nil {
				svc.On("Get", mock.Anything, tt.dishID).Return(nil, tt.mockError)
			} else {
				svc.On("Get", mock.Anything, tt.dishID).Return(tt.mockReturn, nil)
			}

			handler := NewDishHandler(svc, logger)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/dishes/"+tt.dishID, nil), "dishId", tt.dishID)
			w := httptest.NewRecorder()

			handler.Get(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestDishHandler_Update(t *testing.T) {
	svc := new(MockDishService)
	id := primitive.NewObjectID()

	svc.On("Update", mock.Anything, id.Hex(), mock.MatchedBy(func(p model.DishPatch) bool {
		return p.Featured != nil && *p.Featured && p.Name == nil
	})).Return(&model.Dish{ID: id, Name: "Uthappizza", Featured: true}, nil)

	handler := NewDishHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/dishes/"+id.Hex(), strings.NewReader(`{"featured":true}`))
	req = withURLParams(req, "dishId", id.Hex())
	w := httptest.NewRecorder()

	handler.Update(w, req, model.Identity{Admin: true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"featured":true`)
	svc.AssertExpectations(t)
}

func TestDishHandler_Delete(t *testing.T) {
	svc := new(MockDishService)
	id := primitive.NewObjectID()
	svc.On("Delete", mock.Anything, id.Hex()).Return(nil, model.ErrDishNotFound(id.Hex()))

	handler := NewDishHandler(svc, zerolog.Nop())

	req := withURLParams(httptest.NewRequest(http.MethodDelete, "/dishes/"+id.Hex(), nil), "dishId", id.Hex())
	w := httptest.NewRecorder()

	handler.Delete(w, req, model.Identity{Admin: true})

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestDishHandler_DeleteAll(t *testing.T) {
	svc := new(MockDishService)
	svc.On("DeleteAll", mock.Anything).Return(&model.DeleteResult{Acknowledged: true, DeletedCount: 4}, nil)

	handler := NewDishHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/dishes", nil)
	w := httptest.NewRecorder()

	handler.DeleteAll(w, req, model.Identity{Admin: true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":4}`, w.Body.String())
	svc.AssertExpectations(t)
}
