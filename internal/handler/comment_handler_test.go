package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/middleware"
	"github.com/noah-isme/childcare-api/internal/models"
)

type fakeCommentSrv struct {
	created *models.CreatedComment
	detail  *models.CommentDetail
	err     error
}

func (f *fakeCommentSrv) Create(context.Context, models.Identity, int, dto.CreateCommentRequest) (*models.CreatedComment, error) {
	return f.created, f.err
}

func (f *fakeCommentSrv) Get(context.Context, models.Identity, int, int) (*models.CommentDetail, error) {
	return f.detail, f.err
}

func (f *fakeCommentSrv) Update(context.Context, models.Identity, int, int, dto.UpdateCommentRequest) (*models.CommentDetail, error) {
	return f.detail, f.err
}

func (f *fakeCommentSrv) Delete(context.Context, models.Identity, int, int) (string, error) {
	return "Comment deleted", f.err
}

func commentTestContext(t *testing.T, rec *httptest.ResponseRecorder) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "1"}, {Key: "commentID", Value: "5"}}
	c.Set(middleware.ContextIdentityKey, &models.Identity{UserID: 2, Role: models.RoleTeacher})
	return c
}

func TestCommentHandlerUpdateReturnsBareDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCommentHandler(&fakeCommentSrv{
		detail: &models.CommentDetail{Message: "Changed", Urgency: "neutral", CommentEdited: true},
	})

	rec := httptest.NewRecorder()
	c := commentTestContext(t, rec)
	message := "Changed"
	postJSON(c, "/children/1/comments/5", dto.UpdateCommentRequest{Message: &message})
	c.Request.Method = http.MethodPatch

	handler.Update(c)

	require.Equal(t, http.StatusOK, rec.Code)
	// The comment edit echoes the full detail at the top level, not under a
	// wrapper key.
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Changed", body["message"])
	assert.Equal(t, true, body["comment_edited"])
	assert.NotContains(t, body, "Success")
}

func TestCommentHandlerCreateWrapsSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCommentHandler(&fakeCommentSrv{
		created: &models.CreatedComment{Message: "Slept well", Urgency: "neutral"},
	})

	rec := httptest.NewRecorder()
	c := commentTestContext(t, rec)
	postJSON(c, "/children/1/comments", dto.CreateCommentRequest{Message: "Slept well", Urgency: "neutral"})

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]models.CreatedComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Slept well", body["Success"].Message)
}

func TestCommentHandlerDeleteWrapsMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCommentHandler(&fakeCommentSrv{})

	rec := httptest.NewRecorder()
	c := commentTestContext(t, rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/children/1/comments/5", nil)

	handler.Delete(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Comment deleted", body["Success"])
}
