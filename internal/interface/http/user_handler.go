package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-service/internal/application"
	"github.com/oksasatya/user-service/pkg/helpers"
	"github.com/oksasatya/user-service/pkg/response"
	"github.com/oksasatya/user-service/pkg/result"
	"github.com/oksasatya/user-service/pkg/validation"
)

// StatusClientClosedRequest is reported when the caller went away or the
// request deadline passed before the store answered.
const StatusClientClosedRequest = 499

type UserHandler struct {
	Users  *application.Users
	Logger *logrus.Logger
}

func NewUserHandler(users *application.Users, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserHandler{Users: users, Logger: logger}
}

func (h *UserHandler) log(c *gin.Context) *logrus.Entry {
	return h.Logger.WithField("request_id", c.GetString("request_id"))
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.log(c).WithField("user_id", id).Info("received get user request")

	res := h.Users.GetByID.Handle(c.Request.Context(), id)
	if res.IsFailed() {
		h.log(c).WithFields(logrus.Fields{"user_id": id, "errors": res.Messages()}).Warn("get user failed")
		h.fail(c, res.Errors())
		return
	}
	h.log(c).WithField("user_id", id).Info("user retrieved")
	c.JSON(http.StatusOK, res.Value())
}

// GetByEmail handles POST /users/search with an {email} body.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	var req application.GetUserByEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	h.log(c).WithField("email", req.Email).Info("received get user by email request")

	res := h.Users.GetByEmail.Handle(c.Request.Context(), req)
	if res.IsFailed() {
		h.log(c).WithFields(logrus.Fields{"email": req.Email, "errors": res.Messages()}).Warn("get user by email failed")
		h.fail(c, res.Errors())
		return
	}
	h.log(c).WithField("email", req.Email).Info("user retrieved by email")
	c.JSON(http.StatusOK, res.Value())
}

// List handles GET /users?pageNumber=&pageSize=.
func (h *UserHandler) List(c *gin.Context) {
	var req application.ListUsersRequest
	var msgs []string
	req.PageNumber, msgs = queryInt(c, "pageNumber", "Page number", msgs)
	req.PageSize, msgs = queryInt(c, "pageSize", "Page size", msgs)
	if len(msgs) > 0 {
		h.fail(c, result.FailValidation[struct{}](msgs).Errors())
		return
	}
	h.log(c).Info("received list users request")

	res := h.Users.List.Handle(c.Request.Context(), req)
	if res.IsFailed() {
		h.log(c).WithField("errors", res.Messages()).Warn("list users failed")
		h.fail(c, res.Errors())
		return
	}
	h.log(c).WithField("count", len(res.Value())).Info("users listed")
	c.JSON(http.StatusOK, res.Value())
}

// Search handles GET /users/search?q=&size=.
func (h *UserHandler) Search(c *gin.Context) {
	req := application.SearchUsersRequest{Query: strings.TrimSpace(c.Query("q"))}
	size, msgs := queryInt(c, "size", "Size", nil)
	if len(msgs) > 0 {
		h.fail(c, result.FailValidation[struct{}](msgs).Errors())
		return
	}
	if size != nil {
		req.Size = *size
	}

	res := h.Users.Search.Handle(c.Request.Context(), req)
	if res.IsFailed() {
		h.log(c).WithField("errors", res.Messages()).Warn("user search failed")
		h.fail(c, res.Errors())
		return
	}
	c.JSON(http.StatusOK, res.Value())
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req application.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	h.log(c).WithField("email", req.Email).Info("received create user request")

	res := h.Users.Create.Handle(c.Request.Context(), req)
	if res.IsFailed() {
		h.log(c).WithField("errors", res.Messages()).Warn("create user failed")
		h.fail(c, res.Errors())
		return
	}
	created := res.Value()
	h.log(c).WithField("user_id", created.ID).Info("user created")
	c.Header("Location", strings.TrimSuffix(c.Request.URL.Path, "/")+"/"+created.ID.String())
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /users/:id. The id in the route and the body must agree.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req application.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	h.log(c).WithField("user_id", id).Info("received update user request")

	if req.ID != id {
		h.log(c).WithFields(logrus.Fields{"route_id": id, "body_id": req.ID}).Warn("update user id mismatch")
		response.Abort(c, http.StatusBadRequest, "validation failed", []string{"Mismatched user ID."})
		return
	}

	res := h.Users.Update.Handle(c.Request.Context(), req)
	if res.IsFailed() {
		h.log(c).WithFields(logrus.Fields{"user_id": id, "errors": res.Messages()}).Warn("update user failed")
		h.fail(c, res.Errors())
		return
	}
	h.log(c).WithField("user_id", id).Info("user updated")
	c.JSON(http.StatusOK, res.Value())
}

// Deactivate handles DELETE /users/deactivate/:id.
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.log(c).WithField("user_id", id).Info("received deactivate user request")

	res := h.Users.Deactivate.Handle(c.Request.Context(), id)
	if res.IsFailed() {
		h.log(c).WithFields(logrus.Fields{"user_id": id, "errors": res.Messages()}).Warn("deactivate user failed")
		h.fail(c, res.Errors())
		return
	}
	h.log(c).WithField("user_id", id).Info("user deactivated")
	c.JSON(http.StatusOK, res.Value())
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.log(c).WithField("user_id", id).Info("received delete user request")

	res := h.Users.Delete.Handle(c.Request.Context(), id)
	if res.IsFailed() {
		h.log(c).WithFields(logrus.Fields{"user_id": id, "errors": res.Messages()}).Warn("delete user failed")
		h.fail(c, res.Errors())
		return
	}
	h.log(c).WithField("user_id", id).Info("user deleted")
	c.Status(http.StatusOK)
}

// fail renders a failed result. Store failures keep their cause out of the
// response and in the log.
func (h *UserHandler) fail(c *gin.Context, errs []result.Error) {
	status := StatusFor(errs)
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Kind == result.KindStore && e.Cause != nil {
			helpers.LogError(h.Logger, "store failure", e.Cause, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"route":      c.FullPath(),
			})
		}
		msgs = append(msgs, e.Message)
	}
	response.Abort(c, status, statusMessage(status), msgs)
}

// StatusFor picks the HTTP status for a failure. The most severe kind wins.
func StatusFor(errs []result.Error) int {
	status := http.StatusBadRequest
	for _, e := range errs {
		switch e.Kind {
		case result.KindStore:
			return http.StatusInternalServerError
		case result.KindCanceled:
			status = StatusClientClosedRequest
		case result.KindNotFound:
			if status == http.StatusBadRequest {
				status = http.StatusNotFound
			}
		}
	}
	return status
}

func statusMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not found"
	case http.StatusInternalServerError:
		return "internal error"
	case StatusClientClosedRequest:
		return "request canceled"
	default:
		return "validation failed"
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "validation failed", []string{"Invalid user ID."})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter, appending a message
// to msgs when it is present but not a number.
func queryInt(c *gin.Context, key, label string, msgs []string) (*int, []string) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, msgs
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, append(msgs, label+" must be an integer.")
	}
	return &v, msgs
}
