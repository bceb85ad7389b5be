package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/user-service/internal/interface/http"
)

// UserModule mounts the users API:
//
//	GET    /users               list (pageNumber, pageSize)
//	GET    /users/search        full-text search (q, size)
//	POST   /users/search        lookup by email
//	GET    /users/:id
//	POST   /users               create
//	PUT    /users/:id           full update
//	DELETE /users/deactivate/:id
//	DELETE /users/:id
//
// Limiter guards every route; Guard only the writes. WriteLimiter runs after
// Guard, so it sees the token subject Guard stores.
type UserModule struct {
	Handler      *handlers.UserHandler
	Limiter      gin.HandlerFunc
	Guard        gin.HandlerFunc
	WriteLimiter gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, limiter, guard, writeLimiter gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Limiter: limiter, Guard: guard, WriteLimiter: writeLimiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	if m.Limiter != nil {
		users.Use(m.Limiter)
	}

	users.GET("", m.Handler.List)
	users.GET("/search", m.Handler.Search)
	users.POST("/search", m.Handler.GetByEmail)
	users.GET("/:id", m.Handler.GetByID)

	writes := users.Group("")
	if m.Guard != nil {
		writes.Use(m.Guard)
	}
	if m.WriteLimiter != nil {
		writes.Use(m.WriteLimiter)
	}
	writes.POST("", m.Handler.Create)
	writes.PUT("/:id", m.Handler.Update)
	writes.DELETE("/deactivate/:id", m.Handler.Deactivate)
	writes.DELETE("/:id", m.Handler.Delete)
}
