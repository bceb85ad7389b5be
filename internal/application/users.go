package application

import (
	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/validation"
)

// Users groups one handler per operation. The HTTP layer calls them directly.
type Users struct {
	Create     *CreateUserHandler
	GetByID    *GetUserByIDHandler
	GetByEmail *GetUserByEmailHandler
	List       *ListUsersHandler
	Update     *UpdateUserHandler
	Deactivate *DeactivateUserHandler
	Delete     *DeleteUserHandler
	Search     *SearchUsersHandler
}

func NewUsers(repo repository.UserRepository, hasher PasswordHasher, hooks *Hooks) *Users {
	if hooks == nil {
		hooks = &Hooks{}
	}
	v := validation.New()
	return &Users{
		Create:     NewCreateUserHandler(repo, NewCreateUserValidator(v, repo), hasher, hooks),
		GetByID:    NewGetUserByIDHandler(repo),
		GetByEmail: NewGetUserByEmailHandler(repo, NewStructValidator[GetUserByEmailRequest](v)),
		List:       NewListUsersHandler(repo, NewStructValidator[ListUsersRequest](v), hooks.Cache, hooks.Logger),
		Update:     NewUpdateUserHandler(repo, NewStructValidator[UpdateUserRequest](v), hasher, hooks),
		Deactivate: NewDeactivateUserHandler(repo, hooks),
		Delete:     NewDeleteUserHandler(repo, hooks),
		Search:     NewSearchUsersHandler(hooks.Index, NewStructValidator[SearchUsersRequest](v)),
	}
}
