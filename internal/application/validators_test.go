package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-service/internal/application"
	"github.com/oksasatya/user-service/pkg/result"
	"github.com/oksasatya/user-service/pkg/validation"
)

func TestCreateUserValidator(t *testing.T) {
	tests := []struct {
		name     string
		req      application.CreateUserRequest
		exists   bool
		messages []string
	}{
		{name: "valid", req: validCreate("ok@example.com")},
		{name: "email in use", req: validCreate("used@example.com"), exists: true, messages: []string{"Email must be unique."}},
		{
			name: "field rules and uniqueness together",
			req: application.CreateUserRequest{
				FirstName: "A",
				LastName:  "B",
				Email:     "used@example.com",
				Password:  "x",
			},
			exists:   true,
			messages: []string{"Password must be at least 6 characters long.", "Email must be unique."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("ExistsByEmail", mock.Anything, tt.req.Email).Return(tt.exists, nil)

			errs, err := application.NewCreateUserValidator(validation.New(), repo).Validate(context.Background(), tt.req)
			require.NoError(t, err)

			got := make([]string, 0, len(errs))
			for _, e := range errs {
				got = append(got, e.Message)
			}
			if tt.messages == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.messages, got)
		})
	}
}

func TestCreateUserValidator_LookupError(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "ok@example.com").Return(false, errors.New("down"))

	_, err := application.NewCreateUserValidator(validation.New(), repo).Validate(context.Background(), validCreate("ok@example.com"))
	assert.Error(t, err)
}

func TestCreateUserValidator_TooLongFields(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	req := validCreate(strings.Repeat("a", 96) + "@x.io")
	req.FirstName = strings.Repeat("a", 51)
	errs, err := application.NewCreateUserValidator(validation.New(), repo).Validate(context.Background(), req)
	require.NoError(t, err)

	var got []string
	for _, e := range errs {
		assert.Equal(t, result.KindValidation, e.Kind)
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{
		"First name must not exceed 50 characters.",
		"Email must not exceed 100 characters.",
	}, got)
}

func TestCreateUserValidator_ReportsEveryEmailRule(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	req := validCreate(strings.Repeat("x", 120))
	errs, err := application.NewCreateUserValidator(validation.New(), repo).Validate(context.Background(), req)
	require.NoError(t, err)

	got := make([]string, 0, len(errs))
	for _, e := range errs {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"Invalid email format.", "Email must not exceed 100 characters."}, got)
}

func TestValidateID(t *testing.T) {
	assert.Empty(t, application.ValidateID(uuid.New()))
	errs := application.ValidateID(uuid.Nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "Id is required.", errs[0].Message)
}
