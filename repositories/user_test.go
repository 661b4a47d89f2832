package repositories

import (
	"testing"

	"campus-board/domain"
	apperrors "campus-board/errors"

	"github.com/stretchr/testify/require"
)

func newAccount(username, faculty, group string) domain.User {
	return domain.User{
		Username:     username,
		PasswordHash: "$argon2id$fake",
		FullName:     "Test User",
		Faculty:      faculty,
		StudyYear:    2,
		GroupName:    group,
	}
}

func Test_First_User_Of_Group_Becomes_Admin(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	// Given an empty group, the first registration gets the admin role
	first, err := repo.CreateUser(newAccount("alice42", "IM", "621"))
	req.NoError(err)
	req.True(first.IsGroupAdmin)
	req.Contains(first.Roles, "group_admin")
	req.NotEmpty(first.ID)

	// When a second member registers in the same group
	second, err := repo.CreateUser(newAccount("bob7", "IM", "621"))
	req.NoError(err)

	// Then they stay a plain student
	req.False(second.IsGroupAdmin)
	req.NotContains(second.Roles, "group_admin")
	req.Contains(second.Roles, "student")
}

func Test_Same_Group_Name_In_Another_Faculty_Is_A_Distinct_Group(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.CreateUser(newAccount("alice42", "IM", "621"))
	req.NoError(err)

	other, err := repo.CreateUser(newAccount("carol9", "CS", "621"))
	req.NoError(err)
	req.True(other.IsGroupAdmin)
}

func Test_Duplicate_Username_Is_Rejected(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.CreateUser(newAccount("alice42", "IM", "621"))
	req.NoError(err)

	_, err = repo.CreateUser(newAccount("alice42", "CS", "100"))
	req.ErrorIs(err, apperrors.ErrUserAlreadyExists)
}

func Test_GetUserByUsername_Roundtrip(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	created, err := repo.CreateUser(newAccount("alice42", "IM", "621"))
	req.NoError(err)

	loaded, err := repo.GetUserByUsername("alice42")
	req.NoError(err)
	req.Equal(created, loaded)

	_, err = repo.GetUserByUsername("ghost")
	req.ErrorIs(err, apperrors.ErrNotFound)
}
