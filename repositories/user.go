//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campus-board/domain"
	apperrors "campus-board/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(user domain.User) (domain.User, error)
	GetUserByUsername(username string) (domain.User, error)
}

// UserRepository stores accounts in BadgerDB under "user:{username}".
// A secondary "grp:{faculty}:{group}:{username}" key marks group membership
// so the first-member-is-admin rule can be checked with a prefix scan.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

type diskUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"full_name"`
	Faculty      string    `json:"faculty"`
	StudyYear    int       `json:"study_year"`
	Series       string    `json:"series"`
	GroupName    string    `json:"group_name"`
	IsGroupAdmin bool      `json:"is_group_admin"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUser persists a new account. The first registered member of a
// (faculty, group) pair becomes that group's admin.
func (u *UserRepository) CreateUser(user domain.User) (domain.User, error) {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.Roles = []string{"student"}

	err := u.db.Update(func(txn *badger.Txn) error {
		key := []byte("user:" + user.Username)
		if _, err := txn.Get(key); err == nil {
			return apperrors.ErrUserAlreadyExists
		}

		first, err := groupIsEmpty(txn, user.Faculty, user.GroupName)
		if err != nil {
			return err
		}
		user.IsGroupAdmin = first
		if first {
			user.Roles = append(user.Roles, "group_admin")
		}

		data, err := json.Marshal(fromUser(user))
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(groupMemberKey(user), nil)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// GetUserByUsername retrieves one account record.
func (u *UserRepository) GetUserByUsername(username string) (domain.User, error) {
	var record diskUser
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("user:" + username))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		// Collapsed to a generic error upstream to prevent user enumeration.
		return domain.User{}, apperrors.ErrNotFound
	}
	return toUser(record), nil
}

func groupIsEmpty(txn *badger.Txn, faculty, group string) (bool, error) {
	prefix := []byte(fmt.Sprintf("grp:%s:%s:", strings.ToLower(faculty), strings.ToLower(group)))
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	it := txn.NewIterator(options)
	defer it.Close()
	it.Seek(prefix)
	return !it.ValidForPrefix(prefix), nil
}

func groupMemberKey(user domain.User) []byte {
	return []byte(fmt.Sprintf("grp:%s:%s:%s",
		strings.ToLower(user.Faculty), strings.ToLower(user.GroupName), user.Username))
}

func fromUser(user domain.User) diskUser {
	return diskUser(user)
}

func toUser(record diskUser) domain.User {
	return domain.User(record)
}
