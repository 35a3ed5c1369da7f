package auth_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/tuanngo/material-management/internal/auth"
)

// Mock user repository for testing
type mockUserRepository struct {
	users       map[string]*auth.User
	passwords   map[string]string
	createError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:     make(map[string]*auth.User),
		passwords: make(map[string]string),
		nextID:    1,
	}
}

func (m *mockUserRepository) addUser(username, password string, role auth.Role) *auth.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	Expect(err).ToNot(HaveOccurred())

	u := &auth.User{
		ID:       m.nextID,
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Role:     role,
	}
	m.nextID++
	m.users[username] = u
	m.passwords[username] = string(hash)
	return u
}

func (m *mockUserRepository) GetByUsername(username string) (*auth.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockUserRepository) GetPasswordForUsername(username string) (string, error) {
	hash, ok := m.passwords[username]
	if !ok {
		return "", errors.New("user not found")
	}
	return hash, nil
}

func (m *mockUserRepository) UsernameOrEmailExists(username, email string) (bool, error) {
	if _, ok := m.users[username]; ok {
		return true, nil
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) Create(u *auth.User, passwordHash string) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.Username] = u
	m.passwords[u.Username] = passwordHash
	return u.ID, nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockUserRepository
		tokenGen *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = auth.NewJWTTokenGenerator("test-secret-at-least-32-characters!!", 30*time.Minute)
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			mockRepo.addUser("giangvien", "secret123", auth.RoleSuperuser)
		})

		It("returns a token resolvable back to the same user", func() {
			token, expiresAt, err := service.Authenticate(auth.LoginDTO{
				Username: "giangvien",
				Password: "secret123",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(token).ToNot(BeEmpty())
			Expect(expiresAt).To(BeTemporally(">", time.Now()))

			user, err := service.CurrentUser(token)
			Expect(err).ToNot(HaveOccurred())
			Expect(user.Username).To(Equal("giangvien"))
			Expect(user.Role).To(Equal(auth.RoleSuperuser))
		})

		It("rejects a wrong password", func() {
			_, _, err := service.Authenticate(auth.LoginDTO{
				Username: "giangvien",
				Password: "wrong",
			})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown username with the same error", func() {
			_, _, err := service.Authenticate(auth.LoginDTO{
				Username: "nobody",
				Password: "secret123",
			})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})
	})

	Describe("CurrentUser", func() {
		It("rejects garbage tokens", func() {
			_, err := service.CurrentUser("not-a-jwt")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("rejects tokens signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator("another-secret-also-32-characters!!!", 30*time.Minute)
			token, _, err := otherGen.GenerateAccessToken("giangvien", auth.RoleUser)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CurrentUser(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("rejects expired tokens", func() {
			shortGen := auth.NewJWTTokenGenerator("test-secret-at-least-32-characters!!", time.Nanosecond)
			token, _, err := shortGen.GenerateAccessToken("giangvien", auth.RoleUser)
			Expect(err).ToNot(HaveOccurred())

			time.Sleep(10 * time.Millisecond)
			_, err = service.CurrentUser(token)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})

		It("fails closed when the token subject no longer exists", func() {
			token, _, err := tokenGen.GenerateAccessToken("deleted-user", auth.RoleAdmin)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CurrentUser(token)
			Expect(err).To(MatchError(auth.ErrUnknownUser))
		})
	})

	Describe("Register", func() {
		It("creates an account with the plain user role regardless of input", func() {
			err := service.Register(auth.RegisterDTO{
				Username: "sinhvien",
				Email:    "sinhvien@example.com",
				FullName: "Sinh Viên",
				Password: "password123",
			})
			Expect(err).ToNot(HaveOccurred())

			created, err := mockRepo.GetByUsername("sinhvien")
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Role).To(Equal(auth.RoleUser))
		})

		It("rejects a duplicate username", func() {
			mockRepo.addUser("sinhvien", "whatever1", auth.RoleUser)

			err := service.Register(auth.RegisterDTO{
				Username: "sinhvien",
				Email:    "other@example.com",
				FullName: "Someone Else",
				Password: "password123",
			})
			Expect(err).To(MatchError(auth.ErrDuplicateUser))
		})

		It("rejects a duplicate email", func() {
			mockRepo.addUser("sinhvien", "whatever1", auth.RoleUser)

			err := service.Register(auth.RegisterDTO{
				Username: "khac",
				Email:    "sinhvien@example.com",
				FullName: "Someone Else",
				Password: "password123",
			})
			Expect(err).To(MatchError(auth.ErrDuplicateUser))
		})
	})
})
