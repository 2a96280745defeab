package repository

import "github.com/iliyamo/movie-chat-booking/internal/model"

// GetUser fetches a user by id.
func (s *Store) GetUser(id uint64) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// GetUserByUsername fetches a user by exact username.
func (s *Store) GetUserByUsername(username string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

// CreateUser stores a user under the next user id.  Username uniqueness is
// the caller's concern.
func (s *Store) CreateUser(username, passwordHash string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := model.User{ID: s.nextUserID, Username: username, PasswordHash: passwordHash}
	s.nextUserID++
	s.users[u.ID] = u
	return u
}

// RegisterUser is CreateUser with a uniqueness check done under the same
// lock.  It returns ErrUsernameTaken if the name is in use.
func (s *Store) RegisterUser(username, passwordHash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return model.User{}, ErrUsernameTaken
		}
	}
	u := model.User{ID: s.nextUserID, Username: username, PasswordHash: passwordHash}
	s.nextUserID++
	s.users[u.ID] = u
	return u, nil
}
