package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/Narendra3579/ssvteachersapp/core"
)

// StoreKeyLoggedIn persists the session across restarts so a relaunched
// instance remembers it. It is not a security boundary.
const StoreKeyLoggedIn = "teacher_isLoggedIn"

var ErrInvalidCredentials = errors.New("invalid username or password")

type (
	// CredentialVerifier checks a login attempt. Injectable so the demo
	// credential check can be swapped without touching the data-sync core.
	CredentialVerifier interface {
		Verify(username, password string) error
	}

	// Service tracks the login state of this instance, mirrored from the
	// shared store.
	Service struct {
		acc      *core.Accessor
		verifier CredentialVerifier
		onChange func(loggedIn bool) // view refresh hook; may be nil

		mu       sync.RWMutex
		loggedIn bool
	}
)

type staticVerifier struct {
	username     string
	passwordHash []byte
}

// NewStaticVerifier verifies against a single configured username/password
// pair. The password is hashed once up front and discarded.
func NewStaticVerifier(username, password string) (CredentialVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &staticVerifier{username: username, passwordHash: hash}, nil
}

func (v *staticVerifier) Verify(username, password string) error {
	if username != v.username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// NewService restores the persisted login state. onChange is called whenever
// the state changes externally (another instance logged in/out or cleared
// the store); it may be nil.
func NewService(acc *core.Accessor, verifier CredentialVerifier, onChange func(bool)) *Service {
	svc := &Service{acc: acc, verifier: verifier, onChange: onChange}
	svc.loggedIn = core.ReadKey(acc, StoreKeyLoggedIn, false)
	return svc
}

func (svc *Service) IsLoggedIn() bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.loggedIn
}

// Login verifies the credentials and persists the resulting state. A failed
// attempt persists false, matching the app's logout-on-bad-login behavior.
func (svc *Service) Login(username, password string) error {
	username = core.CleanString(username)
	password = core.CleanString(password)

	if err := svc.verifier.Verify(username, password); err != nil {
		svc.set(false)
		_ = svc.acc.Write(StoreKeyLoggedIn, false)
		return err
	}
	svc.set(true)
	return svc.acc.Write(StoreKeyLoggedIn, true)
}

func (svc *Service) Logout() error {
	svc.set(false)
	return svc.acc.Write(StoreKeyLoggedIn, false)
}

// HandleChange reacts to external changes of the login key. Unlike the data
// mirrors, this fires regardless of the active state.
func (svc *Service) HandleChange(evt core.Event) {
	if evt.Key != StoreKeyLoggedIn {
		return
	}
	loggedIn := core.ReadKey(svc.acc, StoreKeyLoggedIn, false)
	svc.set(loggedIn)
	if svc.onChange != nil {
		svc.onChange(loggedIn)
	}
}

func (svc *Service) set(loggedIn bool) {
	svc.mu.Lock()
	svc.loggedIn = loggedIn
	svc.mu.Unlock()
}
