package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Local-mode credential errors use the exact copy the UI shows.
var (
	ErrNoAccount        = errors.New("no account found with this email")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Auth manages the session: login, signup, logout and the current user.
// In backend mode it drives the JWT pair through the gateway; in local mode
// it verifies bcrypt hashes against the embedded store. Either way the
// session is persisted in the local store's meta bucket so it survives
// restarts.
type Auth struct {
	cfg    Config
	gw     *Gateway
	tokens TokenStore
	local  *LocalStore
	log    zerolog.Logger

	mu   sync.RWMutex
	user Record
}

func NewAuth(cfg Config, gw *Gateway, tokens TokenStore, local *LocalStore, log zerolog.Logger) *Auth {
	return &Auth{
		cfg:    cfg.withDefaults(),
		gw:     gw,
		tokens: tokens,
		local:  local,
		log:    log,
	}
}

// SignupInput carries registration fields. Builder-specific fields are
// ignored for customer signups.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`

	CompanyName     string   `json:"companyName,omitempty"`
	LicenseNumber   string   `json:"licenseNumber,omitempty"`
	YearsExperience int      `json:"yearsOfExperience,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	ServiceAreas    []string `json:"serviceAreas,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Website         string   `json:"website,omitempty"`
}

// Login authenticates with email and password.
func (a *Auth) Login(ctx context.Context, email, password string) (Record, error) {
	if a.cfg.ShouldUseBackend() {
		return a.remoteLogin(ctx, email, password)
	}
	return a.localLogin(ctx, email, password)
}

// SignupCustomer registers a customer account and logs it in.
func (a *Auth) SignupCustomer(ctx context.Context, input SignupInput) (Record, error) {
	return a.signup(ctx, "customer", input)
}

// SignupBuilder registers a builder account and logs it in.
func (a *Auth) SignupBuilder(ctx context.Context, input SignupInput) (Record, error) {
	return a.signup(ctx, "builder", input)
}

// Logout clears the session. In backend mode it also revokes the refresh
// token server-side; a failure there is logged and ignored, the local
// session is gone either way.
func (a *Auth) Logout(ctx context.Context) {
	if a.cfg.ShouldUseBackend() && a.tokens.AccessToken() != "" {
		if _, err := a.gw.Request(ctx, http.MethodPost, "/auth/logout", nil); err != nil {
			a.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}
	a.tokens.Clear()
	a.setUser(nil)
	if a.local != nil {
		_ = a.local.DeleteMeta(MetaCurrentUser)
	}
}

// CurrentUser returns the logged-in user, or nil.
func (a *Auth) CurrentUser() Record {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Role returns the logged-in user's role, or "".
func (a *Auth) Role() string {
	user := a.CurrentUser()
	if user == nil {
		return ""
	}
	role, _ := user["role"].(string)
	return role
}

// IsLoggedIn reports whether a session is active.
func (a *Auth) IsLoggedIn() bool {
	return a.CurrentUser() != nil
}

// Restore revives a persisted session. In backend mode the stored tokens are
// revalidated against /auth/me; a rejection clears the stale session rather
// than failing.
func (a *Auth) Restore(ctx context.Context) error {
	if a.local == nil {
		return nil
	}
	saved, err := a.local.GetMeta(MetaCurrentUser)
	if err != nil {
		return nil
	}

	if !a.cfg.ShouldUseBackend() {
		a.setUser(saved.normalizeID())
		return nil
	}

	access, _ := saved["accessToken"].(string)
	refresh, _ := saved["refreshToken"].(string)
	a.tokens.SetPair(access, refresh)

	data, err := a.gw.Request(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		a.tokens.Clear()
		_ = a.local.DeleteMeta(MetaCurrentUser)
		a.log.Info().Err(err).Msg("persisted session rejected")
		return nil
	}

	var reply struct {
		User Record `json:"user"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return err
	}
	a.setUser(reply.User.normalizeID())
	return nil
}

// UpdateProfile applies partial profile changes to the logged-in user.
func (a *Auth) UpdateProfile(ctx context.Context, changes Record) (Record, error) {
	current := a.CurrentUser()
	if current == nil {
		return nil, ErrNotAuthenticated
	}

	if a.cfg.ShouldUseBackend() {
		data, err := a.gw.Request(ctx, http.MethodPut, "/users/profile", changes)
		if err != nil {
			return nil, err
		}
		user, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		a.setUser(user)
		a.persistSession(user)
		return user, nil
	}

	user, err := a.local.Update(ctx, "users", current.ID(), changes)
	if err != nil {
		return nil, err
	}
	delete(user, "passwordHash")
	a.setUser(user)
	a.persistSession(user)
	return user, nil
}

func (a *Auth) remoteLogin(ctx context.Context, email, password string) (Record, error) {
	data, err := a.gw.Request(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return a.adoptAuthReply(data)
}

func (a *Auth) localLogin(ctx context.Context, email, password string) (Record, error) {
	user, err := a.local.GetOneByField(ctx, "users", "email", email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, err
	}

	hash, _ := user["passwordHash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}

	delete(user, "passwordHash")
	a.setUser(user)
	a.persistSession(user)
	return user, nil
}

func (a *Auth) signup(ctx context.Context, role string, input SignupInput) (Record, error) {
	if a.cfg.ShouldUseBackend() {
		payload := map[string]any{
			"email":     input.Email,
			"password":  input.Password,
			"role":      role,
			"firstName": input.FirstName,
			"lastName":  input.LastName,
			"phone":     input.Phone,
		}
		if role == "builder" {
			payload["companyName"] = input.CompanyName
			payload["licenseNumber"] = input.LicenseNumber
			payload["yearsOfExperience"] = input.YearsExperience
			payload["specializations"] = input.Specializations
			payload["serviceAreas"] = input.ServiceAreas
			payload["bio"] = input.Bio
			payload["website"] = input.Website
		}
		data, err := a.gw.Request(ctx, http.MethodPost, "/auth/register", payload)
		if err != nil {
			return nil, err
		}
		return a.adoptAuthReply(data)
	}

	if _, err := a.local.GetOneByField(ctx, "users", "email", input.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := a.local.Insert(ctx, "users", Record{
		"email":        input.Email,
		"passwordHash": string(hash),
		"role":         role,
		"firstName":    input.FirstName,
		"lastName":     input.LastName,
		"phone":        input.Phone,
		"isActive":     true,
	})
	if err != nil {
		return nil, err
	}

	profile := Record{"user": user.ID(), "phone": input.Phone}
	profileTable := "customer_profiles"
	if role == "builder" {
		profileTable = "builder_profiles"
		profile["companyName"] = input.CompanyName
		profile["licenseNumber"] = input.LicenseNumber
		profile["yearsOfExperience"] = input.YearsExperience
		profile["specializations"] = input.Specializations
		profile["serviceAreas"] = input.ServiceAreas
		profile["bio"] = input.Bio
		profile["website"] = input.Website
	}
	if _, err := a.local.Insert(ctx, profileTable, profile); err != nil {
		return nil, err
	}

	delete(user, "passwordHash")
	a.setUser(user)
	a.persistSession(user)
	return user, nil
}

// adoptAuthReply installs the user and token pair from a register/login
// response.
func (a *Auth) adoptAuthReply(data []byte) (Record, error) {
	var reply struct {
		User         Record `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, err
	}

	user := reply.User.normalizeID()
	a.tokens.SetPair(reply.AccessToken, reply.RefreshToken)
	a.setUser(user)

	if a.local != nil {
		session := user.clone()
		session["accessToken"] = reply.AccessToken
		session["refreshToken"] = reply.RefreshToken
		if err := a.local.PutMeta(MetaCurrentUser, session); err != nil {
			a.log.Warn().Err(err).Msg("session persistence failed")
		}
	}
	return user, nil
}

func (a *Auth) setUser(user Record) {
	a.mu.Lock()
	a.user = user
	a.mu.Unlock()
}

func (a *Auth) persistSession(user Record) {
	if a.local == nil {
		return
	}
	if err := a.local.PutMeta(MetaCurrentUser, user.clone()); err != nil {
		a.log.Warn().Err(err).Msg("session persistence failed")
	}
}
