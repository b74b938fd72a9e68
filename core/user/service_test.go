package user

import (
	"context"
	"strings"
	"testing"

	"github.com/trezcool/darasa/core"
	emailsvc "github.com/trezcool/darasa/services/email"
)

// fakeRepo is a minimal in-memory Repository for service tests.
type fakeRepo struct {
	users map[string]*User
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) CheckUsernameUniqueness(_ context.Context, uname, email string, excl ...User) error {
	excluded := func(usr *User) bool {
		for _, e := range excl {
			if usr.ID == e.ID {
				return true
			}
		}
		return false
	}
	for _, usr := range r.users {
		if excluded(usr) {
			continue
		}
		if uname != "" && usr.Username == uname {
			return ErrUsernameExists
		}
		if email != "" && usr.Email == email {
			return ErrEmailExists
		}
	}
	return nil
}

func (r *fakeRepo) CreateUser(ctx context.Context, usr User) (User, error) {
	if err := r.CheckUsernameUniqueness(ctx, usr.Username, usr.Email); err != nil {
		return User{}, err
	}
	usr.ID = usr.Username
	r.users[usr.ID] = &usr
	return usr, nil
}

func (r *fakeRepo) GetUser(_ context.Context, filter GetFilter) (User, error) {
	for _, usr := range r.users {
		switch {
		case filter.ID != "" && usr.ID == filter.ID:
			return *usr, nil
		case filter.Username != "" && usr.Username == filter.Username:
			return *usr, nil
		case filter.UsernameOrEmail != "" &&
			(usr.Username == filter.UsernameOrEmail || usr.Email == filter.UsernameOrEmail):
			return *usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeRepo) QueryAllUsers(_ context.Context) ([]User, error) {
	all := make([]User, 0, len(r.users))
	for _, usr := range r.users {
		all = append(all, *usr)
	}
	return all, nil
}

func (r *fakeRepo) UpdateUser(_ context.Context, usr User) (User, error) {
	if _, ok := r.users[usr.ID]; !ok {
		return User{}, ErrNotFound
	}
	r.users[usr.ID] = &usr
	return usr, nil
}

func (r *fakeRepo) UpdateOrCreateUser(_ context.Context, usr User) (User, error) {
	if usr.ID == "" {
		usr.ID = usr.Username
	}
	r.users[usr.ID] = &usr
	return usr, nil
}

func (r *fakeRepo) SetUserLanguage(_ context.Context, id, language string) error {
	usr, ok := r.users[id]
	if !ok {
		usr = &User{ID: id}
		r.users[id] = usr
	}
	usr.Language = language
	return nil
}

func (r *fakeRepo) SetLastLogin(_ context.Context, usr User) (User, error) {
	stored, ok := r.users[usr.ID]
	if !ok {
		return User{}, ErrNotFound
	}
	stored.LastLogin = usr.LastLogin
	return *stored, nil
}

func newTestService(mailSvc core.EmailService) *Service {
	conf := &core.Config{
		AppName:         "Darasa",
		DefaultLanguage: LanguageMarathi,
		TestMode:        true,
	}
	return NewService(newFakeRepo(), mailSvc, conf)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	mailSvc := emailsvc.NewDummyService()
	svc := newTestService(mailSvc)

	usr, err := svc.Register(ctx, NewUser{
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@test.cd",
		Password: "pw1",
	})
	if err != nil {
		t.Fatalf("Register() failed, %v", err)
	}

	if usr.Language != LanguageMarathi {
		t.Errorf("Language = %q, want %q", usr.Language, LanguageMarathi)
	}
	if !usr.IsActive {
		t.Error("registered user should be active")
	}
	if usr.CreatedAt.IsZero() || usr.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if err := usr.CheckPassword("pw1"); err != nil {
		t.Error("password mismatch after Register()")
	}
	if err := usr.CheckPassword("lol"); err == nil {
		t.Error("CheckPassword() passed with a wrong password")
	}

	if len(mailSvc.SentMessages) != 1 {
		t.Fatalf("got %d welcome emails, want 1", len(mailSvc.SentMessages))
	}
	msg := mailSvc.SentMessages[0]
	if msg.To[0].Address != "alice@test.cd" {
		t.Errorf("welcome email to %q", msg.To[0].Address)
	}
	if !strings.Contains(msg.Subject, "Darasa") {
		t.Errorf("unexpected welcome email subject %q", msg.Subject)
	}
}

func TestService_Register_noEmail(t *testing.T) {
	mailSvc := emailsvc.NewDummyService()
	svc := newTestService(mailSvc)

	if _, err := svc.Register(context.Background(), NewUser{Username: "bob", Password: "pwd"}); err != nil {
		t.Fatalf("Register() failed, %v", err)
	}
	if len(mailSvc.SentMessages) != 0 {
		t.Error("no welcome email expected without an email address")
	}
}

func TestService_CheckUniqueness(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(emailsvc.NewDummyService())

	taken, err := svc.Register(ctx, NewUser{Username: "taken", Email: "taken@test.cd", Password: "pwd"})
	if err != nil {
		t.Fatalf("Register() failed, %v", err)
	}

	tests := []struct {
		name      string
		uname     string
		email     string
		excl      []User
		wantField string
	}{
		{name: "available", uname: "fresh", email: "fresh@test.cd"},
		{name: "username taken", uname: "taken", email: "fresh@test.cd", wantField: "username"},
		{name: "email taken", uname: "fresh", email: "taken@test.cd", wantField: "email"},
		{name: "self excluded", uname: "taken", email: "taken@test.cd", excl: []User{taken}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckUniqueness(ctx, tt.uname, tt.email, tt.excl...)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("CheckUniqueness() error = %v, want nil", err)
				}
				return
			}

			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("CheckUniqueness() error = %v, want *core.ValidationError", err)
			}
			if len(vErr.Fields) != 1 || vErr.Fields[0].Field != tt.wantField {
				t.Errorf("ValidationError fields = %+v, want field %q", vErr.Fields, tt.wantField)
			}
		})
	}
}

func TestService_SetLanguage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(emailsvc.NewDummyService())

	usr, err := svc.Register(ctx, NewUser{Username: "poly", Password: "pwd"})
	if err != nil {
		t.Fatalf("Register() failed, %v", err)
	}

	if err := svc.SetLanguage(ctx, usr.ID, LanguageEnglish); err != nil {
		t.Fatalf("SetLanguage() failed, %v", err)
	}
	refreshed, err := svc.GetByID(ctx, usr.ID)
	if err != nil {
		t.Fatalf("GetByID() failed, %v", err)
	}
	if refreshed.Language != LanguageEnglish {
		t.Errorf("Language = %q, want %q", refreshed.Language, LanguageEnglish)
	}
}
