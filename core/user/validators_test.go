package user

import (
	"context"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	emailsvc "github.com/trezcool/darasa/services/email"
)

func TestNewUserValidation(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	svc := NewServiceMock(newFakeRepo(), emailsvc.NewDummyService())

	newUser := func(uname, email, pwd string) NewUser {
		return NewUser{
			Username:        uname,
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwd,
		}
	}

	tests := []struct {
		name    string
		nu      NewUser
		wantErr bool
	}{
		{name: "valid", nu: newUser("alice", "alice@test.cd", "mdr")},
		{name: "short passwords are fine", nu: newUser("alice", "alice@test.cd", "pw1")},
		{name: "no email", nu: newUser("alice", "", "mdr")},
		{name: "empty", nu: NewUser{}, wantErr: true},
		{name: "bad email", nu: newUser("alice", "lol", "mdr"), wantErr: true},
		{name: "bad username", nu: newUser("a!ice", "alice@test.cd", "mdr"), wantErr: true},
		{name: "password similar to username", nu: newUser("alice", "alice@test.cd", "alice1"), wantErr: true},
		{
			name: "password mismatch",
			nu: NewUser{
				Username:        "alice",
				Password:        "mdr",
				PasswordConfirm: "rdm",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nu.Validate(context.Background(), validate, svc)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
