package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/user"
)

func Test_userApi_register(t *testing.T) {
	createUser(t, "taken", "taken@test.cd", "pwd", true)

	newUser := func(uname, email, pwd, pwdConf string) []byte {
		return marchallObj(t, user.NewUser{
			Name:            "Test User",
			Username:        uname,
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwdConf,
		})
	}

	tests := []httpTest{
		{
			name: "required fields", body: marchallObj(t, user.NewUser{}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username":         "this field is required",
				"password":         "this field is required",
				"password_confirm": "this field is required",
			}),
		},
		{
			name: "invalid email", body: newUser("awe", "lol", "pwd", "pwd"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "password mismatch", body: newUser("awe", "awe@test.cd", "pwd", "wdp"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password_confirm": "password_confirm must be equal to Password"}),
		},
		{
			name: "password too similar to username", body: newUser("awesome", "awe@test.cd", "awesome1", "awesome1"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be similar to user attributes"}),
		},
		{
			name: "username taken", body: newUser("taken", "new@test.cd", "pwd", "pwd"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "a user with this username already exists"}),
		},
		{
			name: "email taken", body: newUser("fresh", "taken@test.cd", "pwd", "pwd"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
		{name: "short passwords are accepted", body: newUser("awe", "awe@test.cd", "pw1", "pw1"), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/register"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, tt.wantCode, rec.Code)

				var usr user.User
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
				assert.NotEmpty(t, usr.ID)
				assert.Equal(t, "awe", usr.Username)
				assert.Equal(t, user.LanguageMarathi, usr.Language)
				assert.True(t, usr.IsActive)

				// no token; registration does not log the user in
				assert.NotContains(t, rec.Body.String(), "token")
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("welcome email sent", func(t *testing.T) {
		var found bool
		for _, msg := range mailSvc.SentMessages {
			for _, to := range msg.To {
				if to.Address == "awe@test.cd" {
					found = true
				}
			}
		}
		assert.True(t, found, "welcome email not sent")
	})
}

func Test_userApi_login(t *testing.T) {
	usr := createUser(t, "hero", "hero@test.cd", "mdr", true)
	naughty := createUser(t, "ndog", "ndog@test.cd", "mdr", false)

	login := func(uname, pwd string) []byte {
		return marchallObj(t, LoginRequest{Username: uname, Password: pwd})
	}
	authFailed := marchallObj(t, httpErr{Error: "authentication failed"})

	tests := []httpTest{
		{
			name: "required fields", body: marchallObj(t, LoginRequest{}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "this field is required",
				"password": "this field is required",
			}),
		},
		{name: "unknown user", body: login("lol", "mdr"), wantCode: http.StatusBadRequest, wantData: authFailed},
		{name: "wrong password", body: login(usr.Username, "lol"), wantCode: http.StatusBadRequest, wantData: authFailed},
		{
			name: "inactive user", body: login(naughty.Username, "mdr"), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{name: "login with username", body: login(usr.Username, "mdr"), wantCode: http.StatusOK},
		{name: "login with email", body: login(usr.Email, "mdr"), wantCode: http.StatusOK},
		{name: "username is case-insensitive", body: login("HeRo", "mdr"), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess the token.. just check that it's not empty
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantCode, rec.Code)

				var respData LoginResponse
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &respData))
				assert.NotEmpty(t, respData.Token)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("last login recorded", func(t *testing.T) {
		refreshed, err := usrSvc.GetByID(context.Background(), usr.ID)
		assert.NoError(t, err)
		assert.False(t, refreshed.LastLogin.IsZero())
	})
}

func Test_userApi_logout(t *testing.T) {
	usr := createUser(t, "leaver", "leaver@test.cd", "mdr", true)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Logged out", token: getToken(t, usr), wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Success: "Logged out."}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/logout"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_retrieveSelf(t *testing.T) {
	usr := createUser(t, "selfie", "selfie@test.cd", "mdr", true)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Get self", token: getToken(t, usr), wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/users/me"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_updateLanguage(t *testing.T) {
	usr := createUser(t, "polyglot", "polyglot@test.cd", "mdr", true)
	token := getToken(t, usr)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: token, body: marchallObj(t, user.UpdateLanguage{}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"language": "this field is required"}),
		},
		{
			name: "unsupported language", token: token, body: marchallObj(t, user.UpdateLanguage{Language: "Klingon"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"language": "language must be one of [Marathi English]"}),
		},
		{
			name: "language updated", token: token, body: marchallObj(t, user.UpdateLanguage{Language: user.LanguageEnglish}),
			wantCode: http.StatusOK, wantData: marchallObj(t, SuccessResponse{Success: "Language preference updated."}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut
		tt.path = "/v1/users/me/language"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				refreshed, err := usrSvc.GetByID(context.Background(), usr.ID)
				assert.NoError(t, err)
				assert.Equal(t, user.LanguageEnglish, refreshed.Language)
			}
		})
	}
}
