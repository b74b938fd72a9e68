package user

import (
	"github.com/trezcool/darasa/core"
)

// NewServiceMock returns a Service wired with a static test configuration.
func NewServiceMock(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf: &core.Config{
			AppName:         "Darasa",
			DefaultLanguage: LanguageMarathi,
			TestMode:        true,
		},
	}
}
