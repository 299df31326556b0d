package journeys

import (
	"context"
	"strings"

	"github.com/automationexercise/shopcheck/internal/fixtures"
)

// RegisterUser signs up a generated user, checks they end up logged in, then deletes the
// account again
func RegisterUser() Journey {
	user := fixtures.GenerateUser()

	return Journey{
		Name:  "register-user",
		Title: "TC01 Register User",
		Steps: []Step{
			{Name: "open signup", Run: openSignup},
			{Name: "submit signup form", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Signup.FillSignupForm(ctx, user.Name, user.Email); err != nil {
					return err
				}
				if err := p.Signup.ClickSignup(ctx); err != nil {
					return err
				}
				return expect(p.Signup.IsAccountInformationVisible(ctx), "account information form is shown")
			}},
			{Name: "create account", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Signup.FillAccountDetails(ctx, user); err != nil {
					return err
				}
				if err := p.Signup.ClickCreateAccount(ctx); err != nil {
					return err
				}
				return expect(p.Signup.IsAccountCreatedVisible(ctx), "account created message is shown")
			}},
			{Name: "continue logged in", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Signup.ClickContinue(ctx); err != nil {
					return err
				}
				if err := expect(p.Home.IsUserLoggedIn(ctx), "user is logged in"); err != nil {
					return err
				}
				name, err := p.Home.LoggedInUsername(ctx)
				if err != nil {
					return err
				}
				return expectEqual("logged in username", name, user.Name)
			}},
			{Name: "delete account", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Signup.DeleteAccount(ctx); err != nil {
					return err
				}
				if err := expect(p.Signup.IsAccountDeletedVisible(ctx), "account deleted message is shown"); err != nil {
					return err
				}
				return p.Signup.ClickContinue(ctx)
			}},
		},
	}
}

// SignupWithMinimalUser submits only a name and email and checks both are carried into the
// account information form
func SignupWithMinimalUser() Journey {
	creds := fixtures.GenerateMinimalUser()

	return Journey{
		Name:  "signup-minimal-user",
		Title: "Signup with minimal user",
		Steps: []Step{
			{Name: "open signup", Run: openSignup},
			{Name: "submit signup form", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Signup.FillSignupForm(ctx, creds.Name, creds.Email); err != nil {
					return err
				}
				if err := p.Signup.ClickSignup(ctx); err != nil {
					return err
				}
				return expect(p.Signup.IsAccountInformationVisible(ctx), "account information form is shown")
			}},
			{Name: "details carried over", Run: func(ctx context.Context, p *Pages) error {
				name, err := p.Signup.PrefilledName(ctx)
				if err != nil {
					return err
				}
				if err := expectEqual("prefilled name", name, creds.Name); err != nil {
					return err
				}
				email, err := p.Signup.PrefilledEmail(ctx)
				if err != nil {
					return err
				}
				return expectEqual("prefilled email", email, creds.Email)
			}},
		},
	}
}

// SignupRejectsInvalidUser submits the invalid fixture and checks the signup form is still
// the page shown
func SignupRejectsInvalidUser() Journey {
	creds := fixtures.GenerateInvalidUser()

	return Journey{
		Name:  "signup-invalid-user",
		Title: "Signup rejects invalid user",
		Steps: []Step{
			{Name: "open signup", Run: openSignup},
			{Name: "submit invalid signup form", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Signup.FillSignupForm(ctx, creds.Name, creds.Email); err != nil {
					return err
				}
				return p.Signup.ClickSignup(ctx)
			}},
			{Name: "signup refused", Run: func(ctx context.Context, p *Pages) error {
				if err := expect(!p.Signup.IsAccountInformationVisible(ctx), "account information form is not shown"); err != nil {
					return err
				}
				if err := expect(p.Signup.IsSignupFormVisible(ctx), "signup form is still shown"); err != nil {
					return err
				}
				url, err := p.Base.CurrentURL(ctx)
				if err != nil {
					return err
				}
				return expect(strings.Contains(url, "/login"), "still on the login page, got %s", url)
			}},
		},
	}
}

func openSignup(ctx context.Context, p *Pages) error {
	if err := p.Home.Open(ctx); err != nil {
		return err
	}
	if err := p.Home.ClickSignupLogin(ctx); err != nil {
		return err
	}
	return expect(p.Signup.IsSignupFormVisible(ctx), "signup form is shown")
}
