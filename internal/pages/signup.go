package pages

import (
	"context"
	"strings"

	"github.com/automationexercise/shopcheck/internal/browser"
	"github.com/automationexercise/shopcheck/internal/fixtures"
)

// SignupPage covers the signup form, the account information form and the account
// created/deleted confirmations
type SignupPage struct {
	base *Base
	loc  Catalog
}

// NewSignupPage builds a SignupPage on base
func NewSignupPage(base *Base) *SignupPage {
	return &SignupPage{
		base: base,
		loc: NewCatalog("signup", map[string]browser.Locator{
			"signupForm":     `.signup-form`,
			"signupName":     `input[data-qa="signup-name"]`,
			"signupEmail":    `input[data-qa="signup-email"]`,
			"signupButton":   `button[data-qa="signup-button"]`,
			"accountInfo":    `.login-form h2.title`,
			"titleMr":        `#id_gender1`,
			"titleMrs":       `#id_gender2`,
			"name":           `#name`,
			"email":          `#email`,
			"password":       `#password`,
			"day":            `#days`,
			"month":          `#months`,
			"year":           `#years`,
			"newsletter":     `#newsletter`,
			"specialOffers":  `#optin`,
			"firstName":      `#first_name`,
			"lastName":       `#last_name`,
			"company":        `#company`,
			"address1":       `#address1`,
			"address2":       `#address2`,
			"country":        `#country`,
			"state":          `#state`,
			"city":           `#city`,
			"zipcode":        `#zipcode`,
			"mobileNumber":   `#mobile_number`,
			"createAccount":  `button[data-qa="create-account"]`,
			"accountCreated": `h2[data-qa="account-created"]`,
			"continue":       `a[data-qa="continue-button"]`,
			"accountDeleted": `h2[data-qa="account-deleted"]`,
			"deleteAccount":  `a[href="/delete_account"]`,
		}),
	}
}

// FillSignupForm enters name and email into the "New User Signup!" form
func (p *SignupPage) FillSignupForm(ctx context.Context, name, email string) error {
	if err := p.base.SetValue(ctx, p.loc.Get("signupName"), name); err != nil {
		return err
	}
	return p.base.SetValue(ctx, p.loc.Get("signupEmail"), email)
}

func (p *SignupPage) ClickSignup(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("signupButton"))
}

// SelectGender picks the Mr radio for "mr" in any case and Mrs for anything else
func (p *SignupPage) SelectGender(ctx context.Context, title string) error {
	if strings.EqualFold(title, "mr") {
		return p.base.Click(ctx, p.loc.Get("titleMr"))
	}
	return p.base.Click(ctx, p.loc.Get("titleMrs"))
}

// FillAccountDetails completes the account information form from user. Name and email are
// carried over from the signup form and left untouched.
func (p *SignupPage) FillAccountDetails(ctx context.Context, user fixtures.User) error {
	if err := p.SelectGender(ctx, user.Title); err != nil {
		return err
	}
	if err := p.base.SetValue(ctx, p.loc.Get("password"), user.Password); err != nil {
		return err
	}

	dob := []struct {
		name  string
		value string
	}{
		{"day", user.DateOfBirth.Day},
		{"month", user.DateOfBirth.Month},
		{"year", user.DateOfBirth.Year},
	}
	for _, f := range dob {
		if err := p.base.SelectByValue(ctx, p.loc.Get(f.name), f.value); err != nil {
			return err
		}
	}

	if user.Newsletter {
		if err := p.base.SelectCheckbox(ctx, p.loc.Get("newsletter")); err != nil {
			return err
		}
	}
	if user.SpecialOffers {
		if err := p.base.SelectCheckbox(ctx, p.loc.Get("specialOffers")); err != nil {
			return err
		}
	}

	address := []struct {
		name   string
		value  string
		choice bool
	}{
		{name: "firstName", value: user.FirstName},
		{name: "lastName", value: user.LastName},
		{name: "company", value: user.Company},
		{name: "address1", value: user.Address1},
		{name: "address2", value: user.Address2},
		{name: "country", value: user.Country, choice: true},
		{name: "state", value: user.State},
		{name: "city", value: user.City},
		{name: "zipcode", value: user.Zipcode},
		{name: "mobileNumber", value: user.MobileNumber},
	}
	for _, f := range address {
		var err error
		if f.choice {
			err = p.base.SelectByValue(ctx, p.loc.Get(f.name), f.value)
		} else {
			err = p.base.SetValue(ctx, p.loc.Get(f.name), f.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *SignupPage) ClickCreateAccount(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("createAccount"))
}

// ClickContinue follows the continue link on the created and deleted confirmations
func (p *SignupPage) ClickContinue(ctx context.Context) error {
	return waitAndClick(ctx, p.base, p.loc.Get("continue"))
}

// DeleteAccount deletes the logged-in account from the header link
func (p *SignupPage) DeleteAccount(ctx context.Context) error {
	return waitAndClick(ctx, p.base, p.loc.Get("deleteAccount"))
}

func (p *SignupPage) IsAccountCreatedVisible(ctx context.Context) bool {
	return p.base.IsDisplayed(ctx, p.loc.Get("accountCreated"))
}

func (p *SignupPage) IsAccountDeletedVisible(ctx context.Context) bool {
	return p.base.IsDisplayed(ctx, p.loc.Get("accountDeleted"))
}

// IsAccountInformationVisible reports whether the "Enter Account Information" form shows,
// which is where a successful signup submission lands
func (p *SignupPage) IsAccountInformationVisible(ctx context.Context) bool {
	heading := p.loc.Get("accountInfo")
	if !p.base.IsDisplayed(ctx, heading) {
		return false
	}
	text, err := p.base.Text(ctx, heading)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(text), "enter account information")
}

// IsSignupFormVisible reports whether the "New User Signup!" form shows
func (p *SignupPage) IsSignupFormVisible(ctx context.Context) bool {
	return p.base.IsDisplayed(ctx, p.loc.Get("signupForm"))
}

// PrefilledName returns the name carried into the account information form
func (p *SignupPage) PrefilledName(ctx context.Context) (string, error) {
	return p.base.Attribute(ctx, p.loc.Get("name"), "value")
}

// PrefilledEmail returns the email carried into the account information form
func (p *SignupPage) PrefilledEmail(ctx context.Context) (string, error) {
	return p.base.Attribute(ctx, p.loc.Get("email"), "value")
}
