// Package fixtures generates randomized account data for registration journeys.
package fixtures

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultPassword is the password every generated fixture signs up with
const DefaultPassword = "Test@123"

// DateOfBirth holds a birth date as the decimal strings the signup dropdowns use
type DateOfBirth struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// User is a complete registration fixture
type User struct {
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Title         string      `json:"title"`
	Password      string      `json:"password"`
	DateOfBirth   DateOfBirth `json:"dateOfBirth"`
	Newsletter    bool        `json:"newsletter"`
	SpecialOffers bool        `json:"specialOffers"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Company       string      `json:"company"`
	Address1      string      `json:"address1"`
	Address2      string      `json:"address2"`
	Country       string      `json:"country"`
	State         string      `json:"state"`
	City          string      `json:"city"`
	Zipcode       string      `json:"zipcode"`
	MobileNumber  string      `json:"mobileNumber"`
}

// Credentials is the name, email and password subset used by the signup form alone
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Generator produces fixtures. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator returns a Generator seeded with seed. Fixtures from equal seeds differ only
// in the timestamp embedded in the email.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

var defaultGenerator = &Generator{
	rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	now: time.Now,
}

// DefaultGenerator returns the randomly seeded generator behind GenerateUser and friends
func DefaultGenerator() *Generator {
	return defaultGenerator
}

// GenerateUser returns a complete fixture from the default generator
func GenerateUser() User {
	return defaultGenerator.User()
}

// GenerateMinimalUser returns a signup-only fixture from the default generator
func GenerateMinimalUser() Credentials {
	return defaultGenerator.Minimal()
}

// GenerateInvalidUser returns the fixed negative-path fixture
func GenerateInvalidUser() Credentials {
	return defaultGenerator.Invalid()
}

// User returns a complete registration fixture
func (g *Generator) User() User {
	g.mu.Lock()
	defer g.mu.Unlock()

	first := g.letters(6)
	last := g.letters(8)

	title := "Mrs"
	if g.rnd.Float64() > 0.5 {
		title = "Mr"
	}

	return User{
		Name:     first + " " + last,
		Email:    g.email(),
		Title:    title,
		Password: DefaultPassword,
		DateOfBirth: DateOfBirth{
			Day:   strconv.Itoa(g.between(1, 28)),
			Month: strconv.Itoa(g.between(1, 12)),
			Year:  strconv.Itoa(g.between(1950, 2000)),
		},
		Newsletter:    true,
		SpecialOffers: true,
		FirstName:     capitalize(first),
		LastName:      capitalize(last),
		Company:       "Test Company Inc",
		Address1:      fmt.Sprintf("%d Test Street", g.between(100, 9999)),
		Address2:      fmt.Sprintf("Apt %d", g.between(1, 999)),
		Country:       "United States",
		State:         "California",
		City:          "Los Angeles",
		Zipcode:       strconv.Itoa(g.between(10000, 99999)),
		MobileNumber:  fmt.Sprintf("+1%d", g.between64(1000000000, 9999999999)),
	}
}

// Minimal returns a fixture with only the fields the signup form asks for
func (g *Generator) Minimal() Credentials {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Credentials{
		Name:     g.letters(10),
		Email:    g.email(),
		Password: DefaultPassword,
	}
}

// Invalid returns a fixture the signup form must reject: no name, a malformed email and an
// under-length password
func (g *Generator) Invalid() Credentials {
	return Credentials{
		Name:     "",
		Email:    "invalid-email",
		Password: "123",
	}
}

// Credentials returns the signup subset of u
func (u User) Credentials() Credentials {
	return Credentials{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}
}

func (g *Generator) email() string {
	return fmt.Sprintf("test_%s_%d@test.com", g.letters(5), g.now().UnixMilli())
}

func (g *Generator) letters(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(alphabet[g.rnd.IntN(len(alphabet))])
	}
	return sb.String()
}

// between returns a uniform integer in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

// between64 is between for ranges that do not fit a 32-bit int
func (g *Generator) between64(lo, hi int64) int64 {
	return lo + g.rnd.Int64N(hi-lo+1)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
