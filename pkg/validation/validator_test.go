package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
)

func validDeal() entity.Deal {
	return entity.Deal{
		Title:       "Cheap headphones",
		Description: "Noise cancelling, 40% off this week",
		Price:       59.9,
		Category:    "High-Tech",
		Status:      entity.DealPending,
		AuthorID:    "u1",
	}
}

func TestStruct_Deal(t *testing.T) {
	d := validDeal()
	require.NoError(t, Struct(&d))

	d.Category = "Voitures"
	details := ToDetails(Struct(&d))
	assert.Contains(t, details["category"], "High-Tech")

	d = validDeal()
	d.Title = "abc"
	d.Price = -1
	details = ToDetails(Struct(&d))
	assert.Equal(t, "must be at least 5 characters long", details["title"])
	assert.Equal(t, "must be greater than or equal to 0", details["price"])

	d = validDeal()
	neg := -3.0
	d.OriginalPrice = &neg
	details = ToDetails(Struct(&d))
	assert.Contains(t, details, "originalPrice")
}

func TestStruct_User(t *testing.T) {
	u := entity.User{Username: "al", Email: "not-an-email", Password: "hash", Role: entity.RoleUser}
	details := ToDetails(Struct(&u))
	assert.Equal(t, "must be at least 3 characters long", details["username"])
	assert.Equal(t, "must be a valid email", details["email"])

	u.Role = "superuser"
	details = ToDetails(Struct(&u))
	assert.Equal(t, "must be one of: user, moderator, admin", details["role"])
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestAliases(t *testing.T) {
	v := validator.New()
	require.NoError(t, configure(v))

	type form struct {
		Username string `json:"username" validate:"required,username"`
		Password string `json:"password" validate:"required,pwd"`
	}
	details := ToDetails(v.Struct(form{Username: "al", Password: "short"}))
	assert.Equal(t, "must be at least 3 characters long", details["username"])
	assert.Equal(t, "must be at least 8 characters long", details["password"])

	details = ToDetails(v.Struct(form{Username: strings.Repeat("a", 31), Password: "long-enough"}))
	assert.Equal(t, "must be at most 30 characters long", details["username"])
	assert.NotContains(t, details, "password")

	assert.NoError(t, v.Struct(form{Username: "alice", Password: "long-enough"}))
}
