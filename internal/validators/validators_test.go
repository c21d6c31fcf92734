package validators

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-connect/internal/httperr"
)

type fakeResolver struct {
	mx    map[string][]*net.MX
	hosts map[string][]string
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if mx, ok := f.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if h, ok := f.hosts[host]; ok {
		return h, nil
	}
	return nil, errors.New("no such host")
}

func TestIsEmailDomainValid(t *testing.T) {
	r := fakeResolver{
		mx:    map[string][]*net.MX{"mail.test": {{Host: "mx.mail.test", Pref: 10}}},
		hosts: map[string][]string{"web.test": {"10.0.0.1"}},
	}
	ctx := context.Background()

	assert.True(t, IsEmailDomainValid(ctx, r, "a@mail.test"))
	assert.True(t, IsEmailDomainValid(ctx, r, "a@web.test"))
	assert.False(t, IsEmailDomainValid(ctx, r, "a@nowhere.test"))
	assert.False(t, IsEmailDomainValid(ctx, r, "no-at-sign"))
	assert.False(t, IsEmailDomainValid(ctx, r, "trailing@"))
}

type signup struct {
	Username string  `json:"username" binding:"required,max=150"`
	Email    string  `json:"email" binding:"required,email"`
	Rating   int     `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Ignored  float64 `json:"-"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var req signup
	return c.ShouldBindJSON(&req)
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	RegisterJSONTagNames()

	fields := FieldErrors(bind(t, `{"email":"nope","rating":9}`))
	assert.Equal(t, []string{"This field is required."}, fields["username"])
	assert.Equal(t, []string{"Enter a valid email address."}, fields["email"])
	assert.Equal(t, []string{"Ensure this value is less than or equal to 5."}, fields["rating"])
}

func TestFieldErrorsForMalformedBodies(t *testing.T) {
	fields := FieldErrors(bind(t, `{"username": 5}`))
	assert.Contains(t, fields, "username")

	fields = FieldErrors(bind(t, `{"username":`))
	assert.Equal(t, []string{"Malformed JSON body."}, fields[NonFieldErrors])

	err := BindError(bind(t, ``))
	require.True(t, httperr.Is(err, httperr.KindValidation))
}
