package httpapi

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"a","password":null,"id":7,"admin":true}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	assert.Equal(t, fields{"username": "a", "id": "7", "admin": "true"}, readFields(r))

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"password":12345678,"query":1000000,"ratio":0.25,"big":1e3}`))
	r.Header.Set("Content-Type", "application/json")
	assert.Equal(t, fields{"password": "12345678", "query": "1000000", "ratio": "0.25", "big": "1e3"}, readFields(r))

	r = httptest.NewRequest("POST", "/", strings.NewReader(`username=a&password=b'+OR+'1'%3D'1`))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, fields{"username": "a", "password": "b' OR '1'='1"}, readFields(r))

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))
	r.Header.Set("Content-Type", "application/json")
	assert.Empty(t, readFields(r))

	r = httptest.NewRequest("POST", "/", nil)
	assert.Empty(t, readFields(r))
}

func TestFields_Interpolated(t *testing.T) {
	f := fields{"query": "", "username": "bob"}
	assert.Equal(t, "", f.interpolated("query"))
	assert.Equal(t, "bob", f.interpolated("username"))
	assert.Equal(t, "undefined", f.interpolated("password"))
}
