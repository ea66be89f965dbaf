package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInForm(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		form    SignInForm
		wantMsg string
	}{
		{"valid", SignInForm{Email: "ana@uni.edu", Password: "secret1"}, ""},
		{"malformed email", SignInForm{Email: "ana-at-uni", Password: "secret1"}, "Invalid email address"},
		{"empty email", SignInForm{Email: "", Password: "secret1"}, "Invalid email address"},
		{"short password", SignInForm{Email: "ana@uni.edu", Password: "12345"}, "Password must be at least 6 characters"},
		{"email reported first", SignInForm{Email: "nope", Password: "1"}, "Invalid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.form.Normalize()
			err := v.Check(tt.form)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestSignInForm_TrimsEmail(t *testing.T) {
	f := SignInForm{Email: "  ana@uni.edu  ", Password: "secret1"}
	f.Normalize()

	assert.Equal(t, "ana@uni.edu", f.Email)
	assert.NoError(t, New().Check(f))
}

func TestSignUpForm(t *testing.T) {
	v := New()

	f := SignUpForm{Email: "ana@uni.edu", Password: "secret1", Name: "   ", Department: "CS"}
	f.Normalize()
	err := v.Check(f)
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())

	f = SignUpForm{Email: "ana@uni.edu", Password: "secret1", Name: "Ana", Department: ""}
	err = v.Check(f)
	require.Error(t, err)
	assert.Equal(t, "Department is required", err.Error())

	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Department is required"}, vErr.Messages)

	f = SignUpForm{Email: "bad", Password: "123", Name: "", Department: ""}
	err = v.Check(f)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{
		"Invalid email address",
		"Password must be at least 6 characters",
		"Name is required",
		"Department is required",
	}, vErr.Messages)
}
