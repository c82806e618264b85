package services

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     error
	}{
		{name: "strong", password: "StrongPass1", want: nil},
		{name: "non-ascii letters count", password: "Пароль2024", want: nil},
		{name: "too short", password: "Short1", want: ErrPasswordTooShort},
		{name: "no upper case", password: "alllowercase1", want: ErrPasswordMissingClasses},
		{name: "no lower case", password: "ALLUPPERCASE1", want: ErrPasswordMissingClasses},
		{name: "no digits", password: "NoDigitsHere", want: ErrPasswordMissingClasses},
		{name: "longer than bcrypt accepts", password: "Aa1" + strings.Repeat("x", 70), want: ErrPasswordTooLong},
		{name: "exactly bcrypt limit", password: "Aa1" + strings.Repeat("x", 69), want: nil},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidatePasswordStrength(testCase.password)
			if testCase.want == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected %v to wrap ErrWeakPassword", err)
			}
		})
	}
}
