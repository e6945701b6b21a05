package validation

import "testing"

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     PasswordIssue
	}{
		{"valid", "Str0ng-Pass!", PasswordOK},
		{"too short", "Ab1!", PasswordTooShort},
		{"too long", "Aa1!" + string(make([]byte, 70)), PasswordTooLong},
		{"no uppercase", "weak-pass1!", PasswordNoUppercase},
		{"no lowercase", "WEAK-PASS1!", PasswordNoLowercase},
		{"no digit", "Weak-Pass!!", PasswordNoDigit},
		{"no punctuation", "WeakPass123", PasswordNoPunctation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckPassword(tc.password); got != tc.want {
				t.Errorf("CheckPassword(%q) = %q, want %q", tc.password, got, tc.want)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("learner@example.com") {
		t.Error("expected learner@example.com to be valid")
	}
	if ValidEmail("not-an-email") {
		t.Error("expected not-an-email to be invalid")
	}
	if ValidEmail("missing@tld") {
		t.Error("expected missing@tld to be invalid")
	}
}

func TestValidName(t *testing.T) {
	if !ValidName("") {
		t.Error("expected empty name to be accepted")
	}
	if !ValidName("Jo") {
		t.Error("expected two-character name to be valid")
	}
	if ValidName("X") {
		t.Error("expected single-character name to be invalid")
	}
	if ValidName(string(make([]byte, 101))) {
		t.Error("expected over-long name to be invalid")
	}
}

func TestValidUsername(t *testing.T) {
	if !ValidUsername("test_user-1") {
		t.Error("expected test_user-1 to be valid")
	}
	if ValidUsername("ab") {
		t.Error("expected too-short username to be invalid")
	}
	if ValidUsername("bad name") {
		t.Error("expected username with space to be invalid")
	}
}
