package backend

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   Outcome
	}{
		{"ok 200", 200, "", OutcomeOK},
		{"ok 201", 201, `{"id":"x"}`, OutcomeOK},
		{"threat 403", 403, `{"detail":"Blocked: potential threat detected"}`, OutcomeRetry},
		{"threat 403 uppercase", 403, "THREAT SCORE EXCEEDED", OutcomeRetry},
		{"plain 403", 403, "forbidden", OutcomeFail},
		{"threat body on wrong status", 500, "threat", OutcomeFail},
		{"already 400", 400, `{"title":"Login name already used!"}`, OutcomeAlreadyExists},
		{"exists 400", 400, "email exists", OutcomeAlreadyExists},
		{"duplicate 400", 400, "duplicate key", OutcomeAlreadyExists},
		{"other 400", 400, "invalid password", OutcomeFail},
		{"already on wrong status", 409, "already exists", OutcomeFail},
		{"server error", 500, "boom", OutcomeFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.status, []byte(tc.body)); got != tc.want {
				t.Fatalf("Classify(%d, %q) = %s, want %s", tc.status, tc.body, got, tc.want)
			}
		})
	}
}
