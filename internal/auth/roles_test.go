package auth

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"HR", RoleHR, true},
		{" employee ", RoleEmployee, true},
		{"manager", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseRole(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAuthorize(t *testing.T) {
	if !Authorize(RoleAdmin, RoleAdmin, RoleHR) {
		t.Fatal("admin should pass an admin/hr gate")
	}
	if !Authorize(RoleHR, RoleAdmin, RoleHR) {
		t.Fatal("hr should pass an admin/hr gate")
	}
	if Authorize(RoleEmployee, RoleAdmin, RoleHR) {
		t.Fatal("employee should not pass an admin/hr gate")
	}
	if Authorize("", RoleAdmin, RoleHR) {
		t.Fatal("empty role should never pass")
	}
	if Authorize(RoleAdmin) {
		t.Fatal("empty gate allows nobody")
	}
}
