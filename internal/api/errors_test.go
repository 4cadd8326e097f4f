package api

import (
	"encoding/json"
	"testing"
)

func TestNormalizeDetail_String(t *testing.T) {
	got := NormalizeDetail(json.RawMessage(`"Sai tên đăng nhập hoặc mật khẩu"`))
	if got != "Sai tên đăng nhập hoặc mật khẩu" {
		t.Errorf("NormalizeDetail = %q", got)
	}
}

func TestNormalizeDetail_ValidationArray(t *testing.T) {
	raw := json.RawMessage(`[{"type":"missing","loc":["body","email"],"msg":"field required"},{"msg":"value is not a valid email"}]`)
	got := NormalizeDetail(raw)
	want := "field required, value is not a valid email"
	if got != want {
		t.Errorf("NormalizeDetail = %q; want %q", got, want)
	}
}

func TestNormalizeDetail_ArrayMixed(t *testing.T) {
	raw := json.RawMessage(`["plain string", {"loc":["body"]}]`)
	got := NormalizeDetail(raw)
	want := "plain string, Lỗi xác thực dữ liệu"
	if got != want {
		t.Errorf("NormalizeDetail = %q; want %q", got, want)
	}
}

func TestNormalizeDetail_Object(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"msg field", `{"msg":"tài khoản bị khóa"}`, "tài khoản bị khóa"},
		{"message field", `{"message":"không hợp lệ"}`, "không hợp lệ"},
		{"no usable field", `{"code":42}`, "Lỗi xác thực dữ liệu"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeDetail(json.RawMessage(tc.raw)); got != tc.want {
				t.Errorf("NormalizeDetail(%s) = %q; want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeDetail_Empty(t *testing.T) {
	if got := NormalizeDetail(nil); got != "" {
		t.Errorf("NormalizeDetail(nil) = %q; want empty", got)
	}
}

func TestNewStatusError_Kinds(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"unauthorized", 401, `{"detail":"Not authenticated"}`, KindUnauthorized},
		{"not found", 404, `{"detail":"Not Found"}`, KindNotFound},
		{"validation", 422, `{"detail":[{"msg":"field required"}]}`, KindValidation},
		{"client error without detail", 400, `oops`, KindUnknown},
		{"server error", 500, `{"detail":"boom"}`, KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := newStatusError(tc.status, []byte(tc.body))
			if err.Kind != tc.want {
				t.Errorf("kind = %v; want %v", err.Kind, tc.want)
			}
			if err.StatusCode != tc.status {
				t.Errorf("status = %d; want %d", err.StatusCode, tc.status)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsUnauthorized(newStatusError(401, nil)) {
		t.Error("expected IsUnauthorized for 401")
	}
	if !IsNotFound(newStatusError(404, nil)) {
		t.Error("expected IsNotFound for 404")
	}
	if !IsValidation(newStatusError(422, []byte(`{"detail":"bad"}`))) {
		t.Error("expected IsValidation for 422 with detail")
	}
	netErr := &Error{Kind: KindNetwork}
	if !IsNetwork(netErr) {
		t.Error("expected IsNetwork")
	}
	if IsUnauthorized(netErr) {
		t.Error("network error must not match IsUnauthorized")
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{StatusCode: 422, Detail: "field required"}
	if e.Error() != "field required" {
		t.Errorf("Error() = %q", e.Error())
	}
	e = &Error{StatusCode: 500}
	if e.Error() != "gateway returned status 500" {
		t.Errorf("Error() = %q", e.Error())
	}
}
