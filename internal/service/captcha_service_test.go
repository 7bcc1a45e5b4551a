package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type fakeDoer struct {
	lastRequest *http.Request
	statusCode  int
	body        string
	err         error
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	d.lastRequest = req
	if d.err != nil {
		return nil, d.err
	}
	return &http.Response{
		StatusCode: d.statusCode,
		Body:       io.NopCloser(strings.NewReader(d.body)),
	}, nil
}

func newTestCaptcha(doer *fakeDoer) *CaptchaVerifier {
	verifier := NewCaptchaVerifier("secret-key", "https://captcha.example/verify")
	verifier.httpClient = doer
	return verifier
}

func TestCaptchaVerifyMissingToken(t *testing.T) {
	verifier := newTestCaptcha(&fakeDoer{})

	for _, token := range []string{"", "   "} {
		if err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrCaptchaRequired) {
			t.Fatalf("token %q: got %v, want ErrCaptchaRequired", token, err)
		}
	}
}

func TestCaptchaVerifySuccess(t *testing.T) {
	doer := &fakeDoer{statusCode: http.StatusOK, body: `{"success": true}`}
	verifier := newTestCaptcha(doer)

	if err := verifier.Verify(context.Background(), "client-token"); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if doer.lastRequest == nil {
		t.Fatal("expected an outbound verification request")
	}
	if got := doer.lastRequest.URL.String(); got != "https://captcha.example/verify" {
		t.Fatalf("request URL %q", got)
	}
	if err := doer.lastRequest.ParseForm(); err != nil {
		t.Fatalf("parsing form: %v", err)
	}
	if doer.lastRequest.PostForm.Get("secret") != "secret-key" {
		t.Fatal("secret not forwarded")
	}
	if doer.lastRequest.PostForm.Get("response") != "client-token" {
		t.Fatal("token not forwarded")
	}
}

func TestCaptchaVerifyRejected(t *testing.T) {
	doer := &fakeDoer{statusCode: http.StatusOK, body: `{"success": false, "error-codes": ["invalid-input-response"]}`}
	verifier := newTestCaptcha(doer)

	if err := verifier.Verify(context.Background(), "stale-token"); !errors.Is(err, ErrCaptchaFailed) {
		t.Fatalf("got %v, want ErrCaptchaFailed", err)
	}
}

func TestCaptchaVerifyUnavailable(t *testing.T) {
	cases := []struct {
		name string
		doer *fakeDoer
	}{
		{"network error", &fakeDoer{err: errors.New("connection refused")}},
		{"bad status", &fakeDoer{statusCode: http.StatusBadGateway, body: "oops"}},
		{"bad payload", &fakeDoer{statusCode: http.StatusOK, body: "not json"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := newTestCaptcha(tc.doer)
			if err := verifier.Verify(context.Background(), "client-token"); !errors.Is(err, ErrCaptchaUnavailable) {
				t.Fatalf("got %v, want ErrCaptchaUnavailable", err)
			}
		})
	}
}
