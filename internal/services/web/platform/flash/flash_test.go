package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteAndReadAndClearRoundTrip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	writeRR := httptest.NewRecorder()

	Write(writeRR, req, Success("Planet saved"))
	setCookieHeader := writeRR.Header().Get("Set-Cookie")
	if setCookieHeader == "" {
		t.Fatalf("expected Set-Cookie header")
	}
	cookie, err := http.ParseSetCookie(setCookieHeader)
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req.AddCookie(cookie)

	readRR := httptest.NewRecorder()
	notice, ok := ReadAndClear(readRR, req)
	if !ok {
		t.Fatalf("ReadAndClear() ok = false, want true")
	}
	if notice.Kind != KindSuccess {
		t.Fatalf("notice.Kind = %q, want %q", notice.Kind, KindSuccess)
	}
	if notice.Message != "Planet saved" {
		t.Fatalf("notice.Message = %q", notice.Message)
	}
	cleared := readRR.Header().Get("Set-Cookie")
	if !strings.Contains(cleared, "Max-Age=0") {
		t.Fatalf("clear Set-Cookie = %q, want expired cookie", cleared)
	}
}

func TestReadAndClearInvalidCookieValueStillClears(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64"})
	rr := httptest.NewRecorder()

	_, ok := ReadAndClear(rr, req)
	if ok {
		t.Fatalf("ReadAndClear() ok = true, want false")
	}
	if rr.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected clear Set-Cookie header")
	}
}

func TestWriteIgnoresInvalidNotice(t *testing.T) {
	t.Parallel()

	for _, notice := range []Notice{
		{Kind: KindSuccess, Message: "  "},
		{Kind: "celebration", Message: "Hooray"},
	} {
		rr := httptest.NewRecorder()
		Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), notice)
		if got := rr.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("Write(%+v) Set-Cookie = %q, want empty", notice, got)
		}
	}
}

func TestNormalizeNoticeTruncatesLongMessages(t *testing.T) {
	t.Parallel()

	notice, ok := normalizeNotice(Error(strings.Repeat("é", maxMessageRunes+20)))
	if !ok {
		t.Fatalf("normalizeNotice() ok = false")
	}
	if got := len([]rune(notice.Message)); got != maxMessageRunes {
		t.Fatalf("message runes = %d, want %d", got, maxMessageRunes)
	}
}
