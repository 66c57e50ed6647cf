package mailer

import (
	"strings"
	"testing"
)

func TestBuildMessagePlain(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587, From: "monitor@example.com"}, nil)

	msg := string(m.buildMessage([]string{"a@example.com"}, "Daily Monitor", "hello", ""))
	if !strings.Contains(msg, "Subject: Daily Monitor\r\n") {
		t.Fatalf("missing subject header: %q", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/plain") {
		t.Fatalf("plain message should be text/plain: %q", msg)
	}
	if strings.Contains(msg, "multipart") {
		t.Fatal("plain message should not be multipart")
	}
}

func TestBuildMessageMultipart(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587, From: "monitor@example.com"}, nil)

	msg := string(m.buildMessage([]string{"a@example.com", "b@example.com"}, "Daily Monitor", "hello", "<p>hello</p>"))
	if !strings.Contains(msg, "multipart/alternative") {
		t.Fatalf("expected multipart message: %q", msg)
	}
	textIdx := strings.Index(msg, "text/plain")
	htmlIdx := strings.Index(msg, "text/html")
	if textIdx < 0 || htmlIdx < 0 || textIdx > htmlIdx {
		t.Fatal("plain part must precede html part")
	}
	if !strings.Contains(msg, "To: a@example.com, b@example.com") {
		t.Fatalf("missing recipients header: %q", msg)
	}
}

func TestSendUnconfigured(t *testing.T) {
	m := New(Config{}, nil)
	if err := m.Send([]string{"a@example.com"}, "s", "t", ""); err == nil {
		t.Fatal("expected error when smtp is not configured")
	}
}
