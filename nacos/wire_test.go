package nacos

import (
	"strings"
	"testing"
)

func TestListeningLine_NoNamespace(t *testing.T) {
	line := listeningLine("app.yaml", "DEFAULT_GROUP", "abc123", "")
	if strings.Count(line, "\x02") != 2 {
		t.Fatalf("want 2 field seps, got %d in %q", strings.Count(line, "\x02"), line)
	}
	if strings.Count(line, "\x01") != 1 || !strings.HasSuffix(line, "\x01") {
		t.Fatalf("want single trailing record sep in %q", line)
	}
	if line != "app.yaml\x02DEFAULT_GROUP\x02abc123\x01" {
		t.Fatalf("bad line: %q", line)
	}
}

func TestListeningLine_WithNamespace(t *testing.T) {
	line := listeningLine("app.yaml", "DEFAULT_GROUP", "abc123", "ns-1")
	if strings.Count(line, "\x02") != 3 {
		t.Fatalf("want 3 field seps, got %d in %q", strings.Count(line, "\x02"), line)
	}
	if strings.Count(line, "\x01") != 1 || !strings.HasSuffix(line, "\x01") {
		t.Fatalf("want single trailing record sep in %q", line)
	}
	if line != "app.yaml\x02DEFAULT_GROUP\x02abc123\x02ns-1\x01" {
		t.Fatalf("bad line: %q", line)
	}
}

func TestMD5Hex(t *testing.T) {
	if got := md5Hex([]byte("")); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Fatalf("bad empty digest: %s", got)
	}
	if got := md5Hex([]byte("abc")); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("bad digest: %s", got)
	}
	if got := md5Hex([]byte("abc")); got != strings.ToLower(got) {
		t.Fatalf("digest not lowercase: %s", got)
	}
}
