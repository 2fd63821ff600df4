package x

import "testing"

func TestExpandEnv(t *testing.T) {
	env := map[string]string{
		"HOME":         "/home/user",
		"LOCALAPPDATA": `C:\Users\u\AppData\Local`,
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	tests := []struct {
		in   string
		want string
	}{
		{"$HOME/.config/chromium/Default/Bookmarks", "/home/user/.config/chromium/Default/Bookmarks"},
		{"${HOME}/x", "/home/user/x"},
		{`%LOCALAPPDATA%\Google\Chrome`, `C:\Users\u\AppData\Local\Google\Chrome`},
		{"$UNDEFINED/Bookmarks", "/Bookmarks"},
		{"%UNDEFINED%/Bookmarks", "/Bookmarks"},
		{"/plain/path", "/plain/path"},
		{"50% off", "50% off"},
	}

	for _, tt := range tests {
		if got := ExpandEnv(tt.in, lookup); got != tt.want {
			t.Errorf("ExpandEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandEnvProcessEnvironment(t *testing.T) {
	t.Setenv("CHROME_BOOKMARKS_TEST_DIR", "/tmp/test")
	if got := ExpandEnv("$CHROME_BOOKMARKS_TEST_DIR/b", nil); got != "/tmp/test/b" {
		t.Errorf("got %q", got)
	}
}
