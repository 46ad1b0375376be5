// Package browser opens article links in the user's web browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedScheme is returned for URLs that are not http or https
var ErrUnsupportedScheme = errors.New("only http/https URLs can be opened")

// launch starts the platform opener; replaced in tests
var launch = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Validate checks that rawURL is an absolute http(s) URL
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: %w", u.Scheme, ErrUnsupportedScheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return nil
}

// Open opens rawURL in the default browser without waiting for it
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}

	switch runtime.GOOS {
	case "darwin":
		return launch("open", rawURL)
	case "windows":
		// rundll32 avoids cmd's shell interpretation of the URL
		return launch("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return launch("xdg-open", rawURL)
	}
}
