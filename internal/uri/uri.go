// Package uri implements RFC 3986-style URI parsing, normalization, and
// relative-reference resolution. Parse failures are reported as error values;
// nothing in this package ever aborts the process.
package uri

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidURI is returned when the input cannot be read as a URI reference.
var ErrInvalidURI = errors.New("invalid uri")

// Authority is the user/host portion of a URI.
type Authority struct {
	User   string
	Passwd string
	Host   string
	Port   string
}

// Empty reports whether the authority carries no information at all.
func (a Authority) Empty() bool {
	return a == Authority{}
}

// URI is a parsed, normalized URI reference. Raw preserves the exact text the
// components were parsed from (after any base resolution).
type URI struct {
	Raw       string
	Scheme    string
	Authority Authority
	Path      string
	Query     string
	Fragment  string
}

// Pattern from RFC 3986 appendix B.
var uriRegex = regexp.MustCompile(`^(([^:/?#]+):)?(//([^/?#]*))?([^?#]*)(\?([^#]*))?(#(.*))?`)

// Parse splits a URI reference into its components, normalizes it, and, when
// a base is supplied, resolves origin-relative, path-relative, and
// scheme-relative references against it.
func Parse(text string, base *URI) (URI, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return URI{}, fmt.Errorf("%w: empty input", ErrInvalidURI)
	}

	match := uriRegex.FindStringSubmatch(text)
	if match == nil {
		return URI{}, fmt.Errorf("%w: %q", ErrInvalidURI, text)
	}

	u := URI{
		Raw:       text,
		Scheme:    match[2],
		Authority: parseAuthority(match[4]),
		Path:      match[5],
		Query:     match[7],
		Fragment:  match[9],
	}
	u.normalize()

	if base != nil {
		return u.resolveAgainst(*base)
	}
	return u, nil
}

// parseAuthority splits "user:passwd@host:port", every part optional.
func parseAuthority(hostport string) Authority {
	var a Authority

	if at := strings.IndexByte(hostport, '@'); at != -1 {
		userinfo := hostport[:at]
		hostport = hostport[at+1:]
		if colon := strings.IndexByte(userinfo, ':'); colon != -1 {
			a.User = userinfo[:colon]
			a.Passwd = userinfo[colon+1:]
		} else {
			a.User = userinfo
		}
	}

	if colon := strings.IndexByte(hostport, ':'); colon != -1 {
		a.Host = hostport[:colon]
		a.Port = hostport[colon+1:]
	} else {
		a.Host = hostport
	}
	return a
}

// normalize applies the case and path normalizations that keep equivalent
// URIs comparable: scheme and host lowercase, and an empty path becomes "/"
// when an authority is present.
func (u *URI) normalize() {
	u.Scheme = strings.ToLower(u.Scheme)
	u.Authority.Host = strings.ToLower(u.Authority.Host)

	if !u.Authority.Empty() && u.Path == "" {
		u.Path = "/"
	}
}

// resolveAgainst completes a relative reference using the base URI. Absolute
// references pass through untouched.
func (u URI) resolveAgainst(base URI) (URI, error) {
	switch {
	case u.Scheme == "" && u.Authority.Host == "" && strings.HasPrefix(u.Path, "/"):
		// Origin-relative: /path keeps the base's scheme and host.
		return Parse(fmt.Sprintf("%s://%s%s", base.Scheme, base.Authority.Host, u.Raw), nil)

	case u.Scheme == "" && u.Authority.Host == "" && u.Path != "":
		// Path-relative: replace everything after the base's last path
		// segment.
		if base.Path == "/" {
			return Parse(fmt.Sprintf("%s/%s", base.Raw, u.Raw), nil)
		}
		end := strings.LastIndexByte(base.Raw, '/')
		if end == -1 {
			end = len(base.Raw)
		}
		return Parse(fmt.Sprintf("%s/%s", base.Raw[:end], u.Raw), nil)

	case u.Scheme == "" && u.Authority.Host != "" && strings.HasPrefix(u.Raw, "//"):
		// Scheme-relative: //host/path borrows only the scheme.
		return Parse(fmt.Sprintf("%s:%s", base.Scheme, u.Raw), nil)
	}
	return u, nil
}

// String reassembles the URI from its components.
func (u URI) String() string {
	var sb strings.Builder
	if u.Scheme != "" {
		sb.WriteString(u.Scheme)
		sb.WriteString(":")
	}
	if !u.Authority.Empty() {
		sb.WriteString("//")
		if u.Authority.User != "" {
			sb.WriteString(u.Authority.User)
			if u.Authority.Passwd != "" {
				sb.WriteString(":")
				sb.WriteString(u.Authority.Passwd)
			}
			sb.WriteString("@")
		}
		sb.WriteString(u.Authority.Host)
		if u.Authority.Port != "" {
			sb.WriteString(":")
			sb.WriteString(u.Authority.Port)
		}
	}
	sb.WriteString(u.Path)
	if u.Query != "" {
		sb.WriteString("?")
		sb.WriteString(u.Query)
	}
	if u.Fragment != "" {
		sb.WriteString("#")
		sb.WriteString(u.Fragment)
	}
	return sb.String()
}
