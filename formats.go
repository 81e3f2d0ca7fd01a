package jschema

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Formats is the registry of built-in format checks. A check receives the
// instance value and reports conformance; non-string values conform by
// definition for the string-oriented formats. All of these stay pure
// annotations until the catalog enables them by name.
var Formats = map[string]func(any) bool{
	"date-time":             IsDateTime,
	"date":                  IsDate,
	"time":                  IsTime,
	"duration":              IsDuration,
	"hostname":              IsHostname,
	"email":                 IsEmail,
	"ipv4":                  IsIPV4,
	"ipv6":                  IsIPV6,
	"uri":                   IsURI,
	"uri-reference":         IsURIReference,
	"uuid":                  IsUUID,
	"regex":                 IsRegex,
	"json-pointer":          IsJSONPointer,
	"relative-json-pointer": IsRelativeJSONPointer,
}

// IsDateTime tells whether the given string is a valid RFC 3339 date-time.
func IsDateTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.Parse(time.RFC3339, strings.ToUpper(s))
	return err == nil
}

// IsDate tells whether the given string is a valid RFC 3339 full-date.
func IsDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsTime tells whether the given string is a valid RFC 3339 full-time.
func IsTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.Parse("15:04:05Z07:00", strings.ToUpper(s))
	if err != nil {
		_, err = time.Parse("15:04:05.999999999Z07:00", strings.ToUpper(s))
	}
	return err == nil
}

var durationPattern = regexp.MustCompile(`^P(?:\d+W|(?:\d+Y)?(?:\d+M)?(?:\d+D)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?)$`)

// IsDuration tells whether the given string is an ISO 8601 duration as given
// in Appendix A of RFC 3339.
func IsDuration(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if !durationPattern.MatchString(s) {
		return false
	}
	// "P" and "P…T" alone carry no components
	return len(s) > 1 && !strings.HasSuffix(s, "T")
}

// IsHostname tells whether the given string is a valid host name per
// RFC 1034 section 3.1 and RFC 1123 section 2.1.
func IsHostname(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	s = strings.TrimSuffix(s, ".")
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if len(label) < 1 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '-' {
				return false
			}
		}
	}
	return true
}

// IsEmail tells whether the given string is an addr-spec per RFC 5322.
func IsEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// IsIPV4 tells whether the given string is a dotted-quad IPv4 address.
func IsIPV4(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	ip := net.ParseIP(s)
	return ip != nil && strings.Count(s, ".") == 3
}

// IsIPV6 tells whether the given string is an IPv6 address.
func IsIPV6(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

// IsURI tells whether the given string is an absolute URI.
func IsURI(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// IsURIReference tells whether the given string is a URI reference.
func IsURIReference(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := url.Parse(s)
	return err == nil
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsUUID tells whether the given string is an RFC 4122 UUID.
func IsUUID(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return uuidPattern.MatchString(s)
}

// IsRegex tells whether the given string compiles as a regular expression.
func IsRegex(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := regexp.Compile(s)
	return err == nil
}

// IsJSONPointer tells whether the given string is an RFC 6901 JSON Pointer.
func IsJSONPointer(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := ParsePointer(s)
	return err == nil && validPointerEscapes(s)
}

// IsRelativeJSONPointer tells whether the given string is a Relative JSON
// Pointer.
func IsRelativeJSONPointer(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := ParseRelativePointer(s)
	return err == nil
}

func validPointerEscapes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			continue
		}
		if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
			return false
		}
	}
	return true
}
