package request

import (
	"math"
	"strconv"
	"strings"
)

// MinVersion is the lowest protocol version accepted in an "HTTP/<version>" token.
const MinVersion = 0.9

// Outcome is the result of validating a Request.
type Outcome int

const (
	// Valid means the request may be resolved against the document root.
	Valid Outcome = iota
	// BadRequest means the request violates method, protocol or path policy.
	BadRequest
)

func (o Outcome) String() string {
	if o == Valid {
		return "valid"
	}
	return "bad request"
}

// Validate checks a request against the server policy. All checks are
// evaluated and any failure yields BadRequest.
func Validate(r Request) Outcome {
	ok := ValidMethod(r.Method)
	ok = ValidProtocol(r.Protocol) && ok
	ok = ValidPath(r.Path) && ok
	if !ok {
		return BadRequest
	}
	return Valid
}

// ValidMethod reports whether method is exactly "GET".
func ValidMethod(method string) bool {
	return method == "GET"
}

// ValidPath reports whether path is rooted.
func ValidPath(path string) bool {
	return strings.HasPrefix(path, "/")
}

// ValidProtocol reports whether protocol is "HTTP" or "HTTP/<v>" with v >= MinVersion.
func ValidProtocol(protocol string) bool {
	if protocol == "HTTP" {
		return true
	}

	parts := strings.Split(protocol, "/")
	if len(parts) != 2 || parts[0] != "HTTP" {
		return false
	}

	v, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= MinVersion
}
