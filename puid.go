// Package puid generates short, prefixed, roughly time-sorted identifiers.
//
// A PUID reads as a tagged string such as "user_lx3k2p9k0b9ttQzR7cE1aXwP":
//
//	b, err := puid.NewBuilder().Prefix("user")
//	...
//	id, err := b.Build()
//
// Each PUID contains, in order:
//   - the prefix (1-8 ASCII alphanumeric characters)
//   - an underscore
//   - milliseconds since the Unix epoch in base-36
//   - a process-wide counter (0-255) in decimal
//   - the process id in base-36
//   - Entropy random characters from [0-9A-Za-z]
//
// The counter is shared by every Builder in the process and wraps from 255 to 0.
// PUIDs are not cryptographically unguessable and carry no cross-process uniqueness
// guarantee beyond what the pid and random suffix provide.
package puid

import (
	"errors"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// DefaultEntropy is the number of random characters appended when none is set.
	DefaultEntropy uint8 = 12

	// Prefix length bounds, inclusive
	MinPrefixLen = 1
	MaxPrefixLen = 8

	// Separator sits between the prefix and the generated part
	Separator = "_"

	base36Alphabet       = "0123456789abcdefghijklmnopqrstuvwxyz"
	alphanumericAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// upper bound of base-36 digits for a uint64
	maxBase36Len = 13
	maxCounter   = 255
)

var (
	// ErrInvalidPrefix is returned when a prefix is empty, longer than MaxPrefixLen
	// or contains a character outside [0-9A-Za-z].
	ErrInvalidPrefix = errors.New("puid: prefix must be 1 to 8 alphanumeric characters")

	// counter is the process-wide sequence shared by all builders
	counter atomic.Uint32

	// nowMillis returns whole milliseconds since the Unix epoch
	nowMillis = func() uint64 {
		ms := time.Now().UnixMilli()
		if ms < 0 {
			return 0
		}
		return uint64(ms)
	}

	// processID returns the OS-assigned id of the running process
	processID = func() uint64 {
		return uint64(os.Getpid())
	}
)

// Builder configures and assembles PUIDs. The zero value has no prefix and zero
// entropy; use NewBuilder for the defaults.
type Builder struct {
	prefix  string
	entropy uint8
}

// NewBuilder returns a Builder with DefaultEntropy and no prefix.
func NewBuilder() Builder {
	return Builder{entropy: DefaultEntropy}
}

// Prefix returns a copy of b with the given prefix attached. An invalid prefix
// yields ErrInvalidPrefix and b is returned unchanged.
func (b Builder) Prefix(prefix string) (Builder, error) {
	if !ValidPrefix(prefix) {
		return b, ErrInvalidPrefix
	}
	b.prefix = prefix
	return b, nil
}

// Entropy returns a copy of b that appends n random characters. Zero is allowed.
func (b Builder) Entropy(n uint8) Builder {
	b.entropy = n
	return b
}

// Build assembles a new PUID. It fails with ErrInvalidPrefix if no prefix was set.
func (b Builder) Build() (string, error) {
	if b.prefix == "" {
		return "", ErrInvalidPrefix
	}
	return compose(b.prefix, b.entropy), nil
}

// MustBuild is like Build but panics on error
func (b Builder) MustBuild() string {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// BuildBatch assembles count PUIDs. Each one takes its own counter step.
func (b Builder) BuildBatch(count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	if b.prefix == "" {
		return nil, ErrInvalidPrefix
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, compose(b.prefix, b.entropy))
	}
	return result, nil
}

// ValidPrefix reports whether prefix is 1 to 8 ASCII letters or digits.
func ValidPrefix(prefix string) bool {
	if len(prefix) < MinPrefixLen || len(prefix) > MaxPrefixLen {
		return false
	}
	// byte-wise: any multi-byte rune has bytes >= 0x80 and fails here
	for i := 0; i < len(prefix); i++ {
		if !isAlphanumeric(prefix[i]) {
			return false
		}
	}
	return true
}

func isAlphanumeric(c byte) bool {
	return ('0' <= c && c <= '9') || ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

// compose concatenates the parts of a PUID. prefix must already be valid.
func compose(prefix string, entropy uint8) string {
	var sb strings.Builder
	// prefix + separator + time + counter(3) + pid + random
	sb.Grow(len(prefix) + len(Separator) + maxBase36Len + 3 + maxBase36Len + int(entropy))

	sb.WriteString(prefix)
	sb.WriteString(Separator)
	sb.WriteString(encodeBase36(nowMillis()))
	sb.WriteString(strconv.Itoa(int(nextCount())))
	sb.WriteString(encodeBase36(processID()))
	sb.WriteString(randomString(entropy))

	return sb.String()
}

// encodeBase36 writes v in lowercase base-36, most significant digit first.
// Zero encodes to the empty string.
func encodeBase36(v uint64) string {
	var buf [maxBase36Len]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = base36Alphabet[v%36]
		v /= 36
	}
	return string(buf[i:])
}

// randomString draws n characters uniformly from [0-9A-Za-z].
func randomString(n uint8) string {
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphanumericAlphabet[rand.IntN(len(alphanumericAlphabet))]
	}
	return string(buf)
}

// nextCount returns the current counter value and advances it, wrapping 255 to 0.
func nextCount() uint8 {
	for {
		current := counter.Load()
		next := current + 1
		if current >= maxCounter {
			next = 0
		}
		if counter.CompareAndSwap(current, next) {
			return uint8(current)
		}
		// CAS failed, retry
	}
}

// New composes a PUID from prefix and an optional entropy (default 12).
// It panics if prefix is invalid.
//
// Deprecated: Use NewBuilder, which reports an invalid prefix as an error.
func New(prefix string, entropy ...uint8) string {
	if !ValidPrefix(prefix) {
		panic(ErrInvalidPrefix)
	}

	n := DefaultEntropy
	if len(entropy) > 0 {
		n = entropy[0]
	}
	return compose(prefix, n)
}

// Version information
const (
	Version = "0.2.0"
	Name    = "PUID"
)
