package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/rs/zerolog/log"
)

// ErrUnsupported is returned for coding tokens, which aren't present in the table. It
// isn't fatal: callers must treat it as if no coding was requested at all.
var ErrUnsupported = errors.New("unsupported encoding")

var builtins = map[string]func() Codec{
	"gzip":    NewGZIP,
	"deflate": NewDeflate,
	"zstd":    NewZSTD,
}

// Registry is a fixed table of codecs, matched by their tokens.
type Registry struct {
	codecs []Codec
}

func NewRegistry(codecs ...Codec) Registry {
	return Registry{codecs: codecs}
}

// Default returns the registry containing gzip only.
func Default() Registry {
	return NewRegistry(NewGZIP())
}

// FromTokens builds a registry out of the built-in codecs named by tokens. Unknown
// tokens are a configuration error.
func FromTokens(tokens []string) (Registry, error) {
	codecs := make([]Codec, 0, len(tokens))

	for _, token := range tokens {
		constructor, found := builtins[token]
		if !found {
			return Registry{}, fmt.Errorf("%w: %q", ErrUnsupported, token)
		}

		codecs = append(codecs, constructor())
	}

	return NewRegistry(codecs...), nil
}

// Lookup matches the token case-sensitively against the table.
func (r Registry) Lookup(token string) (Codec, error) {
	for _, c := range r.codecs {
		if c.Token() == token {
			return c, nil
		}
	}

	log.Trace().Str("token", token).Msg("unsupported encoding")

	return nil, ErrUnsupported
}

// Tokens lists tokens of all the registered codecs.
func (r Registry) Tokens() []string {
	tokens := make([]string, len(r.codecs))
	for i, c := range r.codecs {
		tokens[i] = c.Token()
	}

	return tokens
}

// Negotiate picks the first token of an Accept-Encoding value, that matches a registered
// codec. Tokens are delimited by whitespaces and commas. Parameters don't affect the order,
// however an element with q=0 is not acceptable and is skipped. Nil is returned if nothing
// matches.
func (r Registry) Negotiate(acceptEncoding string) Codec {
	for _, element := range strings.Split(acceptEncoding, ",") {
		codings, params, _ := strings.Cut(element, ";")
		if rejected(params) {
			continue
		}

		for _, token := range strings.Fields(codings) {
			if c, err := r.Lookup(token); err == nil {
				return c
			}
		}
	}

	return nil
}

// rejected reports whether the parameters carry a zero q-value.
func rejected(params string) bool {
	for _, param := range strings.Split(params, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strcomp.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}

		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && q == 0
	}

	return false
}

// FromToken matches the token against the default table.
func FromToken(token string) (Codec, error) {
	return Default().Lookup(token)
}
