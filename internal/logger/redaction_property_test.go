package logger

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_CredentialsNeverSurvive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	redactor := NewRedactor()

	genSecret := gen.RegexMatch(`[a-zA-Z0-9]{8,40}`)

	properties.Property("api keys are masked wherever they appear", prop.ForAll(
		func(prefix, kind, secret, suffix string) bool {
			token := kind + secret
			out := redactor.Redact(prefix + " " + token + " " + suffix)
			return !strings.Contains(out, token) && strings.Contains(out, "[REDACTED]")
		},
		gen.AlphaString(),
		gen.OneConstOf("lin_api_", "lin_oauth_"),
		genSecret,
		gen.AlphaString(),
	))

	properties.Property("bearer tokens are masked", prop.ForAll(
		func(secret string) bool {
			out := redactor.Redact(`{"authorization":"Bearer ` + secret + `"}`)
			return !strings.Contains(out, secret)
		},
		genSecret,
	))

	properties.Property("text without credentials is unchanged", prop.ForAll(
		func(s string) bool {
			return redactor.Redact(s) == s
		},
		gen.AlphaString().SuchThat(func(s string) bool { return !strings.Contains(s, "Bearer") }),
	))

	properties.TestingRun(t)
}
