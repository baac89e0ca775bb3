package render

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults supplies the values used when a record lacks nested specification
// detail. The built-in values can be overridden from a YAML file.
type Defaults struct {
	RepoSuffix  string            `yaml:"repoSuffix"`
	EmailDomain string            `yaml:"emailDomain"`
	KeyFeatures []string          `yaml:"keyFeatures"`
	TechStack   map[string]string `yaml:"techStack"`
}

// BuiltinDefaults returns the stock defaults
func BuiltinDefaults() Defaults {
	return Defaults{
		RepoSuffix:  "-mvp",
		EmailDomain: "example.com",
		KeyFeatures: []string{
			"Landing page with clear value proposition",
			"User sign-up and authentication",
			"Core product workflow",
			"Contact form",
			"Basic admin dashboard",
		},
		TechStack: map[string]string{
			"frontend": "Next.js",
			"backend":  "Node.js",
			"database": "PostgreSQL",
			"hosting":  "Vercel",
		},
	}
}

// LoadDefaults parses a YAML defaults file, layering it over the built-ins.
// Omitted fields keep their built-in values.
func LoadDefaults(path string) (Defaults, error) {
	d := BuiltinDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read defaults file: %w", err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	return d, nil
}

// SanitizeName normalizes a business name into a URL/identifier-safe slug:
// lower-cased, with runs of non-alphanumeric characters collapsed to single
// hyphens.
func SanitizeName(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
