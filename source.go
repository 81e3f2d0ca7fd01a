package jschema

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// Source maps a relative URI path to a raw JSON document. Implementations
// fail with ErrSourceNotFound when the path has no document and ErrSource for
// transport or decoding failures.
type Source interface {
	Load(relativePath string) ([]byte, error)
}

// DirSource serves schema documents from a local directory. The optional
// Suffix is appended to every relative path ("greeting" → "greeting.json").
// Files ending in .yaml or .yml are transcoded to JSON.
type DirSource struct {
	Dir    string
	Suffix string
}

// Load reads and, if necessary, transcodes one document.
func (d DirSource) Load(relativePath string) ([]byte, error) {
	name := path.Join(d.Dir, relativePath+d.Suffix)
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, name)
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrSource, name, err)
	}
	if isYAMLPath(name) {
		return yamlToJSON(data)
	}
	return data, nil
}

// HTTPSource fetches schema documents over HTTP(S). BaseURL is joined with
// the relative path the catalog computed from the registered base URI.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource returns an HTTPSource with a conservative default timeout.
func NewHTTPSource(baseURL string) HTTPSource {
	return HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Load performs one GET. A 404 maps to ErrSourceNotFound, any other non-200
// status to ErrSource.
func (h HTTPSource) Load(relativePath string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	url := strings.TrimSuffix(h.BaseURL, "/") + "/" + strings.TrimPrefix(relativePath, "/")
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSource, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w: %d from %q", ErrSource, ErrInvalidStatusCode, resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSource, url, err)
	}
	return data, nil
}

// MapSource serves documents from an in-memory map, keyed by relative path.
type MapSource map[string][]byte

// Load returns the mapped document.
func (m MapSource) Load(relativePath string) ([]byte, error) {
	data, ok := m[relativePath]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, relativePath)
	}
	return data, nil
}

// fsSource serves documents from an fs.FS rooted at prefix; it backs the
// embedded metaschema documents.
type fsSource struct {
	fsys   fs.FS
	prefix string
}

func (f fsSource) Load(relativePath string) ([]byte, error) {
	name := path.Join(f.prefix, relativePath) + ".json"
	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, name)
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrSource, name, err)
	}
	return data, nil
}

//go:embed metaschemas
var metaschemaFS embed.FS

func isYAMLPath(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func yamlToJSON(data []byte) ([]byte, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrSource, ErrYAMLUnmarshal, err)
	}
	out, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	return out, nil
}

// probeField peeks a top-level string member out of a raw document without a
// full parse; the catalog uses it to read "$schema" and pick the metaschema
// before compiling.
func probeField(data []byte, field string) string {
	result := gjson.GetBytes(data, escapeGJSONPath(field))
	if result.Type == gjson.String {
		return result.String()
	}
	return ""
}

func escapeGJSONPath(field string) string {
	field = strings.ReplaceAll(field, ".", `\.`)
	return strings.ReplaceAll(field, "*", `\*`)
}
