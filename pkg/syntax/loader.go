package syntax

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"example.com/rabi/pkg/config"
)

//go:embed defaults/*.ini
var defaultFiles embed.FS

// Entry pairs a rule set with the file extensions it applies to.
type Entry struct {
	Rules      *Rules
	Extensions []string
}

// Parse reads one syntax rule file. Unknown keys and wrong value arity are
// reported as *config.Error.
func Parse(r io.Reader) (Entry, error) {
	rules := &Rules{}
	var exts []string
	err := config.ParseINI(r, func(key, value string) error {
		switch key {
		case "name":
			rules.Name = strings.TrimSpace(value)
		case "extensions":
			for _, e := range config.ParseList(value) {
				exts = append(exts, strings.TrimPrefix(e, "."))
			}
		case "highlight_numbers":
			b, err := config.ParseBool(value)
			if err != nil {
				return err
			}
			rules.HighlightNumbers = b
		case "singleline_comment_start":
			rules.LineComments = append(rules.LineComments, config.ParseList(value)...)
		case "singleline_string_quotes":
			for _, q := range config.ParseList(value) {
				if len(q) != 1 {
					return fmt.Errorf("string quote %q must be a single character", q)
				}
				rules.Quotes = append(rules.Quotes, q[0])
			}
		case "multiline_comment_delims":
			d, err := config.ParseFields(value, 2)
			if err != nil {
				return fmt.Errorf("multiline_comment_delims: %w", err)
			}
			rules.BlockComment = &Delims{Start: d[0], End: d[1]}
		case "multiline_string_delim":
			d, err := config.ParseFields(value, 1)
			if err != nil {
				return fmt.Errorf("multiline_string_delim: %w", err)
			}
			rules.BlockString = d[0]
		case "keywords_1":
			rules.Keywords = append(rules.Keywords, KeywordClass{Class: Keyword1, Words: config.ParseList(value)})
		case "keywords_2":
			rules.Keywords = append(rules.Keywords, KeywordClass{Class: Keyword2, Words: config.ParseList(value)})
		default:
			return fmt.Errorf("unknown key %q", key)
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	return Entry{Rules: rules, Extensions: exts}, nil
}

// ParseFile reads the syntax rule file at path.
func ParseFile(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()
	e, err := Parse(f)
	if err != nil {
		var ce *config.Error
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return Entry{}, err
	}
	return e, nil
}

// Registry selects rules by file extension.
type Registry struct {
	entries []Entry
}

// NewRegistry returns a registry holding the given entries; earlier entries
// win when extensions overlap.
func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: entries}
}

// LoadRegistry reads every *.ini file in dir (if dir exists) followed by the
// rule files embedded in the binary. User files take precedence.
func LoadRegistry(dir string) (*Registry, error) {
	reg := &Registry{}
	if dir != "" {
		paths, err := filepath.Glob(filepath.Join(dir, "*.ini"))
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)
		for _, p := range paths {
			e, err := ParseFile(p)
			if err != nil {
				return nil, err
			}
			reg.entries = append(reg.entries, e)
		}
	}
	defaults, err := loadEmbedded(defaultFiles)
	if err != nil {
		return nil, err
	}
	reg.entries = append(reg.entries, defaults...)
	return reg, nil
}

func loadEmbedded(fsys fs.FS) ([]Entry, error) {
	names, err := fs.Glob(fsys, "defaults/*.ini")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			return nil, err
		}
		e, err := Parse(f)
		f.Close()
		if err != nil {
			var ce *config.Error
			if errors.As(err, &ce) {
				ce.Path = name
			}
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ForExtension returns the rules registered for ext (with or without the
// leading dot), or nil.
func (r *Registry) ForExtension(ext string) *Rules {
	ext = strings.TrimPrefix(ext, ".")
	if r == nil || ext == "" {
		return nil
	}
	for _, e := range r.entries {
		for _, x := range e.Extensions {
			if strings.EqualFold(x, ext) {
				return e.Rules
			}
		}
	}
	return nil
}

// ForPath returns the rules matching the extension of path, or nil.
func (r *Registry) ForPath(path string) *Rules {
	return r.ForExtension(filepath.Ext(path))
}

// Names lists the language names in lookup order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Rules.Name)
	}
	return out
}
