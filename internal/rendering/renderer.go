package rendering

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Format is an output document format
type Format string

// Supported formats
const (
	FormatMarkdown Format = "markdown"
	FormatLaTeX    Format = "latex"
)

// Formats lists every supported format
var Formats = []Format{FormatMarkdown, FormatLaTeX}

// ParseFormat accepts a format name or its file extension
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	default:
		return "", &FormatError{Name: name}
	}
}

// Extension returns the file extension for the format, without the dot
func (f Format) Extension() string {
	if f == FormatLaTeX {
		return "tex"
	}
	return "md"
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	parsed   = map[string]*template.Template{}
	parsedMu sync.Mutex
)

func templateFile(name string, format Format) string {
	return fmt.Sprintf("templates/%s.%s.tmpl", name, format.Extension())
}

// loadTemplate parses an embedded template once. LaTeX templates use << >>
// delimiters so braces stay literal.
func loadTemplate(name string, format Format) (*template.Template, error) {
	file := templateFile(name, format)

	parsedMu.Lock()
	defer parsedMu.Unlock()
	if tmpl, ok := parsed[file]; ok {
		return tmpl, nil
	}

	content, err := templateFS.ReadFile(file)
	if err != nil {
		return nil, &TemplateError{Template: name, Format: format, Op: opLoad, Cause: err}
	}

	tmpl := template.New(name).Funcs(template.FuncMap{"join": strings.Join})
	if format == FormatLaTeX {
		tmpl = tmpl.Delims("<<", ">>")
	}
	tmpl, err = tmpl.Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Template: name, Format: format, Op: opParse, Cause: err}
	}
	parsed[file] = tmpl
	return tmpl, nil
}

// Render produces the document text for a customized resume. An empty
// template name falls back to the template recorded in the resume metadata,
// then to "modern".
func Render(resume *types.CustomizedResume, format Format, templateName string) (string, error) {
	if resume == nil {
		return "", ErrNoResume
	}
	if templateName == "" {
		templateName = resume.Metadata.Template
	}
	if templateName == "" {
		templateName = "modern"
	}

	tmpl, err := loadTemplate(templateName, format)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, buildTemplateData(resume, format)); err != nil {
		return "", &TemplateError{Template: templateName, Format: format, Op: opExecute, Cause: err}
	}
	return strings.TrimSpace(sb.String()) + "\n", nil
}

// RenderAll renders every supported format, keyed by format
func RenderAll(resume *types.CustomizedResume, templateName string) (map[Format]string, error) {
	out := make(map[Format]string, len(Formats))
	for _, format := range Formats {
		doc, err := Render(resume, format, templateName)
		if err != nil {
			return nil, err
		}
		out[format] = doc
	}
	return out, nil
}
