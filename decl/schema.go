package decl

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/phanxgames/scrollbind"
)

//go:embed schema.cue
var schemaSource string

// ValidationError lists every schema violation of a declaration file.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "invalid declarations: " + strings.Join(e.Issues, "; ")
}

// schema holds the compiled #File definition. A cue.Context is not safe for
// concurrent use, so every use holds mu.
var schema struct {
	once sync.Once
	mu   sync.Mutex
	ctx  *cue.Context
	file cue.Value
	err  error
}

// Schema returns the CUE source the declaration files are validated against.
func Schema() string {
	var b strings.Builder
	b.WriteString(schemaSource)
	b.WriteString("\n#Ease: ")
	for i, name := range scrollbind.EaseNames() {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(strconv.Quote(name))
	}
	b.WriteString("\n")
	return b.String()
}

func loadSchema() {
	schema.ctx = cuecontext.New()
	v := schema.ctx.CompileString(Schema())
	if err := v.Err(); err != nil {
		schema.err = fmt.Errorf("compile schema: %w", err)
		return
	}
	schema.file = v.LookupPath(cue.ParsePath("#File"))
	if !schema.file.Exists() {
		schema.err = fmt.Errorf("compile schema: #File not defined")
	}
}

// Validate checks a decoded declaration file (maps, slices and scalars as
// produced by a YAML or JSON decoder) against the schema. Schema violations
// are reported as a *ValidationError.
func Validate(raw any) error {
	schema.once.Do(loadSchema)
	if schema.err != nil {
		return schema.err
	}
	schema.mu.Lock()
	defer schema.mu.Unlock()

	v := schema.ctx.Encode(raw)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encode declarations: %w", err)
	}
	if err := schema.file.Unify(v).Validate(cue.Concrete(true)); err != nil {
		verr := &ValidationError{}
		for _, e := range cueerrors.Errors(err) {
			verr.Issues = append(verr.Issues, e.Error())
		}
		if len(verr.Issues) == 0 {
			verr.Issues = []string{err.Error()}
		}
		return verr
	}
	return nil
}
