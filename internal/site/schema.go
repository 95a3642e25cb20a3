package site

import (
	stderrors "errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// schemaSource constrains a profile to the ranges the engine accepts.
const schemaSource = `
#Site: {
	name?:      string
	latitude:   number & >=-90 & <=90
	longitude:  number & >=-180 & <=180
	utc_offset: int & >=-720 & <=720
	dst: {
		start_month: int & >=1 & <=12
		start_week:  int & >=1 & <=4
		end_month:   int & >=1 & <=12
		end_week:    int & >=1 & <=4
		advance:     int & >=0 & <=255
	}
}
`

// ErrInvalid is wrapped by every schema violation.
var ErrInvalid = stderrors.New("site profile violates schema")

// Validate checks p against the site schema. Every violated constraint is
// reported.
func (p Profile) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Site"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile site schema: %w", err)
	}

	v := schema.Unify(ctx.Encode(p))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, errors.Details(err, nil))
	}
	return nil
}
