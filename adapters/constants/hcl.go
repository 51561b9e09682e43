package constants

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"quote-pricing/core/pricing"
)

// labeledBlock describes how a labeled block type folds into the document
type labeledBlock struct {
	field     string // document field receiving the blocks
	list      bool   // collect into a list instead of a label-keyed object
	labelAttr string // attribute the label is copied into (list form only)
}

var labeledBlocks = map[string]labeledBlock{
	"industry": {field: "industries"},
	"bundle":   {field: "bundles", list: true, labelAttr: "name"},
}

// decodeHCL evaluates a constants file to a cty object and decodes it through
// its JSON form. Unlabeled blocks become nested objects; labeled blocks fold
// into the fields named in labeledBlocks.
func decodeHCL(src []byte, filename string) (pricing.Document, error) {
	var doc pricing.Document

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return doc, diagError(diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return doc, fmt.Errorf("%s: unexpected body type %T", filename, file.Body)
	}

	val, diags := bodyValue(body)
	if diags.HasErrors() {
		return doc, diagError(diags)
	}

	// Unknown values can only come from expressions that need a context; none is given
	if !val.IsWhollyKnown() {
		return doc, fmt.Errorf("%s: constants must be literal values", filename)
	}

	data, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return doc, fmt.Errorf("%s: %w", filename, err)
	}
	if err := decodeJSON(data, &doc); err != nil {
		return doc, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

func bodyValue(body *hclsyntax.Body) (cty.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	attrs := make(map[string]cty.Value, len(body.Attributes))

	for name, attr := range body.Attributes {
		v, d := attr.Expr.Value(nil)
		diags = append(diags, d...)
		attrs[name] = v
	}

	objects := map[string]map[string]cty.Value{}
	lists := map[string][]cty.Value{}

	for _, block := range body.Blocks {
		inner, d := bodyValue(block.Body)
		diags = append(diags, d...)
		if d.HasErrors() {
			continue
		}

		if len(block.Labels) == 0 {
			if _, dup := attrs[block.Type]; dup {
				diags = append(diags, blockDiag(block, "Duplicate block", fmt.Sprintf("%q is defined more than once", block.Type)))
				continue
			}
			attrs[block.Type] = inner
			continue
		}

		spec, known := labeledBlocks[block.Type]
		if !known || len(block.Labels) != 1 {
			diags = append(diags, blockDiag(block, "Unsupported block", fmt.Sprintf("%q blocks with %d labels are not supported", block.Type, len(block.Labels))))
			continue
		}
		label := block.Labels[0]

		if spec.list {
			fields := inner.AsValueMap()
			if fields == nil {
				fields = map[string]cty.Value{}
			}
			fields[spec.labelAttr] = cty.StringVal(label)
			lists[spec.field] = append(lists[spec.field], cty.ObjectVal(fields))
			continue
		}

		if objects[spec.field] == nil {
			objects[spec.field] = map[string]cty.Value{}
		}
		if _, dup := objects[spec.field][label]; dup {
			diags = append(diags, blockDiag(block, "Duplicate block", fmt.Sprintf("%s %q is defined more than once", block.Type, label)))
			continue
		}
		objects[spec.field][label] = inner
	}

	for field, entries := range objects {
		attrs[field] = cty.ObjectVal(entries)
	}
	for field, entries := range lists {
		attrs[field] = cty.TupleVal(entries)
	}

	if len(attrs) == 0 {
		return cty.EmptyObjectVal, diags
	}
	return cty.ObjectVal(attrs), diags
}

func blockDiag(block *hclsyntax.Block, summary, detail string) *hcl.Diagnostic {
	rng := block.TypeRange
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  &rng,
	}
}

// diagError flattens error diagnostics into one error with file:line positions
func diagError(diags hcl.Diagnostics) error {
	var msgs []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		pos := ""
		if diag.Subject != nil {
			pos = fmt.Sprintf("%s:%d: ", diag.Subject.Filename, diag.Subject.Start.Line)
		}
		msgs = append(msgs, pos+diag.Summary+": "+diag.Detail)
	}
	sort.Strings(msgs)
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
