package wire

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/printer"
)

// Document converts the operation into a GraphQL AST document with a single
// anonymous operation definition whose selection set holds the root field.
func (o Operation) Document() *ast.Document {
	operation := ast.NewOperationDefinition(&ast.OperationDefinition{
		Operation: string(o.typ),
		SelectionSet: ast.NewSelectionSet(&ast.SelectionSet{
			Selections: []ast.Selection{o.root.astField()},
		}),
	})
	return ast.NewDocument(&ast.Document{
		Definitions: []ast.Node{operation},
	})
}

// Render prints the operation as a canonical GraphQL document. Argument and
// selection order is preserved exactly as built, so equal operations always
// render to equal documents.
func (o Operation) Render() (string, error) {
	printed := printer.Print(o.Document())
	document, ok := printed.(string)
	if !ok {
		return "", fmt.Errorf("unexpected printed document type %T", printed)
	}
	return document, nil
}

// Fingerprint returns a stable hex digest of the operation, derived from
// its type and canonical document. Equal operations share a fingerprint;
// the engine client logs it so a query can be correlated across systems.
func (o Operation) Fingerprint() string {
	document, err := o.Render()
	if err != nil {
		document = err.Error()
	}
	return framedSHA256(string(o.typ), document)
}

// framedSHA256 hashes length-framed parts so distinct part boundaries can
// never collide.
func framedSHA256(parts ...string) string {
	hash := sha256.New()
	for _, part := range parts {
		_, _ = fmt.Fprintf(hash, "%d:%s|", len(part), part)
	}
	return hex.EncodeToString(hash.Sum(nil))
}

func (s Selection) astField() *ast.Field {
	field := &ast.Field{
		Name: ast.NewName(&ast.Name{Value: s.name}),
	}
	if s.alias != "" {
		field.Alias = ast.NewName(&ast.Name{Value: s.alias})
	}
	for _, argument := range s.arguments {
		field.Arguments = append(field.Arguments, ast.NewArgument(&ast.Argument{
			Name:  ast.NewName(&ast.Name{Value: argument.Name}),
			Value: argument.Value.astValue(),
		}))
	}
	if len(s.nested) > 0 {
		children := make([]ast.Selection, len(s.nested))
		for i, child := range s.nested {
			children[i] = child.astField()
		}
		field.SelectionSet = ast.NewSelectionSet(&ast.SelectionSet{Selections: children})
	}
	return ast.NewField(field)
}

func (v Value) astValue() ast.Value {
	switch v.kind {
	case KindNull:
		// graphql-go has no null literal node; an enum node prints the
		// bare keyword and parses back to the same node.
		return ast.NewEnumValue(&ast.EnumValue{Value: "null"})
	case KindBool:
		return ast.NewBooleanValue(&ast.BooleanValue{Value: v.boolVal})
	case KindInt:
		return ast.NewIntValue(&ast.IntValue{Value: strconv.FormatInt(v.intVal, 10)})
	case KindFloat:
		return ast.NewFloatValue(&ast.FloatValue{Value: formatFloatLiteral(v.floatVal)})
	case KindString:
		return ast.NewStringValue(&ast.StringValue{Value: v.strVal})
	case KindEnum:
		return ast.NewEnumValue(&ast.EnumValue{Value: v.strVal})
	case KindDateTime:
		return ast.NewStringValue(&ast.StringValue{Value: v.timeVal.Format(time.RFC3339Nano)})
	case KindBytes:
		return ast.NewStringValue(&ast.StringValue{Value: base64.StdEncoding.EncodeToString(v.bytesVal)})
	case KindList:
		values := make([]ast.Value, len(v.listVal))
		for i, item := range v.listVal {
			values[i] = item.astValue()
		}
		return ast.NewListValue(&ast.ListValue{Values: values})
	case KindObject:
		fields := make([]*ast.ObjectField, len(v.objVal))
		for i, field := range v.objVal {
			fields[i] = ast.NewObjectField(&ast.ObjectField{
				Name:  ast.NewName(&ast.Name{Value: field.Name}),
				Value: field.Value.astValue(),
			})
		}
		return ast.NewObjectValue(&ast.ObjectValue{Fields: fields})
	default:
		return ast.NewStringValue(&ast.StringValue{Value: fmt.Sprintf("<%s>", v.kind)})
	}
}

// formatFloatLiteral keeps whole floats distinguishable from ints in the
// rendered document.
func formatFloatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
